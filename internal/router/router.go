package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"onebill/internal/handler"
	"onebill/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	gstH *handler.GSTHandler,
	lookupH *handler.LookupHandler,
	businessH *handler.BusinessHandler,
	clientH *handler.ClientHandler,
	invoiceH *handler.InvoiceHandler,
	paymentH *handler.PaymentHandler,
	purchaseH *handler.PurchaseHandler,
	reportH *handler.ReportHandler,
) *gin.Engine {
	// Keep JSON numbers exact until the engine parses them as decimals.
	binding.EnableDecoderUseNumber = true

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Stateless tax engine
	g := v1.Group("/gst")
	g.POST("/validate-gstin", gstH.ValidateGSTIN)
	g.POST("/place-of-supply", gstH.PlaceOfSupply)
	g.POST("/line-tax", gstH.LineTax)
	g.POST("/line", gstH.Line)
	g.POST("/totals", gstH.Totals)
	g.POST("/check", gstH.Check)
	g.POST("/words", gstH.AmountInWords)
	g.POST("/currency", gstH.FormatCurrency)
	g.GET("/states", gstH.States)
	g.GET("/rates", gstH.Rates)
	g.GET("/hsn", gstH.SearchHSN)

	// Registry lookups
	lookup := v1.Group("/lookup")
	lookup.GET("/gstin/:gstin", lookupH.GSTIN)
	lookup.GET("/ifsc/:ifsc", lookupH.IFSC)

	v1.POST("/businesses", businessH.Create)
	v1.GET("/businesses", businessH.List)

	// Business-scoped routes
	biz := v1.Group("/businesses/:" + middleware.BusinessParam)
	biz.Use(middleware.BusinessScope())
	biz.GET("", businessH.GetByID)
	biz.PUT("", businessH.Update)

	biz.POST("/clients", clientH.Create)
	biz.GET("/clients", clientH.List)
	biz.GET("/clients/:clientID", clientH.GetByID)
	biz.PUT("/clients/:clientID", clientH.Update)
	biz.DELETE("/clients/:clientID", clientH.Delete)

	biz.POST("/invoices/preview", invoiceH.Preview)
	biz.POST("/invoices", invoiceH.Create)
	biz.GET("/invoices", invoiceH.List)

	biz.POST("/purchases", purchaseH.Create)
	biz.GET("/purchases", purchaseH.List)
	biz.DELETE("/purchases/:purchaseID", purchaseH.Delete)

	biz.GET("/reports/summary", reportH.Summary)
	biz.GET("/reports/export.csv", reportH.ExportCSV)
	biz.GET("/reports/export.xlsx", reportH.ExportXLSX)

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.DELETE("/:id", invoiceH.Delete)
	invoices.PATCH("/:id/status", invoiceH.UpdateStatus)
	invoices.POST("/:id/send", invoiceH.Send)
	invoices.POST("/:id/payment-proofs", paymentH.SubmitProof)
	invoices.GET("/:id/payment-proofs", paymentH.ListProofs)

	return r
}
