package domain

// FileType represents the allowed file types for payment proof uploads.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusDeleted InvoiceStatus = "deleted"
)

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusDeleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether an invoice in status s may move to next.
// Deleted is terminal; paid invoices can only be deleted.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if !next.Valid() || s == InvoiceStatusDeleted {
		return false
	}
	switch s {
	case InvoiceStatusDraft:
		return next != InvoiceStatusDraft
	case InvoiceStatusSent:
		return next == InvoiceStatusPaid || next == InvoiceStatusDeleted || next == InvoiceStatusSent
	case InvoiceStatusPaid:
		return next == InvoiceStatusDeleted
	}
	return false
}

// PaymentVerdict is the outcome of analysing a payment proof.
type PaymentVerdict string

const (
	PaymentVerified     PaymentVerdict = "verified"
	PaymentManualReview PaymentVerdict = "manual_review"
	PaymentFailed       PaymentVerdict = "failed"
)
