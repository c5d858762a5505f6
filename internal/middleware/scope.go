package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"onebill/internal/domain"
)

const (
	ContextKeyBusinessID = "business_id"

	// BusinessParam is the route parameter carrying the business id.
	BusinessParam = "businessID"
)

// BusinessScope returns middleware that parses the business id from the route and
// stores it in the context. Requests with a malformed id are rejected.
func BusinessScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(BusinessParam))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_ID", "message": "invalid business ID"},
			})
			return
		}
		c.Set(ContextKeyBusinessID, id)
		c.Next()
	}
}

// GetBusinessID extracts the business ID set by BusinessScope.
func GetBusinessID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyBusinessID)
	if !exists {
		return uuid.Nil, domain.ErrNotFound
	}
	return val.(uuid.UUID), nil
}
