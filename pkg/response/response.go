package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetdesk/service-booking/pkg/domain"
)

// Success writes a 200 response with the data payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the data payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Paginated writes a 200 response with items and pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Error maps a domain error to its HTTP status. Unclassified errors
// become 500 without leaking internals.
func Error(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": string(code)})
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict, domain.ErrCodeInvalidState:
		return http.StatusConflict
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
