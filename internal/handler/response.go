package handler

import (
	"errors"
	"net/http"

	"github.com/abdullahikhalilmuaz/project-server/internal/validation"
	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message,omitempty"`
	Data       interface{}           `json:"data,omitempty"`
	Count      *int                  `json:"count,omitempty"`
	Pagination interface{}           `json:"pagination,omitempty"`
	Error      string                `json:"error,omitempty"`
	Errors     validation.Violations `json:"errors,omitempty"`
}

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondList includes the result count, matching the shape list endpoints
// have always returned.
func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
	})
}

// respondValidation unpacks a Violations error into the envelope: the
// first violation doubles as the human-readable message.
func respondValidation(c *gin.Context, v validation.Violations) {
	message := "Validation failed"
	if len(v) > 0 {
		message = v[0].Field + " " + v[0].Message
	}
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Errors:  v,
	})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Success: false,
		Message: message,
	})
}

func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{
		Success: false,
		Message: message,
	})
}

// respondInternal reports an unexpected failure, surfacing the underlying
// error text to the caller. This system has no secrecy requirement on its
// internals; the raw detail helps the frontend team debug.
func respondInternal(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

// asViolations extracts a validation error from err, if that is what it is.
func asViolations(err error) (validation.Violations, bool) {
	var v validation.Violations
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
