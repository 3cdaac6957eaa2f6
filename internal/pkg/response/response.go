package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

type statusCoder interface {
	Status() int
	ErrorCode() string
}

type detailer interface {
	Details() any
}

// FromError writes the envelope for a domain error. Anything unrecognised is
// logged and answered with a generic 500.
func FromError(c *gin.Context, err error) {
	var known statusCoder
	if !errors.As(err, &known) {
		_ = c.Error(err)
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	var d detailer
	if errors.As(err, &d) {
		ErrorWithDetails(c, known.Status(), known.ErrorCode(), err.Error(), d.Details())
		return
	}
	Error(c, known.Status(), known.ErrorCode(), err.Error())
}

// ValidationError answers a request body that failed to bind. fields may be nil.
func ValidationError(c *gin.Context, fields map[string]string) {
	if len(fields) == 0 {
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", fields)
}
