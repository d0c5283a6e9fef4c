// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides BodyLimit, a request-body cap for transcript uploads.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit returns a Gin middleware that caps the request body at maxBytes.
// Requests advertising a larger Content-Length are rejected up front with
// 413; otherwise the body reader is wrapped with http.MaxBytesReader so
// chunked uploads cannot exceed the cap either. maxBytes <= 0 disables the
// middleware.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "payload_too_large",
				"message":    "request body exceeds the upload limit",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
