// Package handlers provides the HTTP handlers of MiniTwit: the server-rendered
// page flow, the simulator JSON API and the operational endpoints.
//
// This file defines the response helpers shared by the JSON endpoints. Every
// API error uses the simulator's envelope:
//
//	HTTP/1.1 404 Not Found
//	{ "status": 404, "error_msg": "User not found" }
//
// Server errors (>=500) are logged with the request-scoped logger before the
// envelope is written. Page handlers use pageFail instead, which answers with
// a bare status.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-minitwit/internal/http/middleware"
)

// ErrorResponse is the error envelope of the simulator API.
type ErrorResponse struct {
	// HTTP status code, repeated in the body
	Status int `json:"status" example:"404"`
	// Human-readable message
	ErrorMsg string `json:"error_msg" example:"User not found"`
}

// fail aborts with the API error envelope. err, when non-nil, is logged for
// 5xx statuses; it is never sent to the client.
func fail(c *gin.Context, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().Int("status", status)
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg(msg)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Status: status, ErrorMsg: msg})
}

// Fail is the exported variant of fail for router fallbacks.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg, nil) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// pageFail aborts a page request with a bare status, logging server errors.
func pageFail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().Err(err).Int("status", status).Msg("page error")
	}
	c.AbortWithStatus(status)
}
