package api

import (
	"net/http"                     // HTTP status codes
	"strconv"                      // Path id parsing
	"user_orders/internal/service" // Response envelope

	"github.com/gin-gonic/gin" // Gin web framework
)

// respond maps the envelope code onto the transport status. Only 200, 204 and
// 404 survive; every other code, 500 included, is sent as 400.
func respond(c *gin.Context, resp service.Response) {
	switch resp.StatusCode {
	case service.StatusSuccess:
		c.JSON(http.StatusOK, resp) // Success
	case service.StatusEmpty:
		c.Status(http.StatusNoContent) // Empty listing, envelope dropped
	case service.StatusNotFound:
		c.JSON(http.StatusNotFound, resp) // Missing entity
	default:
		c.JSON(http.StatusBadRequest, resp) // Conflicts and failures alike
	}
}

// badRequest answers a request that never reached the service
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, service.Response{StatusCode: http.StatusBadRequest, Message: msg})
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0) // Full width of uint
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name) // Reject before touching the service
		return 0, false
	}
	return uint(id), true
}
