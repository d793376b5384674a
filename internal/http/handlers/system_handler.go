package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        System
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}

// CheckDB reports store connectivity. This is the one endpoint that returns
// the raw infrastructure error to the caller.
func (h *Handlers) CheckDB(c *gin.Context) {
	if err := h.svc.System.Check(c.Request.Context()); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.String(http.StatusOK, "Database connection is successful!")
}

// CleanDB godoc
// @ID          cleanDB
// @Summary     Delete all users, messages, follows and the latest counter
// @Tags        Simulator
// @Security    SimulatorAuth
// @Success     204
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /cleandb [post]
func (h *Handlers) CleanDB(c *gin.Context) {
	if err := h.svc.System.Reset(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	noContent(c)
}
