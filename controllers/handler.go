package controllers

import (
	"net/http"
	"strconv"

	"github.com/Govind-619/inventory-manager/repository"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API over an injected repository
type Handler struct {
	repo *repository.Repository
}

// NewHandler creates a handler bound to repo
func NewHandler(repo *repository.Repository) *Handler {
	return &Handler{repo: repo}
}

// parseID reads a positive integer path parameter. On failure it writes
// the 400 response and returns false.
func parseID(c *gin.Context, resource string) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.LogError("Invalid %s ID %q: %v", resource, raw, err)
		utils.BadRequest(c, "Invalid "+resource+" ID format")
		return 0, false
	}
	return uint(id), true
}

// fail logs err with its cause and writes the classified response
func fail(c *gin.Context, action string, err error) {
	if utils.StatusCode(err) >= 500 {
		utils.LogError("Failed to %s: %v", action, err)
	} else {
		utils.LogDebug("Rejected %s: %v", action, err)
	}
	utils.RespondError(c, err)
}

// Health reports whether the database is reachable
func (h *Handler) Health(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		utils.LogError("Health check failed: %v", err)
		utils.Error(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	utils.Success(c, gin.H{"status": "ok"})
}
