package controllers

import (
	"net/http"

	"github.com/rzbill/rolo/internal/runtime"
	usersvc "github.com/rzbill/rolo/internal/services/users"
)

// GeneralController handles general HTTP endpoints like health and stats.
//
// It provides endpoints for service health monitoring and operational
// introspection that are not specific to single user records.
type GeneralController struct {
	rt    *runtime.Runtime
	users *usersvc.Service
}

// NewGeneralController creates a new general controller.
//
// The controller requires both a runtime instance for storage health and
// the users service for queue and cache introspection.
func NewGeneralController(rt *runtime.Runtime, svc *usersvc.Service) *GeneralController {
	return &GeneralController{
		rt:    rt,
		users: svc,
	}
}

// RegisterRoutes registers general routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Health checks (/v1/healthz)
// - Cache statistics (/v1/stats)
// - Queue introspection (/v1/queue)
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/stats", c.handleStats)
	mux.HandleFunc("/v1/queue", c.handleQueue)
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with status plus queue occupancy if healthy, 503
// Service Unavailable when the storage check fails.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	qi := c.users.QueueInfo()
	writeJSON(w, healthResp{Status: "ok", QueueSize: qi.QueueSize, InFlight: qi.InFlight})
}

// handleStats returns cache totals and resolution activity.
//
// Returns a JSON response with total cached users, per-region counts,
// and queue/claim occupancy.
func (c *GeneralController) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := c.users.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read stats")
		return
	}
	writeJSON(w, st)
}

// handleQueue returns fetch queue occupancy and outstanding claims.
func (c *GeneralController) handleQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.users.QueueInfo())
}
