package controllers

import (
	"net/http"

	"github.com/rzbill/rolo/internal/runtime"
	usersvc "github.com/rzbill/rolo/internal/services/users"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes
// and manages the lifecycle of individual controllers.
type ControllerRegistry struct {
	general *GeneralController
	users   *UsersController
}

// NewControllerRegistry creates a new controller registry.
//
// It initializes all controllers with the provided runtime and services.
func NewControllerRegistry(rt *runtime.Runtime, usersSvc *usersvc.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt, usersSvc),
		users:   NewUsersController(rt, usersSvc),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
//
// This method sets up all HTTP endpoints for the rolo service,
// including general endpoints (health, stats, queue) and user record
// endpoints (lookup, resolve, list).
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.users.RegisterRoutes(mux)
}
