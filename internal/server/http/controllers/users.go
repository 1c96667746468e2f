package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/rzbill/rolo/internal/runtime"
	usersvc "github.com/rzbill/rolo/internal/services/users"
	"github.com/rzbill/rolo/internal/store"
)

// UsersController handles user record endpoints.
//
// It provides cached lookups, batch read-through resolution, and filtered
// listing of the records accumulated in the local store.
type UsersController struct {
	rt    *runtime.Runtime
	users *usersvc.Service
}

// NewUsersController creates a new users controller.
func NewUsersController(rt *runtime.Runtime, svc *usersvc.Service) *UsersController {
	return &UsersController{
		rt:    rt,
		users: svc,
	}
}

// RegisterRoutes registers user routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Listing cached users (/v1/users)
// - Batch resolution (/v1/users/resolve)
// - Single record lookup (/v1/users/{id})
func (c *UsersController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/users", c.handleList)
	mux.HandleFunc("/v1/users/resolve", c.handleResolve)
	mux.HandleFunc("/v1/users/", c.handleGet)
}

// handleGet looks up a single cached record by id.
//
// The lookup never contacts the upstream; unknown ids return 404. Use
// the resolve endpoint to trigger fetch-and-populate.
func (c *UsersController) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	uid, err := parseUserID(r.URL.Path, "/v1/users/")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, ok, err := c.users.Lookup(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, rec)
}

// handleResolve resolves a batch of ids, fetching uncached ones from the
// upstream directory.
//
// Expects a JSON body with an "ids" array. Ids that cannot be resolved
// are omitted from the response rather than failing the batch.
func (c *UsersController) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req resolveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	users, err := c.users.ResolveMany(r.Context(), req.IDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, usersResp{Users: users, TotalCount: len(users)})
}

// handleList lists cached records in id order.
//
// Supports an optional CEL filter expression over id, display_name,
// region, and created_ms, plus a limit query parameter.
func (c *UsersController) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	users, err := c.users.List(r.Context(), usersvc.ListRequest{
		Filter: r.URL.Query().Get("filter"),
		Limit:  parseLimit(r.URL.Query().Get("limit")),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if users == nil {
		users = []store.Record{}
	}
	writeJSON(w, usersResp{Users: users, TotalCount: len(users)})
}
