package controllers

import "github.com/rzbill/rolo/internal/store"

// Common request/response types for HTTP controllers

// resolveReq represents a batch resolution request.
type resolveReq struct {
	IDs []int64 `json:"ids"`
}

// usersResp represents a set of user records with a count, shared by the
// resolve and list endpoints.
type usersResp struct {
	Users      []store.Record `json:"users"`
	TotalCount int            `json:"totalCount"`
}

// healthResp represents the health endpoint payload.
type healthResp struct {
	Status    string `json:"status"`
	QueueSize int    `json:"queueSize"`
	InFlight  int    `json:"inFlight"`
}
