package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	eventapp "github.com/nsnodes/backend/internal/application/event"
)

// NetworkStateResolver resolves raw organizer values
type NetworkStateResolver interface {
	ResolveNetworkState(ctx context.Context, req eventapp.ResolveRequest) eventapp.NetworkStateResolution
}

// NetworkStateHandler exposes organizer resolution for debugging data issues
type NetworkStateHandler struct {
	BaseHandler
	resolver NetworkStateResolver
}

// NewNetworkStateHandler creates a new NetworkStateHandler
func NewNetworkStateHandler(resolver NetworkStateResolver) *NetworkStateHandler {
	return &NetworkStateHandler{resolver: resolver}
}

// Resolve answers the label an organizers value resolves to.
// An absent value resolves to "Unknown".
// GET /api/v1/network-state/resolve?organizers=
func (h *NetworkStateHandler) Resolve(c *gin.Context) {
	var req eventapp.ResolveRequest
	if !h.BindQuery(c, &req) {
		return
	}

	h.Success(c, h.resolver.ResolveNetworkState(c.Request.Context(), req))
}
