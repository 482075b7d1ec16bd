package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	societyapp "github.com/nsnodes/backend/internal/application/society"
	"github.com/nsnodes/backend/internal/interfaces/http/dto"
)

// SocietyFinder is the part of the society service the handler depends on
type SocietyFinder interface {
	List(ctx context.Context, filter societyapp.SocietyListFilter) ([]societyapp.SocietyResponse, int64)
	Get(ctx context.Context, id uuid.UUID) (*societyapp.SocietyResponse, error)
	Match(ctx context.Context, term string) (*societyapp.MatchResponse, error)
	Paging(filter societyapp.SocietyListFilter) (page, pageSize int)
}

// SocietyHandler serves the society directory
type SocietyHandler struct {
	BaseHandler
	societies SocietyFinder
}

// NewSocietyHandler creates a new SocietyHandler
func NewSocietyHandler(societies SocietyFinder) *SocietyHandler {
	return &SocietyHandler{societies: societies}
}

// MatchRequest carries the name to reconcile
type MatchRequest struct {
	Name string `form:"name" binding:"required,max=200"`
}

// List answers one page of societies.
// GET /api/v1/societies?search=&type=&page=&page_size=&order_by=&order_dir=
func (h *SocietyHandler) List(c *gin.Context) {
	var filter societyapp.SocietyListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	societies, total := h.societies.List(c.Request.Context(), filter)

	page, pageSize := h.societies.Paging(filter)
	h.SuccessWithMeta(c, societies, total, page, pageSize)
}

// Get answers a single society.
// GET /api/v1/societies/:id
func (h *SocietyHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid society ID format")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid society ID format")
		return
	}

	soc, err := h.societies.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, soc)
}

// Match reconciles a free-form name against the canonical societies.
// GET /api/v1/societies/match?name=
func (h *SocietyHandler) Match(c *gin.Context) {
	var req MatchRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.societies.Match(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
