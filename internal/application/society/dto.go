package society

import (
	"time"

	"github.com/google/uuid"
	"github.com/nsnodes/backend/internal/domain/society"
)

// SocietyListFilter holds the query parameters accepted by List
type SocietyListFilter struct {
	Search   string `form:"search" binding:"max=200"`
	Type     string `form:"type" binding:"max=50"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name type location created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SocietyResponse is the API representation of a society
type SocietyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Website     *string   `json:"website,omitempty"`
	XHandle     *string   `json:"x_handle,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MatchResponse reports how a free-form name reconciles against the directory
type MatchResponse struct {
	Term       string `json:"term"`
	Normalized string `json:"normalized"`
	Matched    bool   `json:"matched"`
	Society    string `json:"society,omitempty"`
}

// ToSocietyResponse converts a domain society to its response form
func ToSocietyResponse(s *society.Society) SocietyResponse {
	return SocietyResponse{
		ID:          s.ID,
		Name:        s.Name,
		Type:        s.Type,
		Description: s.Description,
		Location:    s.Location,
		Website:     s.Website,
		XHandle:     s.XHandle,
		LogoURL:     s.LogoURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSocietyResponses converts a slice of societies, keeping order
func ToSocietyResponses(societies []society.Society) []SocietyResponse {
	out := make([]SocietyResponse, len(societies))
	for i := range societies {
		out[i] = ToSocietyResponse(&societies[i])
	}
	return out
}
