package customs

import (
	"time"

	"github.com/erp/customs/internal/domain/customs"
	"github.com/google/uuid"
)

// CreateTariffCodeRequest is the application-level request to create a tariff code
type CreateTariffCodeRequest struct {
	Code        string
	Description string
	CountryID   *uuid.UUID
	StartMonth  int
	StartDay    int
	EndMonth    int
	EndDay      int
}

// UpdateTariffCodeRequest is the application-level request to update a
// tariff code. Nil fields are left unchanged.
type UpdateTariffCodeRequest struct {
	Code         string
	Description  *string
	CountryID    *uuid.UUID
	ClearCountry bool
	Season       *SeasonRequest
}

// SeasonRequest carries a seasonal validity window; all zeros clears it
type SeasonRequest struct {
	StartMonth int
	StartDay   int
	EndMonth   int
	EndDay     int
}

// TariffCodeResponse represents a tariff code in application responses
type TariffCodeResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	DisplayName string     `json:"display_name"`
	CountryID   *uuid.UUID `json:"country_id,omitempty"`
	StartMonth  int        `json:"start_month,omitempty"`
	StartDay    int        `json:"start_day,omitempty"`
	EndMonth    int        `json:"end_month,omitempty"`
	EndDay      int        `json:"end_day,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ToTariffCodeResponse converts a domain tariff code to a response
func ToTariffCodeResponse(tc *customs.TariffCode) *TariffCodeResponse {
	return &TariffCodeResponse{
		ID:          tc.ID,
		TenantID:    tc.TenantID,
		Code:        tc.Code,
		Description: tc.Description,
		DisplayName: tc.DisplayName(),
		CountryID:   tc.CountryID,
		StartMonth:  tc.StartMonth,
		StartDay:    tc.StartDay,
		EndMonth:    tc.EndMonth,
		EndDay:      tc.EndDay,
		CreatedAt:   tc.CreatedAt,
		UpdatedAt:   tc.UpdatedAt,
		Version:     tc.Version,
	}
}

// ResolveRequest asks for the tariff codes applicable to an owner
type ResolveRequest struct {
	Pattern   string
	CountryID *uuid.UUID
	Date      *time.Time
}

// toPattern converts the request to a domain match pattern
func (r ResolveRequest) toPattern() customs.Pattern {
	return customs.Pattern{
		Code:      r.Pattern,
		CountryID: r.CountryID,
		Date:      r.Date,
	}
}

// ListFilter carries common list parameters from the interface layer
type ListFilter struct {
	Page     int
	PageSize int
	Search   string
}
