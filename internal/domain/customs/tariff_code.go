package customs

import (
	"strings"
	"time"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// TariffCode represents a customs nomenclature code (e.g. an HS code such
// as "8471.30") that can be attached to product templates and categories.
type TariffCode struct {
	shared.TenantAggregateRoot
	Code        string     `gorm:"type:varchar(30);not null;index"`
	Description string     `gorm:"type:varchar(200)"`
	CountryID   *uuid.UUID `gorm:"type:uuid;index"` // restricts the code to one destination country
	StartMonth  int        `gorm:"not null;default:0"`
	StartDay    int        `gorm:"not null;default:0"`
	EndMonth    int        `gorm:"not null;default:0"`
	EndDay      int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TariffCode) TableName() string {
	return "tariff_codes"
}

// Pattern describes what a caller is trying to classify. Only the fields
// that are set participate in matching.
type Pattern struct {
	Code      string
	CountryID *uuid.UUID
	Date      *time.Time
}

// CodePattern builds a pattern that matches on nomenclature code only
func CodePattern(code string) Pattern {
	return Pattern{Code: code}
}

// NewTariffCode creates a new tariff code
func NewTariffCode(tenantID uuid.UUID, code, description string) (*TariffCode, error) {
	if err := validateNomenclatureCode(code); err != nil {
		return nil, err
	}

	tc := &TariffCode{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Description:         description,
	}

	tc.AddDomainEvent(NewTariffCodeCreatedEvent(tc))

	return tc, nil
}

// Update updates the code and description
func (t *TariffCode) Update(code, description string) error {
	if err := validateNomenclatureCode(code); err != nil {
		return err
	}

	t.Code = code
	t.Description = description
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTariffCodeUpdatedEvent(t))

	return nil
}

// SetCountry restricts the code to a destination country (nil clears the restriction)
func (t *TariffCode) SetCountry(countryID *uuid.UUID) {
	t.CountryID = countryID
	t.Touch()
	t.IncrementVersion()
}

// SetSeason sets the seasonal validity window as month/day boundaries.
// Passing all zeros clears the window.
func (t *TariffCode) SetSeason(startMonth, startDay, endMonth, endDay int) error {
	if startMonth == 0 && startDay == 0 && endMonth == 0 && endDay == 0 {
		t.StartMonth, t.StartDay, t.EndMonth, t.EndDay = 0, 0, 0, 0
		t.Touch()
		t.IncrementVersion()
		return nil
	}
	if startMonth < 1 || startMonth > 12 || endMonth < 1 || endMonth > 12 {
		return shared.NewDomainError("INVALID_SEASON", "Season months must be between 1 and 12")
	}
	if startDay < 1 || startDay > 31 || endDay < 1 || endDay > 31 {
		return shared.NewDomainError("INVALID_SEASON", "Season days must be between 1 and 31")
	}

	t.StartMonth, t.StartDay, t.EndMonth, t.EndDay = startMonth, startDay, endMonth, endDay
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Match reports whether this tariff code applies to the given pattern.
// The nomenclature code matches when it is a prefix of the pattern code
// (dots ignored), so "84" covers "84.71" but not the other way around.
func (t *TariffCode) Match(pattern Pattern) bool {
	if pattern.Code != "" {
		if !strings.HasPrefix(normalizeCode(pattern.Code), normalizeCode(t.Code)) {
			return false
		}
	}
	if t.CountryID != nil && pattern.CountryID != nil && *t.CountryID != *pattern.CountryID {
		return false
	}
	if pattern.Date != nil && !t.inSeason(*pattern.Date) {
		return false
	}
	return true
}

// DisplayName returns the human-readable name of the code
func (t *TariffCode) DisplayName() string {
	if t.Description == "" {
		return t.Code
	}
	return t.Code + " " + t.Description
}

// inSeason reports whether the date falls inside the seasonal window.
// A window that ends before it starts wraps around the end of the year.
func (t *TariffCode) inSeason(date time.Time) bool {
	if t.StartMonth == 0 || t.EndMonth == 0 {
		return true
	}

	day := int(date.Month())*100 + date.Day()
	start := t.StartMonth*100 + t.StartDay
	end := t.EndMonth*100 + t.EndDay

	if start <= end {
		return day >= start && day <= end
	}
	return day >= start || day <= end
}

// normalizeCode strips separators so prefixes compare across notations
func normalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == ' ' {
			return -1
		}
		return r
	}, code)
}

// validateNomenclatureCode validates a nomenclature code
func validateNomenclatureCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Tariff code cannot be empty")
	}
	if len(code) > 30 {
		return shared.NewDomainError("INVALID_CODE", "Tariff code cannot exceed 30 characters")
	}
	for _, r := range code {
		if !((r >= '0' && r <= '9') || r == '.' || r == ' ') {
			return shared.NewDomainError("INVALID_CODE", "Tariff code can only contain digits, dots, and spaces")
		}
	}
	return nil
}
