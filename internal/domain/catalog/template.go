package catalog

import (
	"strings"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Template represents a product template, the unit of customs
// classification. Products are variants of a template and delegate all
// tariff code behavior to it.
type Template struct {
	shared.TenantAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_template_tenant_code,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	NetWeight   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // per unit, used on customs declarations
	// CustomsCategoryID references a customs-enabled category; required
	// whenever UseCategoryTariffCodes is set.
	CustomsCategoryID *uuid.UUID `gorm:"type:uuid;index"`
	// UseCategoryTariffCodes delegates tariff code resolution to the
	// customs category instead of the template's own links.
	UseCategoryTariffCodes bool       `gorm:"not null;default:false"`
	CountryOfOriginID      *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Template) TableName() string {
	return "product_templates"
}

// NewTemplate creates a new product template
func NewTemplate(tenantID uuid.UUID, code, name, unit string) (*Template, error) {
	if err := validateTemplateCode(code); err != nil {
		return nil, err
	}
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Template unit cannot be empty")
	}

	template := &Template{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Unit:                unit,
		NetWeight:           decimal.Zero,
	}

	template.AddDomainEvent(NewTemplateCreatedEvent(template))

	return template, nil
}

// Update updates the template's basic information
func (t *Template) Update(name, description string) error {
	if err := validateTemplateName(name); err != nil {
		return err
	}

	t.Name = name
	t.Description = description
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTemplateUpdatedEvent(t))

	return nil
}

// SetNetWeight sets the per-unit net weight used on customs declarations
func (t *Template) SetNetWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Net weight cannot be negative")
	}

	t.NetWeight = weight
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetCustomsCategory sets or clears the customs category reference. The
// reference cannot be cleared while category delegation is enabled.
func (t *Template) SetCustomsCategory(categoryID *uuid.UUID) error {
	if categoryID == nil && t.UseCategoryTariffCodes {
		return shared.NewDomainError("VALIDATION_REQUIRED", "Customs category is required while the category's tariff codes are in use")
	}

	t.CustomsCategoryID = categoryID
	t.Touch()
	t.IncrementVersion()

	return nil
}

// EnableCategoryTariffCodes delegates tariff code resolution to the
// customs category. Requires the customs category to be set.
func (t *Template) EnableCategoryTariffCodes() error {
	if t.CustomsCategoryID == nil {
		return shared.NewDomainError("VALIDATION_REQUIRED", "Customs category is required to use the category's tariff codes")
	}

	t.UseCategoryTariffCodes = true
	t.Touch()
	t.IncrementVersion()

	return nil
}

// DisableCategoryTariffCodes makes the template use its own tariff codes
func (t *Template) DisableCategoryTariffCodes() {
	t.UseCategoryTariffCodes = false
	t.Touch()
	t.IncrementVersion()
}

// SetCountryOfOrigin sets the country of origin reference
func (t *Template) SetCountryOfOrigin(countryID *uuid.UUID) {
	t.CountryOfOriginID = countryID
	t.Touch()
	t.IncrementVersion()
}

// ValidateCustoms checks the customs configuration invariants before save
func (t *Template) ValidateCustoms() error {
	if t.UseCategoryTariffCodes && t.CustomsCategoryID == nil {
		return shared.NewDomainError("VALIDATION_REQUIRED", "Customs category is required to use the category's tariff codes")
	}
	return nil
}

// validateTemplateCode validates the template code
func validateTemplateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Template code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Template code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Template code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateTemplateName validates the template name
func validateTemplateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot exceed 200 characters")
	}
	return nil
}
