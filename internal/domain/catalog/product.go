package catalog

import (
	"strings"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// Product represents a sellable variant of a template. All tariff code
// behavior is delegated to the owning template.
type Product struct {
	shared.TenantAggregateRoot
	TemplateID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"` // SKU
	Suffix     string    `gorm:"type:varchar(100)"`                                                        // variant suffix appended to the template name
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product variant of a template
func NewProduct(tenantID uuid.UUID, template *Template, code, suffix string) (*Product, error) {
	if template == nil {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Product template is required")
	}
	if err := validateTemplateCode(code); err != nil {
		return nil, err
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TemplateID:          template.ID,
		Code:                strings.ToUpper(code),
		Suffix:              suffix,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the variant suffix
func (p *Product) Update(suffix string) {
	p.Suffix = suffix
	p.Touch()
	p.IncrementVersion()
}
