package catalog

import (
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeTemplate = "Template"
	AggregateTypeProduct  = "Product"
)

// Event type constants
const (
	EventTypeTemplateCreated = "TemplateCreated"
	EventTypeTemplateUpdated = "TemplateUpdated"
	EventTypeTemplateDeleted = "TemplateDeleted"
	EventTypeProductCreated  = "ProductCreated"
)

// TemplateCreatedEvent is published when a new template is created
type TemplateCreatedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewTemplateCreatedEvent creates a new TemplateCreatedEvent
func NewTemplateCreatedEvent(template *Template) *TemplateCreatedEvent {
	return &TemplateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateCreated, AggregateTypeTemplate, template.ID, template.TenantID),
		TemplateID:      template.ID,
		Code:            template.Code,
		Name:            template.Name,
	}
}

// TemplateUpdatedEvent is published when a template is updated
type TemplateUpdatedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewTemplateUpdatedEvent creates a new TemplateUpdatedEvent
func NewTemplateUpdatedEvent(template *Template) *TemplateUpdatedEvent {
	return &TemplateUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateUpdated, AggregateTypeTemplate, template.ID, template.TenantID),
		TemplateID:      template.ID,
		Code:            template.Code,
		Name:            template.Name,
	}
}

// TemplateDeletedEvent is published when a template is deleted
type TemplateDeletedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Code       string    `json:"code"`
}

// NewTemplateDeletedEvent creates a new TemplateDeletedEvent
func NewTemplateDeletedEvent(template *Template) *TemplateDeletedEvent {
	return &TemplateDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateDeleted, AggregateTypeTemplate, template.ID, template.TenantID),
		TemplateID:      template.ID,
		Code:            template.Code,
	}
}

// ProductCreatedEvent is published when a new product variant is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	TemplateID uuid.UUID `json:"template_id"`
	Code       string    `json:"code"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		TemplateID:      product.TemplateID,
		Code:            product.Code,
	}
}
