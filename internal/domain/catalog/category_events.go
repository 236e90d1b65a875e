package catalog

import (
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCategory = "Category"

// Event type constants
const (
	EventTypeCategoryCreated        = "CategoryCreated"
	EventTypeCategoryUpdated        = "CategoryUpdated"
	EventTypeCategoryCustomsChanged = "CategoryCustomsChanged"
	EventTypeCategoryDeleted        = "CategoryDeleted"
)

// CategoryCreatedEvent is published when a new category is created
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID  `json:"category_id"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	Level      int        `json:"level"`
	Customs    bool       `json:"customs"`
}

// NewCategoryCreatedEvent creates a new CategoryCreatedEvent
func NewCategoryCreatedEvent(category *Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, AggregateTypeCategory, category.ID, category.TenantID),
		CategoryID:      category.ID,
		Code:            category.Code,
		Name:            category.Name,
		ParentID:        category.ParentID,
		Level:           category.Level,
		Customs:         category.Customs,
	}
}

// CategoryUpdatedEvent is published when a category is updated
type CategoryUpdatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewCategoryUpdatedEvent creates a new CategoryUpdatedEvent
func NewCategoryUpdatedEvent(category *Category) *CategoryUpdatedEvent {
	return &CategoryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryUpdated, AggregateTypeCategory, category.ID, category.TenantID),
		CategoryID:      category.ID,
		Code:            category.Code,
		Name:            category.Name,
	}
}

// CategoryCustomsChangedEvent is published when a category's customs flag changes
type CategoryCustomsChangedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Customs    bool      `json:"customs"`
}

// NewCategoryCustomsChangedEvent creates a new CategoryCustomsChangedEvent
func NewCategoryCustomsChangedEvent(category *Category) *CategoryCustomsChangedEvent {
	return &CategoryCustomsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCustomsChanged, AggregateTypeCategory, category.ID, category.TenantID),
		CategoryID:      category.ID,
		Customs:         category.Customs,
	}
}

// CategoryDeletedEvent is published when a category is deleted
type CategoryDeletedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Code       string    `json:"code"`
}

// NewCategoryDeletedEvent creates a new CategoryDeletedEvent
func NewCategoryDeletedEvent(category *Category) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryDeleted, AggregateTypeCategory, category.ID, category.TenantID),
		CategoryID:      category.ID,
		Code:            category.Code,
	}
}
