package catalog

import (
	"fmt"
	"strings"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxCategoryDepth is the maximum depth of category hierarchy
const MaxCategoryDepth = 5

// Category represents a product category in the catalog. It supports a
// tree structure with parent-child relationships and carries the customs
// configuration inherited along that tree.
type Category struct {
	shared.TenantAggregateRoot
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_category_tenant_code,priority:2"`
	Name        string     `gorm:"type:varchar(100);not null"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	Path        string     `gorm:"type:varchar(500);not null;index"` // Materialized path for tree queries
	Level       int        `gorm:"not null;default:0"`
	SortOrder   int        `gorm:"not null;default:0"`
	// Customs marks the category as usable for customs classification.
	// Non-root categories always carry their parent's value.
	Customs bool `gorm:"not null;default:false"`
	// UseParentTariffCodes delegates tariff code resolution to the
	// parent category instead of this category's own links.
	UseParentTariffCodes bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new root category
func NewCategory(tenantID uuid.UUID, code, name string) (*Category, error) {
	if err := validateCategoryCode(code); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Level:               0,
	}
	// Root category path is just the ID
	category.Path = category.ID.String()

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// NewChildCategory creates a new child category under a parent. The child
// inherits the parent's customs flag.
func NewChildCategory(tenantID uuid.UUID, code, name string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}

	if parent.Level >= MaxCategoryDepth-1 {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}

	if err := validateCategoryCode(code); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		ParentID:            &parent.ID,
		Level:               parent.Level + 1,
		Customs:             parent.Customs,
	}
	// Child category path is parent path + separator + child ID
	category.Path = parent.Path + "/" + category.ID.String()

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// SetSortOrder sets the display order of the category
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.Touch()
	c.IncrementVersion()
}

// SetCustoms marks a root category as usable for customs classification.
// Non-root categories inherit the flag from their parent and cannot set
// it independently.
func (c *Category) SetCustoms(customs bool) error {
	if !c.IsRoot() {
		return shared.NewDomainError("INVALID_STATE", "Customs flag is inherited from the parent category")
	}

	c.Customs = customs
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryCustomsChangedEvent(c))

	return nil
}

// InheritCustomsFrom recomputes the customs flag from the parent. With no
// parent the category keeps its own value.
func (c *Category) InheritCustomsFrom(parent *Category) {
	if parent == nil {
		return
	}
	if c.Customs != parent.Customs {
		c.Customs = parent.Customs
		c.Touch()
		c.IncrementVersion()
		c.AddDomainEvent(NewCategoryCustomsChangedEvent(c))
	}
}

// EnableParentTariffCodes delegates tariff code resolution to the parent
// category. Requires a parent to exist.
func (c *Category) EnableParentTariffCodes() error {
	if c.ParentID == nil {
		return shared.NewDomainError("VALIDATION_REQUIRED", "Parent category is required to use the parent's tariff codes")
	}

	c.UseParentTariffCodes = true
	c.Touch()
	c.IncrementVersion()

	return nil
}

// DisableParentTariffCodes makes the category use its own tariff codes
func (c *Category) DisableParentTariffCodes() {
	c.UseParentTariffCodes = false
	c.Touch()
	c.IncrementVersion()
}

// MoveTo reparents the category, recomputing path, level, and the
// inherited customs flag. A nil parent makes the category a root.
func (c *Category) MoveTo(parent *Category) error {
	if parent == nil {
		if c.UseParentTariffCodes {
			return shared.NewDomainError("VALIDATION_REQUIRED", "Parent category is required to use the parent's tariff codes")
		}
		c.ParentID = nil
		c.Level = 0
		c.Path = c.ID.String()
	} else {
		if parent.ID == c.ID {
			return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
		}
		if parent.IsDescendantOf(c) {
			return shared.NewDomainError("INVALID_PARENT", "Cannot move a category under its own descendant")
		}
		if parent.Level >= MaxCategoryDepth-1 {
			return shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
		}
		c.ParentID = &parent.ID
		c.Level = parent.Level + 1
		c.Path = parent.Path + "/" + c.ID.String()
		c.InheritCustomsFrom(parent)
	}

	c.Touch()
	c.IncrementVersion()

	return nil
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsAncestorOf returns true if this category is an ancestor of the given category
func (c *Category) IsAncestorOf(other *Category) bool {
	if other == nil || other.Path == "" {
		return false
	}
	return strings.HasPrefix(other.Path, c.Path+"/")
}

// IsDescendantOf returns true if this category is a descendant of the given category
func (c *Category) IsDescendantOf(other *Category) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(c)
}

// validateCategoryCode validates the category code
func validateCategoryCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Category code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Category code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Category code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
