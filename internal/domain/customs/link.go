package customs

import (
	"sort"
	"time"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// OwnerType discriminates which catalog entity owns a tariff code link
type OwnerType string

const (
	OwnerTypeTemplate OwnerType = "template"
	OwnerTypeCategory OwnerType = "category"
)

// OwnerRef is a tagged reference to the entity that owns a list of links
type OwnerRef struct {
	Type OwnerType
	ID   uuid.UUID
}

// TemplateRef builds an owner reference to a product template
func TemplateRef(id uuid.UUID) OwnerRef {
	return OwnerRef{Type: OwnerTypeTemplate, ID: id}
}

// CategoryRef builds an owner reference to a product category
func CategoryRef(id uuid.UUID) OwnerRef {
	return OwnerRef{Type: OwnerTypeCategory, ID: id}
}

// TariffCodeLink associates an owning template or category with a tariff
// code. Links are only ever created and edited through their owner's
// embedded list; the integer primary key doubles as the creation-order
// tie-breaker when sequences are equal.
type TariffCodeLink struct {
	ID           int64       `gorm:"primaryKey;autoIncrement"`
	TenantID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	OwnerType    OwnerType   `gorm:"type:varchar(20);not null;index:idx_tariff_code_links_owner,priority:1"`
	OwnerID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_tariff_code_links_owner,priority:2"`
	TariffCodeID uuid.UUID   `gorm:"type:uuid;not null;index"`
	TariffCode   *TariffCode `gorm:"foreignKey:TariffCodeID;constraint:OnDelete:CASCADE"`
	Sequence     int         `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (TariffCodeLink) TableName() string {
	return "tariff_code_links"
}

// NewTariffCodeLink creates a new link owned by the given entity
func NewTariffCodeLink(tenantID uuid.UUID, owner OwnerRef, tariffCodeID uuid.UUID, sequence int) (*TariffCodeLink, error) {
	if owner.Type != OwnerTypeTemplate && owner.Type != OwnerTypeCategory {
		return nil, shared.NewDomainError("INVALID_OWNER", "Link owner must be a template or a category")
	}
	if owner.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Link owner ID is required")
	}
	if tariffCodeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARIFF_CODE", "Tariff code reference is required")
	}

	return &TariffCodeLink{
		TenantID:     tenantID,
		OwnerType:    owner.Type,
		OwnerID:      owner.ID,
		TariffCodeID: tariffCodeID,
		Sequence:     sequence,
	}, nil
}

// Owner returns the tagged owner reference of the link
func (l *TariffCodeLink) Owner() OwnerRef {
	return OwnerRef{Type: l.OwnerType, ID: l.OwnerID}
}

// SortLinks orders links by (sequence ascending, id ascending), the
// priority order in which their codes are considered during resolution.
func SortLinks(links []TariffCodeLink) {
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Sequence != links[j].Sequence {
			return links[i].Sequence < links[j].Sequence
		}
		return links[i].ID < links[j].ID
	})
}
