package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the contract for aggregate roots: identity,
// optimistic locking and domain event collection
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// TenantAggregateRoot is the embedded base for every aggregate. All
// aggregates in this service are tenant scoped, so the tenant ID lives
// here rather than on a separate layer.
type TenantAggregateRoot struct {
	BaseEntity
	TenantID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewTenantAggregateRoot creates a fresh aggregate base for the tenant
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseEntity: NewBaseEntity(),
		TenantID:   tenantID,
		Version:    1,
	}
}

// GetVersion returns the version used for optimistic locking
func (a *TenantAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the version after a successful update
func (a *TenantAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent queues an event for publication after the aggregate
// is persisted
func (a *TenantAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the queued events
func (a *TenantAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the queued events once published
func (a *TenantAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
