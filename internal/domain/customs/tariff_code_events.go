package customs

import (
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeTariffCode = "TariffCode"

// Event type constants
const (
	EventTypeTariffCodeCreated = "TariffCodeCreated"
	EventTypeTariffCodeUpdated = "TariffCodeUpdated"
	EventTypeTariffCodeDeleted = "TariffCodeDeleted"
)

// TariffCodeCreatedEvent is published when a new tariff code is created
type TariffCodeCreatedEvent struct {
	shared.BaseDomainEvent
	TariffCodeID uuid.UUID `json:"tariff_code_id"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
}

// NewTariffCodeCreatedEvent creates a new TariffCodeCreatedEvent
func NewTariffCodeCreatedEvent(tc *TariffCode) *TariffCodeCreatedEvent {
	return &TariffCodeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTariffCodeCreated, AggregateTypeTariffCode, tc.ID, tc.TenantID),
		TariffCodeID:    tc.ID,
		Code:            tc.Code,
		Description:     tc.Description,
	}
}

// TariffCodeUpdatedEvent is published when a tariff code is updated
type TariffCodeUpdatedEvent struct {
	shared.BaseDomainEvent
	TariffCodeID uuid.UUID `json:"tariff_code_id"`
	Code         string    `json:"code"`
}

// NewTariffCodeUpdatedEvent creates a new TariffCodeUpdatedEvent
func NewTariffCodeUpdatedEvent(tc *TariffCode) *TariffCodeUpdatedEvent {
	return &TariffCodeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTariffCodeUpdated, AggregateTypeTariffCode, tc.ID, tc.TenantID),
		TariffCodeID:    tc.ID,
		Code:            tc.Code,
	}
}
