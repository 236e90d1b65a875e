package customs

import (
	"context"
	"errors"

	"github.com/erp/customs/internal/domain/customs"
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// TariffCodeService handles tariff code nomenclature use cases
type TariffCodeService struct {
	tariffCodeRepo customs.TariffCodeRepository
	linkRepo       customs.TariffCodeLinkRepository
}

// NewTariffCodeService creates a new tariff code service
func NewTariffCodeService(tariffCodeRepo customs.TariffCodeRepository, linkRepo customs.TariffCodeLinkRepository) *TariffCodeService {
	return &TariffCodeService{
		tariffCodeRepo: tariffCodeRepo,
		linkRepo:       linkRepo,
	}
}

// Create registers a new tariff code in the nomenclature
func (s *TariffCodeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTariffCodeRequest) (*TariffCodeResponse, error) {
	tc, err := customs.NewTariffCode(tenantID, req.Code, req.Description)
	if err != nil {
		return nil, err
	}
	if req.CountryID != nil {
		tc.SetCountry(req.CountryID)
	}
	if req.StartMonth != 0 || req.EndMonth != 0 {
		if err := tc.SetSeason(req.StartMonth, req.StartDay, req.EndMonth, req.EndDay); err != nil {
			return nil, err
		}
	}

	if err := s.tariffCodeRepo.Save(ctx, tc); err != nil {
		return nil, err
	}
	return ToTariffCodeResponse(tc), nil
}

// GetByID retrieves a single tariff code
func (s *TariffCodeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TariffCodeResponse, error) {
	tc, err := s.findForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToTariffCodeResponse(tc), nil
}

// List retrieves tariff codes for a tenant with pagination
func (s *TariffCodeService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]TariffCodeResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	codes, err := s.tariffCodeRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tariffCodeRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TariffCodeResponse, 0, len(codes))
	for i := range codes {
		responses = append(responses, *ToTariffCodeResponse(&codes[i]))
	}
	return responses, total, nil
}

// Update changes a tariff code's definition
func (s *TariffCodeService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateTariffCodeRequest) (*TariffCodeResponse, error) {
	tc, err := s.findForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	description := tc.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := tc.Update(req.Code, description); err != nil {
		return nil, err
	}
	if req.ClearCountry {
		tc.SetCountry(nil)
	} else if req.CountryID != nil {
		tc.SetCountry(req.CountryID)
	}
	if req.Season != nil {
		if err := tc.SetSeason(req.Season.StartMonth, req.Season.StartDay, req.Season.EndMonth, req.Season.EndDay); err != nil {
			return nil, err
		}
	}

	if err := s.tariffCodeRepo.Save(ctx, tc); err != nil {
		return nil, err
	}
	return ToTariffCodeResponse(tc), nil
}

// Delete removes a tariff code. Links referencing it are removed by the
// database through the foreign key cascade.
func (s *TariffCodeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.findForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.tariffCodeRepo.DeleteForTenant(ctx, tenantID, id)
}

// UsageCount reports how many owner links reference the tariff code
func (s *TariffCodeService) UsageCount(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	if _, err := s.findForTenant(ctx, tenantID, id); err != nil {
		return 0, err
	}
	return s.linkRepo.CountByTariffCode(ctx, tenantID, id)
}

func (s *TariffCodeService) findForTenant(ctx context.Context, tenantID, id uuid.UUID) (*customs.TariffCode, error) {
	tc, err := s.tariffCodeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TARIFF_CODE_NOT_FOUND", "Tariff code not found")
		}
		return nil, err
	}
	return tc, nil
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
