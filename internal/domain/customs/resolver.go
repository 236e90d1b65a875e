package customs

import (
	"context"

	"github.com/erp/customs/internal/domain/shared"
)

// ErrDelegationCycle is returned when following delegation targets visits
// the same owner twice. The schema cannot rule such configurations out,
// so the resolver reports them instead of traversing forever.
var ErrDelegationCycle = shared.NewDomainError("DELEGATION_CYCLE", "Tariff code delegation forms a cycle")

// Source supplies the data the resolver traverses: the ordered link list
// of an owner and, when the owner defers to its container, the delegation
// target.
type Source interface {
	// Links returns the owner's tariff code links in (sequence, id)
	// order with the referenced codes loaded.
	Links(ctx context.Context, owner OwnerRef) ([]TariffCodeLink, error)

	// Delegation returns the owner this owner delegates resolution to,
	// or nil when it defines its own codes.
	Delegation(ctx context.Context, owner OwnerRef) (*OwnerRef, error)
}

// Resolver resolves the tariff codes applicable to a template or category
// for a given match pattern. It is stateless and safe for concurrent use.
type Resolver struct {
	source Source
}

// NewResolver creates a new Resolver backed by the given source
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// ResolveAll returns every tariff code of the effective owner that
// matches the pattern, in (sequence, id) priority order. The effective
// owner is found by following the delegation chain (template to its
// customs category, category to its parent) until an owner that defines
// its own codes is reached. An empty result is not an error.
func (r *Resolver) ResolveAll(ctx context.Context, owner OwnerRef, pattern Pattern) ([]*TariffCode, error) {
	links, err := r.effectiveLinks(ctx, owner)
	if err != nil {
		return nil, err
	}

	var codes []*TariffCode
	for i := range links {
		code := links[i].TariffCode
		if code != nil && code.Match(pattern) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// ResolveOne returns the first tariff code ResolveAll would yield, or nil
// when nothing matches.
func (r *Resolver) ResolveOne(ctx context.Context, owner OwnerRef, pattern Pattern) (*TariffCode, error) {
	links, err := r.effectiveLinks(ctx, owner)
	if err != nil {
		return nil, err
	}

	for i := range links {
		code := links[i].TariffCode
		if code != nil && code.Match(pattern) {
			return code, nil
		}
	}
	return nil, nil
}

// effectiveLinks follows the delegation chain and returns the ordered
// link list of the owner that ends up defining the codes.
func (r *Resolver) effectiveLinks(ctx context.Context, owner OwnerRef) ([]TariffCodeLink, error) {
	visited := map[OwnerRef]struct{}{owner: {}}

	for {
		target, err := r.source.Delegation(ctx, owner)
		if err != nil {
			return nil, err
		}
		if target == nil {
			break
		}
		if _, seen := visited[*target]; seen {
			return nil, ErrDelegationCycle
		}
		visited[*target] = struct{}{}
		owner = *target
	}

	links, err := r.source.Links(ctx, owner)
	if err != nil {
		return nil, err
	}
	SortLinks(links)
	return links, nil
}
