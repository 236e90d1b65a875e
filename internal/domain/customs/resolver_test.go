package customs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory Source for resolver tests
type fakeSource struct {
	links       map[OwnerRef][]TariffCodeLink
	delegations map[OwnerRef]OwnerRef
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		links:       make(map[OwnerRef][]TariffCodeLink),
		delegations: make(map[OwnerRef]OwnerRef),
	}
}

func (s *fakeSource) Links(_ context.Context, owner OwnerRef) ([]TariffCodeLink, error) {
	return s.links[owner], nil
}

func (s *fakeSource) Delegation(_ context.Context, owner OwnerRef) (*OwnerRef, error) {
	if target, ok := s.delegations[owner]; ok {
		return &target, nil
	}
	return nil, nil
}

func (s *fakeSource) addLink(owner OwnerRef, id int64, sequence int, code *TariffCode) {
	s.links[owner] = append(s.links[owner], TariffCodeLink{
		ID:           id,
		OwnerType:    owner.Type,
		OwnerID:      owner.ID,
		TariffCodeID: code.ID,
		TariffCode:   code,
		Sequence:     sequence,
	})
}

func mustCode(t *testing.T, code, description string) *TariffCode {
	t.Helper()
	tc, err := NewTariffCode(uuid.New(), code, description)
	require.NoError(t, err)
	return tc
}

func TestResolver_ResolveAll(t *testing.T) {
	ctx := context.Background()

	t.Run("yields matching codes in sequence order", func(t *testing.T) {
		src := newFakeSource()
		owner := TemplateRef(uuid.New())

		codeA := mustCode(t, "84", "Machinery")
		codeB := mustCode(t, "84.1", "Reactors and boilers")
		codeC := mustCode(t, "85", "Electrical machinery")
		src.addLink(owner, 2, 2, codeB)
		src.addLink(owner, 1, 1, codeA)
		src.addLink(owner, 3, 3, codeC)

		codes, err := NewResolver(src).ResolveAll(ctx, owner, CodePattern("84.1"))
		require.NoError(t, err)
		require.Len(t, codes, 2)
		assert.Equal(t, codeA.ID, codes[0].ID)
		assert.Equal(t, codeB.ID, codes[1].ID)
	})

	t.Run("sequence order beats specificity", func(t *testing.T) {
		src := newFakeSource()
		owner := TemplateRef(uuid.New())

		codeA := mustCode(t, "84", "Machinery")
		codeB := mustCode(t, "84.1", "Reactors and boilers")
		src.addLink(owner, 1, 1, codeA)
		src.addLink(owner, 2, 2, codeB)

		code, err := NewResolver(src).ResolveOne(ctx, owner, CodePattern("84.1"))
		require.NoError(t, err)
		require.NotNil(t, code)
		assert.Equal(t, codeA.ID, code.ID)
	})

	t.Run("equal sequences resolve in creation order", func(t *testing.T) {
		src := newFakeSource()
		owner := CategoryRef(uuid.New())

		older := mustCode(t, "84", "Machinery, older link")
		newer := mustCode(t, "84", "Machinery, newer link")
		src.addLink(owner, 8, 1, newer)
		src.addLink(owner, 4, 1, older)

		code, err := NewResolver(src).ResolveOne(ctx, owner, CodePattern("84.5"))
		require.NoError(t, err)
		require.NotNil(t, code)
		assert.Equal(t, older.ID, code.ID)
	})

	t.Run("empty result when nothing matches", func(t *testing.T) {
		src := newFakeSource()
		owner := TemplateRef(uuid.New())
		src.addLink(owner, 1, 1, mustCode(t, "84", "Machinery"))

		codes, err := NewResolver(src).ResolveAll(ctx, owner, CodePattern("39.26"))
		require.NoError(t, err)
		assert.Empty(t, codes)

		code, err := NewResolver(src).ResolveOne(ctx, owner, CodePattern("39.26"))
		require.NoError(t, err)
		assert.Nil(t, code)
	})

	t.Run("template delegates to its customs category", func(t *testing.T) {
		src := newFakeSource()
		template := TemplateRef(uuid.New())
		category := CategoryRef(uuid.New())

		src.delegations[template] = category
		codeC := mustCode(t, "85", "Electrical machinery")
		src.addLink(category, 1, 1, codeC)
		// Links on the delegating template itself are never considered
		src.addLink(template, 2, 1, mustCode(t, "85", "Shadowed"))

		resolver := NewResolver(src)

		codes, err := resolver.ResolveAll(ctx, template, CodePattern("85"))
		require.NoError(t, err)
		require.Len(t, codes, 1)
		assert.Equal(t, codeC.ID, codes[0].ID)

		// Delegating resolution equals resolving the category directly
		direct, err := resolver.ResolveAll(ctx, category, CodePattern("85"))
		require.NoError(t, err)
		assert.Equal(t, direct, codes)
	})

	t.Run("delegation chains through parent categories", func(t *testing.T) {
		src := newFakeSource()
		template := TemplateRef(uuid.New())
		electronics := CategoryRef(uuid.New())
		goods := CategoryRef(uuid.New())

		src.delegations[template] = electronics
		src.delegations[electronics] = goods
		codeC := mustCode(t, "85", "Electrical machinery")
		src.addLink(goods, 1, 1, codeC)

		code, err := NewResolver(src).ResolveOne(ctx, template, CodePattern("85"))
		require.NoError(t, err)
		require.NotNil(t, code)
		assert.Equal(t, codeC.ID, code.ID)
	})

	t.Run("fails on delegation cycle", func(t *testing.T) {
		src := newFakeSource()
		a := CategoryRef(uuid.New())
		b := CategoryRef(uuid.New())
		src.delegations[a] = b
		src.delegations[b] = a

		_, err := NewResolver(src).ResolveAll(ctx, a, CodePattern("84"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDelegationCycle)
	})

	t.Run("fails when an owner delegates to itself", func(t *testing.T) {
		src := newFakeSource()
		a := CategoryRef(uuid.New())
		src.delegations[a] = a

		_, err := NewResolver(src).ResolveOne(ctx, a, CodePattern("84"))
		assert.ErrorIs(t, err, ErrDelegationCycle)
	})
}
