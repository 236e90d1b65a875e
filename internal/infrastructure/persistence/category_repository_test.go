package persistence

import (
	"context"
	"testing"

	"github.com/erp/customs/internal/domain/catalog"
	"github.com/erp/customs/internal/domain/customs"
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCategoryTestDB creates an in-memory SQLite database for testing
func setupCategoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	createCategoriesTable(t, db)

	return db
}

func createCategoriesTable(t *testing.T, db *gorm.DB) {
	err := db.Exec(`
		CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			parent_id TEXT,
			path TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL DEFAULT 0,
			customs INTEGER NOT NULL DEFAULT 0,
			use_parent_tariff_codes INTEGER NOT NULL DEFAULT 0,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)
}

func TestGormCategoryRepository_MoveSubtree(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	customsRoot, err := catalog.NewCategory(tenantID, "GOODS", "Goods")
	require.NoError(t, err)
	require.NoError(t, customsRoot.SetCustoms(true))

	moved, err := catalog.NewCategory(tenantID, "ELEC", "Electronics")
	require.NoError(t, err)
	child, err := catalog.NewChildCategory(tenantID, "PHONE", "Phones", moved)
	require.NoError(t, err)

	for _, c := range []*catalog.Category{customsRoot, moved, child} {
		require.NoError(t, repo.Save(ctx, c))
	}

	oldPrefix := moved.Path + "/"
	oldLevel := moved.Level
	require.NoError(t, moved.MoveTo(customsRoot))
	require.NoError(t, repo.MoveSubtree(ctx, moved, oldPrefix, moved.Level-oldLevel))

	// The moved category row carries its new parent and inherited flag
	got, err := repo.FindByIDForTenant(ctx, tenantID, moved.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, customsRoot.ID, *got.ParentID)
	assert.True(t, got.Customs)

	// Descendants are rewritten in the same call: new path prefix,
	// shifted level and the propagated customs flag
	gotChild, err := repo.FindByIDForTenant(ctx, tenantID, child.ID)
	require.NoError(t, err)
	assert.Equal(t, moved.Path+"/"+child.ID.String(), gotChild.Path)
	assert.Equal(t, moved.Level+1, gotChild.Level)
	assert.True(t, gotChild.Customs)
}

func TestGormCategoryRepository_MoveSubtree_SiblingUntouched(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	parent, err := catalog.NewCategory(tenantID, "GOODS", "Goods")
	require.NoError(t, err)
	moved, err := catalog.NewCategory(tenantID, "ELEC", "Electronics")
	require.NoError(t, err)
	sibling, err := catalog.NewCategory(tenantID, "FOOD", "Food")
	require.NoError(t, err)

	for _, c := range []*catalog.Category{parent, moved, sibling} {
		require.NoError(t, repo.Save(ctx, c))
	}

	oldPrefix := moved.Path + "/"
	oldLevel := moved.Level
	require.NoError(t, moved.MoveTo(parent))
	require.NoError(t, repo.MoveSubtree(ctx, moved, oldPrefix, moved.Level-oldLevel))

	got, err := repo.FindByIDForTenant(ctx, tenantID, sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, sibling.ID.String(), got.Path)
	assert.Equal(t, 0, got.Level)
	assert.False(t, got.Customs)
}

func TestGormCategoryRepository_DeleteForTenant_RemovesLinks(t *testing.T) {
	db := setupLinkTestDB(t)
	createCategoriesTable(t, db)
	repo := NewGormCategoryRepository(db)
	linkRepo := NewGormTariffCodeLinkRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	category, err := catalog.NewCategory(tenantID, "GOODS", "Goods")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	code := createLinkTestCode(t, db, tenantID, "8471.30")
	owner := customs.CategoryRef(category.ID)
	require.NoError(t, linkRepo.ReplaceForOwner(ctx, tenantID, owner, []customs.TariffCodeLink{
		mustNewLink(t, tenantID, owner, code.ID, 10),
	}))

	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, category.ID))

	_, err = repo.FindByIDForTenant(ctx, tenantID, category.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	links, err := linkRepo.FindByOwner(ctx, tenantID, owner)
	require.NoError(t, err)
	assert.Empty(t, links)
}
