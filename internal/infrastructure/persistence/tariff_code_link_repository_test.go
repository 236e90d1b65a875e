package persistence

import (
	"context"
	"testing"

	"github.com/erp/customs/internal/domain/customs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupLinkTestDB creates an in-memory SQLite database for testing
func setupLinkTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE tariff_codes (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			code TEXT NOT NULL,
			description TEXT,
			country_id TEXT,
			start_month INTEGER NOT NULL DEFAULT 0,
			start_day INTEGER NOT NULL DEFAULT 0,
			end_month INTEGER NOT NULL DEFAULT 0,
			end_day INTEGER NOT NULL DEFAULT 0,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE tariff_code_links (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tenant_id TEXT NOT NULL,
			owner_type TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			tariff_code_id TEXT NOT NULL,
			sequence INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func createLinkTestCode(t *testing.T, db *gorm.DB, tenantID uuid.UUID, code string) *customs.TariffCode {
	tc, err := customs.NewTariffCode(tenantID, code, "Test code "+code)
	require.NoError(t, err)
	require.NoError(t, NewGormTariffCodeRepository(db).Save(context.Background(), tc))
	return tc
}

func mustNewLink(t *testing.T, tenantID uuid.UUID, owner customs.OwnerRef, tariffCodeID uuid.UUID, sequence int) customs.TariffCodeLink {
	link, err := customs.NewTariffCodeLink(tenantID, owner, tariffCodeID, sequence)
	require.NoError(t, err)
	return *link
}

func TestGormTariffCodeLinkRepository_FindByOwner_Ordering(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewGormTariffCodeLinkRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	owner := customs.TemplateRef(uuid.New())
	codeA := createLinkTestCode(t, db, tenantID, "8471.30")
	codeB := createLinkTestCode(t, db, tenantID, "8471.41")
	codeC := createLinkTestCode(t, db, tenantID, "84")

	// Creation order breaks the tie between the two sequence-10 links.
	links := []customs.TariffCodeLink{
		mustNewLink(t, tenantID, owner, codeA.ID, 10),
		mustNewLink(t, tenantID, owner, codeB.ID, 10),
		mustNewLink(t, tenantID, owner, codeC.ID, 5),
	}
	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner, links))

	found, err := repo.FindByOwner(ctx, tenantID, owner)
	require.NoError(t, err)
	require.Len(t, found, 3)

	require.NotNil(t, found[0].TariffCode)
	assert.Equal(t, "84", found[0].TariffCode.Code)
	assert.Equal(t, "8471.30", found[1].TariffCode.Code)
	assert.Equal(t, "8471.41", found[2].TariffCode.Code)
	assert.Less(t, found[1].ID, found[2].ID)
}

func TestGormTariffCodeLinkRepository_FindByOwner_IgnoresOtherOwners(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewGormTariffCodeLinkRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	ownerID := uuid.New()
	code := createLinkTestCode(t, db, tenantID, "6204.62")

	// Same owner ID under both owner types must stay separate.
	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, customs.TemplateRef(ownerID), []customs.TariffCodeLink{
		mustNewLink(t, tenantID, customs.TemplateRef(ownerID), code.ID, 0),
	}))
	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, customs.CategoryRef(ownerID), []customs.TariffCodeLink{
		mustNewLink(t, tenantID, customs.CategoryRef(ownerID), code.ID, 0),
		mustNewLink(t, tenantID, customs.CategoryRef(ownerID), code.ID, 1),
	}))

	templateLinks, err := repo.FindByOwner(ctx, tenantID, customs.TemplateRef(ownerID))
	require.NoError(t, err)
	assert.Len(t, templateLinks, 1)

	categoryLinks, err := repo.FindByOwner(ctx, tenantID, customs.CategoryRef(ownerID))
	require.NoError(t, err)
	assert.Len(t, categoryLinks, 2)
}

func TestGormTariffCodeLinkRepository_ReplaceForOwner(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewGormTariffCodeLinkRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	owner := customs.CategoryRef(uuid.New())
	codeA := createLinkTestCode(t, db, tenantID, "8471.30")
	codeB := createLinkTestCode(t, db, tenantID, "0805.10")

	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner, []customs.TariffCodeLink{
		mustNewLink(t, tenantID, owner, codeA.ID, 0),
	}))

	// Replacing swaps the whole list, not just appends.
	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner, []customs.TariffCodeLink{
		mustNewLink(t, tenantID, owner, codeB.ID, 0),
	}))

	found, err := repo.FindByOwner(ctx, tenantID, owner)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, codeB.ID, found[0].TariffCodeID)

	// An empty list clears the owner's links.
	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner, nil))

	found, err = repo.FindByOwner(ctx, tenantID, owner)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormTariffCodeLinkRepository_DeleteByOwners(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewGormTariffCodeLinkRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	code := createLinkTestCode(t, db, tenantID, "8471.30")

	template1 := customs.TemplateRef(uuid.New())
	template2 := customs.TemplateRef(uuid.New())
	category := customs.CategoryRef(uuid.New())

	for _, owner := range []customs.OwnerRef{template1, template2, category} {
		require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner, []customs.TariffCodeLink{
			mustNewLink(t, tenantID, owner, code.ID, 0),
		}))
	}

	err := repo.DeleteByOwners(ctx, tenantID, customs.OwnerTypeTemplate, []uuid.UUID{template1.ID, template2.ID})
	require.NoError(t, err)

	for _, owner := range []customs.OwnerRef{template1, template2} {
		found, err := repo.FindByOwner(ctx, tenantID, owner)
		require.NoError(t, err)
		assert.Empty(t, found)
	}

	// Category links are untouched.
	found, err := repo.FindByOwner(ctx, tenantID, category)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestGormTariffCodeLinkRepository_DeleteByOwners_EmptyIDs(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewGormTariffCodeLinkRepository(db)

	err := repo.DeleteByOwners(context.Background(), uuid.New(), customs.OwnerTypeTemplate, nil)
	assert.NoError(t, err)
}

func TestGormTariffCodeLinkRepository_DeleteByOwners_BatchesLargeSets(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewGormTariffCodeLinkRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	code := createLinkTestCode(t, db, tenantID, "8471.30")

	ownerIDs := make([]uuid.UUID, 0, ownerIDBatchSize+25)
	for i := 0; i < ownerIDBatchSize+25; i++ {
		owner := customs.TemplateRef(uuid.New())
		ownerIDs = append(ownerIDs, owner.ID)
		require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner, []customs.TariffCodeLink{
			mustNewLink(t, tenantID, owner, code.ID, 0),
		}))
	}

	require.NoError(t, repo.DeleteByOwners(ctx, tenantID, customs.OwnerTypeTemplate, ownerIDs))

	var remaining int64
	require.NoError(t, db.Model(&customs.TariffCodeLink{}).Where("tenant_id = ?", tenantID).Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)
}

func TestGormTariffCodeLinkRepository_CountByTariffCode(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewGormTariffCodeLinkRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	counted := createLinkTestCode(t, db, tenantID, "8471.30")
	other := createLinkTestCode(t, db, tenantID, "6204.62")

	owner1 := customs.TemplateRef(uuid.New())
	owner2 := customs.CategoryRef(uuid.New())

	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner1, []customs.TariffCodeLink{
		mustNewLink(t, tenantID, owner1, counted.ID, 0),
		mustNewLink(t, tenantID, owner1, other.ID, 1),
	}))
	require.NoError(t, repo.ReplaceForOwner(ctx, tenantID, owner2, []customs.TariffCodeLink{
		mustNewLink(t, tenantID, owner2, counted.ID, 0),
	}))

	count, err := repo.CountByTariffCode(ctx, tenantID, counted.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByTariffCode(ctx, tenantID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
