package migration

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// legacyCategoryColumn is the pre-split schema column on product_templates
// that held the general catalog category. Deployments upgrading from that
// schema need its value carried over into customs_category_id once.
const legacyCategoryColumn = "category_id"

// MigrateLegacyCustomsCategory copies the old category reference into the
// customs category field for templates that predate the dedicated customs
// columns and marks every pre-existing category as customs-enabled. The
// migration is idempotent: it only runs while the legacy column exists and
// drops it when done.
func MigrateLegacyCustomsCategory(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	if !db.Migrator().HasColumn("product_templates", legacyCategoryColumn) {
		return nil
	}

	logger.Info("Migrating legacy customs category column")

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(fmt.Sprintf(
			`UPDATE product_templates SET customs_category_id = %s
			 WHERE customs_category_id IS NULL AND %s IS NOT NULL`,
			legacyCategoryColumn, legacyCategoryColumn,
		))
		if res.Error != nil {
			return fmt.Errorf("copy legacy category column: %w", res.Error)
		}
		copied := res.RowsAffected

		// The legacy schema had no customs flag, so every existing
		// category was usable as a customs category. Enabling all of
		// them keeps parent chains consistent with their children.
		res = tx.Exec(`UPDATE categories SET customs = TRUE WHERE customs = FALSE`)
		if res.Error != nil {
			return fmt.Errorf("mark customs categories: %w", res.Error)
		}
		marked := res.RowsAffected

		// Raw DDL rather than Migrator().DropColumn: the migrator needs
		// a model to resolve the column and panics on a bare table name
		// under the sqlite driver.
		if err := tx.Exec(fmt.Sprintf(
			"ALTER TABLE product_templates DROP COLUMN %s", legacyCategoryColumn,
		)).Error; err != nil {
			return fmt.Errorf("drop legacy category column: %w", err)
		}

		logger.Info("Legacy customs category migration completed",
			zap.Int64("templates_updated", copied),
			zap.Int64("categories_marked", marked),
		)
		return nil
	})
}
