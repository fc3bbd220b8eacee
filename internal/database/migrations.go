package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds the indexes the store's ordering queries rely on
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task listing is newest first
		{"tasks", "idx_tasks_created_at", "created_at"},
		{"tasks", "idx_tasks_status", "status"},

		// Portfolios are loaded per owner, newest first
		{"skill_nfts", "idx_skill_nfts_owner_minted", "owner_wallet, minted_at"},
		{"skill_nfts", "idx_skill_nfts_owner_task", "owner_wallet, task_id"},
	}

	for _, idx := range indexes {
		sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Printf("Ensured index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
