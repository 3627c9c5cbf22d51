package db

import (
	"fmt"

	"linksaver/internal/auth"
	"linksaver/internal/bookmark"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the shared connection pool. TranslateError lets unique
// violations surface as gorm.ErrDuplicatedKey.
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&bookmark.Bookmark{},
	); err != nil {
		return err
	}

	stmts := []string{
		// (user_id, url) uniqueness backstops the pre-insert existence check
		// against concurrent duplicate submissions.
		`create unique index if not exists uq_bookmarks_user_url on bookmarks(user_id, url);`,
		`create index if not exists idx_bookmarks_user_order on bookmarks(user_id, "order");`,
		// Tag filter (GIN for text[])
		`create index if not exists idx_bookmarks_tags on bookmarks using gin (tags);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
