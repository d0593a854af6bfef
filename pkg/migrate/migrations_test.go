package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stallcraft/backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestMigrationsCoverAllTables(t *testing.T) {
	tables := []string{"blogs", "products", "testimonials", "leads", "rashifals", "admin_users"}
	for _, table := range tables {
		matches, err := filepath.Glob(filepath.Join("migrations", "*_create_"+table+".sql"))
		if err != nil {
			t.Fatalf("glob migrations: %v", err)
		}
		if len(matches) == 0 {
			t.Fatalf("no migration found for table %s", table)
		}
	}
}

func TestBlogsMigrationContainsIndexes(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_blogs.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no blogs migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE blogs",
		"title_lower TEXT NOT NULL",
		"CREATE INDEX idx_blogs_title_lower",
		"CREATE INDEX idx_blogs_created_at ON blogs (created_at DESC)",
		"DROP TABLE blogs",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
