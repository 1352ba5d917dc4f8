package integration

import (
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/picstream/picstream-go/internal/migration"
	"github.com/picstream/picstream-go/test/testutil"
)

func TestMigrateUpIntegration(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer func() { _ = testDB.Cleanup() }()

	db := testDB.DB

	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	// Both tables exist and are empty
	for _, table := range []string{"assets", "follows"} {
		recs := 0
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&recs); err != nil {
			t.Fatalf("failed to query migrated table %q: %v", table, err)
		}
		if recs != 0 {
			t.Errorf("expected 0 rows in %q after migration, got %d", table, recs)
		}
	}

	// A second run is a no-op
	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
}
