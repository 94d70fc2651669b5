package db

import "testing"

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/flatscout":   "pgx5://u:p@localhost:5432/flatscout",
		"postgresql://u:p@localhost:5432/flatscout": "pgx5://u:p@localhost:5432/flatscout",
		"pgx5://localhost/flatscout":                "pgx5://localhost/flatscout",
	}
	for in, want := range tests {
		if got := migrationURL(in); got != want {
			t.Fatalf("migrationURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 || len(entries)%2 != 0 {
		t.Fatalf("expected up/down pairs, got %d files", len(entries))
	}
}
