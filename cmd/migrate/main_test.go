package main

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"

	"github.com/dvloznov/cnab-returns/migrations"
)

func TestMigrationFilenamePattern(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
		version  string
		name     string
	}{
		{"0001_create_return_files.sql", true, "0001", "create_return_files"},
		{"001_invalid.sql", false, "", ""},
		{"0001_test", false, "", ""},
		{"0001.sql", false, "", ""},
		{"invalid_0001_test.sql", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			matches := migrationPattern.FindStringSubmatch(tt.filename)
			if (matches != nil) != tt.valid {
				t.Fatalf("match = %v, want valid=%v", matches, tt.valid)
			}
			if tt.valid && (matches[1] != tt.version || matches[2] != tt.name) {
				t.Errorf("matches = %v", matches)
			}
		})
	}
}

func TestReadMigrations(t *testing.T) {
	dir := fstest.MapFS{
		"0002_b.sql": {Data: []byte("CREATE TABLE `{{PROJECT_ID}}.{{DATASET_ID}}.b` (id INT64);")},
		"0001_a.sql": {Data: []byte("CREATE TABLE `{{PROJECT_ID}}.{{DATASET_ID}}.a` (id INT64);")},
		"README.md":  {Data: []byte("notes")},
	}

	got, err := readMigrations(dir, "proj", "ds", zerolog.Nop())
	if err != nil {
		t.Fatalf("readMigrations() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d migrations, want 2", len(got))
	}
	if got[0].Version != 1 || got[1].Version != 2 {
		t.Errorf("versions = %d, %d", got[0].Version, got[1].Version)
	}
	if got[0].SQL != "CREATE TABLE `proj.ds.a` (id INT64);" {
		t.Errorf("SQL = %s", got[0].SQL)
	}

	// The checksum ignores the target dataset.
	other, _ := readMigrations(dir, "proj", "other", zerolog.Nop())
	if other[0].Checksum != got[0].Checksum {
		t.Error("checksum changed with dataset")
	}
}

func TestPendingMigrations(t *testing.T) {
	all := []Migration{
		{Version: 1, Filename: "0001_a.sql", Checksum: "c1"},
		{Version: 2, Filename: "0002_b.sql", Checksum: "c2"},
		{Version: 3, Filename: "0003_c.sql", Checksum: "c3"},
	}
	applied := []AppliedMigration{{Version: 1, Checksum: "c1"}, {Version: 2, Checksum: "changed"}}

	got := pendingMigrations(all, applied, zerolog.Nop())
	if len(got) != 1 || got[0].Version != 3 {
		t.Errorf("pending = %+v", got)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	sub, err := fs.Sub(migrations.BigQuery, "bigquery")
	if err != nil {
		t.Fatal(err)
	}

	got, err := readMigrations(sub, "proj", "cnab", zerolog.Nop())
	if err != nil {
		t.Fatalf("readMigrations() error = %v", err)
	}

	wantTables := []string{"return_files", "parsing_runs", "return_transactions"}
	if len(got) != len(wantTables) {
		t.Fatalf("got %d embedded migrations, want %d", len(got), len(wantTables))
	}
	for i, table := range wantTables {
		if !strings.Contains(got[i].SQL, "`proj.cnab."+table+"`") {
			t.Errorf("migration %s does not create %s", got[i].Filename, table)
		}
		if strings.Contains(got[i].SQL, "{{") {
			t.Errorf("migration %s has unrendered placeholders", got[i].Filename)
		}
	}
}
