package persistence

import (
	"testing"
	"testing/fstest"
)

func TestMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_indexes.sql": {Data: []byte("CREATE INDEX ...;")},
		"001_init.sql":    {Data: []byte("CREATE TABLE ...;")},
		"010_later.sql":   {Data: []byte("ALTER TABLE ...;")},
		"notes.md":        {Data: []byte("not a migration")},
		"backup/old.sql":  {Data: []byte("nested, skipped")},
		"003_no_ext_sqlx": {Data: []byte("wrong suffix")},
	}

	names, err := migrationFiles(fsys)
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	want := []string{"001_init.sql", "002_indexes.sql", "010_later.sql"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
