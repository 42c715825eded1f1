package db

import (
	"path/filepath"
	"testing"
)

func mustSetStates(t *testing.T, d *DB, values map[string]string) {
	t.Helper()
	if err := d.SetStates(values); err != nil {
		t.Fatalf("SetStates(%v) error = %v", values, err)
	}
}

func mustAllState(t *testing.T, d *DB) map[string]string {
	t.Helper()
	all, err := d.AllState()
	if err != nil {
		t.Fatalf("AllState() error = %v", err)
	}
	return all
}

func TestAllState_Empty(t *testing.T) {
	d := newTestDB(t)

	if all := mustAllState(t, d); len(all) != 0 {
		t.Errorf("AllState() on fresh db = %v, want empty", all)
	}
}

func TestSetStates_Upsert(t *testing.T) {
	d := newTestDB(t)

	mustSetStates(t, d, map[string]string{"darkMode": "false"})
	mustSetStates(t, d, map[string]string{"darkMode": "true"})

	all := mustAllState(t, d)
	if len(all) != 1 || all["darkMode"] != "true" {
		t.Errorf("AllState() = %v, want only darkMode=true", all)
	}
}

func TestSetStates_EmptyDeletes(t *testing.T) {
	d := newTestDB(t)

	mustSetStates(t, d, map[string]string{
		"selectedNetwork": "solana",
		"secretKey":       "abandon about",
		"wallets":         "[]",
	})
	mustSetStates(t, d, map[string]string{
		"selectedNetwork": "ethereum",
		"secretKey":       "",
		"wallets":         "",
	})

	all := mustAllState(t, d)
	if len(all) != 1 || all["selectedNetwork"] != "ethereum" {
		t.Errorf("AllState() = %v, want only selectedNetwork=ethereum", all)
	}
}

func TestSetStates_DeleteMissingKey(t *testing.T) {
	d := newTestDB(t)

	mustSetStates(t, d, map[string]string{"wallets": ""})

	if all := mustAllState(t, d); len(all) != 0 {
		t.Errorf("AllState() = %v, want empty", all)
	}
}

func TestClearState(t *testing.T) {
	d := newTestDB(t)

	mustSetStates(t, d, map[string]string{"a": "v", "b": "v", "c": "v"})

	n, err := d.ClearState()
	if err != nil {
		t.Fatalf("ClearState() error = %v", err)
	}
	if n != 3 {
		t.Errorf("ClearState() removed %d, want 3", n)
	}

	if all := mustAllState(t, d); len(all) != 0 {
		t.Errorf("AllState() after clear = %v", all)
	}
}

func TestState_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.sqlite")

	d, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.RunMigrations(); err != nil {
		t.Fatal(err)
	}
	mustSetStates(t, d, map[string]string{"selectedNetwork": "solana"})
	d.Close()

	d2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer d2.Close()
	if err := d2.RunMigrations(); err != nil {
		t.Fatal(err)
	}

	if got := mustAllState(t, d2)["selectedNetwork"]; got != "solana" {
		t.Errorf("selectedNetwork after reopen = %q, want solana", got)
	}
}
