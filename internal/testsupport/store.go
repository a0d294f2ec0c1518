package testsupport

import (
	"testing"

	"lookout/internal/config"
	"lookout/internal/store"
)

// MustOpenStore opens a settings store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, _, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}
