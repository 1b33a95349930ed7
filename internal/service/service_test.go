//go:build integration

package service

import (
	"sync"
	"testing"
	"wonders-cms/internal/data"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/storage"
	"wonders-cms/internal/testutil"

	"github.com/jmoiron/sqlx"
)

// mockFileRemover records removed files.
type mockFileRemover struct {
	mu      sync.Mutex
	removed []storage.File
}

var _ FileRemover = (*mockFileRemover)(nil)

func (m *mockFileRemover) RemoveAll(files []storage.File) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, files...)
}

func (m *mockFileRemover) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for _, f := range m.removed {
		names = append(names, f.Name)
	}
	return names
}

func setupServiceTest(t *testing.T) (Deps, *mockFileRemover) {
	t.Helper()
	db := testutil.NewDB(t)
	files := &mockFileRemover{}
	return Deps{
		DB:      db,
		Cascade: data.NewCascade(db),
		Files:   files,
		Log:     logger.Nop(),
	}, files
}

func count(t *testing.T, db *sqlx.DB, query string, args ...interface{}) int {
	t.Helper()
	var n int
	if err := db.Get(&n, query, args...); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func sameNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]int)
	for _, n := range got {
		seen[n]++
	}
	for _, n := range want {
		if seen[n] == 0 {
			return false
		}
		seen[n]--
	}
	return true
}
