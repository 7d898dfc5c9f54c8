package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/internal/courier/store"
	"github.com/aussiebroadwan/courier/internal/courier/store/drivers/sqlite"
	"github.com/aussiebroadwan/courier/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "courier-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// newTestStore opens a fresh sqlite store in a per-test temp dir with
// migrations applied.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "courier.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newDirectory(t *testing.T, st store.Store) *DirectoryService {
	t.Helper()
	return &DirectoryService{Store: st}
}

func newLedger(t *testing.T, st store.Store) *LedgerService {
	t.Helper()
	return &LedgerService{Store: st}
}

// registerUser registers a user with a password of "secret-<username>".
func registerUser(t *testing.T, d *DirectoryService, username string) domain.User {
	t.Helper()

	u, err := d.Register(context.Background(), RegisterParams{
		Username:  username,
		Password:  "secret-" + username,
		FirstName: "Test",
		LastName:  username,
		Phone:     "+61400000000",
	})
	require.NoError(t, err)
	return u
}
