package client

import (
	"os"
	"path/filepath"
	"testing"

	"go-recordshop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	want := Session{User: model.Principal{ID: 1, Name: "Chris Clerk", Email: "clerk@recordshop.com", Role: model.RoleClerk}, Token: "t"}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	sess, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, *sess)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	sess, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionStore_CorruptFileIsRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	sess, err := NewSessionStore(path).Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestGuard(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	guard := NewGuard(store)

	_, err := guard.Check(RouteList)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	tests := []struct {
		role    string
		allowed map[Route]bool
	}{
		{model.RoleClerk, map[Route]bool{RouteList: true, RouteShow: true, RouteExport: true, RouteAdd: true, RouteEdit: false, RouteDelete: false}},
		{model.RoleManager, map[Route]bool{RouteList: true, RouteShow: true, RouteExport: true, RouteAdd: true, RouteEdit: true, RouteDelete: false}},
		{model.RoleAdmin, map[Route]bool{RouteList: true, RouteShow: true, RouteExport: true, RouteAdd: true, RouteEdit: true, RouteDelete: true}},
	}
	for _, tt := range tests {
		require.NoError(t, store.Save(Session{User: model.Principal{ID: 1, Email: tt.role + "@recordshop.com", Role: tt.role}}))
		for route, ok := range tt.allowed {
			_, err := guard.Check(route)
			if ok {
				assert.NoError(t, err, "%s on %s", tt.role, route)
			} else {
				assert.ErrorIs(t, err, ErrForbidden, "%s on %s", tt.role, route)
			}
			assert.Equal(t, ok, Allows(route, tt.role))
		}
	}

	assert.False(t, Allows(RouteList, ""))
}
