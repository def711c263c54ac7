package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/cache"
	"shareit/internal/db"
	"shareit/internal/model"
	"shareit/internal/repository"
	"shareit/internal/service"
)

const fixture = `
users:
  - name: Alice
    email: alice@example.com
    items:
      - name: Drill
        description: Cordless drill
        available: true
      - name: Ladder
        description: Three metres
        available: false
  - name: Bob
    email: bob@example.com
`

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	data, err := loadSeed(path)
	require.NoError(t, err)
	require.Len(t, data.Users, 2)
	assert.Len(t, data.Users[0].Items, 2)
	assert.False(t, data.Users[0].Items[1].Available)
}

func TestSeed_IsRepeatable(t *testing.T) {
	gdb, err := db.NewSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	users := repository.NewUserRepository(gdb)
	items := repository.NewItemRepository(gdb)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	data, err := loadSeed(path)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := seed(ctx, users, items, nil, data)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{UsersCreated: 2, ItemsCreated: 2}, first)

	data.Users[0].Name = "Alice Smith"
	second, err := seed(ctx, users, items, nil, data)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{UsersUpdated: 2}, second)

	alice, err := users.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", alice.Name)

	owned, err := items.ListByOwner(ctx, alice.ID, model.Unpaged())
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestSeed_EvictsCachedUsersOnUpdate(t *testing.T) {
	gdb, err := db.NewSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	users := repository.NewUserRepository(gdb)
	items := repository.NewItemRepository(gdb)

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	c := cache.New(s.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	data, err := loadSeed(path)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = seed(ctx, users, items, c, data)
	require.NoError(t, err)

	alice, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	key := service.UserCacheKey(alice.ID)
	require.NoError(t, s.Set(key, `{"id":1,"name":"Alice","email":"alice@example.com"}`))
	require.NoError(t, s.Set("item:1", "untouched"))

	data.Users[0].Name = "Alice Smith"
	_, err = seed(ctx, users, items, c, data)
	require.NoError(t, err)

	assert.False(t, s.Exists(key))
	assert.True(t, s.Exists("item:1"))
}

func TestRun_ReturnsErrorsInsteadOfExiting(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "seed.db")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", dbPath)
	t.Setenv("REDIS_ADDR", s.Addr())
	t.Setenv("LOG_LEVEL", "error")

	t.Setenv("SEED_PATH", filepath.Join(dir, "missing.yaml"))
	err = run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load seed data")

	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	t.Setenv("SEED_PATH", path)
	require.NoError(t, run())

	gdb, err := db.NewSQLite(dbPath)
	require.NoError(t, err)
	_, err = repository.NewUserRepository(gdb).FindByEmail(context.Background(), "bob@example.com")
	assert.NoError(t, err)
}
