package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopapi/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add orders index", "add_orders_index"},
		{"Add-Orders-Index", "add_orders_index"},
		{"ADD__ORDERS__INDEX", "add_orders_index"},
		{"shops 2", "shops_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add orders index", "Speed up partner listings")
	require.NoError(t, err)

	assert.Equal(t, "000001", mf.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_orders_index.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_orders_index.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "000001 add_orders_index (up)")
	assert.Contains(t, string(up), "Speed up partner listings")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(down)")
}

func TestCreateMigration_NumbersSequentially(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"000001_init.up.sql", "000001_init.down.sql", "000007_shops.up.sql", "notes.up.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("--"), 0o644))
	}

	mf, err := CreateMigration(dir, "next", "")

	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.NotContains(t, string(up), "-- \n")
}

func TestCreateMigration_Errors(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)

	nested := filepath.Join(t.TempDir(), "nested", "migrations")
	_, err = CreateMigration(nested, "first", "")
	require.NoError(t, err)
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"000003_add_products.up.sql",
		"000001_init_schema.up.sql",
		"000001_init_schema.down.sql",
		"000002_add_users.up.sql",
		"000002_add_users.down.sql",
		"README.md",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

	names, err := ListMigrations(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init_schema", "000002_add_users", "000003_add_products"}, names)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	names, err := ListMigrations("/nonexistent/path/to/migrations")

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		switch name := e.Name(); {
		case strings.HasSuffix(name, upSuffix):
			ups[strings.TrimSuffix(name, upSuffix)] = true
		case strings.HasSuffix(name, downSuffix):
			downs[strings.TrimSuffix(name, downSuffix)] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs, "every up migration needs a down migration")

	schema, err := fs.ReadFile(migrations.FS, "000001_init_schema.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(schema), "idx_orders_one_basket ON orders (user_id) WHERE state = 'basket'")
}
