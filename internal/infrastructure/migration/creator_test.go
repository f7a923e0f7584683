package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	pair, err := Create(dir, "add contacts table")
	require.NoError(t, err)

	assert.Len(t, pair.Version, 14)
	assert.True(t, strings.HasSuffix(pair.UpPath, "_add_contacts_table.up.sql"))
	assert.True(t, strings.HasSuffix(pair.DownPath, "_add_contacts_table.down.sql"))

	up, err := os.ReadFile(pair.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- add contacts table")

	_, err = os.Stat(pair.DownPath)
	assert.NoError(t, err)
}

func TestCreate_MakesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	_, err := Create(dir, "init")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"000002_orders.up.sql",
		"000002_orders.down.sql",
		"000001_contacts.up.sql",
		"000001_contacts.down.sql",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- x\n"), 0o644))
	}

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_contacts", "000002_orders"}, names)
}

func TestList_MissingDirectory(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "absent"))

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"add contacts table", "add_contacts_table"},
		{"Add-Orders", "add_orders"},
		{"  spaced  out  ", "spaced_out"},
		{"v2 schema!", "v2_schema"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
