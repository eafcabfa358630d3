package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should not be found")

	require.NoError(t, s.Set("tasks", `[]`))
	v, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Set("tasks", `[{"name":"a"}]`))
	v, _, err = s.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"a"}]`, v)
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.json")
	f, err := OpenFile(path)
	require.NoError(t, err)
	testStore(t, f)
	require.NoError(t, f.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"name":"a"}]`, v)
}

func TestFile_onDiskFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("tasks", "[]"))
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":"[]"}`, string(raw))
}

func TestFile_keepsKeysFromOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	a, err := OpenFile(path)
	require.NoError(t, err)
	b, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, a.Set("one", "1"))
	require.NoError(t, b.Set("two", "2"))

	c, err := OpenFile(path)
	require.NoError(t, err)
	v, ok, _ := c.Get("one")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok, _ = c.Get("two")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestFile_corruptStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, ok, err := f.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set("tasks", "[]"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":"[]"}`, string(raw))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	testStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"name":"a"}]`, v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(MEMORY, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open("", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open(SQLITE, filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	s.Close()

	_, err = Open("redis", "")
	assert.Error(t, err)
}
