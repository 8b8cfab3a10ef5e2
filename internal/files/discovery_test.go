package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("Title\n"), 0644))
	mod := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestFindDatasets(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "new.xlsx", time.Minute)
	touch(t, dir, "old.csv", time.Hour)
	touch(t, dir, "notes.txt", 0)
	touch(t, dir, "~$new.xlsx", 0)
	touch(t, dir, ".hidden.csv", 0)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	files, err := NewDiscovery("").FindDatasets(dir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "old.csv", files[0].Name)
	assert.Equal(t, "new.xlsx", files[1].Name)
	assert.Equal(t, int64(6), files[1].Size)
}

func TestFindDatasets_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "data"), 0755))
	touch(t, filepath.Join(base, "data"), "films.csv", 0)

	files, err := NewDiscovery(base).FindDatasets("data")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "data", "films.csv"), files[0].Path)
}

func TestLatestDataset(t *testing.T) {
	dir := t.TempDir()
	d := NewDiscovery("")

	_, err := d.LatestDataset(dir)
	assert.Error(t, err)

	touch(t, dir, "a.csv", time.Hour)
	touch(t, dir, "b.csv", time.Minute)
	latest, err := d.LatestDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, "b.csv", latest.Name)

	_, err = d.LatestDataset(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestResolveDataset(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, dir, "films.xlsx", 0)
	d := NewDiscovery("")

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "file", path: file, want: file},
		{name: "directory", path: dir, want: file},
		{name: "missing", path: filepath.Join(dir, "nope.csv"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.ResolveDataset(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
