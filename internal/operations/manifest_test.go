package operations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunManifest_SaveAndLoad(t *testing.T) {
	report := NewReport("run-42")
	ok := NewSectionState("genre-chord", "Genre co-occurrence")
	ok.Start()
	ok.Complete(&Outcome{RowsIn: 10, RowsOut: 3, Artifacts: []string{"genre-chord.png"}})
	report.Add(ok)
	bad := NewSectionState("rating-scales", "Rating scales compared")
	bad.Start()
	bad.Fail(errors.New("no ratings"))
	report.Add(bad)
	report.Finish()

	dir := t.TempDir()
	manifest := NewRunManifest(report, "films.csv", 10)
	assert.Equal(t, "failed", manifest.Status)
	assert.Equal(t, 1, manifest.Completed)
	assert.Equal(t, 1, manifest.Failed)

	path, err := manifest.SaveToFile(dir)
	require.NoError(t, err)
	assert.FileExists(t, path)

	loaded, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "run-42", loaded.RunID)
	assert.Equal(t, "films.csv", loaded.Dataset)
	require.Len(t, loaded.Sections, 2)
	assert.Equal(t, SectionStatusCompleted, loaded.Sections[0].Status)
	assert.Equal(t, []string{"genre-chord.png"}, loaded.Sections[0].Outcome.Artifacts)
	assert.Equal(t, "no ratings", loaded.Sections[1].ErrorText)
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(t.TempDir())
	assert.Error(t, err)
}
