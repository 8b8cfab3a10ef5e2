package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFile is the name of the run manifest in the output directory
const ManifestFile = "manifest.json"

// RunManifest records what a run produced
type RunManifest struct {
	RunID     string          `json:"run_id"`
	Dataset   string          `json:"dataset"`
	Rows      int             `json:"rows"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Duration  string          `json:"duration"`
	Status    string          `json:"status"`
	Completed int             `json:"completed"`
	Failed    int             `json:"failed"`
	Skipped   int             `json:"skipped"`
	Sections  []*SectionState `json:"sections"`
}

// NewRunManifest summarises a report
func NewRunManifest(report *Report, dataset string, rows int) *RunManifest {
	status := "completed"
	if report.HasFailures() {
		status = "failed"
	}
	return &RunManifest{
		RunID:     report.RunID,
		Dataset:   dataset,
		Rows:      rows,
		StartTime: report.StartTime,
		EndTime:   report.EndTime,
		Duration:  report.Duration().String(),
		Status:    status,
		Completed: report.Count(SectionStatusCompleted),
		Failed:    report.Count(SectionStatusFailed),
		Skipped:   report.Count(SectionStatusSkipped),
		Sections:  report.Sections,
	}
}

// SaveToFile writes the manifest as indented JSON, replacing any previous one
func (m *RunManifest) SaveToFile(dir string) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to save manifest: %w", err)
	}
	return path, nil
}

// LoadManifest reads a manifest written by SaveToFile
func LoadManifest(dir string) (*RunManifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
