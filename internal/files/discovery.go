package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DatasetExtensions are the file types the loader reads
var DatasetExtensions = []string{".csv", ".xlsx"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// resolve makes dir absolute against the base path
func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindDatasets lists the dataset files in dir, oldest first. Lock files
// left by spreadsheet editors (~$name.xlsx) and hidden files are ignored.
func (d *Discovery) FindDatasets(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") || !isDataset(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Sort by modification time (oldest first), name for ties
	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.Before(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// LatestDataset returns the most recently modified dataset file in dir
func (d *Discovery) LatestDataset(dir string) (FileInfo, error) {
	files, err := d.FindDatasets(dir)
	if err != nil {
		return FileInfo{}, err
	}
	if len(files) == 0 {
		return FileInfo{}, fmt.Errorf("no %s files found in %s", strings.Join(DatasetExtensions, " or "), d.resolve(dir))
	}
	return files[len(files)-1], nil
}

// ResolveDataset returns path itself when it is a file, or the latest
// dataset inside it when it is a directory
func (d *Discovery) ResolveDataset(path string) (string, error) {
	full := d.resolve(path)
	info, err := os.Stat(full)
	if err != nil {
		return "", fmt.Errorf("dataset %s: %w", full, err)
	}
	if !info.IsDir() {
		return full, nil
	}
	latest, err := d.LatestDataset(full)
	if err != nil {
		return "", err
	}
	return latest.Path, nil
}

func isDataset(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range DatasetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
