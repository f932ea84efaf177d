package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DocumentName is the conventional file name of a persisted project inside
// its project directory.
const DocumentName = "project.json"

// Dir returns the conventional project directory under outputDir.
func Dir(outputDir, projectID string) string {
	return filepath.Join(outputDir, "projects", projectID)
}

// DocumentPath returns the conventional path of the project document
// under outputDir.
func DocumentPath(outputDir, projectID string) string {
	return filepath.Join(Dir(outputDir, projectID), DocumentName)
}

// SaveToFile writes the project document as indented JSON. Writers are
// serialized through a sidecar file lock, matching the at-most-one-writer
// contract; concurrent saves are last-writer-wins once the lock is released.
// The write is atomic: a temp file is renamed over the target.
func (p *Project) SaveToFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("save project: empty path")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create project directory %q: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock project file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal project: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".project-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp project file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write project file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close project file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("replace project file: %w", err)
	}
	return path, nil
}

// LoadFromFile reads a persisted project document back into memory and
// validates the status and script invariants.
func LoadFromFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project file %q: %w", path, err)
		}
		return nil, fmt.Errorf("read project file %q: %w", path, err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project file %q: %w", path, err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("project file %q: missing id", path)
	}
	if _, ok := ParseStatus(string(p.Status)); !ok {
		return nil, fmt.Errorf("project file %q: unknown status %q", path, p.Status)
	}
	if p.Script != nil {
		if err := p.Script.Validate(); err != nil {
			return nil, fmt.Errorf("project file %q: %w", path, err)
		}
	}
	return &p, nil
}
