package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MakeDir creates a directory with all parent directories.
func MakeDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteJSON writes obj to path as indented JSON, creating parent dirs.
func WriteJSON(path string, obj any) error {
	if err := MakeDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating dir for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
