// Package export writes the team dataset as data.json and its data.js sidecar.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/teamdex/internal/domain"
)

// DefaultVariable is the global the sidecar assigns the dataset to.
const DefaultVariable = "__TEAM_DATA__"

// Encode renders the dataset as 2-space indented JSON followed by a newline.
// HTML characters are not escaped and an empty dataset encodes as [].
func Encode(dataset domain.Dataset) ([]byte, error) {
	if dataset == nil {
		dataset = domain.Dataset{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataset); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// Sidecar wraps the encoded JSON in a global-variable assignment:
//
//	window.__TEAM_DATA__ = [...];
func Sidecar(encoded []byte, variable string) []byte {
	if variable == "" {
		variable = DefaultVariable
	}
	payload := bytes.TrimRight(encoded, "\n")

	var buf bytes.Buffer
	buf.Grow(len(payload) + len(variable) + 16)
	buf.WriteString("window.")
	buf.WriteString(variable)
	buf.WriteString(" = ")
	buf.Write(payload)
	buf.WriteString(";\n")
	return buf.Bytes()
}

// SidecarPath returns jsonPath with its extension replaced by ".js".
func SidecarPath(jsonPath string) string {
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".js"
}

// Write stores the dataset at jsonPath and the sidecar next to it, creating
// the parent directory if needed. It returns the sidecar path.
func Write(dataset domain.Dataset, jsonPath, variable string) (string, error) {
	encoded, err := Encode(dataset)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(jsonPath, encoded, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", jsonPath, err)
	}

	sidecarPath := SidecarPath(jsonPath)
	if sidecarPath == jsonPath {
		sidecarPath = jsonPath + ".js"
	}
	if err := os.WriteFile(sidecarPath, Sidecar(encoded, variable), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", sidecarPath, err)
	}
	return sidecarPath, nil
}
