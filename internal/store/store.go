// Package store reads and writes inventory trees to disk.
//
// The file format follows the extension: ".yaml" and ".yml" files are
// YAML, ".json" and ".jsonc" files are JSON. JSON files may contain
// comments and trailing commas, which github.com/tidwall/jsonc strips
// before parsing, so hand-edited trees load the same way as generated
// ones. Infinite amounts are written as ".inf" in YAML and "inf" in JSON.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

// FormatVersion is written to every tree file. Files with a newer version
// are rejected.
const FormatVersion = 1

// Format is a tree file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// document is the on-disk layout of a tree file.
type document struct {
	Version int            `json:"version" yaml:"version"`
	Root    inventory.Node `json:"root" yaml:"root"`
}

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", model.NewCLIError(model.ExitStoreError,
			fmt.Sprintf("unsupported tree file %s: use a .yaml, .yml or .json extension", path))
	}
}

// Exists reports whether a tree file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the tree stored at path. Every stored value is validated
// again while the tree is rebuilt, so a hand-edited file that overfills
// a container is rejected rather than loaded.
//
// All failures are CLIErrors with ExitStoreError.
func Load(path string) (*inventory.Container, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitStoreError,
				fmt.Sprintf("tree file not found: %s (create one with `stowage init`)", path), err)
		}
		return nil, model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to read %s", path), err)
	}

	doc, err := decode(format, data)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to parse %s", path), err)
	}
	if doc.Version > FormatVersion {
		return nil, model.NewCLIError(model.ExitStoreError,
			fmt.Sprintf("%s was written by a newer stowage (format %d, supported %d)", path, doc.Version, FormatVersion))
	}

	root, err := inventory.DecodeContainer(doc.Root)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("invalid tree in %s", path), err)
	}
	return root, nil
}

func decode(format Format, data []byte) (document, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return doc, err
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, err
		}
	}
	return doc, nil
}

// Marshal encodes root in the given format.
func Marshal(format Format, root *inventory.Container) ([]byte, error) {
	doc := document{Version: FormatVersion, Root: inventory.Encode(root)}
	if format == FormatJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(&doc)
}

// Save writes root to path, creating parent directories as needed.
// The data is written to a temporary file in the same directory first and
// renamed over path, so a failed write never truncates an existing tree.
func Save(path string, root *inventory.Container) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(format, root)
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError, "failed to encode tree", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to create directory %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to write %s", path), err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to write %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to write %s", path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to write %s", path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return model.WrapCLIError(model.ExitStoreError, fmt.Sprintf("failed to replace %s", path), err)
	}
	return nil
}
