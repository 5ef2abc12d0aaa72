package catalog

import (
	"bytes"
	"encoding/json"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/roomgrid/pkg/errors"
)

// Format is a catalog file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file name or URL path extension.
// Unknown extensions default to JSON.
func FormatFromPath(p string) Format {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// tomlDocument wraps records for TOML, which has no top-level arrays:
//
//	[[items]]
//	name = "Sofa"
//	image = "img/sofa.png"
//	size = [3, 2]
type tomlDocument struct {
	Items []Record `toml:"items"`
}

// Decode parses raw catalog data. JSON and YAML catalogs are a top-level list
// of records; TOML catalogs use an [[items]] table array.
func Decode(data []byte, format Format) ([]Record, error) {
	var records []Record
	var err error

	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(bytes.TrimSpace(data), &records)
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	case FormatTOML:
		var doc tomlDocument
		_, err = toml.Decode(string(data), &doc)
		records = doc.Items
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s catalog", format)
	}
	return records, nil
}
