package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported template file encodings
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatTOML               // TOML document with [[template]] tables
	FormatYAML               // YAML document with a templates list
)

// FormatInfo contains metadata about a template file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML Template File",
		Extensions:  []string{".toml"},
		MinSize:     1,
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML Template File",
		Extensions:  []string{".yaml", ".yml"},
		MinSize:     1,
	},
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s",
			filename, fileInfo.Size(), formatInfo.Description)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range formatInfo.Extensions {
		if ext == valid {
			log.Debugf("Template file %s validated as %s", filename, formatInfo.Description)
			return nil
		}
	}
	return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
		filename, ext, formatInfo.Description, formatInfo.Extensions)
}

// DetectFileFormat picks the format of a template file by its extension
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, valid := range info.Extensions {
			if ext != valid {
				continue
			}
			if err := ValidateFileFormat(filename, format); err != nil {
				return FormatUnknown, err
			}
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// IsTemplateFile reports whether the name carries a supported extension.
func IsTemplateFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, info := range supportedFormats {
		for _, valid := range info.Extensions {
			if ext == valid {
				return true
			}
		}
	}
	return false
}
