package env

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
)

var ErrDotenvParse = errors.New("invalid dotenv line")

// fileReader is the slice of the file gateway a DotenvSource needs.
type fileReader interface {
	ReadFile(path string) (buffer.Buffer, error)
}

// DotenvSource serves the variables of a dotenv file instead of the
// process environment. The file is parsed once, when the source is built.
type DotenvSource struct {
	entries []string
}

// NewDotenvSource reads and parses the dotenv file at path.
func NewDotenvSource(files fileReader, path string) (*DotenvSource, error) {
	buf, err := files.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := buf.Text(buffer.PolicyReplace)
	if err != nil {
		return nil, err
	}

	vars, err := ParseDotenv(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &DotenvSource{entries: MapSource(vars).Environ()}, nil
}

func (d *DotenvSource) Environ() []string {
	return slices.Clone(d.entries)
}

// ParseDotenv parses dotenv content into a map.
// It supports:
// - KEY=VALUE format
// - Comments starting with #
// - Empty lines
// - Basic quoted values (single and double quotes)
//
// It does NOT support:
// - Multi-line values
// - Variable expansion
// - Complex shell escaping
func ParseDotenv(content string) (map[string]string, error) {
	vars := make(map[string]string)
	lines := strings.Split(content, "\n")

	for i, rawLine := range lines {
		lineNum := i + 1
		line := strings.TrimSpace(rawLine)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w at line %d: %s", ErrDotenvParse, lineNum, line)
		}
		value = strings.TrimSpace(value)

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		vars[key] = value
	}

	return vars, nil
}
