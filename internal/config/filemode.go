package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FileMode is a permission value that config files may give either as an
// octal string ("0644", "0o644", "644") or as a plain JSON number, which is
// read as decimal (420 == 0644).
type FileMode uint32

func (m *FileMode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint32
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("file mode must be an octal string or a number: %s", data)
		}
		*m = FileMode(n)
		return nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	n, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return fmt.Errorf("file mode %q is not octal: %w", s, err)
	}
	*m = FileMode(n)
	return nil
}

func (m FileMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m FileMode) String() string {
	return fmt.Sprintf("%#o", uint32(m))
}
