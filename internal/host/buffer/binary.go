package buffer

// DefaultSampleSize is the number of leading bytes inspected by LooksBinary
// when no explicit size is given.
const DefaultSampleSize = 8000

// LooksBinary reports whether the content appears to be binary by looking
// for a NUL byte within the first sampleSize bytes. Content starting with a
// UTF-16 or UTF-32 byte order mark is treated as text.
func (b Buffer) LooksBinary(sampleSize int) bool {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	content := b.data

	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false // UTF-16 (and little-endian UTF-32) BOM
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false // UTF-32 big-endian BOM
		}
	}

	for i := range min(len(content), sampleSize) {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
