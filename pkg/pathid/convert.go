package pathid

import "strings"

// dotSentinel stands in for a protected dot while hyphens are being
// rewritten. NUL bytes cannot appear in real path content.
const dotSentinel = "\x00"

// DefaultSuffixes returns the default set of protected domain suffixes.
func DefaultSuffixes() []string {
	return []string{".com", ".org", ".net", ".io", ".dev", ".ai"}
}

// Converter rewrites flattened identifier segments back into relative
// paths while keeping recognized domain-like suffixes intact. The suffix
// table is an ordered list so it stays configurable and testable.
type Converter struct {
	suffixes []string
}

// NewConverter creates a converter protecting the given suffixes.
// A nil or empty list falls back to DefaultSuffixes.
func NewConverter(suffixes []string) *Converter {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes()
	}
	return &Converter{suffixes: suffixes}
}

// Suffixes returns the protected suffix list.
func (c *Converter) Suffixes() []string {
	out := make([]string, len(c.suffixes))
	copy(out, c.suffixes)
	return out
}

// ConvertSegment converts one flattened segment to a relative path:
// hyphens become separators, except that a dot immediately followed by a
// protected suffix is never split. A suffix occurring as a substring of
// an unrelated word is still protected; that over-protection is a known
// limit of the heuristic.
func (c *Converter) ConvertSegment(name string) string {
	result := name

	// Shield protected dots behind a sentinel before splitting.
	for _, suffix := range c.suffixes {
		if strings.Contains(result, suffix) {
			shielded := dotSentinel + strings.TrimPrefix(suffix, ".")
			result = strings.ReplaceAll(result, suffix, shielded)
		}
	}

	result = strings.ReplaceAll(result, hyphen, separator)
	result = strings.ReplaceAll(result, dotSentinel, ".")

	return strings.TrimPrefix(result, separator)
}
