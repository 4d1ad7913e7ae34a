package pathid

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Token separator. Identifier tokens are platform-independent and always
// use forward slashes on the path side.
const (
	hyphen    = "-"
	separator = "/"
)

// Validation errors returned by Encode
var (
	// ErrNotAbsolute indicates the input path is not absolute
	ErrNotAbsolute = errors.New("path must be absolute")

	// ErrTrailingExtension indicates the input path ends in a
	// file-extension-like suffix and is therefore not a directory path
	ErrTrailingExtension = errors.New("path must not have a file extension")
)

// Encode converts an absolute directory path to its flattened identifier
// token: the leading separator is stripped, every remaining separator
// becomes a hyphen, and a single leading hyphen is prepended.
//
// Literal dots in path segments are preserved. Encoding is deterministic
// but not injective: a segment containing a literal hyphen produces the
// same token as two separate segments, so decoding is best-effort (see
// Decode).
func Encode(dirPath string) (string, error) {
	if !filepath.IsAbs(dirPath) {
		return "", fmt.Errorf("encode %q: %w", dirPath, ErrNotAbsolute)
	}

	normalized := filepath.ToSlash(filepath.Clean(dirPath))
	if filepath.Ext(normalized) != "" {
		return "", fmt.Errorf("encode %q: %w", dirPath, ErrTrailingExtension)
	}

	trimmed := strings.TrimPrefix(normalized, separator)
	return hyphen + strings.ReplaceAll(trimmed, separator, hyphen), nil
}

// Candidates is the set of plausible original paths for a decoded token,
// sorted and deduplicated.
type Candidates []string

// Unique returns the single reconstructed path when the set is
// unambiguous. The second return value is false when the set holds more
// than one candidate.
func (c Candidates) Unique() (string, bool) {
	if len(c) != 1 {
		return "", false
	}
	return c[0], true
}

// Decode reconstructs the set of plausible absolute paths for an
// identifier token. A missing leading hyphen is tolerated.
//
// Hyphens inside original segments are indistinguishable from segment
// boundaries, so the token format is lossy in reverse. Today exactly one
// candidate is returned: the naive every-hyphen-is-a-boundary reading.
// Enumerating hyphen-ambiguity variants would slot in here.
func Decode(token string) Candidates {
	set := map[string]struct{}{
		DecodePath(token): {},
	}

	candidates := make(Candidates, 0, len(set))
	for p := range set {
		candidates = append(candidates, p)
	}
	sort.Strings(candidates)
	return candidates
}

// DecodePath is the single-path decode form: it returns the default
// reconstruction with no ambiguity handling.
func DecodePath(token string) string {
	trimmed := strings.TrimPrefix(token, hyphen)
	return separator + strings.ReplaceAll(trimmed, hyphen, separator)
}
