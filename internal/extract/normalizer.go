package extract

import (
	"path"
	"path/filepath"
	"strings"
)

// Normalize canonicalizes a raw reference target against the base directory
// of the document it was found in. The result is an absolute, forward-slash
// path with "." and ".." segments resolved. Returns "" when the target is
// not a filesystem path (external URL, pure anchor, empty after stripping).
//
// Two raw strings that normalize to the same path are the same reference;
// callers must de-duplicate after normalization, not before.
func Normalize(target, baseDir string) string {
	if IsExternalTarget(target) {
		return ""
	}

	target = StripAnchor(target)
	if target == "" {
		return ""
	}

	target = filepath.ToSlash(target)
	if path.IsAbs(target) {
		return path.Clean(target)
	}
	return path.Join(filepath.ToSlash(baseDir), target)
}

// StripAnchor removes a trailing "#anchor" or "?query" suffix from a target
func StripAnchor(target string) string {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		return target[:i]
	}
	return target
}

// RelativeTo returns p relative to base when p lives under base, in
// forward-slash form; otherwise p is returned unchanged.
func RelativeTo(p, base string) string {
	rel, err := filepath.Rel(filepath.FromSlash(base), filepath.FromSlash(p))
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}
