package extract

import (
	"regexp"
	"strings"
)

// Syntax identifies the surface form a reference was written in
type Syntax string

const (
	SyntaxLink          Syntax = "link"
	SyntaxImage         Syntax = "image"
	SyntaxHTMLAttribute Syntax = "html-attribute"
	SyntaxInlineCode    Syntax = "inline-code"
	SyntaxSourceComment Syntax = "source-comment"
)

// Reference is a raw path-like target found in document text, tagged with
// the syntax it came from. Targets are unnormalized; duplicates are allowed.
type Reference struct {
	Target string
	Syntax Syntax
	Line   int
}

var (
	// [label](target) and ![alt](target)
	linkPattern = regexp.MustCompile(`(!?)\[[^\]]*\]\(([^)]+)\)`)

	// <tag src="target">, <tag href="target">, <tag filePath="target">
	htmlAttrPattern = regexp.MustCompile(`<[A-Za-z][^>]*\s(?:src|href|filePath)=["']([^"']+)["']`)

	// `target` inline code spans; double backticks are rejected by
	// inspecting the neighboring bytes since RE2 has no lookarounds
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")

	// source: target comment lines (case-insensitive key)
	sourceCommentPattern = regexp.MustCompile(`(?im)^\s*source:\s*(\S+)\s*$`)

	// inline code spans must look like a path: at least one slash and
	// none of the wildcard or shell metacharacters
	pathLikePattern = regexp.MustCompile(`^[^*?\\<>$|:"'` + "`" + `\s]+$`)

	urlSchemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

// IsExternalTarget reports whether a target points outside the filesystem:
// absolute URLs, mail links, data URIs, and pure anchors.
func IsExternalTarget(target string) bool {
	if target == "" || strings.HasPrefix(target, "#") {
		return true
	}
	if urlSchemePattern.MatchString(target) {
		return true
	}
	return strings.HasPrefix(target, "mailto:") || strings.HasPrefix(target, "data:")
}

// References scans raw document text and returns every path-like reference
// in document order. Targets that are external (URLs, anchors) are dropped;
// everything else is returned raw for the normalizer to resolve.
func References(content string) []Reference {
	var refs []Reference

	for _, m := range linkPattern.FindAllStringSubmatchIndex(content, -1) {
		syntax := SyntaxLink
		if content[m[2]:m[3]] == "!" {
			syntax = SyntaxImage
		}
		target := content[m[4]:m[5]]
		if IsExternalTarget(target) {
			continue
		}
		refs = append(refs, Reference{Target: target, Syntax: syntax, Line: lineAt(content, m[0])})
	}

	for _, m := range htmlAttrPattern.FindAllStringSubmatchIndex(content, -1) {
		target := content[m[2]:m[3]]
		if IsExternalTarget(target) {
			continue
		}
		refs = append(refs, Reference{Target: target, Syntax: SyntaxHTMLAttribute, Line: lineAt(content, m[0])})
	}

	for _, m := range inlineCodePattern.FindAllStringSubmatchIndex(content, -1) {
		// reject spans adjacent to another backtick (``...`` etc.)
		if m[0] > 0 && content[m[0]-1] == '`' {
			continue
		}
		if m[1] < len(content) && content[m[1]] == '`' {
			continue
		}
		target := content[m[2]:m[3]]
		if !strings.Contains(target, "/") || !pathLikePattern.MatchString(target) {
			continue
		}
		if IsExternalTarget(target) {
			continue
		}
		refs = append(refs, Reference{Target: target, Syntax: SyntaxInlineCode, Line: lineAt(content, m[0])})
	}

	for _, m := range sourceCommentPattern.FindAllStringSubmatchIndex(content, -1) {
		target := content[m[2]:m[3]]
		if IsExternalTarget(target) {
			continue
		}
		refs = append(refs, Reference{Target: target, Syntax: SyntaxSourceComment, Line: lineAt(content, m[2])})
	}

	return refs
}

// lineAt returns the 1-based line number of a byte offset
func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}
