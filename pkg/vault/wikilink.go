package vault

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// wikilinkRe matches the inner content of a [[...]] reference. Unterminated
// brackets simply fail to match; there is no error path.
var wikilinkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// ExtractLinks returns the raw wikilink targets found in content, in order
// of appearance. Targets are returned verbatim, including any section
// anchor ("#heading") or display alias ("|shown text") suffix - use
// [NormalizeTarget] before resolving them against a listing.
//
// ExtractLinks never fails. Content that is not valid UTF-8 (a binary
// attachment read by mistake) yields no links.
func ExtractLinks(content []byte) []string {
	if len(content) == 0 || !utf8.Valid(content) {
		return nil
	}
	matches := wikilinkRe.FindAllSubmatch(content, -1)
	if matches == nil {
		return nil
	}
	links := make([]string, len(matches))
	for i, m := range matches {
		links[i] = string(m[1])
	}
	return links
}

// NormalizeTarget reduces a raw wikilink target to the filename it refers
// to: everything from the first section-anchor ('#') or alias-separator
// ('|') onward is dropped, surrounding whitespace is trimmed, and a target
// with no extension gets the note extension appended - a bare name links
// to another note, never to an attachment.
//
// The empty string is returned when nothing remains after stripping, e.g.
// for "[[#heading]]" links within the same note.
func NormalizeTarget(raw string) string {
	if i := strings.IndexAny(raw, "#|"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, ".") {
		raw += NoteExt
	}
	return raw
}
