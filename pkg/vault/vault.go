// Package vault enumerates the files of a note vault and extracts the
// wikilink references that connect them.
//
// A vault is a directory tree of Markdown notes plus attachments (images,
// PDFs, anything else a note might embed). The package flattens the tree
// into a [Listing] keyed by base filename - the same key wikilinks use -
// and provides the link extraction and target normalization that
// [github.com/tmolenaar/vaultpaper/pkg/graph.Build] consumes.
//
// File content is read lazily through accessors so attachments that are
// never parsed cost nothing. Unreadable files are not an error at this
// layer: the accessor reports the failure and the caller decides, which
// for graph construction means "treat as having no links".
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// NoteExt is the extension that marks a file as a note. Bare wikilink
// targets without an extension are assumed to name a note.
const NoteExt = ".md"

// File is a single file discovered under the vault root.
type File struct {
	Name string // base filename, the graph node key
	Path string // absolute or root-relative path on disk

	// Content reads the full file body. It is invoked at most once per
	// pipeline run, when the file is a note that needs link extraction.
	Content func() ([]byte, error)
}

// IsNote reports whether the file's name carries the note extension.
// The check is case-insensitive, so "Readme.MD" counts as a note.
func (f File) IsNote() bool { return IsNote(f.Name) }

// Listing is the flattened view of a vault: base filename to file.
// When two files in different subdirectories share a base name, the one
// discovered last wins - wikilinks carry no directory information, so the
// ambiguity is inherent to the vault, not to the scan.
type Listing map[string]File

// IsNote reports whether name ends in the note extension, ignoring case.
func IsNote(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), NoteExt)
}

// Scan walks the vault root once and returns the flattened listing.
// Subtrees that cannot be read are skipped; an unreadable root is the one
// condition reported as an error, since it means there is no vault at all.
func Scan(root string) (Listing, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("vault root %s: %w", root, err)
	}

	listing := make(Listing)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree. The vault is allowed to contain
			// directories we cannot enter; drop them and continue.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		listing[name] = File{
			Name:    name,
			Path:    path,
			Content: func() ([]byte, error) { return os.ReadFile(path) },
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return listing, nil
}
