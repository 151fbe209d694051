package vault

import (
	"reflect"
	"testing"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "NoLinks",
			content: "plain prose with no references",
			want:    nil,
		},
		{
			name:    "SingleLink",
			content: "see [[Other Note]] for details",
			want:    []string{"Other Note"},
		},
		{
			name:    "MultipleInOrder",
			content: "[[B]] then [[A]] then [[B]] again",
			want:    []string{"B", "A", "B"},
		},
		{
			name:    "KeepsAnchorAndAlias",
			content: "[[Note#Heading]] and [[Note|shown text]]",
			want:    []string{"Note#Heading", "Note|shown text"},
		},
		{
			name:    "UnterminatedBrackets",
			content: "broken [[never closed",
			want:    nil,
		},
		{
			name:    "EmptyContent",
			content: "",
			want:    nil,
		},
		{
			name:    "AttachmentLink",
			content: "embedded image [[diagram.png]]",
			want:    []string{"diagram.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLinks([]byte(tt.content))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractLinks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractLinksBinaryContent(t *testing.T) {
	// Invalid UTF-8 must yield no links, never a panic.
	content := []byte{0x89, 'P', 'N', 'G', 0xff, 0xfe, '[', '[', 'x', ']', ']'}
	if got := ExtractLinks(content); got != nil {
		t.Errorf("ExtractLinks(binary) = %v, want nil", got)
	}
}

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "BareName", raw: "My Note", want: "My Note.md"},
		{name: "AlreadyExtension", raw: "photo.png", want: "photo.png"},
		{name: "StripsAnchor", raw: "Note#Section", want: "Note.md"},
		{name: "StripsAlias", raw: "Note|display", want: "Note.md"},
		{name: "AnchorBeforeAlias", raw: "Note#Sec|display", want: "Note.md"},
		{name: "TrimsWhitespace", raw: "  Note  ", want: "Note.md"},
		{name: "AnchorOnly", raw: "#Heading", want: ""},
		{name: "Empty", raw: "", want: ""},
		{name: "WhitespaceOnly", raw: "   ", want: ""},
		{name: "DottedName", raw: "v1.2 changelog", want: "v1.2 changelog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTarget(tt.raw); got != tt.want {
				t.Errorf("NormalizeTarget(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsNote(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"note.md", true},
		{"Note.MD", true},
		{"note.Md", true},
		{"image.png", false},
		{"md", false},
		{"archive.md.bak", false},
	}
	for _, tt := range tests {
		if got := IsNote(tt.name); got != tt.want {
			t.Errorf("IsNote(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
