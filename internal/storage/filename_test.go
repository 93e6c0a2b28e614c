package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestValidFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"PHOTO.JPEG", true},
		{"a-b_c.d.png", true},
		{"chauffeur_0b8f.gif", true},
		{"../secret.jpg", false},
		{"a..b.jpg", false},
		{"..", false},
		{"photo.bmp", false},
		{"photo", false},
		{".jpg", false},
		{"dir/photo.jpg", false},
		{"photo.jpg.exe", false},
		{"pho to.png", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidFilename(tt.name); got != tt.want {
			t.Fatalf("ValidFilename(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidFilenameRejectsTraversalEverywhere(t *testing.T) {
	for _, name := range []string{"..a.jpg", "a...jpg", "x..png", "..%2f.gif"} {
		if ValidFilename(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestNewFilenameLowercasesExtension(t *testing.T) {
	name, err := NewFilename("", "photo.JPG")
	if err != nil {
		t.Fatalf("NewFilename returned error: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("expected lower-cased .jpg suffix, got %s", name)
	}
	if !ValidFilename(name) {
		t.Fatalf("generated name %s does not validate", name)
	}
}

func TestNewFilenamePrefixAndUniqueness(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		name, err := NewFilename("chauffeur_", "car.png")
		if err != nil {
			t.Fatalf("NewFilename returned error: %v", err)
		}
		if !strings.HasPrefix(name, "chauffeur_") || !ValidFilename(name) {
			t.Fatalf("unexpected generated name %s", name)
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate generated name %s", name)
		}
		seen[name] = struct{}{}
	}
}

func TestNewFilenameRejectsUnknownExtension(t *testing.T) {
	for _, original := range []string{"photo.bmp", "photo", "archive.tar.gz"} {
		if _, err := NewFilename("", original); !errors.Is(err, ErrUnsupportedExtension) {
			t.Fatalf("expected ErrUnsupportedExtension for %q, got %v", original, err)
		}
	}
}
