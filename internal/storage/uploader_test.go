package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log"
)

var jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x42}, 2048)...)

func newTestUploader(max int64, strict bool) *Uploader {
	return NewUploader(UploaderOptions{
		AllowedMimeTypes:   []string{"image/jpeg", "image/png", "image/gif"},
		MaxFileSize:        max,
		StrictContentCheck: strict,
	}, log.NewNopLogger())
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return entries
}

func TestUploadStoresBytes(t *testing.T) {
	dir := t.TempDir()
	u := newTestUploader(10<<20, false)

	stored, err := u.Upload(bytes.NewReader(jpegBytes), "photo.JPG", "image/jpeg", Target{Dir: dir})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if !strings.HasSuffix(stored.Filename, ".jpg") || !ValidFilename(stored.Filename) {
		t.Fatalf("unexpected filename %s", stored.Filename)
	}
	if stored.SizeBytes != int64(len(jpegBytes)) || stored.Directory != dir {
		t.Fatalf("unexpected stored file %+v", stored)
	}
	if stored.DetectedType != "image/jpeg" {
		t.Fatalf("expected sniffed image/jpeg, got %s", stored.DetectedType)
	}

	got, err := os.ReadFile(filepath.Join(dir, stored.Filename))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(got, jpegBytes) {
		t.Fatal("stored bytes differ from upload")
	}
}

func TestUploadAppliesTargetPrefix(t *testing.T) {
	dir := t.TempDir()
	stored, err := newTestUploader(1<<20, false).Upload(strings.NewReader("GIF89a"), "car.gif", "image/gif", Target{Dir: dir, Prefix: "chauffeur_"})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if !strings.HasPrefix(stored.Filename, "chauffeur_") {
		t.Fatalf("expected chauffeur_ prefix, got %s", stored.Filename)
	}
}

func TestUploadRejectsMimeTypeBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	_, err := newTestUploader(1<<20, false).Upload(strings.NewReader("%PDF-1.4"), "doc.jpg", "application/pdf", Target{Dir: dir})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if n := len(dirEntries(t, dir)); n != 0 {
		t.Fatalf("expected empty directory, found %d entries", n)
	}
}

func TestUploadRejectsExtension(t *testing.T) {
	dir := t.TempDir()
	_, err := newTestUploader(1<<20, false).Upload(bytes.NewReader(jpegBytes), "photo.bmp", "image/jpeg", Target{Dir: dir})
	if !errors.Is(err, ErrUnsupportedExtension) {
		t.Fatalf("expected ErrUnsupportedExtension, got %v", err)
	}
	if n := len(dirEntries(t, dir)); n != 0 {
		t.Fatalf("expected empty directory, found %d entries", n)
	}
}

func TestUploadTooLargeLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	payload := bytes.Repeat([]byte{0xAB}, 5000)

	_, err := newTestUploader(4096, false).Upload(bytes.NewReader(payload), "big.png", "image/png", Target{Dir: dir})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if n := len(dirEntries(t, dir)); n != 0 {
		t.Fatalf("expected no partial file, found %d entries", n)
	}
}

func TestUploadExactlyAtLimit(t *testing.T) {
	dir := t.TempDir()
	payload := bytes.Repeat([]byte{0x01}, 4096)

	stored, err := newTestUploader(4096, false).Upload(bytes.NewReader(payload), "edge.png", "image/png", Target{Dir: dir})
	if err != nil {
		t.Fatalf("expected payload at the limit to be accepted, got %v", err)
	}
	if stored.SizeBytes != 4096 {
		t.Fatalf("expected 4096 bytes, got %d", stored.SizeBytes)
	}
}

func TestUploadStrictContentCheck(t *testing.T) {
	dir := t.TempDir()
	u := newTestUploader(1<<20, true)

	if _, err := u.Upload(strings.NewReader("just text"), "fake.png", "image/png", Target{Dir: dir}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType for mismatched content, got %v", err)
	}
	if _, err := u.Upload(bytes.NewReader(jpegBytes), "real.jpg", "image/jpeg", Target{Dir: dir}); err != nil {
		t.Fatalf("expected matching content to pass, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestUploadReadErrorLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	src := io.MultiReader(bytes.NewReader(bytes.Repeat([]byte{1}, sniffLen)), failingReader{})

	if _, err := newTestUploader(1<<20, false).Upload(src, "x.png", "image/png", Target{Dir: dir}); err == nil {
		t.Fatal("expected read error")
	}
	if n := len(dirEntries(t, dir)); n != 0 {
		t.Fatalf("expected no partial file, found %d entries", n)
	}
}
