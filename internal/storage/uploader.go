package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"imageserver/internal/models"
)

var (
	ErrInvalidType = errors.New("invalid file type")
	ErrTooLarge    = errors.New("file too large")
)

// sniffLen is how much of the payload is inspected before anything is written.
const sniffLen = 3072

// Target is an upload destination selected by the endpoint that was called.
type Target struct {
	Dir     string
	Prefix  string
	URLPath string
}

type UploaderOptions struct {
	AllowedMimeTypes   []string
	MaxFileSize        int64
	StrictContentCheck bool
}

// Uploader validates an incoming image stream and writes it under a fresh name.
type Uploader struct {
	allowed map[string]struct{}
	maxSize int64
	strict  bool
	logger  log.Logger
}

func NewUploader(opts UploaderOptions, logger log.Logger) *Uploader {
	allowed := make(map[string]struct{}, len(opts.AllowedMimeTypes))
	for _, mimeType := range opts.AllowedMimeTypes {
		allowed[strings.ToLower(strings.TrimSpace(mimeType))] = struct{}{}
	}
	return &Uploader{
		allowed: allowed,
		maxSize: opts.MaxFileSize,
		strict:  opts.StrictContentCheck,
		logger:  logger,
	}
}

func (u *Uploader) MaxFileSize() int64 {
	return u.maxSize
}

func (u *Uploader) Allowed(declaredMime string) bool {
	_, ok := u.allowed[strings.ToLower(strings.TrimSpace(declaredMime))]
	return ok
}

// Upload streams src into target. Nothing is created in target.Dir unless the
// declared type and the extension are acceptable, and a payload that turns out
// larger than the limit is removed again before returning ErrTooLarge.
func (u *Uploader) Upload(src io.Reader, originalName, declaredMime string, target Target) (models.StoredFile, error) {
	if !u.Allowed(declaredMime) {
		level.Warn(u.logger).Log("msg", "rejected upload", "reason", "mime type", "declared", declaredMime, "original", originalName)
		return models.StoredFile{}, ErrInvalidType
	}

	filename, err := NewFilename(target.Prefix, originalName)
	if err != nil {
		level.Warn(u.logger).Log("msg", "rejected upload", "reason", "extension", "original", originalName)
		return models.StoredFile{}, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return models.StoredFile{}, err
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if u.strict && !detected.Is(declaredMime) {
		level.Warn(u.logger).Log("msg", "rejected upload", "reason", "content mismatch", "declared", declaredMime, "detected", detected.String())
		return models.StoredFile{}, ErrInvalidType
	}

	fullPath := filepath.Join(target.Dir, filename)
	out, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("create %s: %w", fullPath, err)
	}

	body := io.MultiReader(bytes.NewReader(head), src)
	written, copyErr := io.Copy(out, io.LimitReader(body, u.maxSize+1))
	closeErr := out.Close()

	switch {
	case copyErr != nil:
		u.discard(fullPath)
		return models.StoredFile{}, fmt.Errorf("write %s: %w", fullPath, copyErr)
	case written > u.maxSize:
		u.discard(fullPath)
		level.Warn(u.logger).Log("msg", "rejected upload", "reason", "size", "limit", u.maxSize, "original", originalName)
		return models.StoredFile{}, ErrTooLarge
	case closeErr != nil:
		u.discard(fullPath)
		return models.StoredFile{}, fmt.Errorf("close %s: %w", fullPath, closeErr)
	}

	level.Info(u.logger).Log("msg", "stored upload", "path", fullPath, "bytes", written, "declared", declaredMime, "detected", detected.String())

	return models.StoredFile{
		Filename:     filename,
		Directory:    target.Dir,
		SizeBytes:    written,
		MimeType:     declaredMime,
		DetectedType: detected.String(),
	}, nil
}

func (u *Uploader) discard(fullPath string) {
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		level.Error(u.logger).Log("msg", "failed to remove partial upload", "path", fullPath, "err", err)
	}
}
