// Package intake validates an uploaded document and spools it to a temporary
// file for the duration of one request.
package intake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"passport-extractor/internal/model"
)

var (
	ErrFileRequired    = errors.New("file is required")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrUnreadable      = errors.New("file is not readable")
)

var mediaTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

type Options struct {
	MaxSizeBytes      int64
	AllowedExtensions []string
}

// File is a validated upload spooled to disk. Call Cleanup once the request
// that produced it is done.
type File struct {
	Path string
	Meta model.FileMeta
}

func (f *File) Cleanup() {
	if f != nil && f.Path != "" {
		_ = os.Remove(f.Path)
	}
}

func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Spool validates the declared name and size, writes the content to a temp
// file, and collects display metadata. PDFs additionally get a page count;
// a PDF that cannot be parsed at all fails with ErrUnreadable.
func Spool(opts Options, filename string, declaredSize int64, r io.Reader) (*File, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" || r == nil {
		return nil, ErrFileRequired
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionAllowed(ext, opts.AllowedExtensions) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if opts.MaxSizeBytes > 0 && declaredSize > opts.MaxSizeBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, declaredSize, opts.MaxSizeBytes)
	}

	tmp, err := os.CreateTemp("", "passport-upload-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file failed: %w", err)
	}

	limit := opts.MaxSizeBytes
	if limit <= 0 {
		limit = declaredSize
	}
	written, err := io.Copy(tmp, io.LimitReader(r, limit+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("spool upload failed: %w", err)
	}
	if opts.MaxSizeBytes > 0 && written > opts.MaxSizeBytes {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: content exceeds %d bytes", ErrTooLarge, opts.MaxSizeBytes)
	}
	if written == 0 {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: empty upload", ErrUnreadable)
	}

	file := &File{
		Path: tmp.Name(),
		Meta: model.FileMeta{
			Filename:  filepath.Base(filename),
			Size:      written,
			MediaType: mediaTypes[ext],
		},
	}

	if ext == ".pdf" {
		pages, err := pdfPageCount(tmp.Name())
		if err != nil {
			file.Cleanup()
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		file.Meta.PageCount = pages
	}

	return file, nil
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

func pdfPageCount(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return reader.NumPage(), nil
}
