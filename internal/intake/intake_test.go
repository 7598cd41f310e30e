package intake

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func testOptions() Options {
	return Options{
		MaxSizeBytes:      1 << 20,
		AllowedExtensions: []string{".pdf", ".png", ".jpg", ".jpeg"},
	}
}

func TestSpoolValidation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  error
	}{
		{name: "missing filename", filename: "", content: "x", wantErr: ErrFileRequired},
		{name: "unsupported extension", filename: "passport.gif", content: "x", wantErr: ErrUnsupportedType},
		{name: "no extension", filename: "passport", content: "x", wantErr: ErrUnsupportedType},
		{name: "empty content", filename: "passport.png", content: "", wantErr: ErrUnreadable},
		{name: "unparsable pdf", filename: "passport.pdf", content: "not a pdf at all", wantErr: ErrUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Spool(testOptions(), tt.filename, int64(len(tt.content)), strings.NewReader(tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpoolRejectsOversizedDeclaration(t *testing.T) {
	opts := testOptions()
	opts.MaxSizeBytes = 10

	_, err := Spool(opts, "passport.png", 11, strings.NewReader("12345678901"))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got error %v, want ErrTooLarge", err)
	}
}

func TestSpoolRejectsOversizedContent(t *testing.T) {
	opts := testOptions()
	opts.MaxSizeBytes = 10

	// Declared size lies; the actual content is over the limit.
	_, err := Spool(opts, "passport.png", 5, strings.NewReader(strings.Repeat("a", 64)))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got error %v, want ErrTooLarge", err)
	}
}

func TestSpoolImage(t *testing.T) {
	content := "\x89PNG\r\n\x1a\nfakepngdata"
	file, err := Spool(testOptions(), "My Passport.PNG", int64(len(content)), strings.NewReader(content))
	if err != nil {
		t.Fatalf("Spool failed: %v", err)
	}
	defer file.Cleanup()

	if file.Meta.Filename != "My Passport.PNG" {
		t.Errorf("filename = %q", file.Meta.Filename)
	}
	if file.Meta.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", file.Meta.Size, len(content))
	}
	if file.Meta.MediaType != "image/png" {
		t.Errorf("media type = %q", file.Meta.MediaType)
	}
	if file.Meta.PageCount != 0 {
		t.Errorf("page count = %d, want 0 for images", file.Meta.PageCount)
	}

	got, err := os.ReadFile(file.Path)
	if err != nil {
		t.Fatalf("read spooled file: %v", err)
	}
	if string(got) != content {
		t.Error("spooled content differs from upload")
	}
}

func TestSpoolPDFCountsPages(t *testing.T) {
	var buf bytes.Buffer
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	doc.Cell(40, 10, "page one")
	doc.AddPage()
	doc.Cell(40, 10, "page two")
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build test pdf: %v", err)
	}

	file, err := Spool(testOptions(), "passport.pdf", int64(buf.Len()), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Spool failed: %v", err)
	}
	defer file.Cleanup()

	if file.Meta.MediaType != "application/pdf" {
		t.Errorf("media type = %q", file.Meta.MediaType)
	}
	if file.Meta.PageCount != 2 {
		t.Errorf("page count = %d, want 2", file.Meta.PageCount)
	}
}

func TestCleanupRemovesTempFile(t *testing.T) {
	content := "fakejpeg"
	file, err := Spool(testOptions(), "passport.jpg", int64(len(content)), strings.NewReader(content))
	if err != nil {
		t.Fatalf("Spool failed: %v", err)
	}

	file.Cleanup()
	if _, err := os.Stat(file.Path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup: %v", err)
	}
}
