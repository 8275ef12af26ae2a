package services

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Alice\n\n  Adams  ", want: "Alice Adams"},
		{in: "Go\x00lang\x1f", want: "Golang"},
		{in: "naïve café", want: "na ve caf"},
		{in: "tabs\tand\r\nlines", want: "tabs and lines"},
		{in: " • bullet", want: "bullet"},
	}

	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Fatalf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeDOCX(t *testing.T, path string, body string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

func TestExtractDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.docx")
	writeDOCX(t, path, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Alice</w:t></w:r><w:r><w:t xml:space="preserve"> Adams</w:t></w:r></w:p>
<w:p><w:r><w:t>Python</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p>
</w:body>
</w:document>`)

	text, err := NewTextExtractor().Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Alice Adams Python SQL" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	if err := os.WriteFile(path, []byte("Backend engineer\n\nGo, SQL"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, err := NewTextExtractor().Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Backend engineer Go, SQL" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()
	x := NewTextExtractor()

	if _, err := x.Extract(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}

	odt := filepath.Join(dir, "resume.odt")
	if err := os.WriteFile(odt, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := x.Extract(odt); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported error, got %v", err)
	}

	blank := filepath.Join(dir, "blank.txt")
	if err := os.WriteFile(blank, []byte(" \n\t"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := x.Extract(blank); err == nil {
		t.Fatal("expected error for empty text")
	}

	notZip := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(notZip, []byte("not a zip"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := x.Extract(notZip); err == nil {
		t.Fatal("expected error for broken docx")
	}
}
