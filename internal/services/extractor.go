package services

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SupportedExtensions lists the upload formats text can be extracted from.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reads the file at path and returns its cleaned text.
func (x *TextExtractor) Extract(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file does not exist: %s", path)
	}

	var (
		text string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".txt":
		var raw []byte
		raw, err = os.ReadFile(path)
		text = string(raw)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", fmt.Errorf("no text content found in %s", filepath.Base(path))
	}

	return text, nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// unreadable pages are skipped
			continue
		}

		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String(), nil
}

// extractDOCX collects the w:t runs of word/document.xml, one line per paragraph.
func extractDOCX(path string) (string, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer rc.Close()

	var body io.ReadCloser
	for _, f := range rc.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to read DOCX body: %w", err)
			}
			break
		}
	}
	if body == nil {
		return "", errors.New("DOCX has no word/document.xml")
	}
	defer body.Close()

	var (
		b      strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(body)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse DOCX body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}

// CleanText drops control characters, turns non-ASCII runs into spaces and
// collapses all whitespace to single spaces.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r <= 0x08, r == 0x0B, r == 0x0C, r >= 0x0E && r <= 0x1F, r >= 0x7F && r <= 0x9F:
		case r > 0x7F:
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
