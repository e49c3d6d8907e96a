package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoTextContent     = errors.New("no text content found")
)

// DocumentKind is the format implied by an upload's extension.
type DocumentKind string

const (
	KindPDF     DocumentKind = "pdf"
	KindDOCX    DocumentKind = "docx"
	KindUnknown DocumentKind = "unknown"
)

func KindOf(path string) DocumentKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindUnknown
	}
}

type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText returns the plain text of a .pdf or .docx file. Other
// extensions yield ErrUnsupportedFormat without the file being opened.
func (e *textExtractor) ExtractText(filePath string) (string, error) {
	var (
		text string
		err  error
	)

	switch KindOf(filePath) {
	case KindPDF:
		text, err = extractPDF(filePath)
	case KindDOCX:
		text, err = extractDOCX(filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filePath))
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextContent
	}

	return text, nil
}

func extractPDF(filePath string) (text string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF page %d: %w", pageIndex, err)
		}

		textBuilder.WriteString(pageText)
	}

	return textBuilder.String(), nil
}

func extractDOCX(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(strings.NewReader(doc.Editable().GetContent()))
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX body: %w", err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// docxParagraphs walks word/document.xml and returns the text of every
// top-level w:p element in document order. Paragraphs nested inside text
// boxes are kept on their own line within the enclosing paragraph, and
// w:tab elements under w:pPr are tab-stop definitions, not content.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
		pendingBr  bool
		depth      int
		propsDepth int
	)

	write := func(s string) {
		if pendingBr && current.Len() > 0 {
			current.WriteByte('\n')
		}
		pendingBr = false
		current.WriteString(s)
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
					pendingBr = false
				} else {
					pendingBr = true
				}
				depth++
			case "pPr":
				propsDepth++
			case "t":
				inText = true
			case "tab":
				if depth > 0 && propsDepth == 0 {
					write("\t")
				}
			case "br", "cr":
				if depth > 0 && propsDepth == 0 {
					write("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				} else {
					pendingBr = true
				}
			case "pPr":
				propsDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && depth > 0 {
				write(string(t))
			}
		}
	}

	return paragraphs, nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
