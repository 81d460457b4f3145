package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-extractor/internal/fetch"
	"github.com/ledongthuc/pdf"
)

var (
	// ErrDocumentNotFound is returned when the document path does not exist
	ErrDocumentNotFound = errors.New("document not found")
	// ErrUnsupportedType is returned for file extensions no reader handles
	ErrUnsupportedType = errors.New("unsupported document type")
)

// DocumentType is a supported input format.
type DocumentType string

// Supported document types.
const (
	TypeText DocumentType = "txt"
	TypePDF  DocumentType = "pdf"
	TypeDOCX DocumentType = "docx"
	TypeHTML DocumentType = "html"
)

// DetectType maps a file name to its document type by extension.
func DetectType(name string) (DocumentType, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".txt", ".text", ".md":
		return TypeText, nil
	case ".pdf":
		return TypePDF, nil
	case ".docx":
		return TypeDOCX, nil
	case ".html", ".htm":
		return TypeHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
}

// ReadDocument returns the raw text of the document at path.
func ReadDocument(path string) (string, error) {
	docType, err := DetectType(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseDocument(docType, data)
}

// ParseDocument extracts raw text from document bytes of a known type.
func ParseDocument(docType DocumentType, data []byte) (string, error) {
	switch docType {
	case TypeText:
		return decodeText(data), nil
	case TypePDF:
		return pdfText(data)
	case TypeDOCX:
		return docxText(data)
	case TypeHTML:
		return fetch.DocumentText(decodeText(data))
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, docType)
	}
}

// ExtractText reads a document and returns both its raw and BasicClean text.
func ExtractText(path string) (raw, cleaned string, err error) {
	raw, err = ReadDocument(path)
	if err != nil {
		return "", "", err
	}
	return raw, BasicClean(raw), nil
}

func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	return buf.String(), nil
}

// docxText walks word/document.xml and emits paragraph text joined by newlines.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}

	var body io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to open document.xml: %w", err)
			}
			break
		}
	}
	if body == nil {
		return "", errors.New("no word/document.xml in DOCX")
	}
	defer func() { _ = body.Close() }()

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	dec := xml.NewDecoder(body)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.Join(paragraphs, "\n"), nil
}

// WriteParsed writes <name>_parsed.txt and <name>.meta.json into outDir.
func WriteParsed(outDir, name, cleaned string, meta *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, name+"_parsed.txt")
	if err := os.WriteFile(textPath, []byte(cleaned), 0644); err != nil {
		return fmt.Errorf("failed to write parsed text file: %w", err)
	}

	if meta == nil {
		return nil
	}
	metaJSON, err := meta.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, name+".meta.json"), metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}

// BaseName strips directory and extension from a path.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
