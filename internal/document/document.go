// Package document turns resume and job description files into plain text.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMEText     = "text/plain"
	MIMEMarkdown = "text/markdown"
	MIMEPDF      = "application/pdf"
	MIMEDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrEmptyText       = errors.New("document contains no text")
)

type Document struct {
	Path  string `json:"path,omitempty"`
	MIME  string `json:"mime"`
	Text  string `json:"text"`
	Pages int    `json:"pages,omitempty"`
}

// Read loads the file at path and extracts its text.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return ReadBytes(path, data)
}

// ReadBytes extracts text from data that came from a file called name, such
// as an upload. The name is only used to resolve the type when sniffing is
// inconclusive.
func ReadBytes(name string, data []byte) (*Document, error) {
	doc, err := FromBytes(detect(name, data), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	doc.Path = name
	return doc, nil
}

// FromBytes extracts text from data of the given MIME type.
func FromBytes(mime string, data []byte) (*Document, error) {
	doc := &Document{MIME: mime}

	var err error
	switch mime {
	case MIMEText, MIMEMarkdown:
		doc.Text = string(data)
	case MIMEPDF:
		doc.Text, doc.Pages, err = extractPDFText(data)
	case MIMEDocx:
		doc.Text, err = extractDocxText(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
	if err != nil {
		return nil, err
	}

	doc.Text = strings.TrimSpace(doc.Text)
	if doc.Text == "" {
		return nil, ErrEmptyText
	}
	return doc, nil
}

// detect sniffs the content first and falls back to the file extension for
// formats the sniffer reports as generic containers.
func detect(path string, data []byte) string {
	m := mimetype.Detect(data)
	switch {
	case m.Is(MIMEPDF):
		return MIMEPDF
	case m.Is(MIMEDocx):
		return MIMEDocx
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return MIMEMarkdown
	case ".txt", ".text":
		return MIMEText
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDocx
	}

	for mt := m; mt != nil; mt = mt.Parent() {
		if mt.Is(MIMEText) {
			return MIMEText
		}
	}
	return m.String()
}

func extractPDFText(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read pdf: %w", err)
	}

	var builder strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("pdf page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), pages, nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return wordprocessingText(doc.Editable().GetContent())
}

// wordprocessingText keeps the character data of a WordprocessingML body,
// one line per paragraph.
func wordprocessingText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var builder strings.Builder
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode docx body: %w", err)
		}

		switch t := token.(type) {
		case xml.CharData:
			builder.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				builder.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				builder.WriteString("\n")
			}
		}
	}
	return builder.String(), nil
}
