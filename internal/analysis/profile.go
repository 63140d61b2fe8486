package analysis

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/document"
	"github.com/spigell/skillgap/internal/utils"
)

// Profile is what can be read off a single document without a job to compare
// against.
type Profile struct {
	Path     string            `json:"path,omitempty"`
	MIME     string            `json:"mime"`
	Pages    int               `json:"pages,omitempty"`
	Chars    int               `json:"chars"`
	Words    int               `json:"words"`
	Skills   []string          `json:"skills"`
	Contacts document.Contacts `json:"contacts"`
	Sections document.Sections `json:"sections"`
}

// Profile extracts skills, contacts and sections from doc.
func (a *Analyzer) Profile(doc *document.Document) *Profile {
	p := &Profile{
		Path:     doc.Path,
		MIME:     doc.MIME,
		Pages:    doc.Pages,
		Chars:    utf8.RuneCountInString(doc.Text),
		Words:    len(strings.Fields(doc.Text)),
		Skills:   a.extractor.Extract(doc.Text),
		Contacts: document.ExtractContacts(doc.Text),
		Sections: document.ExtractSections(doc.Text),
	}

	a.logger.Debug("document profiled",
		zap.String("mime", p.MIME),
		zap.Int("chars", p.Chars),
		zap.Int("skills", len(p.Skills)),
		zap.Int("emails", len(p.Contacts.Emails)),
		zap.Int("phones", len(p.Contacts.Phones)),
	)
	return p
}

// WriteText prints the profile with every section cut to preview runes.
func (p *Profile) WriteText(w io.Writer, preview int) error {
	var b strings.Builder

	if p.Path != "" {
		fmt.Fprintf(&b, "path:  %s\n", p.Path)
	}
	fmt.Fprintf(&b, "mime:  %s\n", p.MIME)
	if p.Pages > 0 {
		fmt.Fprintf(&b, "pages: %d\n", p.Pages)
	}
	fmt.Fprintf(&b, "chars: %d\n", p.Chars)
	fmt.Fprintf(&b, "words: %d\n\n", p.Words)

	fmt.Fprintf(&b, "Skills: %s\n", joinOrNone(p.Skills))
	fmt.Fprintf(&b, "Emails: %s\n", joinOrNone(p.Contacts.Emails))
	fmt.Fprintf(&b, "Phones: %s\n", joinOrNone(p.Contacts.Phones))

	for _, s := range []struct{ title, text string }{
		{"Summary", p.Sections.Summary},
		{"Experience", p.Sections.Experience},
		{"Education", p.Sections.Education},
		{"Skills section", p.Sections.Skills},
	} {
		if s.text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n  %s\n", s.title, utils.Preview(s.text, preview))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
