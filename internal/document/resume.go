package document

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section lengths in characters, counted from the heading keyword.
const (
	SummaryLimit    = 500
	ExperienceLimit = 1500
	EducationLimit  = 800
	SkillsLimit     = 500
)

var (
	summaryKeywords    = []string{"summary", "profile", "objective", "about me"}
	experienceKeywords = []string{"experience", "work history", "employment", "professional experience"}
	educationKeywords  = []string{"education", "academic", "qualification", "degree"}
	skillsKeywords     = []string{"skills", "technical skills", "competencies", "expertise"}

	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
)

// Sections holds rough resume sections. Each one starts at its heading
// keyword and runs for a fixed number of characters, so neighbouring
// sections usually overlap.
type Sections struct {
	Summary    string `json:"summary"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
}

type Contacts struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// ExtractSections slices text by heading keywords. Keywords are tried in a
// fixed order and the first one present wins, even if a later keyword
// appears earlier in the text. Missing sections are empty.
func ExtractSections(text string) Sections {
	sc := newSectionScanner(text)
	return Sections{
		Summary:    sc.section(SummaryLimit, summaryKeywords),
		Experience: sc.section(ExperienceLimit, experienceKeywords),
		Education:  sc.section(EducationLimit, educationKeywords),
		Skills:     sc.section(SkillsLimit, skillsKeywords),
	}
}

// ExtractContacts returns the distinct emails and phone numbers in text, in
// order of first appearance. The phone pattern is loose and also catches
// other digit groups such as year ranges.
func ExtractContacts(text string) Contacts {
	return Contacts{
		Emails: uniqueMatches(emailPattern, text),
		Phones: uniqueMatches(phonePattern, text),
	}
}

// sectionScanner keeps a rune-for-rune lower-cased copy of the text, so a
// keyword offset in the copy is a valid rune offset in the input.
type sectionScanner struct {
	runes []rune
	lower string
}

func newSectionScanner(text string) sectionScanner {
	return sectionScanner{
		runes: []rune(text),
		lower: strings.Map(unicode.ToLower, text),
	}
}

func (sc sectionScanner) section(limit int, keywords []string) string {
	for _, kw := range keywords {
		idx := strings.Index(sc.lower, kw)
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(sc.lower[:idx])
		end := min(start+limit, len(sc.runes))
		return string(sc.runes[start:end])
	}
	return ""
}

func uniqueMatches(re *regexp.Regexp, text string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, m := range re.FindAllString(text, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
