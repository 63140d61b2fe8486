// Package skills finds known skill names in free text.
package skills

import "strings"

// Extractor returns the skills mentioned in a text.
type Extractor interface {
	Extract(text string) []string
}

// Vocabulary is an ordered list of known skill names matched by
// case-insensitive substring search.
type Vocabulary struct {
	names []string
}

// NewVocabulary builds a vocabulary from names, dropping blanks and
// case-insensitive duplicates while keeping the first-seen casing.
func NewVocabulary(names ...[]string) *Vocabulary {
	v := &Vocabulary{}
	seen := make(map[string]struct{})
	for _, list := range names {
		for _, name := range list {
			name = strings.TrimSpace(name)
			key := strings.ToLower(name)
			if name == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			v.names = append(v.names, name)
		}
	}
	return v
}

// Names returns a copy of the vocabulary in order.
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

func (v *Vocabulary) Len() int { return len(v.names) }

// Extract returns every vocabulary entry contained in text, in vocabulary order.
//
// Matching is plain substring membership, so short names also match inside
// longer words ("Go" matches "Google Cloud"). That is the accepted tradeoff of
// a fixed vocabulary.
func (v *Vocabulary) Extract(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, name := range v.names {
		if strings.Contains(lower, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	return found
}

// Static is an Extractor returning a fixed list, for callers that already
// know the skills.
type Static []string

func (s Static) Extract(string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// DefaultVocabulary is the built-in skill database.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultSkills)
}

var defaultSkills = []string{
	// Programming languages
	"Python", "Java", "JavaScript", "TypeScript", "C++", "Go", "Rust",
	"Ruby", "PHP", "Swift", "Kotlin",

	// Web
	"React", "Angular", "Vue.js", "Node.js", "Django", "Flask",
	"FastAPI", "Spring Boot", "Express.js", "Next.js",

	// Cloud and DevOps
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes",
	"Terraform", "Jenkins", "CI/CD", "GitHub Actions",

	// Databases
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"DynamoDB", "Cassandra", "Elasticsearch",

	// Data and ML
	"Machine Learning", "Deep Learning", "NLP", "Computer Vision",
	"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy",

	// Soft skills
	"Leadership", "Project Management", "Agile", "Scrum",
	"Communication", "Problem Solving", "Team Collaboration",
}
