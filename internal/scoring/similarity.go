package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

var (
	ErrEmptyDocument   = errors.New("empty document")
	ErrEmptyVocabulary = errors.New("empty vocabulary; perhaps the documents only contain stop words")
	ErrZeroVector      = errors.New("document has no usable features")
)

const (
	DocumentResume = "resume"
	DocumentJob    = "job"
)

// DegenerateInputError reports why a similarity vector space could not be built.
type DegenerateInputError struct {
	// Document is "resume" or "job", empty when the corpus as a whole is unusable.
	Document string
	Err      error
}

func (e *DegenerateInputError) Error() string {
	if e.Document == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Document, e.Err)
}

func (e *DegenerateInputError) Unwrap() error { return e.Err }

// SimilarityResult is the outcome of Similarity. A failed computation is not
// an error for the caller: Succeeded is false and Score is 0.
type SimilarityResult struct {
	Score         float64 `json:"score"`
	Succeeded     bool    `json:"succeeded"`
	FailureReason string  `json:"failure_reason,omitempty"`

	err error
}

// Err returns the *DegenerateInputError behind a failed result, or nil.
func (r SimilarityResult) Err() error { return r.err }

func failedSimilarity(document string, cause error) SimilarityResult {
	err := &DegenerateInputError{Document: document, Err: cause}
	return SimilarityResult{
		Score:         0,
		Succeeded:     false,
		FailureReason: err.Error(),
		err:           err,
	}
}

// Similarity returns the TF-IDF cosine similarity of the two documents scaled
// to [0,100] and rounded to 2 decimals.
//
// The two texts form the whole corpus. Terms are unigrams through
// opts.NGramMax-grams of lower-cased word tokens with stop words removed; the
// vocabulary keeps the opts.MaxFeatures most frequent terms. IDF is smoothed:
// ln((1+n)/(1+df)) + 1.
//
// Empty input, an empty vocabulary or a document without any remaining
// feature produce a failed result instead of a panic.
func Similarity(resumeText, jobText string, opts Options) SimilarityResult {
	opts = opts.withDefaults()

	if strings.TrimSpace(resumeText) == "" {
		return failedSimilarity(DocumentResume, ErrEmptyDocument)
	}
	if strings.TrimSpace(jobText) == "" {
		return failedSimilarity(DocumentJob, ErrEmptyDocument)
	}

	stop := stopWordSet(opts.StopWords)
	counts := [2]map[string]int{
		termCounts(resumeText, stop, opts.NGramMin, opts.NGramMax),
		termCounts(jobText, stop, opts.NGramMin, opts.NGramMax),
	}

	vocabulary := buildVocabulary(counts[:], opts.MaxFeatures)
	if len(vocabulary) == 0 {
		return failedSimilarity("", ErrEmptyVocabulary)
	}

	idf := smoothIDF(vocabulary, counts[:])

	resumeVec := tfidfVector(vocabulary, idf, counts[0])
	if resumeVec == nil {
		return failedSimilarity(DocumentResume, ErrZeroVector)
	}
	jobVec := tfidfVector(vocabulary, idf, counts[1])
	if jobVec == nil {
		return failedSimilarity(DocumentJob, ErrZeroVector)
	}

	var dot float64
	for i := range resumeVec {
		dot += resumeVec[i] * jobVec[i]
	}

	// Both vectors are unit length, rounding may push the product just past 1.
	dot = math.Min(math.Max(dot, 0), 1)

	return SimilarityResult{
		Score:     round2(dot * 100),
		Succeeded: true,
	}
}

// tokenize lower-cases text and returns runs of at least two word characters
// (letters, digits or underscore).
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// termCounts counts n-grams built over the stop-word-filtered token stream.
func termCounts(text string, stop map[string]struct{}, minN, maxN int) map[string]int {
	tokens := tokenize(text)
	kept := tokens[:0]
	for _, t := range tokens {
		if _, ok := stop[t]; !ok {
			kept = append(kept, t)
		}
	}

	counts := make(map[string]int)
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(kept); i++ {
			counts[strings.Join(kept[i:i+n], " ")]++
		}
	}
	return counts
}

// buildVocabulary returns the sorted vocabulary limited to the maxFeatures
// terms with the highest corpus frequency. Ties go to the lexicographically
// smaller term.
func buildVocabulary(counts []map[string]int, maxFeatures int) []string {
	total := make(map[string]int)
	for _, doc := range counts {
		for term, c := range doc {
			total[term] += c
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}

	if len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}

	sort.Strings(terms)
	return terms
}

func smoothIDF(vocabulary []string, counts []map[string]int) []float64 {
	n := float64(len(counts))
	idf := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		df := 0
		for _, doc := range counts {
			if doc[term] > 0 {
				df++
			}
		}
		idf[i] = math.Log((1+n)/(1+float64(df))) + 1
	}
	return idf
}

// tfidfVector returns the L2-normalized vector of doc, or nil when it is all zeros.
func tfidfVector(vocabulary []string, idf []float64, doc map[string]int) []float64 {
	vec := make([]float64, len(vocabulary))
	var norm float64
	for i, term := range vocabulary {
		v := float64(doc[term]) * idf[i]
		vec[i] = v
		norm += v * v
	}
	if norm == 0 {
		return nil
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
