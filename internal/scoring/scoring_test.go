package scoring

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		resume        []string
		job           []string
		score         float64
		matchedCount  int
		totalRequired int
		matched       []string
	}{
		{
			name:          "empty resume",
			resume:        nil,
			job:           []string{"Python", "AWS"},
			score:         0,
			matchedCount:  0,
			totalRequired: 2,
			matched:       []string{},
		},
		{
			name:          "keeps job casing and order",
			resume:        []string{"aws", "python"},
			job:           []string{"Python", "AWS", "Docker"},
			score:         66.67,
			matchedCount:  2,
			totalRequired: 3,
			matched:       []string{"Python", "AWS"},
		},
		{
			name:          "no required skills",
			resume:        []string{"Go", "Rust"},
			job:           []string{},
			score:         0,
			matchedCount:  0,
			totalRequired: 0,
			matched:       []string{},
		},
		{
			name:          "duplicates count once",
			resume:        []string{"GO"},
			job:           []string{"Go", "go", "Kubernetes"},
			score:         50,
			matchedCount:  1,
			totalRequired: 2,
			matched:       []string{"Go", "go"},
		},
		{
			name:          "full match",
			resume:        []string{"SQL", "Redis"},
			job:           []string{"redis", "sql"},
			score:         100,
			matchedCount:  2,
			totalRequired: 2,
			matched:       []string{"redis", "sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MatchKeywords(tt.resume, tt.job)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.matchedCount, got.MatchedCount)
			assert.Equal(t, tt.totalRequired, got.TotalRequired)
			assert.Equal(t, tt.matched, got.MatchedSkills)
			assert.GreaterOrEqual(t, got.Score, 0.0)
			assert.LessOrEqual(t, got.Score, 100.0)
		})
	}
}

func TestAnalyzeGap(t *testing.T) {
	t.Parallel()

	got := AnalyzeGap([]string{"Python"}, []string{"python", "Docker"})
	assert.Equal(t, []string{"Docker"}, got.MissingSkills)
	assert.Equal(t, []string{"Python"}, got.MatchedSkills)
	assert.Equal(t, 1, got.MissingCount)
	assert.Equal(t, 1, got.MatchedCount)
	assert.Equal(t, 2, got.TotalRequired)
	assert.Equal(t, 50.0, got.GapPercentage)
}

func TestAnalyzeGapCasingDiffersFromMatcher(t *testing.T) {
	t.Parallel()

	resume := []string{"kubernetes", "Go"}
	job := []string{"Go", "Kubernetes", "Terraform"}

	match := MatchKeywords(resume, job)
	gap := AnalyzeGap(resume, job)

	assert.Equal(t, []string{"Go", "Kubernetes"}, match.MatchedSkills)
	assert.Equal(t, []string{"kubernetes", "Go"}, gap.MatchedSkills)
	assert.Equal(t, []string{"Terraform"}, gap.MissingSkills)
	assert.Equal(t, 33.33, gap.GapPercentage)
}

func TestAnalyzeGapNoRequirements(t *testing.T) {
	t.Parallel()

	got := AnalyzeGap([]string{"Go"}, nil)
	assert.Empty(t, got.MissingSkills)
	assert.Empty(t, got.MatchedSkills)
	assert.Equal(t, 0, got.TotalRequired)
	assert.Equal(t, 0.0, got.GapPercentage)
}

func TestAnalyzeGapAllMissing(t *testing.T) {
	t.Parallel()

	got := AnalyzeGap(nil, []string{"AWS", "Azure", "aws"})
	assert.Equal(t, []string{"AWS", "Azure", "aws"}, got.MissingSkills)
	assert.Equal(t, 3, got.MissingCount)
	assert.Equal(t, 3, got.TotalRequired)
	assert.Equal(t, 100.0, got.GapPercentage)
}

func TestCombine(t *testing.T) {
	t.Parallel()

	got := Combine(80, 60, Weights{Similarity: 0.6, Keyword: 0.4})
	assert.Equal(t, 72.0, got.FinalScore)
	assert.Equal(t, 80.0, got.SimilarityScore)
	assert.Equal(t, 60.0, got.KeywordScore)
	assert.Equal(t, DefaultWeights(), got.Weights)
}

func TestCombineDoesNotClampWeights(t *testing.T) {
	t.Parallel()

	got := Combine(90, 80, Weights{Similarity: 1, Keyword: 1})
	assert.Equal(t, 170.0, got.FinalScore)

	got = Combine(50, 50, Weights{Similarity: -1, Keyword: 0})
	assert.Equal(t, -50.0, got.FinalScore)
}

func TestRoundingTiesToEven(t *testing.T) {
	t.Parallel()

	job := make([]string, 32)
	for i := range job {
		job[i] = fmt.Sprintf("skill%02d", i)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"keyword score 1 of 32", MatchKeywords(job[:1], job).Score, 3.12},
		{"keyword score 3 of 32", MatchKeywords(job[:3], job).Score, 9.38},
		{"gap 1 of 32 missing", AnalyzeGap(job[1:], job).GapPercentage, 3.12},
		{"gap 5 of 32 missing", AnalyzeGap(job[5:], job).GapPercentage, 15.62},
		{"combine tie", Combine(12.25, 0, Weights{Similarity: 0.5, Keyword: 0.5}).FinalScore, 6.12},
		{"combine no tie", Combine(66.67, 50, DefaultWeights()).FinalScore, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestSimilaritySelf(t *testing.T) {
	t.Parallel()

	text := "Senior backend engineer with Kubernetes, PostgreSQL and machine learning experience."
	got := Similarity(text, text, DefaultOptions())

	require.True(t, got.Succeeded)
	assert.InDelta(t, 100.0, got.Score, 0.01)
	assert.Empty(t, got.FailureReason)
	assert.NoError(t, got.Err())
}

func TestSimilarityEmptyDocument(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		resume string
		job    string
		doc    string
	}{
		{name: "empty resume", resume: "", job: "python developer", doc: DocumentResume},
		{name: "blank job", resume: "python developer", job: "  \n\t", doc: DocumentJob},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Similarity(tc.resume, tc.job, DefaultOptions())
			assert.False(t, got.Succeeded)
			assert.Equal(t, 0.0, got.Score)
			assert.NotEmpty(t, got.FailureReason)
			require.ErrorIs(t, got.Err(), ErrEmptyDocument)

			var degenerate *DegenerateInputError
			require.True(t, errors.As(got.Err(), &degenerate))
			assert.Equal(t, tc.doc, degenerate.Document)
		})
	}
}

func TestSimilarityStopWordsOnly(t *testing.T) {
	t.Parallel()

	got := Similarity("the and of a", "it is what it is", DefaultOptions())
	assert.False(t, got.Succeeded)
	assert.Equal(t, 0.0, got.Score)
	assert.ErrorIs(t, got.Err(), ErrEmptyVocabulary)
}

func TestSimilarityZeroVector(t *testing.T) {
	t.Parallel()

	got := Similarity("the and of a", "distributed systems engineer", DefaultOptions())
	assert.False(t, got.Succeeded)
	assert.ErrorIs(t, got.Err(), ErrZeroVector)
	assert.Contains(t, got.FailureReason, DocumentResume)
}

func TestSimilarityDisjoint(t *testing.T) {
	t.Parallel()

	got := Similarity("kubernetes terraform", "accounting payroll", DefaultOptions())
	require.True(t, got.Succeeded)
	assert.Equal(t, 0.0, got.Score)
}

func TestSimilarityPartialOverlap(t *testing.T) {
	t.Parallel()

	resume := "Python developer building machine learning pipelines on AWS"
	job := "Looking for a Python engineer with machine learning and Docker"
	got := Similarity(resume, job, DefaultOptions())

	require.True(t, got.Succeeded)
	assert.Greater(t, got.Score, 0.0)
	assert.Less(t, got.Score, 100.0)
}

func TestSimilarityBigramsCaptureWordOrder(t *testing.T) {
	t.Parallel()

	resume := "machine learning research"
	job := "learning machine research"

	unigrams := DefaultOptions()
	unigrams.NGramMax = 1

	withUnigrams := Similarity(resume, job, unigrams)
	withBigrams := Similarity(resume, job, DefaultOptions())

	require.True(t, withUnigrams.Succeeded)
	require.True(t, withBigrams.Succeeded)
	assert.InDelta(t, 100.0, withUnigrams.Score, 0.01)
	assert.Less(t, withBigrams.Score, withUnigrams.Score)
}

func TestSimilarityExtraStopWords(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.StopWords = []string{"Engineer"}

	got := Similarity("engineer", "engineer engineer", opts)
	assert.False(t, got.Succeeded)
	assert.ErrorIs(t, got.Err(), ErrEmptyVocabulary)
}

func TestSimilarityIdempotent(t *testing.T) {
	t.Parallel()

	resume := strings.Repeat("golang microservices grpc kafka ", 20)
	job := "We need microservices experience with kafka and postgres"

	first := Similarity(resume, job, DefaultOptions())
	second := Similarity(resume, job, DefaultOptions())
	assert.Equal(t, first, second)

	assert.Equal(t, MatchKeywords([]string{"Go"}, []string{"go"}), MatchKeywords([]string{"Go"}, []string{"go"}))
	assert.Equal(t, AnalyzeGap([]string{"Go"}, []string{"Rust"}), AnalyzeGap([]string{"Go"}, []string{"Rust"}))
	assert.Equal(t, Combine(1, 2, DefaultWeights()), Combine(1, 2, DefaultWeights()))
}

func TestBuildVocabularyCapsFeatures(t *testing.T) {
	t.Parallel()

	counts := []map[string]int{
		{"alpha": 3, "beta": 1, "gamma": 2},
		{"beta": 1, "delta": 1},
	}

	assert.Equal(t, []string{"alpha", "beta"}, buildVocabulary(counts, 2))
	assert.Equal(t, []string{"alpha", "beta", "delta", "gamma"}, buildVocabulary(counts, 10))
}

func TestTermCounts(t *testing.T) {
	t.Parallel()

	got := termCounts("The Machine-Learning engineer, a C# dev", stopWordSet(nil), 1, 2)
	assert.Equal(t, map[string]int{
		"machine":           1,
		"learning":          1,
		"engineer":          1,
		"dev":               1,
		"machine learning":  1,
		"learning engineer": 1,
		"engineer dev":      1,
	}, got)
}
