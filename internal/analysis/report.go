package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/scoring"
)

type Verdict string

const (
	VerdictStrong   Verdict = "strong"
	VerdictModerate Verdict = "moderate"
	VerdictWeak     Verdict = "weak"
)

// VerdictFor buckets a final score: 70 and above is strong, 50 and above moderate.
func VerdictFor(score float64) Verdict {
	switch {
	case score >= 70:
		return VerdictStrong
	case score >= 50:
		return VerdictModerate
	default:
		return VerdictWeak
	}
}

type Report struct {
	ID           uuid.UUID                `json:"id"`
	CreatedAt    time.Time                `json:"created_at"`
	ResumeSkills []string                 `json:"resume_skills"`
	JobSkills    []string                 `json:"job_skills"`
	Similarity   scoring.SimilarityResult `json:"similarity"`
	Keywords     scoring.MatchResult      `json:"keywords"`
	Gap          scoring.GapResult        `json:"gap"`
	Score        scoring.FinalScore       `json:"score"`
	Verdict      Verdict                  `json:"verdict"`

	Recommendations *ai.Recommendations `json:"recommendations,omitempty"`
	AdviceError     string              `json:"advice_error,omitempty"`
}

// DumpToTmpFile writes the report as indented JSON to a new temp file and
// returns its name. The file is removed again if writing or closing fails.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "skillgap_report_*.json")
	if err != nil {
		return "", err
	}

	if err := r.writeAndClose(file); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("dump report to %s: %w", file.Name(), err)
	}
	return file.Name(), nil
}

// writeAndClose writes the JSON report and closes wc. A write error wins over
// a close error.
func (r *Report) writeAndClose(wc io.WriteCloser) error {
	if err := r.WriteJSON(wc); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders a human readable summary.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Report %s\n", r.ID)
	fmt.Fprintf(&b, "Final score:      %6.2f (%s)\n", r.Score.FinalScore, r.Verdict)
	fmt.Fprintf(&b, "Text similarity:  %6.2f (weight %.2f)", r.Similarity.Score, r.Score.Weights.Similarity)
	if !r.Similarity.Succeeded {
		fmt.Fprintf(&b, " [%s]", r.Similarity.FailureReason)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Keyword match:    %6.2f (weight %.2f, %d of %d required)\n",
		r.Keywords.Score, r.Score.Weights.Keyword, r.Keywords.MatchedCount, r.Keywords.TotalRequired)
	fmt.Fprintf(&b, "Skill gap:        %6.2f%%\n", r.Gap.GapPercentage)
	fmt.Fprintf(&b, "Matched skills:   %s\n", joinOrNone(r.Gap.MatchedSkills))
	fmt.Fprintf(&b, "Missing skills:   %s\n", joinOrNone(r.Gap.MissingSkills))

	if r.Recommendations != nil {
		b.WriteString("\nRecommendations\n")
		if r.Recommendations.Summary != "" {
			fmt.Fprintf(&b, "  %s\n", r.Recommendations.Summary)
		}
		if len(r.Recommendations.Priorities) > 0 {
			fmt.Fprintf(&b, "  Learn first: %s\n", strings.Join(r.Recommendations.Priorities, ", "))
		}
		for _, res := range r.Recommendations.Resources {
			fmt.Fprintf(&b, "  - %s: %s\n", res.Skill, res.Suggestion)
		}
		for _, tip := range r.Recommendations.ResumeTips {
			fmt.Fprintf(&b, "  * %s\n", tip)
		}
	}
	if r.AdviceError != "" {
		fmt.Fprintf(&b, "\nRecommendations unavailable: %s\n", r.AdviceError)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
