package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
)

// Advise asks the advisor for recommendations and attaches them to the
// report. A failing advisor is logged and recorded in AdviceError; the
// scores are left untouched either way.
func (a *Analyzer) Advise(ctx context.Context, advisor ai.Advisor, report *Report, in Input) {
	if advisor == nil || report == nil {
		return
	}

	recs, err := advisor.Advise(ctx, &ai.AdviceRequest{
		ReportID:      report.ID.String(),
		ResumeText:    in.ResumeText,
		JobText:       in.JobText,
		FinalScore:    report.Score.FinalScore,
		MatchedSkills: report.Gap.MatchedSkills,
		MissingSkills: report.Gap.MissingSkills,
		GapPercentage: report.Gap.GapPercentage,
	})
	if err != nil {
		a.logger.Warn("AI advice failed",
			zap.String("report_id", report.ID.String()),
			zap.Error(err),
		)
		report.AdviceError = err.Error()
		return
	}

	report.Recommendations = recs
	report.AdviceError = ""
}
