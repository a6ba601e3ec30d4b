package engine

import (
	"fmt"
	"strings"

	"assessor/internal/document"
	"assessor/internal/question"
	"assessor/internal/risk"
)

// Risk factor prefixes, paired with the recommendation each one triggers.
const (
	factorNoEvidence  = "No evidence for: "
	factorNotInPlace  = "Control not in place: "
	factorLowMaturity = "Low maturity (%s) for: "
	factorAuxiliary   = "Relies on fourth-party evidence only: "
)

// riskFactors lists the weaknesses behind a score and the follow-ups that
// address them. The first recommendation always reflects the overall level.
func riskFactors(resolutions []resolution, level risk.Level) ([]string, []string) {
	factors := []string{}
	recommendations := []string{levelRecommendation(level)}
	for _, res := range resolutions {
		q := res.question
		switch {
		case res.conservative:
			factors = append(factors, factorNoEvidence+q.Text)
			recommendations = append(recommendations, "Request documentation demonstrating: "+q.Text)
			continue
		case q.Type == question.TypeBoolean && !res.answer.Bool:
			factors = append(factors, factorNotInPlace+q.Text)
			recommendations = append(recommendations, "Require a remediation plan addressing: "+q.Text)
		case q.Type == question.TypeChoice && lowMaturity(q, res.answer):
			factors = append(factors, fmt.Sprintf(factorLowMaturity, res.answer.Text)+q.Text)
			recommendations = append(recommendations, "Agree on a maturity improvement target for: "+q.Text)
		}
		if res.auxiliary {
			factors = append(factors, factorAuxiliary+q.Text)
			recommendations = append(recommendations, "Obtain first-party evidence for: "+q.Text)
		}
	}
	return factors, recommendations
}

// lowMaturity reports whether the selected option sits in the conservative
// half of the option list.
func lowMaturity(q question.Question, answer question.Answer) bool {
	index := q.OptionIndex(answer.Text)
	if index < 0 || len(q.Options) < 2 {
		return true
	}
	return float64(index)/float64(len(q.Options)-1) < 0.5
}

func levelRecommendation(level risk.Level) string {
	switch level {
	case risk.LevelLow:
		return "Maintain standard monitoring and reassess at the next review cycle."
	case risk.LevelMedium:
		return "Track the identified gaps and reassess once they are addressed."
	case risk.LevelMediumHigh:
		return "Escalate for review and agree on remediation timelines before approval."
	default:
		return "Do not approve without a documented remediation plan and executive sign-off."
	}
}

// narrative summarizes a run in plain sentences.
func narrative(summary document.Summary, resolutions []resolution, score risk.Score, failure *Failure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d document(s)", summary.Submitted)
	if summary.Submitted > 0 {
		fmt.Fprintf(&b, ": %d attached directly, %d read as text", summary.Attached, summary.Extracted)
	}
	b.WriteString(".")
	if len(summary.Failed) > 0 {
		fmt.Fprintf(&b, " Could not read: %s.", strings.Join(summary.Failed, ", "))
	}
	if len(summary.Unsupported) > 0 {
		fmt.Fprintf(&b, " Unsupported format: %s.", strings.Join(summary.Unsupported, ", "))
	}

	if failure != nil {
		switch failure.Kind {
		case FailureUnsupportedInput:
			fmt.Fprintf(&b, " No document could be analyzed. Supported formats: %s.", strings.Join(document.SupportedFormats(), ", "))
		case FailureGeneration:
			fmt.Fprintf(&b, " The analysis service failed (%s).", failure.Reason)
		case FailureParse:
			b.WriteString(" The analysis response could not be interpreted.")
		}
		b.WriteString(" Every question was answered conservatively.")
	} else {
		supported, auxiliary := 0, 0
		for _, res := range resolutions {
			if !res.conservative {
				supported++
			}
			if res.auxiliary {
				auxiliary++
			}
		}
		fmt.Fprintf(&b, " %d of %d question(s) are supported by validated evidence.", supported, len(resolutions))
		if auxiliary > 0 {
			fmt.Fprintf(&b, " %d answer(s) rely on fourth-party documents only.", auxiliary)
		}
	}
	fmt.Fprintf(&b, " Overall risk is %s (score %d of 100).", score.Level, score.Value)
	return b.String()
}
