package risk

import (
	"math"

	"assessor/internal/question"
)

// Level is a discrete risk rating.
type Level string

const (
	LevelLow        Level = "Low"
	LevelMedium     Level = "Medium"
	LevelMediumHigh Level = "MediumHigh"
	LevelHigh       Level = "High"
)

// choiceScale is the credit span of a choice question.
const choiceScale = 4.0

// Score is the aggregate outcome of a question set.
type Score struct {
	Value       int
	Level       Level
	Numerator   float64
	Denominator float64
}

// Aggregate scores resolved answers. Boolean questions earn their weight
// when affirmative. Choice questions earn weight*4 scaled by the position
// of the selected option, with options ordered from most conservative to
// most favorable, so the first option earns nothing. Free-text questions
// do not count. A missing or unknown answer earns nothing.
func Aggregate(questions []question.Question, answers map[string]question.Answer) Score {
	var numerator, denominator float64
	for _, q := range questions {
		weight := q.Weight
		if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			continue
		}
		answer, ok := answers[q.ID]
		switch q.Type {
		case question.TypeBoolean:
			denominator += weight
			if ok && answer.Type == question.TypeBoolean && answer.Bool {
				numerator += weight
			}
		case question.TypeChoice:
			denominator += weight * choiceScale
			if !ok || len(q.Options) < 2 {
				continue
			}
			index := q.OptionIndex(answer.Text)
			if index < 0 {
				continue
			}
			numerator += weight * (float64(index) / float64(len(q.Options)-1)) * choiceScale
		}
	}
	value := 0
	if denominator > 0 {
		value = clampScore(int(math.Round(100 * numerator / denominator)))
	}
	return Score{Value: value, Level: LevelFor(value), Numerator: numerator, Denominator: denominator}
}

// LevelFor maps a 0-100 score to a risk level. Higher scores mean lower risk.
func LevelFor(score int) Level {
	switch {
	case score >= 75:
		return LevelLow
	case score >= 50:
		return LevelMedium
	case score >= 25:
		return LevelMediumHigh
	default:
		return LevelHigh
	}
}

func clampScore(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
