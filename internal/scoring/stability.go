package scoring

import "github.com/FluxWard/StabilityPipe/internal/models"

// Risk signal thresholds used by the stability classifier.
const (
	acuteStressThreshold       = 24
	acuteEmotionalityThreshold = 4.2
	burnoutConscThreshold      = 4.5
	burnoutDepressionThreshold = 15
	dysregSelfControlThreshold = 3.5
	dysregAnxietyThreshold     = 14
	dysregStressThreshold      = 18

	severeDepressionThreshold = 20
	severeAnxietyThreshold    = 14
	severeStressThreshold     = 25
	extremeEmotionality       = 4.5
	extremeLowConsc           = 2.0
	lowGlobalEI               = 3.0
)

// EvaluateStability runs the rule-based classifier over the computed scores.
// It is a total function: TEIQue scores are optional, and TEIQue-dependent
// signals default to false when absent.
func EvaluateStability(hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores) models.StabilityFlags {
	flags := models.StabilityFlags{OverallStability: models.StabilityStable}

	// Acute reactive state: high stress combined with high trait emotionality.
	if dass.Stress > acuteStressThreshold && hexaco.Emotionality > acuteEmotionalityThreshold {
		flags.AcuteReactiveState = true
	}

	// High-functioning burnout: high conscientiousness masking high depression.
	if hexaco.Conscientiousness > burnoutConscThreshold && dass.Depression > burnoutDepressionThreshold {
		flags.HighFunctioningBurnout = true
	}

	// Emotional dysregulation: low EI self-control with elevated anxiety or stress.
	if teique != nil && teique.SelfControl < dysregSelfControlThreshold &&
		(dass.Anxiety > dysregAnxietyThreshold || dass.Stress > dysregStressThreshold) {
		flags.EmotionalDysregulation = true
	}

	riskSignals := []bool{
		flags.AcuteReactiveState,
		flags.HighFunctioningBurnout,
		flags.EmotionalDysregulation,
		dass.Depression > severeDepressionThreshold,
		dass.Anxiety > severeAnxietyThreshold,
		dass.Stress > severeStressThreshold,
		hexaco.Emotionality > extremeEmotionality,
		hexaco.Conscientiousness < extremeLowConsc,
		teique != nil && teique.GlobalEI < lowGlobalEI,
	}

	riskCount := 0
	for _, signal := range riskSignals {
		if signal {
			riskCount++
		}
	}

	switch {
	case riskCount >= 4:
		flags.OverallStability = models.StabilityCritical
	case riskCount >= 2:
		flags.OverallStability = models.StabilityAtRisk
	default:
		flags.OverallStability = models.StabilityStable
	}

	return flags
}
