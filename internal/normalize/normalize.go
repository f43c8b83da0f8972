// Package normalize converts the untrusted output of the narrative generator
// into a guaranteed-valid StabilityAnalysis.
//
// The input is whatever came back from the external generative call, decoded
// as an untyped JSON value. It is treated as hostile: any shape (nil, wrong
// types, deeply nested, arrays, adversarially large) must produce a fully
// typed analysis record, deterministically derived from the trusted DASS
// scores wherever the payload cannot be used. Analysis never panics and
// never returns a record with an absent or mistyped field.
package normalize

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/FluxWard/StabilityPipe/internal/models"
)

// maxSearchDepth bounds the nested search for the analysis object. The depth
// counter is passed by value, so traversal terminates on any input.
const maxSearchDepth = 3

// candidateKeys is the fixed, ordered list of container keys searched for a
// nested analysis object.
var candidateKeys = []string{"analysis", "stabilityAnalysis", "stability_analysis", "result", "data", "response"}

// maxDassTotal is the theoretical maximum of the summed DASS-21 scale scores
// (3 scales x 7 items x domain max 3 x 2).
const maxDassTotal = 126

// Fixed narrative defaults used when the payload carries nothing usable.
const (
	defaultSummary        = "Analysis complete. Review your scores below for detailed insights."
	defaultRecommendation = "Continue monitoring your wellbeing patterns over time."
	fallbackInteraction   = "Analysis based on psychometric score ranges."
)

// Thresholds for deriving classification and flags from trusted DASS scores.
const (
	criticalTotalThreshold  = 60
	atRiskTotalThreshold    = 30
	elevatedDepressionFloor = 14
	elevatedAnxietyFloor    = 10
	elevatedStressFloor     = 19
)

// Analysis normalizes an untrusted payload against the trusted DASS scores.
// It is total: for any raw value it terminates, allocates bounded memory,
// and returns a schema-complete StabilityAnalysis.
func Analysis(raw any, dass models.DassScores) models.StabilityAnalysis {
	source, ok := locateAnalysisObject(raw)
	if !ok {
		slog.Debug("normalize.Analysis: payload is not an object, using fallback synthesis")
		return Fallback(dass)
	}

	total := dass.Total()

	score, scoreOK := asScore(extract(source, "stabilityScore", "stability_score"))
	if !scoreOK {
		score = deriveScore(total, 0)
	}
	// A score of exactly 0 is reserved as an invalid-payload sentinel. Under
	// a non-maximal affect load it is re-derived with a floor of 1 so it can
	// never shadow a genuine boundary value.
	if score == 0 && total < maxDassTotal {
		score = deriveScore(total, 1)
	}
	if score == 0 {
		slog.Debug("normalize.Analysis: sentinel zero score, using fallback synthesis", "dass_total", total)
		return Fallback(dass)
	}

	analysis := models.StabilityAnalysis{
		OverallStability:              normalizeStabilityLabel(extract(source, "overallStability", "overall_stability"), total),
		StabilityScore:                score,
		RiskFlags:                     normalizeRiskFlags(extract(source, "riskFlags", "risk_flags"), dass),
		Summary:                       stringOr(extract(source, "summary", "summary"), defaultSummary),
		PersonalityMoodInteraction:    stringOr(extract(source, "personalityMoodInteraction", "personality_mood_interaction"), ""),
		EmotionalIntelligenceInsights: stringOr(extract(source, "emotionalIntelligenceInsights", "emotional_intelligence_insights"), ""),
		Recommendations:               normalizeRecommendations(extract(source, "recommendations", "recommendations")),
		ClinicalNotes:                 stringOr(extract(source, "clinicalNotes", "clinical_notes"), ""),
	}
	return analysis
}

// Fallback synthesizes a complete analysis purely from the trusted DASS
// scores. It is the single routine behind both failure modes (missing input
// and invalid-but-present input), so identical trusted scores always yield
// identical output.
func Fallback(dass models.DassScores) models.StabilityAnalysis {
	total := dass.Total()
	return models.StabilityAnalysis{
		OverallStability:              stabilityFromTotal(total),
		StabilityScore:                deriveScore(total, 0),
		RiskFlags:                     synthesizeRiskFlags(dass),
		Summary:                       defaultSummary,
		PersonalityMoodInteraction:    fallbackInteraction,
		EmotionalIntelligenceInsights: "",
		Recommendations:               []string{defaultRecommendation},
		ClinicalNotes:                 "",
	}
}

// locateAnalysisObject finds the object carrying recognized sentinel fields,
// searching at most maxSearchDepth levels through the candidate keys. The
// first match wins; if none is found but raw itself is an object, raw is the
// candidate. Non-object inputs report false.
func locateAnalysisObject(raw any) (map[string]any, bool) {
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	if found := findAnalysisObject(root, 0); found != nil {
		return found, true
	}
	return root, true
}

func findAnalysisObject(obj map[string]any, depth int) map[string]any {
	if depth > maxSearchDepth {
		return nil
	}
	if hasSentinelField(obj) {
		return obj
	}
	for _, key := range candidateKeys {
		if child, ok := obj[key].(map[string]any); ok {
			if found := findAnalysisObject(child, depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

func hasSentinelField(obj map[string]any) bool {
	for _, key := range []string{"overallStability", "overall_stability", "stabilityScore", "stability_score"} {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

// extract reads a logical field by its primary (camel-case) spelling, then
// by its snake-case fallback. The upstream generator is not consistent about
// casing, and is not trusted to be.
func extract(source map[string]any, primary, fallback string) any {
	if v, ok := source[primary]; ok {
		return v
	}
	return source[fallback]
}

// asScore validates a raw stability score: it must parse to a finite number
// in [0,100], and is rounded to an integer.
func asScore(v any) (int, bool) {
	f, ok := asNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > 100 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// asNumber accepts JSON numbers and numeric strings.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// deriveScore computes the deterministic stability score from the summed
// affect load: clamp(0, 100, 100 - round(total * 0.8)), with a floor.
func deriveScore(total int, floor int) int {
	score := 100 - int(math.Round(float64(total)*0.8))
	if score < floor {
		score = floor
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func stabilityFromTotal(total int) models.Stability {
	switch {
	case total >= criticalTotalThreshold:
		return models.StabilityCritical
	case total >= atRiskTotalThreshold:
		return models.StabilityAtRisk
	default:
		return models.StabilityStable
	}
}

// normalizeStabilityLabel matches the raw value against the three canonical
// labels, case-insensitively and ignoring punctuation. Anything else derives
// the label from the trusted affect total.
func normalizeStabilityLabel(v any, total int) models.Stability {
	if s, ok := v.(string); ok {
		cleaned := strings.TrimSpace(strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || r == ' ' {
				return r
			}
			if r >= 'A' && r <= 'Z' {
				return r + ('a' - 'A')
			}
			return -1
		}, s))
		switch cleaned {
		case "stable":
			return models.StabilityStable
		case "at risk", "atrisk":
			return models.StabilityAtRisk
		case "critical":
			return models.StabilityCritical
		}
	}
	return stabilityFromTotal(total)
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && (s != "" || fallback == "") {
		return s
	}
	return fallback
}

// normalizeRecommendations keeps only string elements; an empty result is
// replaced by the fixed fallback recommendation.
func normalizeRecommendations(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{defaultRecommendation}
	}
	recs := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			recs = append(recs, s)
		}
	}
	if len(recs) == 0 {
		return []string{defaultRecommendation}
	}
	return recs
}

// normalizeRiskFlags extracts the boolean flag block from the payload, or
// synthesizes one from the trusted scores when the payload has none.
func normalizeRiskFlags(v any, dass models.DassScores) models.RiskFlags {
	obj, ok := v.(map[string]any)
	if !ok {
		return synthesizeRiskFlags(dass)
	}
	flag := func(primary, fallback string) bool {
		b, _ := extract(obj, primary, fallback).(bool)
		return b
	}
	return models.RiskFlags{
		AcuteReactiveState:     flag("acuteReactiveState", "acute_reactive_state"),
		HighFunctioningBurnout: flag("highFunctioningBurnout", "high_functioning_burnout"),
		EmotionalDysregulation: flag("emotionalDysregulation", "emotional_dysregulation"),
		ElevatedDepression:     flag("elevatedDepression", "elevated_depression"),
		ElevatedAnxiety:        flag("elevatedAnxiety", "elevated_anxiety"),
		ElevatedStress:         flag("elevatedStress", "elevated_stress"),
	}
}

// synthesizeRiskFlags derives elevated-* flags directly from the DASS
// scores; the three interaction flags default false because they cannot be
// established without the full classifier inputs.
func synthesizeRiskFlags(dass models.DassScores) models.RiskFlags {
	return models.RiskFlags{
		ElevatedDepression: dass.Depression >= elevatedDepressionFloor,
		ElevatedAnxiety:    dass.Anxiety >= elevatedAnxietyFloor,
		ElevatedStress:     dass.Stress >= elevatedStressFloor,
	}
}
