// Package scoring implements the deterministic scoring engine for the three
// assessment instruments, plus the rule-based stability classifier.
//
// All functions are pure: no I/O, no shared mutable state, safe under
// unlimited concurrent invocation.
package scoring

import (
	"math"

	"github.com/FluxWard/StabilityPipe/internal/catalog"
	"github.com/FluxWard/StabilityPipe/internal/models"
)

// round2 rounds to 2 decimal places, matching the precision of stored scores.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CheckCompleteness verifies that every id in 1..itemCount appears exactly
// once. It returns the sorted missing and duplicate id lists; both empty
// means the set is complete and scorable.
func CheckCompleteness(responses []models.ItemResponse, itemCount int) (missing, duplicate []int) {
	seen := make(map[int]int, itemCount)
	for _, r := range responses {
		seen[r.ID]++
	}
	for id := 1; id <= itemCount; id++ {
		switch {
		case seen[id] == 0:
			missing = append(missing, id)
		case seen[id] > 1:
			duplicate = append(duplicate, id)
		}
	}
	return missing, duplicate
}

func requireComplete(inst models.Instrument, responses []models.ItemResponse, itemCount int) error {
	missing, duplicate := CheckCompleteness(responses, itemCount)
	if len(missing) > 0 || len(duplicate) > 0 {
		return models.NewIncompleteError(inst, missing, duplicate)
	}
	return nil
}

// ScoreHexaco computes the six HEXACO facet means from a complete response
// set, applying reverse-coding before aggregation. An incomplete set is
// refused with an IncompleteError naming the exact missing ids.
func ScoreHexaco(responses []models.ItemResponse) (models.HexacoScores, error) {
	if err := requireComplete(models.InstrumentHexaco, responses, models.HexacoItemCount); err != nil {
		return models.HexacoScores{}, err
	}

	sums := make(map[models.HexacoFacet]float64, 6)
	counts := make(map[models.HexacoFacet]int, 6)
	for _, r := range responses {
		item, ok := catalog.HexacoItemByID(r.ID)
		if !ok {
			continue
		}
		v := r.Response
		if item.ReverseCoded {
			v = models.HexacoDomain.Reverse(v)
		}
		sums[item.Facet] += float64(v)
		counts[item.Facet]++
	}

	mean := func(f models.HexacoFacet) float64 {
		if counts[f] == 0 {
			return 0
		}
		return round2(sums[f] / float64(counts[f]))
	}
	return models.HexacoScores{
		HonestyHumility:      mean(models.FacetHonestyHumility),
		Emotionality:         mean(models.FacetEmotionality),
		Extraversion:         mean(models.FacetExtraversion),
		Agreeableness:        mean(models.FacetAgreeableness),
		Conscientiousness:    mean(models.FacetConscientiousness),
		OpennessToExperience: mean(models.FacetOpennessToExperience),
	}, nil
}

// ScoreDass computes the three DASS scale scores from a complete response
// set. Each scale is the sum of its raw responses multiplied by 2; the
// doubling re-aligns the 21-item short form onto DASS-42 severity bands and
// is a fixed external contract.
func ScoreDass(responses []models.ItemResponse) (models.DassScores, error) {
	if err := requireComplete(models.InstrumentDass, responses, models.DassItemCount); err != nil {
		return models.DassScores{}, err
	}

	sums := make(map[models.DassScale]int, 3)
	for _, r := range responses {
		item, ok := catalog.DassItemByID(r.ID)
		if !ok {
			continue
		}
		sums[item.Scale] += r.Response
	}
	return models.DassScores{
		Depression: sums[models.ScaleDepression] * 2,
		Anxiety:    sums[models.ScaleAnxiety] * 2,
		Stress:     sums[models.ScaleStress] * 2,
	}, nil
}

// ScoreTeique computes the four TEIQue factor means from a complete response
// set, applying reverse-coding, plus the global composite: the mean of the
// four factor means, not item-weighted.
func ScoreTeique(responses []models.ItemResponse) (models.TeiqueScores, error) {
	if err := requireComplete(models.InstrumentTeique, responses, models.TeiqueItemCount); err != nil {
		return models.TeiqueScores{}, err
	}

	sums := make(map[models.TeiqueFactor]float64, 4)
	counts := make(map[models.TeiqueFactor]int, 4)
	for _, r := range responses {
		item, ok := catalog.TeiqueItemByID(r.ID)
		if !ok {
			continue
		}
		v := r.Response
		if item.ReverseCoded {
			v = models.TeiqueDomain.Reverse(v)
		}
		sums[item.Factor] += float64(v)
		counts[item.Factor]++
	}

	mean := func(f models.TeiqueFactor) float64 {
		if counts[f] == 0 {
			return 0
		}
		return sums[f] / float64(counts[f])
	}
	wellbeing := mean(models.FactorWellbeing)
	selfControl := mean(models.FactorSelfControl)
	emotionality := mean(models.FactorEmotionality)
	sociability := mean(models.FactorSociability)
	global := (wellbeing + selfControl + emotionality + sociability) / 4

	return models.TeiqueScores{
		Wellbeing:    round2(wellbeing),
		SelfControl:  round2(selfControl),
		Emotionality: round2(emotionality),
		Sociability:  round2(sociability),
		GlobalEI:     round2(global),
	}, nil
}

// ClassifyDass maps the three scale scores onto DASS-42 severity bands.
func ClassifyDass(scores models.DassScores) models.DassSeverity {
	classify := func(score int, edges [4]int) models.SeverityBand {
		switch {
		case score <= edges[0]:
			return models.SeverityNormal
		case score <= edges[1]:
			return models.SeverityMild
		case score <= edges[2]:
			return models.SeverityModerate
		case score <= edges[3]:
			return models.SeveritySevere
		default:
			return models.SeverityExtremelySevere
		}
	}
	return models.DassSeverity{
		Depression: classify(scores.Depression, [4]int{9, 13, 20, 27}),
		Anxiety:    classify(scores.Anxiety, [4]int{7, 9, 14, 19}),
		Stress:     classify(scores.Stress, [4]int{14, 18, 25, 33}),
	}
}
