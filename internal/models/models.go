// Package models defines the core data structures for StabilityPipe.
//
// It includes the psychometric instrument taxonomy, response sets, score
// bundles, and the stability analysis record shared across modules.
package models

import (
	"errors"
	"fmt"
	"sort"
)

// Instrument identifies one of the three questionnaires in the battery.
type Instrument string

const (
	// InstrumentHexaco is the HEXACO-60 six-factor personality inventory.
	InstrumentHexaco Instrument = "hexaco"
	// InstrumentDass is the DASS-21 depression/anxiety/stress short form.
	InstrumentDass Instrument = "dass"
	// InstrumentTeique is the TEIQue-SF trait emotional intelligence short form.
	InstrumentTeique Instrument = "teique"
)

// Domain is the inclusive raw response range for an instrument.
type Domain struct {
	Min int
	Max int
}

// Response domains per instrument. Reverse-coding reflects a raw value v
// onto Min+Max-v, so the domain midpoint is a fixed point.
var (
	HexacoDomain = Domain{Min: 1, Max: 5}
	DassDomain   = Domain{Min: 0, Max: 3}
	TeiqueDomain = Domain{Min: 1, Max: 7}
)

// Reverse reflects a raw response across the domain midpoint.
func (d Domain) Reverse(v int) int {
	return d.Min + d.Max - v
}

// Contains reports whether v lies inside the domain.
func (d Domain) Contains(v int) bool {
	return v >= d.Min && v <= d.Max
}

// Expected item counts per instrument.
const (
	HexacoItemCount = 60
	DassItemCount   = 21
	TeiqueItemCount = 30
)

// HexacoFacet names a HEXACO-60 personality facet (10 items each).
type HexacoFacet string

const (
	FacetHonestyHumility      HexacoFacet = "HonestyHumility"
	FacetEmotionality         HexacoFacet = "Emotionality"
	FacetExtraversion         HexacoFacet = "Extraversion"
	FacetAgreeableness        HexacoFacet = "Agreeableness"
	FacetConscientiousness    HexacoFacet = "Conscientiousness"
	FacetOpennessToExperience HexacoFacet = "OpennessToExperience"
)

// DassScale names a DASS-21 sub-scale (7 items each).
type DassScale string

const (
	ScaleDepression DassScale = "Depression"
	ScaleAnxiety    DassScale = "Anxiety"
	ScaleStress     DassScale = "Stress"
)

// TeiqueFactor names a TEIQue-SF factor. Item counts are unequal.
type TeiqueFactor string

const (
	FactorWellbeing    TeiqueFactor = "Wellbeing"
	FactorSelfControl  TeiqueFactor = "SelfControl"
	FactorEmotionality TeiqueFactor = "Emotionality"
	FactorSociability  TeiqueFactor = "Sociability"
)

// HexacoItem is one statically defined HEXACO-60 question.
type HexacoItem struct {
	ID           int         `json:"id"`
	Facet        HexacoFacet `json:"facet"`
	Text         string      `json:"text"`
	ReverseCoded bool        `json:"reverseCoded"`
}

// DassItem is one statically defined DASS-21 question. The instrument has
// no reverse-coded items.
type DassItem struct {
	ID    int       `json:"id"`
	Scale DassScale `json:"scale"`
	Text  string    `json:"text"`
}

// TeiqueItem is one statically defined TEIQue-SF question.
type TeiqueItem struct {
	ID           int          `json:"id"`
	Factor       TeiqueFactor `json:"factor"`
	Text         string       `json:"text"`
	ReverseCoded bool         `json:"reverseCoded"`
}

// ItemResponse is a single raw answer keyed by item id.
type ItemResponse struct {
	ID       int `json:"id"`
	Response int `json:"response"`
}

// HexacoScores holds the six facet means, each rounded to 2 decimals and
// bounded by the 1-5 response domain.
type HexacoScores struct {
	HonestyHumility      float64 `json:"HonestyHumility"`
	Emotionality         float64 `json:"Emotionality"`
	Extraversion         float64 `json:"Extraversion"`
	Agreeableness        float64 `json:"Agreeableness"`
	Conscientiousness    float64 `json:"Conscientiousness"`
	OpennessToExperience float64 `json:"OpennessToExperience"`
}

// DassScores holds the three scale sums, each doubled to align the 21-item
// short form with DASS-42 severity bands.
type DassScores struct {
	Depression int `json:"Depression"`
	Anxiety    int `json:"Anxiety"`
	Stress     int `json:"Stress"`
}

// Total returns the summed affect load across the three scales.
func (s DassScores) Total() int {
	return s.Depression + s.Anxiety + s.Stress
}

// TeiqueScores holds the four factor means plus the global composite (mean
// of the four factor means), each rounded to 2 decimals, range 1-7.
type TeiqueScores struct {
	Wellbeing    float64 `json:"Wellbeing"`
	SelfControl  float64 `json:"SelfControl"`
	Emotionality float64 `json:"Emotionality"`
	Sociability  float64 `json:"Sociability"`
	GlobalEI     float64 `json:"GlobalEI"`
}

// Stability is the categorical classification of a completed assessment.
type Stability string

const (
	// StabilityStable indicates no concerning score pattern.
	StabilityStable Stability = "Stable"
	// StabilityAtRisk indicates two or more pooled risk signals.
	StabilityAtRisk Stability = "At Risk"
	// StabilityCritical indicates four or more pooled risk signals.
	StabilityCritical Stability = "Critical"
)

// IsValidStability checks if the given label is one of the three canonical values.
func IsValidStability(s Stability) bool {
	switch s {
	case StabilityStable, StabilityAtRisk, StabilityCritical:
		return true
	default:
		return false
	}
}

// StabilityFlags is the rule-based classifier output. It is derived from
// scores and recomputable at any time; it is never persisted on its own.
type StabilityFlags struct {
	AcuteReactiveState     bool      `json:"acuteReactiveState"`
	HighFunctioningBurnout bool      `json:"highFunctioningBurnout"`
	EmotionalDysregulation bool      `json:"emotionalDysregulation"`
	OverallStability       Stability `json:"overallStability"`
}

// SeverityBand classifies a DASS scale score against DASS-42 norms.
type SeverityBand string

const (
	SeverityNormal          SeverityBand = "Normal"
	SeverityMild            SeverityBand = "Mild"
	SeverityModerate        SeverityBand = "Moderate"
	SeveritySevere          SeverityBand = "Severe"
	SeverityExtremelySevere SeverityBand = "Extremely Severe"
)

// DassSeverity holds the per-scale severity band classification.
type DassSeverity struct {
	Depression SeverityBand `json:"depression"`
	Anxiety    SeverityBand `json:"anxiety"`
	Stress     SeverityBand `json:"stress"`
}

// Validation error variables for submission payloads.
var (
	ErrMissingUserID      = errors.New("user_id is required")
	ErrMissingResponses   = errors.New("hexaco and dass responses are required")
	ErrResponseOutOfRange = errors.New("response value outside instrument domain")
	ErrItemIDOutOfRange   = errors.New("item id outside instrument range")
)

// IncompleteError reports the exact ids preventing a response set from being
// scored. Missing and Duplicate are sorted ascending.
type IncompleteError struct {
	Instrument Instrument
	Missing    []int
	Duplicate  []int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s response set incomplete: missing=%v duplicate=%v", e.Instrument, e.Missing, e.Duplicate)
}

// NewIncompleteError builds an IncompleteError with sorted id lists.
func NewIncompleteError(inst Instrument, missing, duplicate []int) *IncompleteError {
	sort.Ints(missing)
	sort.Ints(duplicate)
	return &IncompleteError{Instrument: inst, Missing: missing, Duplicate: duplicate}
}
