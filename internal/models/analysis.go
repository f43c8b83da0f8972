// Package models defines the core data structures for StabilityPipe.
package models

import "time"

// RiskFlags is the boolean risk pattern block inside a stability analysis.
// Field names match the JSON schema the narrative generator is asked to
// produce, and the shape stored in legacy records.
type RiskFlags struct {
	AcuteReactiveState     bool `json:"acuteReactiveState"`
	HighFunctioningBurnout bool `json:"highFunctioningBurnout"`
	EmotionalDysregulation bool `json:"emotionalDysregulation"`
	ElevatedDepression     bool `json:"elevatedDepression"`
	ElevatedAnxiety        bool `json:"elevatedAnxiety"`
	ElevatedStress         bool `json:"elevatedStress"`
}

// StabilityAnalysis is the full normalized analysis record for one completed
// submission. Every field is always present and typed; the normalization
// engine guarantees this regardless of what the narrative generator returned.
type StabilityAnalysis struct {
	OverallStability              Stability `json:"overallStability"`
	StabilityScore                int       `json:"stabilityScore"`
	RiskFlags                     RiskFlags `json:"riskFlags"`
	Summary                       string    `json:"summary"`
	PersonalityMoodInteraction    string    `json:"personalityMoodInteraction"`
	EmotionalIntelligenceInsights string    `json:"emotionalIntelligenceInsights"`
	Recommendations               []string  `json:"recommendations"`
	ClinicalNotes                 string    `json:"clinicalNotes"`
}

// EncryptedResultRecord is one persisted row per submission. Each field is
// encrypted independently under a key bound to the owning user, so a decrypt
// failure on one field never blocks access to the others.
type EncryptedResultRecord struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	DassDepressionEnc    string    `json:"dass_depression_encrypted"`
	DassAnxietyEnc       string    `json:"dass_anxiety_encrypted"`
	DassStressEnc        string    `json:"dass_stress_encrypted"`
	HexacoScoresEnc      string    `json:"hexaco_scores_encrypted,omitempty"`
	TeiqueScoresEnc      string    `json:"teique_scores_encrypted,omitempty"`
	StabilityAnalysisEnc string    `json:"stability_analysis_encrypted,omitempty"`
	RawResponsesEnc      string    `json:"raw_responses_encrypted,omitempty"`
	CompletedAt          time.Time `json:"completed_at"`
	CreatedAt            time.Time `json:"created_at"`
}

// DecodedResult is the read-side view of one record. Fields that failed to
// decrypt are left nil/zero and reported in FieldErrors by column name.
type DecodedResult struct {
	ID          string            `json:"id"`
	DassScores  DassScores        `json:"dassScores"`
	Hexaco      *HexacoScores     `json:"hexacoScores,omitempty"`
	Teique      *TeiqueScores     `json:"teiqueScores,omitempty"`
	Analysis    StabilityAnalysis `json:"stabilityAnalysis"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	CompletedAt time.Time         `json:"completedAt"`
}

// RawResponses bundles the raw answers of a submission for encrypted
// at-rest retention alongside the derived scores.
type RawResponses struct {
	Hexaco []ItemResponse `json:"hexaco"`
	Dass   []ItemResponse `json:"dass"`
	Teique []ItemResponse `json:"teique,omitempty"`
}

// AssessmentResult is the response payload for a processed submission.
type AssessmentResult struct {
	ResultID     string            `json:"resultId"`
	HexacoScores HexacoScores      `json:"hexacoScores"`
	DassScores   DassScores        `json:"dassScores"`
	DassSeverity DassSeverity      `json:"dassSeverity"`
	TeiqueScores *TeiqueScores     `json:"teiqueScores,omitempty"`
	Flags        StabilityFlags    `json:"stabilityFlags"`
	Analysis     StabilityAnalysis `json:"stabilityAnalysis"`
}

// SubmissionRequest is the intake payload: one complete response set per
// instrument. The TEIQue set is optional; HEXACO and DASS are required.
type SubmissionRequest struct {
	UserID          string         `json:"user_id"`
	HexacoResponses []ItemResponse `json:"hexaco_responses"`
	DassResponses   []ItemResponse `json:"dass_responses"`
	TeiqueResponses []ItemResponse `json:"teique_responses,omitempty"`
}

// Validate performs structural validation on a submission. Completeness is
// checked separately by the scoring engine, which reports exact missing ids.
func (r *SubmissionRequest) Validate() error {
	if r.UserID == "" {
		return ErrMissingUserID
	}
	if len(r.HexacoResponses) == 0 || len(r.DassResponses) == 0 {
		return ErrMissingResponses
	}
	if err := validateResponses(r.HexacoResponses, HexacoItemCount, HexacoDomain); err != nil {
		return err
	}
	if err := validateResponses(r.DassResponses, DassItemCount, DassDomain); err != nil {
		return err
	}
	if len(r.TeiqueResponses) > 0 {
		if err := validateResponses(r.TeiqueResponses, TeiqueItemCount, TeiqueDomain); err != nil {
			return err
		}
	}
	return nil
}

func validateResponses(responses []ItemResponse, itemCount int, domain Domain) error {
	for _, resp := range responses {
		if resp.ID < 1 || resp.ID > itemCount {
			return ErrItemIDOutOfRange
		}
		if !domain.Contains(resp.Response) {
			return ErrResponseOutOfRange
		}
	}
	return nil
}
