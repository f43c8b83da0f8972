// Package assessment implements the submission processing pipeline: it takes
// a validated response set through scoring, stability classification,
// narrative generation, normalization and encrypted persistence, and exposes
// the decrypted read path for stored results.
package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/FluxWard/StabilityPipe/internal/fieldcrypt"
	"github.com/FluxWard/StabilityPipe/internal/models"
	"github.com/FluxWard/StabilityPipe/internal/normalize"
	"github.com/FluxWard/StabilityPipe/internal/scoring"
	"github.com/FluxWard/StabilityPipe/internal/store"
)

// NarrativeGenerator produces the raw, untrusted analysis payload for a set
// of computed scores. A nil generator or a generation error downgrades the
// pipeline to the deterministic fallback analysis; it never fails a
// submission.
type NarrativeGenerator interface {
	GenerateAnalysis(ctx context.Context, hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores) (any, error)
}

// Pipeline wires the scoring, narrative, encryption and storage stages
// together. Construct one with NewPipeline.
type Pipeline struct {
	store store.Store
	codec *fieldcrypt.Codec
	gen   NarrativeGenerator
}

// NewPipeline creates a Pipeline. The generator may be nil, in which case
// every submission receives the deterministic fallback analysis.
func NewPipeline(st store.Store, codec *fieldcrypt.Codec, gen NarrativeGenerator) *Pipeline {
	slog.Debug("NewPipeline invoked", "generator_set", gen != nil)
	return &Pipeline{store: st, codec: codec, gen: gen}
}

// Process runs one submission end to end: validate, score, classify, generate
// and normalize the analysis, encrypt per field, persist, and return the
// plaintext result payload.
func (p *Pipeline) Process(ctx context.Context, req models.SubmissionRequest) (models.AssessmentResult, error) {
	slog.Debug("Pipeline.Process invoked", "user_id", req.UserID,
		"hexaco_count", len(req.HexacoResponses), "dass_count", len(req.DassResponses), "teique_count", len(req.TeiqueResponses))

	if err := req.Validate(); err != nil {
		slog.Warn("Pipeline.Process validation failed", "user_id", req.UserID, "error", err)
		return models.AssessmentResult{}, err
	}

	hexaco, err := scoring.ScoreHexaco(req.HexacoResponses)
	if err != nil {
		slog.Warn("Pipeline.Process HEXACO scoring failed", "user_id", req.UserID, "error", err)
		return models.AssessmentResult{}, err
	}
	dass, err := scoring.ScoreDass(req.DassResponses)
	if err != nil {
		slog.Warn("Pipeline.Process DASS scoring failed", "user_id", req.UserID, "error", err)
		return models.AssessmentResult{}, err
	}
	var teique *models.TeiqueScores
	if len(req.TeiqueResponses) > 0 {
		scores, err := scoring.ScoreTeique(req.TeiqueResponses)
		if err != nil {
			slog.Warn("Pipeline.Process TEIQue scoring failed", "user_id", req.UserID, "error", err)
			return models.AssessmentResult{}, err
		}
		teique = &scores
	}

	severity := scoring.ClassifyDass(dass)
	flags := scoring.EvaluateStability(hexaco, dass, teique)

	analysis := p.generateAnalysis(ctx, req.UserID, hexaco, dass, teique)

	rec, err := p.encryptRecord(req, hexaco, dass, teique, analysis)
	if err != nil {
		return models.AssessmentResult{}, err
	}
	if err := p.store.SaveResult(rec); err != nil {
		slog.Error("Pipeline.Process failed to persist result", "user_id", req.UserID, "result_id", rec.ID, "error", err)
		return models.AssessmentResult{}, fmt.Errorf("failed to save result: %w", err)
	}

	slog.Debug("Pipeline.Process completed", "user_id", req.UserID, "result_id", rec.ID,
		"stability", analysis.OverallStability, "stability_score", analysis.StabilityScore)
	return models.AssessmentResult{
		ResultID:     rec.ID,
		HexacoScores: hexaco,
		DassScores:   dass,
		DassSeverity: severity,
		TeiqueScores: teique,
		Flags:        flags,
		Analysis:     analysis,
	}, nil
}

// generateAnalysis calls the narrative generator and normalizes whatever it
// returns. Any failure falls back to the deterministic analysis so the
// submission always completes.
func (p *Pipeline) generateAnalysis(ctx context.Context, userID string, hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores) models.StabilityAnalysis {
	if p.gen == nil {
		slog.Debug("Pipeline.generateAnalysis no generator configured, using fallback", "user_id", userID)
		return normalize.Fallback(dass)
	}
	raw, err := p.gen.GenerateAnalysis(ctx, hexaco, dass, teique)
	if err != nil {
		slog.Warn("Pipeline.generateAnalysis generation failed, using fallback", "user_id", userID, "error", err)
		return normalize.Fallback(dass)
	}
	return normalize.Analysis(raw, dass)
}

// encryptRecord serializes and encrypts every stored field under the
// submitting user's derived key.
func (p *Pipeline) encryptRecord(req models.SubmissionRequest, hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores, analysis models.StabilityAnalysis) (models.EncryptedResultRecord, error) {
	now := time.Now().UTC()
	rec := models.EncryptedResultRecord{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		CompletedAt: now,
		CreatedAt:   now,
	}

	encInt := func(dst *string, field string, v int) error {
		enc, err := p.codec.Encrypt(strconv.Itoa(v), req.UserID)
		if err != nil {
			slog.Error("Pipeline.encryptRecord field encryption failed", "field", field, "error", err)
			return fmt.Errorf("failed to encrypt %s: %w", field, err)
		}
		*dst = enc
		return nil
	}
	encJSON := func(dst *string, field string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			slog.Error("Pipeline.encryptRecord field serialization failed", "field", field, "error", err)
			return fmt.Errorf("failed to serialize %s: %w", field, err)
		}
		enc, err := p.codec.Encrypt(string(data), req.UserID)
		if err != nil {
			slog.Error("Pipeline.encryptRecord field encryption failed", "field", field, "error", err)
			return fmt.Errorf("failed to encrypt %s: %w", field, err)
		}
		*dst = enc
		return nil
	}

	if err := encInt(&rec.DassDepressionEnc, "dass_depression", dass.Depression); err != nil {
		return models.EncryptedResultRecord{}, err
	}
	if err := encInt(&rec.DassAnxietyEnc, "dass_anxiety", dass.Anxiety); err != nil {
		return models.EncryptedResultRecord{}, err
	}
	if err := encInt(&rec.DassStressEnc, "dass_stress", dass.Stress); err != nil {
		return models.EncryptedResultRecord{}, err
	}
	if err := encJSON(&rec.HexacoScoresEnc, "hexaco_scores", hexaco); err != nil {
		return models.EncryptedResultRecord{}, err
	}
	if teique != nil {
		if err := encJSON(&rec.TeiqueScoresEnc, "teique_scores", teique); err != nil {
			return models.EncryptedResultRecord{}, err
		}
	}
	if err := encJSON(&rec.StabilityAnalysisEnc, "stability_analysis", analysis); err != nil {
		return models.EncryptedResultRecord{}, err
	}
	raw := models.RawResponses{Hexaco: req.HexacoResponses, Dass: req.DassResponses, Teique: req.TeiqueResponses}
	if err := encJSON(&rec.RawResponsesEnc, "raw_responses", raw); err != nil {
		return models.EncryptedResultRecord{}, err
	}
	return rec, nil
}

// Results loads and decrypts a user's stored results, most recent first.
// Fields that fail to decrypt are reported per column in FieldErrors without
// discarding the rest of the record.
func (p *Pipeline) Results(ctx context.Context, userID string) ([]models.DecodedResult, error) {
	if userID == "" {
		return nil, models.ErrMissingUserID
	}
	slog.Debug("Pipeline.Results invoked", "user_id", userID)

	records, err := p.store.GetResultsByUser(userID)
	if err != nil {
		slog.Error("Pipeline.Results store lookup failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	results := make([]models.DecodedResult, 0, len(records))
	for _, rec := range records {
		results = append(results, p.decodeRecord(rec))
	}
	slog.Debug("Pipeline.Results completed", "user_id", userID, "count", len(results))
	return results, nil
}

// decodeRecord decrypts one stored record field by field. The stored analysis
// is re-normalized on every read so legacy rows written before the current
// schema still come back fully shaped.
func (p *Pipeline) decodeRecord(rec models.EncryptedResultRecord) models.DecodedResult {
	out := models.DecodedResult{
		ID:          rec.ID,
		CompletedAt: rec.CompletedAt,
		FieldErrors: make(map[string]string),
	}

	decodeInt := func(field, stored string) int {
		res := p.codec.DecodeField(stored, rec.UserID)
		if res.Status == fieldcrypt.FieldFailed {
			slog.Warn("Pipeline.decodeRecord field decryption failed", "result_id", rec.ID, "field", field, "error", res.Err)
			out.FieldErrors[field] = "decryption failed"
			return 0
		}
		v, err := strconv.Atoi(res.Value)
		if err != nil {
			slog.Warn("Pipeline.decodeRecord field is not a number", "result_id", rec.ID, "field", field, "error", err)
			out.FieldErrors[field] = "invalid value"
			return 0
		}
		return v
	}
	decodeJSON := func(field, stored string, dst any) bool {
		res := p.codec.DecodeField(stored, rec.UserID)
		if res.Status == fieldcrypt.FieldFailed {
			slog.Warn("Pipeline.decodeRecord field decryption failed", "result_id", rec.ID, "field", field, "error", res.Err)
			out.FieldErrors[field] = "decryption failed"
			return false
		}
		if err := json.Unmarshal([]byte(res.Value), dst); err != nil {
			slog.Warn("Pipeline.decodeRecord field deserialization failed", "result_id", rec.ID, "field", field, "error", err)
			out.FieldErrors[field] = "invalid value"
			return false
		}
		return true
	}

	out.DassScores = models.DassScores{
		Depression: decodeInt("dass_depression", rec.DassDepressionEnc),
		Anxiety:    decodeInt("dass_anxiety", rec.DassAnxietyEnc),
		Stress:     decodeInt("dass_stress", rec.DassStressEnc),
	}

	if rec.HexacoScoresEnc != "" {
		var hexaco models.HexacoScores
		if decodeJSON("hexaco_scores", rec.HexacoScoresEnc, &hexaco) {
			out.Hexaco = &hexaco
		}
	}
	if rec.TeiqueScoresEnc != "" {
		var teique models.TeiqueScores
		if decodeJSON("teique_scores", rec.TeiqueScoresEnc, &teique) {
			out.Teique = &teique
		}
	}

	if rec.StabilityAnalysisEnc != "" {
		var raw any
		if decodeJSON("stability_analysis", rec.StabilityAnalysisEnc, &raw) {
			out.Analysis = normalize.Analysis(raw, out.DassScores)
		} else {
			out.Analysis = normalize.Fallback(out.DassScores)
		}
	} else {
		out.Analysis = normalize.Fallback(out.DassScores)
	}

	if len(out.FieldErrors) == 0 {
		out.FieldErrors = nil
	}
	return out
}
