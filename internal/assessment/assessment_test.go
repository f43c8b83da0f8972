package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/FluxWard/StabilityPipe/internal/fieldcrypt"
	"github.com/FluxWard/StabilityPipe/internal/models"
	"github.com/FluxWard/StabilityPipe/internal/store"
)

// mockGenerator returns a canned payload or error.
type mockGenerator struct {
	payload any
	err     error
	calls   int
}

func (m *mockGenerator) GenerateAnalysis(ctx context.Context, hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores) (any, error) {
	m.calls++
	return m.payload, m.err
}

func newTestCodec(t *testing.T) *fieldcrypt.Codec {
	t.Helper()
	key, err := fieldcrypt.GenerateMasterKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	codec, err := fieldcrypt.NewCodec(fieldcrypt.WithMasterKey(key))
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}
	return codec
}

func fullResponses(itemCount, v int) []models.ItemResponse {
	responses := make([]models.ItemResponse, 0, itemCount)
	for id := 1; id <= itemCount; id++ {
		responses = append(responses, models.ItemResponse{ID: id, Response: v})
	}
	return responses
}

func validSubmission() models.SubmissionRequest {
	return models.SubmissionRequest{
		UserID:          "user-1",
		HexacoResponses: fullResponses(models.HexacoItemCount, 3),
		DassResponses:   fullResponses(models.DassItemCount, 1),
		TeiqueResponses: fullResponses(models.TeiqueItemCount, 4),
	}
}

func TestProcessEndToEnd(t *testing.T) {
	st := store.NewInMemoryStore()
	gen := &mockGenerator{payload: map[string]any{
		"overallStability": "Stable",
		"stabilityScore":   float64(77),
		"summary":          "Generated summary.",
		"recommendations":  []any{"rest more"},
	}}
	p := NewPipeline(st, newTestCodec(t), gen)

	result, err := p.Process(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if result.ResultID == "" {
		t.Error("missing result id")
	}
	if result.DassScores.Depression != 14 || result.DassScores.Anxiety != 14 || result.DassScores.Stress != 14 {
		t.Errorf("DASS scores = %+v, want 14/14/14", result.DassScores)
	}
	if result.DassSeverity.Depression != models.SeverityModerate {
		t.Errorf("depression severity = %q, want Moderate", result.DassSeverity.Depression)
	}
	if result.HexacoScores.Emotionality != 3.00 {
		t.Errorf("HEXACO emotionality = %v, want 3.00", result.HexacoScores.Emotionality)
	}
	if result.TeiqueScores == nil || result.TeiqueScores.GlobalEI != 4.00 {
		t.Errorf("TEIQue scores = %+v, want GlobalEI 4.00", result.TeiqueScores)
	}
	if result.Analysis.StabilityScore != 77 || result.Analysis.Summary != "Generated summary." {
		t.Errorf("analysis = %+v", result.Analysis)
	}

	// The persisted record carries ciphertext, not plaintext.
	records, err := st.GetResultsByUser("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.DassDepressionEnc == "14" || rec.StabilityAnalysisEnc == "" || rec.RawResponsesEnc == "" {
		t.Errorf("record fields not encrypted: %+v", rec)
	}
}

func TestProcessGeneratorFailureFallsBack(t *testing.T) {
	st := store.NewInMemoryStore()
	gen := &mockGenerator{err: errors.New("model unavailable")}
	p := NewPipeline(st, newTestCodec(t), gen)

	result, err := p.Process(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Process failed despite generator fallback: %v", err)
	}
	if result.Analysis.PersonalityMoodInteraction != "Analysis based on psychometric score ranges." {
		t.Errorf("expected fallback analysis, got %+v", result.Analysis)
	}
	if !models.IsValidStability(result.Analysis.OverallStability) {
		t.Errorf("fallback stability %q not canonical", result.Analysis.OverallStability)
	}
}

func TestProcessNilGenerator(t *testing.T) {
	p := NewPipeline(store.NewInMemoryStore(), newTestCodec(t), nil)
	result, err := p.Process(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Process failed without generator: %v", err)
	}
	if len(result.Analysis.Recommendations) == 0 {
		t.Error("fallback analysis missing recommendations")
	}
}

func TestProcessValidationAndCompleteness(t *testing.T) {
	p := NewPipeline(store.NewInMemoryStore(), newTestCodec(t), nil)

	req := validSubmission()
	req.UserID = ""
	if _, err := p.Process(context.Background(), req); !errors.Is(err, models.ErrMissingUserID) {
		t.Errorf("err = %v, want ErrMissingUserID", err)
	}

	req = validSubmission()
	req.DassResponses = req.DassResponses[:20]
	_, err := p.Process(context.Background(), req)
	var incomplete *models.IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteError", err)
	}
	if incomplete.Instrument != models.InstrumentDass {
		t.Errorf("instrument = %q, want dass", incomplete.Instrument)
	}
}

func TestProcessWithoutTeique(t *testing.T) {
	st := store.NewInMemoryStore()
	p := NewPipeline(st, newTestCodec(t), nil)
	req := validSubmission()
	req.TeiqueResponses = nil

	result, err := p.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.TeiqueScores != nil {
		t.Errorf("TeiqueScores = %+v, want nil", result.TeiqueScores)
	}
	records, _ := st.GetResultsByUser("user-1")
	if len(records) != 1 || records[0].TeiqueScoresEnc != "" {
		t.Errorf("TEIQue column should stay empty: %+v", records)
	}
}

func TestResultsRoundTrip(t *testing.T) {
	st := store.NewInMemoryStore()
	codec := newTestCodec(t)
	p := NewPipeline(st, codec, nil)

	if _, err := p.Process(context.Background(), validSubmission()); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	results, err := p.Results(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.DassScores.Depression != 14 || r.DassScores.Anxiety != 14 || r.DassScores.Stress != 14 {
		t.Errorf("decoded DASS scores = %+v, want 14/14/14", r.DassScores)
	}
	if r.Hexaco == nil || r.Hexaco.Conscientiousness != 3.00 {
		t.Errorf("decoded HEXACO scores = %+v", r.Hexaco)
	}
	if r.Teique == nil || r.Teique.GlobalEI != 4.00 {
		t.Errorf("decoded TEIQue scores = %+v", r.Teique)
	}
	if !models.IsValidStability(r.Analysis.OverallStability) {
		t.Errorf("analysis stability %q not canonical", r.Analysis.OverallStability)
	}
	if len(r.FieldErrors) != 0 {
		t.Errorf("unexpected field errors: %v", r.FieldErrors)
	}
}

func TestResultsLegacyPlaintextRecord(t *testing.T) {
	st := store.NewInMemoryStore()
	codec := newTestCodec(t)
	p := NewPipeline(st, codec, nil)

	// A record written before encryption existed: raw JSON in every column.
	rec := models.EncryptedResultRecord{
		ID:                   "legacy-1",
		UserID:               "user-legacy",
		DassDepressionEnc:    "22",
		DassAnxietyEnc:       "16",
		DassStressEnc:        "26",
		HexacoScoresEnc:      `{"HonestyHumility":3,"Emotionality":4.6,"Extraversion":3,"Agreeableness":3,"Conscientiousness":2.5,"OpennessToExperience":3}`,
		StabilityAnalysisEnc: `{"overallStability":"critical","stabilityScore":15,"summary":"old record"}`,
	}
	if err := st.SaveResult(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := p.Results(context.Background(), "user-legacy")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.DassScores.Depression != 22 || r.DassScores.Stress != 26 {
		t.Errorf("legacy DASS scores = %+v", r.DassScores)
	}
	if r.Hexaco == nil || r.Hexaco.Emotionality != 4.6 {
		t.Errorf("legacy HEXACO scores = %+v", r.Hexaco)
	}
	// The stored analysis is re-normalized on read.
	if r.Analysis.OverallStability != models.StabilityCritical {
		t.Errorf("legacy stability = %q, want Critical", r.Analysis.OverallStability)
	}
	if r.Analysis.StabilityScore != 15 || r.Analysis.Summary != "old record" {
		t.Errorf("legacy analysis = %+v", r.Analysis)
	}
	if len(r.Analysis.Recommendations) == 0 {
		t.Error("re-normalized analysis missing recommendations")
	}
}

func TestResultsFieldErrorIsolation(t *testing.T) {
	st := store.NewInMemoryStore()
	codec := newTestCodec(t)
	p := NewPipeline(st, codec, nil)

	// Depression column is garbage; the siblings still decode.
	depEnc := "not encrypted and not json"
	anxEnc, err := codec.Encrypt("8", "user-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	strEnc, err := codec.Encrypt("12", "user-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := models.EncryptedResultRecord{
		ID: "mixed-1", UserID: "user-x",
		DassDepressionEnc: depEnc, DassAnxietyEnc: anxEnc, DassStressEnc: strEnc,
	}
	if err := st.SaveResult(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := p.Results(context.Background(), "user-x")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	r := results[0]
	if r.DassScores.Anxiety != 8 || r.DassScores.Stress != 12 {
		t.Errorf("sibling fields lost: %+v", r.DassScores)
	}
	if r.DassScores.Depression != 0 {
		t.Errorf("failed field should zero: %+v", r.DassScores)
	}
	if _, ok := r.FieldErrors["dass_depression"]; !ok {
		t.Errorf("missing field error for dass_depression: %v", r.FieldErrors)
	}
}

func TestResultsMissingUser(t *testing.T) {
	p := NewPipeline(store.NewInMemoryStore(), newTestCodec(t), nil)
	if _, err := p.Results(context.Background(), ""); !errors.Is(err, models.ErrMissingUserID) {
		t.Errorf("err = %v, want ErrMissingUserID", err)
	}
}
