package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FluxWard/StabilityPipe/internal/assessment"
	"github.com/FluxWard/StabilityPipe/internal/catalog"
	"github.com/FluxWard/StabilityPipe/internal/fieldcrypt"
	"github.com/FluxWard/StabilityPipe/internal/models"
	"github.com/FluxWard/StabilityPipe/internal/store"
)

// staticGenerator returns a fixed payload for every request.
type staticGenerator struct {
	payload any
}

func (g staticGenerator) GenerateAnalysis(ctx context.Context, hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores) (any, error) {
	return g.payload, nil
}

func newTestServer(t *testing.T, gen assessment.NarrativeGenerator) *Server {
	t.Helper()
	key, err := fieldcrypt.GenerateMasterKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	codec, err := fieldcrypt.NewCodec(fieldcrypt.WithMasterKey(key))
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}
	pipeline := assessment.NewPipeline(store.NewInMemoryStore(), codec, gen)
	return NewServer(pipeline, catalog.NewBankCache(time.Hour))
}

func fullResponses(itemCount, v int) []models.ItemResponse {
	responses := make([]models.ItemResponse, 0, itemCount)
	for id := 1; id <= itemCount; id++ {
		responses = append(responses, models.ItemResponse{ID: id, Response: v})
	}
	return responses
}

func decodeAPIResponse(t *testing.T, body *bytes.Buffer) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v (%s)", err, body.String())
	}
	return resp
}

func TestQuestionsHandler(t *testing.T) {
	s := newTestServer(t, nil)

	rr := httptest.NewRecorder()
	s.questionsHandler(rr, httptest.NewRequest(http.MethodGet, "/questions", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if xc := rr.Header().Get("X-Cache"); xc != "MISS" {
		t.Errorf("first request X-Cache = %q, want MISS", xc)
	}
	resp := decodeAPIResponse(t, rr.Body)
	if resp.Status != string(models.APIStatusOK) {
		t.Errorf("status = %q", resp.Status)
	}

	rr = httptest.NewRecorder()
	s.questionsHandler(rr, httptest.NewRequest(http.MethodGet, "/questions", nil))
	if xc := rr.Header().Get("X-Cache"); xc != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", xc)
	}
}

func TestQuestionsHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	s.questionsHandler(rr, httptest.NewRequest(http.MethodPost, "/questions", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != http.MethodGet {
		t.Errorf("Allow = %q, want GET", allow)
	}
}

func TestSubmitHandler(t *testing.T) {
	s := newTestServer(t, staticGenerator{payload: map[string]any{
		"overallStability": "Stable",
		"stabilityScore":   float64(88),
	}})

	req := models.SubmissionRequest{
		UserID:          "user-1",
		HexacoResponses: fullResponses(models.HexacoItemCount, 3),
		DassResponses:   fullResponses(models.DassItemCount, 0),
		TeiqueResponses: fullResponses(models.TeiqueItemCount, 4),
	}
	body, _ := json.Marshal(req)

	rr := httptest.NewRecorder()
	s.submitHandler(rr, httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	resp := decodeAPIResponse(t, rr.Body)
	if resp.Status != string(models.APIStatusRecorded) {
		t.Errorf("status = %q, want recorded", resp.Status)
	}

	// The stored result is retrievable through the results endpoint.
	rr = httptest.NewRecorder()
	s.resultsHandler(rr, httptest.NewRequest(http.MethodGet, "/results?user=user-1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("results status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var wrapped struct {
		Status string                 `json:"status"`
		Result []models.DecodedResult `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &wrapped); err != nil {
		t.Fatalf("results body is not valid JSON: %v", err)
	}
	if len(wrapped.Result) != 1 {
		t.Fatalf("got %d results, want 1", len(wrapped.Result))
	}
	if wrapped.Result[0].Analysis.StabilityScore != 88 {
		t.Errorf("stored stability score = %d, want 88", wrapped.Result[0].Analysis.StabilityScore)
	}
}

func TestSubmitHandlerInvalidJSON(t *testing.T) {
	s := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	s.submitHandler(rr, httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader([]byte("{not json"))))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	resp := decodeAPIResponse(t, rr.Body)
	if resp.Status != string(models.APIStatusError) {
		t.Errorf("status = %q, want error", resp.Status)
	}
}

func TestSubmitHandlerIncompleteSet(t *testing.T) {
	s := newTestServer(t, nil)
	req := models.SubmissionRequest{
		UserID:          "user-1",
		HexacoResponses: fullResponses(models.HexacoItemCount, 3),
		DassResponses:   fullResponses(models.DassItemCount, 1)[:20],
	}
	body, _ := json.Marshal(req)

	rr := httptest.NewRecorder()
	s.submitHandler(rr, httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
}

func TestSubmitHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	s.submitHandler(rr, httptest.NewRequest(http.MethodGet, "/submit", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

func TestResultsHandlerMissingUser(t *testing.T) {
	s := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	s.resultsHandler(rr, httptest.NewRequest(http.MethodGet, "/results", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestResultsHandlerEmpty(t *testing.T) {
	s := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	s.resultsHandler(rr, httptest.NewRequest(http.MethodGet, "/results?user=nobody", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	s.healthHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}
