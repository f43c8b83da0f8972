package models

import (
	"errors"
	"testing"
)

func fullResponses(itemCount, v int) []ItemResponse {
	responses := make([]ItemResponse, 0, itemCount)
	for id := 1; id <= itemCount; id++ {
		responses = append(responses, ItemResponse{ID: id, Response: v})
	}
	return responses
}

func validSubmission() SubmissionRequest {
	return SubmissionRequest{
		UserID:          "user-1",
		HexacoResponses: fullResponses(HexacoItemCount, 3),
		DassResponses:   fullResponses(DassItemCount, 1),
		TeiqueResponses: fullResponses(TeiqueItemCount, 4),
	}
}

func TestSubmissionValidate(t *testing.T) {
	req := validSubmission()
	if err := req.Validate(); err != nil {
		t.Errorf("valid submission rejected: %v", err)
	}

	// TEIQue is optional.
	req = validSubmission()
	req.TeiqueResponses = nil
	if err := req.Validate(); err != nil {
		t.Errorf("submission without TEIQue rejected: %v", err)
	}
}

func TestSubmissionValidateErrors(t *testing.T) {
	req := validSubmission()
	req.UserID = ""
	if err := req.Validate(); !errors.Is(err, ErrMissingUserID) {
		t.Errorf("err = %v, want ErrMissingUserID", err)
	}

	req = validSubmission()
	req.DassResponses = nil
	if err := req.Validate(); !errors.Is(err, ErrMissingResponses) {
		t.Errorf("err = %v, want ErrMissingResponses", err)
	}

	req = validSubmission()
	req.HexacoResponses[0].Response = 6
	if err := req.Validate(); !errors.Is(err, ErrResponseOutOfRange) {
		t.Errorf("err = %v, want ErrResponseOutOfRange", err)
	}

	req = validSubmission()
	req.DassResponses[0].Response = -1
	if err := req.Validate(); !errors.Is(err, ErrResponseOutOfRange) {
		t.Errorf("err = %v, want ErrResponseOutOfRange", err)
	}

	req = validSubmission()
	req.TeiqueResponses[0].ID = 31
	if err := req.Validate(); !errors.Is(err, ErrItemIDOutOfRange) {
		t.Errorf("err = %v, want ErrItemIDOutOfRange", err)
	}
}

func TestDomainContains(t *testing.T) {
	if DassDomain.Contains(-1) || DassDomain.Contains(4) {
		t.Error("DassDomain accepted an out-of-range value")
	}
	if !DassDomain.Contains(0) || !DassDomain.Contains(3) {
		t.Error("DassDomain rejected a boundary value")
	}
}

func TestIsValidStability(t *testing.T) {
	for _, s := range []Stability{StabilityStable, StabilityAtRisk, StabilityCritical} {
		if !IsValidStability(s) {
			t.Errorf("%q reported invalid", s)
		}
	}
	for _, s := range []Stability{"", "stable", "AT RISK", "unknown"} {
		if IsValidStability(s) {
			t.Errorf("%q reported valid", s)
		}
	}
}

func TestIncompleteErrorSorting(t *testing.T) {
	err := NewIncompleteError(InstrumentDass, []int{12, 5}, []int{9, 2})
	if err.Missing[0] != 5 || err.Missing[1] != 12 {
		t.Errorf("missing not sorted: %v", err.Missing)
	}
	if err.Duplicate[0] != 2 || err.Duplicate[1] != 9 {
		t.Errorf("duplicate not sorted: %v", err.Duplicate)
	}
	if err.Error() == "" {
		t.Error("empty error string")
	}
}
