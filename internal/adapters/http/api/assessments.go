package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/model"
)

// assessmentRequest is the body of POST /assessments and /assessments/async.
type assessmentRequest struct {
	SubmissionID string `json:"submission_id"`
	CandidateID  string `json:"candidate_id"`
	model.RawAssessmentInput
}

type asyncResponse struct {
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status"`
}

// AssessmentHandler handles assessment requests.
type AssessmentHandler struct {
	deps AssessmentDependencies
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(deps AssessmentDependencies) *AssessmentHandler {
	return &AssessmentHandler{deps: deps}
}

// HandleAssess handles POST /assessments. A degraded run still answers 200
// with the stage issues listed in the result; an unseen interest answers 422
// and is not stored.
func (h *AssessmentHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	const op = "api.assess"
	var req assessmentRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.deps.Submit(r.Context(), req.CandidateID, req.RawAssessmentInput)
	if err != nil && (rec.Status == model.StatusFailed || errors.Is(err, features.ErrUnknownCategory)) {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleAssessAsync handles POST /assessments/async.
func (h *AssessmentHandler) HandleAssessAsync(w http.ResponseWriter, r *http.Request) {
	const op = "api.assess_async"
	var req assessmentRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := h.deps.SubmitAsync(r.Context(), strings.TrimSpace(req.SubmissionID), req.CandidateID, req.RawAssessmentInput)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, asyncResponse{SubmissionID: id, Status: model.StatusPending})
}

// HandleGetAssessment handles GET /assessments/{id}.
func (h *AssessmentHandler) HandleGetAssessment(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_assessment"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, NewKind(op, ErrBadRequest))
		return
	}
	rec, err := h.deps.GetAssessment(r.Context(), id)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
