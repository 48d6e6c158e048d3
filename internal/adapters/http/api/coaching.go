package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/careerlens/pkg/logger"
)

type resumeRequest struct {
	CandidateID string `json:"candidate_id"`
	Career      string `json:"career"`
	Text        string `json:"text"`
}

type questionRequest struct {
	Career string `json:"career"`
}

type questionResponse struct {
	Career   string `json:"career"`
	Question string `json:"question"`
}

type answerRequest struct {
	CandidateID string `json:"candidate_id"`
	Career      string `json:"career"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}

type personalityRequest struct {
	Text string `json:"text"`
}

// CoachingHandler handles resume, interview and personality requests.
type CoachingHandler struct {
	deps   CoachingDependencies
	logger logger.Logger
}

// NewCoachingHandler creates a new coaching handler.
func NewCoachingHandler(deps CoachingDependencies) *CoachingHandler {
	return &CoachingHandler{deps: deps, logger: logger.Get().Named("api.coaching")}
}

// HandleResume handles POST /resume/analyze. The report is stored in the
// candidate's history when candidate_id is set.
func (h *CoachingHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	const op = "api.resume"
	var req resumeRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Career) == "" {
		writeError(w, WrapKind(op, ErrBadRequest, errors.New("missing career")))
		return
	}
	report, err := h.deps.AnalyzeResume(r.Context(), req.Text, req.Career)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	if req.CandidateID != "" {
		if err := h.deps.RecordSkillGap(r.Context(), req.CandidateID, report); err != nil {
			h.logger.Warn(r.Context(), "skill gap not stored",
				logger.String("candidate_id", req.CandidateID), logger.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleQuestion handles POST /interview/question.
func (h *CoachingHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "api.interview_question"
	var req questionRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{
		Career:   req.Career,
		Question: h.deps.GenerateQuestion(req.Career),
	})
}

// HandleAnswer handles POST /interview/answer.
func (h *CoachingHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	const op = "api.interview_answer"
	var req answerRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, err)
		return
	}
	turn, err := h.deps.ScoreAnswer(r.Context(), req.Career, req.Question, req.Answer)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	if req.CandidateID != "" {
		if err := h.deps.RecordInterviewTurn(r.Context(), req.CandidateID, turn); err != nil {
			h.logger.Warn(r.Context(), "interview turn not stored",
				logger.String("candidate_id", req.CandidateID), logger.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, turn)
}

// HandlePersonality handles POST /personality.
func (h *CoachingHandler) HandlePersonality(w http.ResponseWriter, r *http.Request) {
	const op = "api.personality"
	var req personalityRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, err)
		return
	}
	reading, err := h.deps.AnalyzePersonality(r.Context(), req.Text)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

// HandleHistory handles GET /candidates/{id}/history.
func (h *CoachingHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.history"
	hist, err := h.deps.History(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, hist)
}
