// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/types"
	"github.com/okian/careerlens/pkg/logger"
)

const maxBodyBytes = 1 << 20

// AssessmentDependencies run and look up assessments.
type AssessmentDependencies interface {
	Submit(ctx context.Context, candidateID string, in model.RawAssessmentInput) (model.AssessmentRecord, error)
	SubmitAsync(ctx context.Context, submissionID, candidateID string, in model.RawAssessmentInput) (string, error)
	GetAssessment(ctx context.Context, id string) (model.AssessmentRecord, error)
}

// CoachingDependencies serve the resume, interview and personality tools.
type CoachingDependencies interface {
	AnalyzeResume(ctx context.Context, text, career string) (model.SkillGapReport, error)
	RecordSkillGap(ctx context.Context, candidateID string, report model.SkillGapReport) error
	GenerateQuestion(career string) string
	ScoreAnswer(ctx context.Context, career, question, answer string) (model.InterviewTurn, error)
	RecordInterviewTurn(ctx context.Context, candidateID string, turn model.InterviewTurn) error
	AnalyzePersonality(ctx context.Context, text string) (model.PersonalityReading, error)
	History(ctx context.Context, candidateID string) (types.CandidateHistory, error)
}

// InsightDependencies expose reference data and aggregates.
type InsightDependencies interface {
	Market(career string) model.Market
	Roadmap(career string) []string
	Analytics(ctx context.Context) (types.Analytics, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AssessmentDependencies
	CoachingDependencies
	InsightDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	assessmentHandler *AssessmentHandler
	coachingHandler   *CoachingHandler
	marketHandler     *MarketHandler

	limiter        *LimiterManager
	tracerProvider trace.TracerProvider
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps, deps),
		assessmentHandler: NewAssessmentHandler(deps),
		coachingHandler:   NewCoachingHandler(deps),
		marketHandler:     NewMarketHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(s.rateLimit(h), endpoint))
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	route("GET /stats", "stats", s.statsHandler.HandleStats)
	route("POST /assessments", "assessments", s.assessmentHandler.HandleAssess)
	route("POST /assessments/async", "assessments_async", s.assessmentHandler.HandleAssessAsync)
	route("GET /assessments/{id}", "assessment", s.assessmentHandler.HandleGetAssessment)
	route("POST /resume/analyze", "resume", s.coachingHandler.HandleResume)
	route("POST /interview/question", "interview_question", s.coachingHandler.HandleQuestion)
	route("POST /interview/answer", "interview_answer", s.coachingHandler.HandleAnswer)
	route("POST /personality", "personality", s.coachingHandler.HandlePersonality)
	route("GET /candidates/{id}/history", "history", s.coachingHandler.HandleHistory)
	route("GET /market/{career}", "market", s.marketHandler.HandleMarket)
}

// Handler returns mux instrumented with OpenTelemetry server spans.
func (s *Server) Handler(mux *http.ServeMux) http.Handler {
	var opts []otelhttp.Option
	if s.tracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(s.tracerProvider))
	}
	return otelhttp.NewHandler(mux, "careerlens", opts...)
}

// Close releases background resources.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func decode(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewKind(op, ErrBadRequest)
		}
		return WrapKind(op, ErrBadRequest, fmt.Errorf("decode body: %w", err))
	}
	return nil
}
