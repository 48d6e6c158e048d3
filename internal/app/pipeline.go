package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/explain"
	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/interview"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/salary"
	"github.com/okian/careerlens/internal/domain/scoring"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

// Pipeline stage names used in spans, metrics and issues.
const (
	StageScores   = "scores"
	StageClassify = "classify"
	StageSalary   = "salary"
	StageExplain  = "explain"
)

// Assess runs the full pipeline. Composite scores are always computed; when
// the classifier or a dependent stage fails the result is still returned with
// Issues set, together with the joined stage errors. Invalid input fails
// outright.
func (s *Service) Assess(ctx context.Context, candidateID string, in model.RawAssessmentInput) (model.AssessmentResult, error) {
	ctx, span := s.tracer.Start(ctx, "assess",
		trace.WithAttributes(attribute.String("candidate.id", candidateID)))
	defer span.End()

	art := s.art.Load()
	if err := in.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid input")
		metrics.RecordAssessment("rejected")
		return model.AssessmentResult{}, err
	}

	var res model.AssessmentResult
	var errs []error
	fail := func(stage string, err error) {
		res.Issues = append(res.Issues, model.Issue{Stage: stage, Code: issueCode(err), Message: err.Error()})
		errs = append(errs, fmt.Errorf("%s: %w", stage, err))
	}

	_ = s.stage(ctx, StageScores, func(context.Context) error {
		sc := s.calculator.Compute(in)
		res.IntelligenceScore, res.ReadinessScore = sc.Intelligence, sc.Readiness
		return nil
	})

	var vec features.Vector
	err := s.stage(ctx, StageClassify, func(context.Context) error {
		v, career, conf, err := predict(art, in)
		if err != nil {
			return err
		}
		vec, res.PredictedCareer, res.Confidence = v, career, conf
		return nil
	})
	if err != nil {
		fail(StageClassify, err)
		return s.finish(ctx, span, res, errs)
	}
	metrics.RecordPrediction(res.PredictedCareer, res.Confidence)
	span.SetAttributes(
		attribute.String("career", res.PredictedCareer),
		attribute.Float64("confidence", res.Confidence))

	var (
		est        salary.Estimate
		expl       explain.Explanation
		explainErr error
		g          errgroup.Group
	)
	g.Go(func() error {
		return s.stage(ctx, StageSalary, func(context.Context) error {
			est = art.estimator.Estimate(res.PredictedCareer, in.Coding)
			return nil
		})
	})
	g.Go(func() error {
		explainErr = s.stage(ctx, StageExplain, func(context.Context) error {
			var err error
			expl, err = art.explainer.Explain(vec)
			return err
		})
		return nil
	})
	_ = g.Wait()

	res.PredictedSalary = est.Salary
	res.SalaryProjection = append([]float64(nil), est.Projection[:]...)
	if explainErr != nil {
		fail(StageExplain, explainErr)
	} else {
		res.Baseline = expl.Baseline
		res.Attribution = expl.Contributions
	}

	market := art.catalog.Market(res.PredictedCareer)
	res.Market = &market
	res.Roadmap = art.catalog.Roadmap(res.PredictedCareer)

	return s.finish(ctx, span, res, errs)
}

func (s *Service) finish(ctx context.Context, span trace.Span, res model.AssessmentResult, errs []error) (model.AssessmentResult, error) { //nolint:gocritic // hugeParam: returned by value
	if len(errs) == 0 {
		metrics.RecordAssessment("completed")
		return res, nil
	}
	err := errors.Join(errs...)
	span.RecordError(err)
	span.SetStatus(codes.Error, "degraded")
	metrics.RecordAssessment("degraded")
	s.logger.Warn(ctx, "assessment degraded",
		logger.Int("issues", len(res.Issues)), logger.Error(err))
	return res, err
}

// stage runs fn in a child span and records its latency and failure kind.
func (s *Service) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.RecordStageLatency(name, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordStageError(name, issueCode(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, issueCode(err))
	}
	return err
}

func predict(art *artifacts, in model.RawAssessmentInput) (features.Vector, string, float64, error) { //nolint:gocritic // hugeParam: read-only
	if !art.clf.Available() {
		return features.Vector{}, "", 0, classifier.ErrModelUnavailable
	}
	v, err := art.normalizer.Normalize(in)
	if err != nil {
		return features.Vector{}, "", 0, err
	}
	career, conf, err := art.clf.Classify(v)
	if err != nil {
		return features.Vector{}, "", 0, err
	}
	return v, career, conf, nil
}

func issueCode(err error) string {
	switch {
	case errors.Is(err, classifier.ErrModelUnavailable):
		return IssueModelUnavailable
	case errors.Is(err, features.ErrUnknownCategory):
		return IssueUnknownCategory
	case errors.Is(err, explain.ErrExplainabilityUnavailable):
		return IssueExplainabilityUnavailable
	default:
		return IssueInternal
	}
}

// PredictCareer returns the predicted career and its confidence in [0,100].
func (s *Service) PredictCareer(ctx context.Context, in model.RawAssessmentInput) (string, float64, error) { //nolint:gocritic // hugeParam: read-only
	if err := in.Validate(); err != nil {
		return "", 0, err
	}
	var (
		career string
		conf   float64
	)
	err := s.stage(ctx, StageClassify, func(context.Context) error {
		var err error
		_, career, conf, err = predict(s.art.Load(), in)
		return err
	})
	if err != nil {
		return "", 0, err
	}
	metrics.RecordPrediction(career, conf)
	return career, conf, nil
}

// EstimateSalary returns the salary and five-year projection for career.
func (s *Service) EstimateSalary(career string, coding int) salary.Estimate {
	return s.art.Load().estimator.Estimate(career, coding)
}

// ComputeScores returns the intelligence and readiness scores.
func (s *Service) ComputeScores(in model.RawAssessmentInput) scoring.Scores { //nolint:gocritic // hugeParam: read-only
	return s.calculator.Compute(in)
}

// Explain attributes the predicted career's probability to the input features.
func (s *Service) Explain(ctx context.Context, in model.RawAssessmentInput) (explain.Explanation, error) { //nolint:gocritic // hugeParam: read-only
	if err := in.Validate(); err != nil {
		return explain.Explanation{}, err
	}
	art := s.art.Load()
	var out explain.Explanation
	err := s.stage(ctx, StageExplain, func(context.Context) error {
		if !art.clf.Available() {
			return classifier.ErrModelUnavailable
		}
		v, err := art.normalizer.Normalize(in)
		if err != nil {
			return err
		}
		out, err = art.explainer.Explain(v)
		return err
	})
	return out, err
}

// AnalyzeResume compares resume text with the skills career requires.
func (s *Service) AnalyzeResume(ctx context.Context, text, career string) (model.SkillGapReport, error) {
	_, span := s.tracer.Start(ctx, "analyze_resume", trace.WithAttributes(attribute.String("career", career)))
	defer span.End()

	report, err := s.art.Load().matcher.Analyze(text, career)
	if err != nil {
		span.RecordError(err)
		return model.SkillGapReport{}, err
	}
	metrics.RecordSkillMatch(report.MatchScore)
	return report, nil
}

// GenerateQuestion picks a practice question for career.
func (s *Service) GenerateQuestion(career string) string {
	return s.art.Load().questions.Question(career)
}

// ScoreAnswer grades an interview answer by length.
func (s *Service) ScoreAnswer(ctx context.Context, career, question, answer string) (model.InterviewTurn, error) {
	_, span := s.tracer.Start(ctx, "score_answer")
	defer span.End()

	turn, err := s.answers.ScoreAnswer(question, answer)
	if err != nil {
		span.RecordError(err)
		return model.InterviewTurn{}, err
	}
	turn.Career = career
	metrics.RecordInterviewAnswer(answerBucket(turn.Score))
	return turn, nil
}

func answerBucket(score float64) string {
	switch score {
	case interview.ShortScore:
		return "short"
	case interview.MediumScore:
		return "medium"
	default:
		return "full"
	}
}

// AnalyzePersonality derives trait scores from a self-description.
func (s *Service) AnalyzePersonality(ctx context.Context, text string) (model.PersonalityReading, error) {
	_, span := s.tracer.Start(ctx, "analyze_personality")
	defer span.End()

	reading, err := s.persona.Analyze(text)
	if err != nil {
		span.RecordError(err)
		return model.PersonalityReading{}, err
	}
	metrics.RecordDominantTrait(reading.DominantTrait)
	return reading, nil
}

// Market returns demand figures for career.
func (s *Service) Market(career string) model.Market {
	return s.art.Load().catalog.Market(career)
}

// Roadmap returns learning milestones for career.
func (s *Service) Roadmap(career string) []string {
	return s.art.Load().catalog.Roadmap(career)
}
