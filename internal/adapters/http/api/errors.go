package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/careerlens/internal/adapters/mq/queue"
	"github.com/okian/careerlens/internal/adapters/repository"
	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/dedupe"
	"github.com/okian/careerlens/internal/domain/explain"
	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrBackpressure = errors.New("backpressure")
)

// OpError ties an error to the handler operation and a sentinel kind.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil && !errors.Is(e.Err, e.Kind):
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Kind != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *OpError) Unwrap() []error {
	var out []error
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap annotates err with op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// WrapKind annotates err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}

// NewKind reports kind for op without a cause.
func NewKind(op string, kind error) error {
	return &OpError{Op: op, Kind: kind}
}

// classify maps an error to an HTTP status and a stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, queue.ErrFull), errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, dedupe.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, features.ErrUnknownCategory):
		return http.StatusUnprocessableEntity, "unknown_category"
	case errors.Is(err, model.ErrEmptyInput):
		return http.StatusBadRequest, "empty_input"
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrMissingCandidate):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, classifier.ErrModelUnavailable):
		return http.StatusServiceUnavailable, "model_unavailable"
	case errors.Is(err, explain.ErrExplainabilityUnavailable):
		return http.StatusNotImplemented, "explainability_unavailable"
	case errors.Is(err, repository.ErrUnavailable), errors.Is(err, queue.ErrClosed):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
