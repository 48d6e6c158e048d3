package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/types"
)

const (
	defaultRedisPrefix = "careerlens:"
	analyticsBatch     = 200
)

// RedisStore keeps records as JSON strings. Assessment IDs are tracked in a
// set so analytics can walk them without KEYS.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. The caller owns the client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) assessmentKey(id string) string { return s.prefix + "assessment:" + id }
func (s *RedisStore) indexKey() string               { return s.prefix + "assessments" }
func (s *RedisStore) skillGapKey(cid string) string  { return s.prefix + "skillgap:" + cid }
func (s *RedisStore) turnsKey(cid string) string     { return s.prefix + "interview:" + cid }

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

// SaveAssessment implements Store.
func (s *RedisStore) SaveAssessment(ctx context.Context, rec model.AssessmentRecord) error { //nolint:gocritic // hugeParam: serialized by value
	if rec.ID == "" {
		return ErrMissingID
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode assessment: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.assessmentKey(rec.ID), payload, s.ttl)
		p.SAdd(ctx, s.indexKey(), rec.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

// GetAssessment implements Store.
func (s *RedisStore) GetAssessment(ctx context.Context, id string) (model.AssessmentRecord, error) {
	var rec model.AssessmentRecord
	raw, err := s.client.Get(ctx, s.assessmentKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("%w: decode assessment %s: %w", ErrBackend, id, err)
	}
	return rec, nil
}

// SaveSkillGap implements Store.
func (s *RedisStore) SaveSkillGap(ctx context.Context, candidateID string, r model.SkillGapReport) error {
	if candidateID == "" {
		return ErrMissingCandidate
	}
	return s.push(ctx, s.skillGapKey(candidateID), r)
}

// SkillGaps implements Store.
func (s *RedisStore) SkillGaps(ctx context.Context, candidateID string) ([]model.SkillGapReport, error) {
	return readList[model.SkillGapReport](ctx, s.client, s.skillGapKey(candidateID))
}

// AppendInterviewTurn implements Store.
func (s *RedisStore) AppendInterviewTurn(ctx context.Context, candidateID string, t model.InterviewTurn) error {
	if candidateID == "" {
		return ErrMissingCandidate
	}
	return s.push(ctx, s.turnsKey(candidateID), t)
}

// InterviewTurns implements Store.
func (s *RedisStore) InterviewTurns(ctx context.Context, candidateID string) ([]model.InterviewTurn, error) {
	return readList[model.InterviewTurn](ctx, s.client, s.turnsKey(candidateID))
}

// Analytics implements Store. Index entries whose record expired are
// skipped.
func (s *RedisStore) Analytics(ctx context.Context) (types.Analytics, error) {
	var tally types.Tally
	var cursor uint64
	for {
		ids, next, err := s.client.SScan(ctx, s.indexKey(), cursor, "", analyticsBatch).Result()
		if err != nil {
			return types.Analytics{}, fmt.Errorf("%w: %w", ErrBackend, err)
		}
		if len(ids) > 0 {
			keys := make([]string, len(ids))
			for i, id := range ids {
				keys[i] = s.assessmentKey(id)
			}
			vals, err := s.client.MGet(ctx, keys...).Result()
			if err != nil {
				return types.Analytics{}, fmt.Errorf("%w: %w", ErrBackend, err)
			}
			for _, v := range vals {
				str, ok := v.(string)
				if !ok {
					continue
				}
				var rec model.AssessmentRecord
				if json.Unmarshal([]byte(str), &rec) == nil {
					tally.Add(rec)
				}
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return tally.Analytics(), nil
}

// Count implements Store. It returns -1 when redis is unreachable.
func (s *RedisStore) Count(ctx context.Context) int {
	n, err := s.client.SCard(ctx, s.indexKey()).Result()
	if err != nil {
		return -1
	}
	return int(n)
}

func (s *RedisStore) push(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

func readList[T any](ctx context.Context, c redis.UniversalClient, key string) ([]T, error) {
	raw, err := c.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal([]byte(r), &v); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", ErrBackend, key, err)
		}
		out = append(out, v)
	}
	return out, nil
}
