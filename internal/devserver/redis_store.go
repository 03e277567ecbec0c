package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mondai-quiz/mondai/internal/api"
)

const (
	submissionsField = "submissions"
	sumPrefix        = "sum:"
	countPrefix      = "n:"
)

// RedisStore keeps results as JSON strings and aggregates as hashes so
// several server processes can share one Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store. Results expire after ttl; zero keeps
// them forever. Aggregates never expire.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, res api.StoredResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	sk := s.statsKey(res.SetID, res.SetVersion)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.resultKey(res.ID), data, s.ttl)
		pipe.HIncrBy(ctx, sk, submissionsField, 1)
		for _, ans := range res.Answers {
			pipe.HIncrByFloat(ctx, sk, sumPrefix+ans.QuestionID, float64(ans.ElapsedMs))
			pipe.HIncrBy(ctx, sk, countPrefix+ans.QuestionID, 1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save result %s: %w", res.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*api.StoredResult, error) {
	data, err := s.client.Get(ctx, s.resultKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get result %s: %w", id, err)
	}
	var res api.StoredResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", id, err)
	}
	return &res, nil
}

func (s *RedisStore) Stats(ctx context.Context, setID string, version int) (*api.SetStats, error) {
	fields, err := s.client.HGetAll(ctx, s.statsKey(setID, version)).Result()
	if err != nil {
		return nil, fmt.Errorf("get stats %s@%d: %w", setID, version, err)
	}

	out := &api.SetStats{SetID: setID, Version: version, QuestionStats: []api.QuestionStat{}}
	questions := make(map[string]*timing)
	at := func(qid string) *timing {
		t, ok := questions[qid]
		if !ok {
			t = &timing{}
			questions[qid] = t
		}
		return t
	}

	for field, raw := range fields {
		switch {
		case field == submissionsField:
			out.Submissions, _ = strconv.Atoi(raw)
		case strings.HasPrefix(field, sumPrefix):
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", field, err)
			}
			at(strings.TrimPrefix(field, sumPrefix)).sum = v
		case strings.HasPrefix(field, countPrefix):
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", field, err)
			}
			at(strings.TrimPrefix(field, countPrefix)).samples = n
		}
	}
	out.QuestionStats = questionStats(questions)
	return out, nil
}

func (s *RedisStore) resultKey(id string) string {
	return "mondai:result:" + id
}

func (s *RedisStore) statsKey(setID string, version int) string {
	return "mondai:stats:" + setID + ":" + strconv.Itoa(version)
}
