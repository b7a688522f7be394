package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/model"
)

const (
	verifyKey     = "claimsift:queue:verify"
	delayedKey    = "claimsift:queue:delayed"
	deadLetterKey = "claimsift:queue:dead"
)

// promoteBatch bounds how many due delayed jobs are promoted per dequeue
const promoteBatch = 100

// NewClient builds a redis client from config. A URL takes precedence;
// otherwise Addr/Password/DB are used directly.
func NewClient(cfg model.RedisConfig) (*redis.Client, error) {
	var opt *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisQueue is a Broker backed by a redis list plus a sorted set holding
// backoff-delayed jobs keyed by their due time. The client is injected and
// owned by the caller unless Close is used.
type RedisQueue struct {
	client      *redis.Client
	maxAttempts int
	backoffBase time.Duration
	log         *zap.SugaredLogger
}

// NewRedisQueue creates a broker over an existing redis client
func NewRedisQueue(client *redis.Client, cfg model.WorkerConfig) *RedisQueue {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	backoffBase := cfg.BackoffBase
	if backoffBase <= 0 {
		backoffBase = time.Second
	}
	return &RedisQueue{
		client:      client,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		log:         zap.S().Named("queue"),
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, claimID string) error {
	payload, err := json.Marshal(Job{ID: uuid.NewString(), ClaimID: claimID, Attempt: 1})
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, verifyKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue claim %s: %w", claimID, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, wait time.Duration) (*Job, error) {
	if err := q.promoteDue(ctx); err != nil {
		q.log.Warnw("promoting delayed jobs failed", "error", err)
	}

	res, err := q.client.BRPop(ctx, wait, verifyKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue: %w", err)
	}

	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		// Unparseable payloads go straight to the dead-letter list
		q.log.Errorw("dropping malformed job payload", "payload", res[1], "error", err)
		q.client.LPush(ctx, deadLetterKey, res[1])
		return nil, ErrEmpty
	}
	return &job, nil
}

func (q *RedisQueue) Retry(ctx context.Context, job *Job) (bool, error) {
	if job.Attempt >= q.maxAttempts {
		if err := q.Bury(ctx, job); err != nil {
			return false, err
		}
		q.log.Warnw("job attempts exhausted", "claim_id", job.ClaimID, "attempts", job.Attempt)
		return false, nil
	}

	delay := Backoff(q.backoffBase, job.Attempt)
	next := Job{ID: job.ID, ClaimID: job.ClaimID, Attempt: job.Attempt + 1}
	payload, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("marshal job: %w", err)
	}

	due := float64(time.Now().Add(delay).UnixMilli())
	if err := q.client.ZAdd(ctx, delayedKey, redis.Z{Score: due, Member: payload}).Err(); err != nil {
		return false, fmt.Errorf("schedule retry for claim %s: %w", job.ClaimID, err)
	}
	return true, nil
}

func (q *RedisQueue) Bury(ctx context.Context, job *Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, deadLetterKey, payload).Err(); err != nil {
		return fmt.Errorf("bury claim %s: %w", job.ClaimID, err)
	}
	return nil
}

// promoteDue moves delayed jobs whose due time has passed back onto the
// delivery list. ZRem is the claim: only the remover promotes, so
// concurrent workers cannot double-promote a member.
func (q *RedisQueue) promoteDue(ctx context.Context) error {
	now := fmt.Sprintf("%d", time.Now().UnixMilli())
	members, err := q.client.ZRangeByScore(ctx, delayedKey, &redis.ZRangeBy{
		Min: "-inf", Max: now, Count: promoteBatch,
	}).Result()
	if err != nil {
		return err
	}

	for _, member := range members {
		removed, err := q.client.ZRem(ctx, delayedKey, member).Result()
		if err != nil {
			return err
		}
		if removed == 0 {
			continue
		}
		if err := q.client.LPush(ctx, verifyKey, member).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (q *RedisQueue) Close() error { return q.client.Close() }
