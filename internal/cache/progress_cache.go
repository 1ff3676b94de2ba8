package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"readypulse/internal/model"
)

// ProgressCache tracks scoring progress per survey with Redis counters
// so dashboards can poll while a batch is in flight
type ProgressCache interface {
	Start(ctx context.Context, surveyID string, total int) error
	IncrScored(ctx context.Context, surveyID string) error
	IncrFailed(ctx context.Context, surveyID string) error
	Get(ctx context.Context, surveyID string) (*model.ScoringProgress, error)
}

type progressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache creates a new progress cache
func NewProgressCache(client *redis.Client) ProgressCache {
	return &progressCache{
		client: client,
		ttl:    6 * time.Hour,
	}
}

func (c *progressCache) key(surveyID, field string) string {
	return fmt.Sprintf("survey:%s:scoring:%s", surveyID, field)
}

func (c *progressCache) Start(ctx context.Context, surveyID string, total int) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.key(surveyID, "total"), total, c.ttl)
	pipe.Set(ctx, c.key(surveyID, "scored"), 0, c.ttl)
	pipe.Set(ctx, c.key(surveyID, "failed"), 0, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *progressCache) IncrScored(ctx context.Context, surveyID string) error {
	return c.client.Incr(ctx, c.key(surveyID, "scored")).Err()
}

func (c *progressCache) IncrFailed(ctx context.Context, surveyID string) error {
	return c.client.Incr(ctx, c.key(surveyID, "failed")).Err()
}

func (c *progressCache) Get(ctx context.Context, surveyID string) (*model.ScoringProgress, error) {
	progress := &model.ScoringProgress{SurveyID: surveyID}
	for field, dst := range map[string]*int{
		"total":  &progress.Total,
		"scored": &progress.Scored,
		"failed": &progress.Failed,
	} {
		val, err := c.client.Get(ctx, c.key(surveyID, field)).Int()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		*dst = val
	}
	return progress, nil
}
