package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"readypulse/internal/forces"
)

// AnalysisCache handles Redis caching of organizational analyses.
// Rollups are deterministic over a batch, so a cached result stays
// valid until new responses arrive for the survey.
type AnalysisCache interface {
	Get(ctx context.Context, surveyID string) (*forces.OrganizationalAnalysis, error)
	Set(ctx context.Context, surveyID string, analysis *forces.OrganizationalAnalysis) error
	Invalidate(ctx context.Context, surveyID string) error
}

type analysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache creates a new analysis cache
func NewAnalysisCache(client *redis.Client) AnalysisCache {
	return &analysisCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *analysisCache) key(surveyID string) string {
	return fmt.Sprintf("survey:%s:analysis", surveyID)
}

func (c *analysisCache) Get(ctx context.Context, surveyID string) (*forces.OrganizationalAnalysis, error) {
	data, err := c.client.Get(ctx, c.key(surveyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var analysis forces.OrganizationalAnalysis
	if err := json.Unmarshal([]byte(data), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (c *analysisCache) Set(ctx context.Context, surveyID string, analysis *forces.OrganizationalAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(surveyID), data, c.ttl).Err()
}

func (c *analysisCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, c.key(surveyID)).Err()
}
