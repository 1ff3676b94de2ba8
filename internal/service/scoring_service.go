package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"readypulse/internal/cache"
	"readypulse/internal/model"
	"readypulse/internal/repository"
)

// ScoringService dispatches a survey's pending responses to the
// external scorer with a bounded worker pool and per-response retry.
// The forces engine itself never does I/O: this layer materializes the
// scored batch that Rollup consumes.
type ScoringService struct {
	responseRepo repository.ResponseRepo
	surveyRepo   repository.SurveyRepo
	progress     cache.ProgressCache
	scorer       Scorer
	broadcaster  Broadcaster

	workers    int
	maxRetries int
}

// NewScoringService creates a new scoring service
func NewScoringService(
	responseRepo repository.ResponseRepo,
	surveyRepo repository.SurveyRepo,
	progress cache.ProgressCache,
	scorer Scorer,
	workers, maxRetries int,
) *ScoringService {
	if workers <= 0 {
		workers = 4
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ScoringService{
		responseRepo: responseRepo,
		surveyRepo:   surveyRepo,
		progress:     progress,
		scorer:       scorer,
		workers:      workers,
		maxRetries:   maxRetries,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket progress events
func (s *ScoringService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ScoreSurvey scores every pending response of a survey. A response
// that keeps failing after retries is marked failed and skipped; the
// rest of the batch continues. Returns the final progress.
func (s *ScoringService) ScoreSurvey(ctx context.Context, surveyID string) (*model.ScoringProgress, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	if survey == nil {
		return nil, fmt.Errorf("survey %s not found", surveyID)
	}

	pending, err := s.responseRepo.ListPendingBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list pending responses: %w", err)
	}

	if err := s.progress.Start(ctx, surveyID, len(pending)); err != nil {
		log.Printf("Warning: failed to init scoring progress for %s: %v", surveyID, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, response := range pending {
		response := response // per-iteration copy; required while go.mod targets go < 1.22
		g.Go(func() error {
			s.scoreOne(gctx, survey, response)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	progress, err := s.progress.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(surveyID, "scoring_complete", progress)
	}
	return progress, nil
}

// scoreOne handles a single response including retries. Failures are
// recorded, never propagated: one stubborn response must not abort the
// batch.
func (s *ScoringService) scoreOne(ctx context.Context, survey *model.Survey, response *model.SurveyResponse) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
			if ctx.Err() != nil {
				lastErr = ctx.Err()
				break
			}
		}

		score, err := s.scorer.ScoreResponse(ctx, survey, response)
		if err != nil {
			lastErr = err
			continue
		}

		if err := s.responseRepo.SetScore(ctx, response.ID, score); err != nil {
			lastErr = err
			continue
		}

		if err := s.progress.IncrScored(ctx, survey.ID); err != nil {
			log.Printf("Warning: progress update failed for %s: %v", survey.ID, err)
		}
		s.broadcastProgress(ctx, survey.ID)
		return
	}

	log.Printf("Scoring failed for response %s after %d attempts: %v", response.ID, s.maxRetries+1, lastErr)
	if err := s.responseRepo.SetFailed(ctx, response.ID, lastErr.Error()); err != nil {
		log.Printf("Warning: failed to mark response %s as failed: %v", response.ID, err)
	}
	if err := s.progress.IncrFailed(ctx, survey.ID); err != nil {
		log.Printf("Warning: progress update failed for %s: %v", survey.ID, err)
	}
	s.broadcastProgress(ctx, survey.ID)
}

func (s *ScoringService) broadcastProgress(ctx context.Context, surveyID string) {
	if s.broadcaster == nil {
		return
	}
	progress, err := s.progress.Get(ctx, surveyID)
	if err != nil {
		return
	}
	s.broadcaster.BroadcastToSurvey(surveyID, "scoring_progress", progress)
}

// Progress returns the current scoring progress for a survey
func (s *ScoringService) Progress(ctx context.Context, surveyID string) (*model.ScoringProgress, error) {
	return s.progress.Get(ctx, surveyID)
}
