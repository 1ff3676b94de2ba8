package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"readypulse/internal/cache"
	"readypulse/internal/forces"
	"readypulse/internal/model"
	"readypulse/internal/repository"
)

// AnalysisService runs the forces engine over a survey's scored
// responses and manages the resulting snapshots. The engine is pure;
// everything stateful (loading the batch, caching, persistence,
// broadcast) lives here.
type AnalysisService struct {
	surveyRepo    repository.SurveyRepo
	responseRepo  repository.ResponseRepo
	analysisRepo  repository.AnalysisRepo
	analysisCache cache.AnalysisCache
	broadcaster   Broadcaster
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	analysisRepo repository.AnalysisRepo,
	analysisCache cache.AnalysisCache,
) *AnalysisService {
	return &AnalysisService{
		surveyRepo:    surveyRepo,
		responseRepo:  responseRepo,
		analysisRepo:  analysisRepo,
		analysisCache: analysisCache,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AnalysisService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// AnalyzeSurvey recomputes the organizational analysis for a survey
// from scratch. There is no incremental update: any new batch of
// responses means a full rollup that replaces the previous snapshot.
func (s *AnalysisService) AnalyzeSurvey(ctx context.Context, surveyID string) (*model.AnalysisSnapshot, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	if survey == nil {
		return nil, fmt.Errorf("survey %s not found", surveyID)
	}

	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}

	batch := make([]forces.RawScore, 0, len(responses))
	for _, response := range responses {
		if response.Status == model.ResponseStatusScored && response.Score != nil {
			batch = append(batch, *response.Score)
		}
	}

	analysis, err := forces.Rollup(batch, s.optionsFor(survey))
	if err != nil {
		return nil, err
	}

	snapshot := &model.AnalysisSnapshot{
		SurveyID:       surveyID,
		OrganizationID: survey.OrganizationID,
		Analysis:       analysis,
		GeneratedAt:    time.Now(),
	}

	if err := s.analysisRepo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	if err := s.analysisCache.Set(ctx, surveyID, analysis); err != nil {
		log.Printf("Warning: failed to cache analysis for %s: %v", surveyID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(surveyID, "analysis_ready", map[string]interface{}{
			"surveyId":       surveyID,
			"readinessScore": analysis.ReadinessScore,
			"sampleSize":     analysis.SampleSize,
		})
	}
	return snapshot, nil
}

// GetAnalysis returns the current analysis for a survey, preferring
// the cache over the persisted snapshot. Returns nil when no rollup
// has run yet.
func (s *AnalysisService) GetAnalysis(ctx context.Context, surveyID string) (*forces.OrganizationalAnalysis, error) {
	cached, err := s.analysisCache.Get(ctx, surveyID)
	if err != nil {
		log.Printf("Warning: analysis cache read failed for %s: %v", surveyID, err)
	}
	if cached != nil {
		return cached, nil
	}

	snapshot, err := s.analysisRepo.GetBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	if err := s.analysisCache.Set(ctx, surveyID, snapshot.Analysis); err != nil {
		log.Printf("Warning: failed to cache analysis for %s: %v", surveyID, err)
	}
	return snapshot.Analysis, nil
}

// Compare puts two surveys' analyses side by side: readiness delta and
// per-force average shifts, base -> target.
func (s *AnalysisService) Compare(ctx context.Context, baseSurveyID, targetSurveyID string) (*model.AnalysisComparison, error) {
	base, err := s.GetAnalysis(ctx, baseSurveyID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("no analysis for survey %s", baseSurveyID)
	}

	target, err := s.GetAnalysis(ctx, targetSurveyID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("no analysis for survey %s", targetSurveyID)
	}

	comparison := &model.AnalysisComparison{
		BaseSurveyID:    baseSurveyID,
		TargetSurveyID:  targetSurveyID,
		BaseReadiness:   base.ReadinessScore,
		TargetReadiness: target.ReadinessScore,
		ReadinessDelta:  target.ReadinessScore - base.ReadinessScore,
		ForceShifts:     make([]model.ForceShift, 0, len(forces.Kinds)),
	}

	for _, kind := range forces.Kinds {
		baseAvg := base.PerForce[kind].AverageStrength
		targetAvg := target.PerForce[kind].AverageStrength
		comparison.ForceShifts = append(comparison.ForceShifts, model.ForceShift{
			Force:         kind,
			BaseAverage:   baseAvg,
			TargetAverage: targetAvg,
			Delta:         targetAvg - baseAvg,
		})
	}
	return comparison, nil
}

// Invalidate drops the cached analysis for a survey. Called when new
// responses arrive so stale rollups are not served.
func (s *AnalysisService) Invalidate(ctx context.Context, surveyID string) error {
	return s.analysisCache.Invalidate(ctx, surveyID)
}

// optionsFor maps survey settings onto engine options, falling back to
// the defaults for anything unset
func (s *AnalysisService) optionsFor(survey *model.Survey) forces.Options {
	opts := forces.DefaultOptions()
	if survey.Settings.ScaleMax > 0 {
		opts.ScaleMax = survey.Settings.ScaleMax
	}
	if survey.Settings.HighThreshold > 0 {
		opts.HighThreshold = survey.Settings.HighThreshold
	}
	if survey.Settings.LowThreshold > 0 {
		opts.LowThreshold = survey.Settings.LowThreshold
	}
	return opts
}
