package service

import (
	"context"
	"fmt"
	"sync"

	"readypulse/internal/forces"
	"readypulse/internal/model"
)

// In-memory fakes for repository and cache interfaces, used across the
// service tests.

type fakeSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]*model.Survey
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{surveys: make(map[string]*model.Survey)}
}

func (r *fakeSurveyRepo) Create(_ context.Context, survey *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if survey.ID == "" {
		survey.ID = fmt.Sprintf("s%d", len(r.surveys)+1)
	}
	if survey.Status == "" {
		survey.Status = model.SurveyStatusDraft
	}
	r.surveys[survey.ID] = survey
	return nil
}

func (r *fakeSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surveys[id], nil
}

func (r *fakeSurveyRepo) ListByOrganization(_ context.Context, orgID string) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Survey
	for _, s := range r.surveys {
		if s.OrganizationID == orgID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) ListByHost(_ context.Context, hostID string) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Survey
	for _, s := range r.surveys {
		if s.HostID == hostID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) Update(_ context.Context, survey *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surveys[survey.ID] = survey
	return nil
}

func (r *fakeSurveyRepo) SetStatus(_ context.Context, id string, status model.SurveyStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.surveys[id]; ok {
		s.Status = status
	}
	return nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	responses []*model.SurveyResponse
}

func (r *fakeResponseRepo) Create(_ context.Context, response *model.SurveyResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	response.ID = fmt.Sprintf("r%d", len(r.responses)+1)
	if response.Status == "" {
		response.Status = model.ResponseStatusPending
	}
	r.responses = append(r.responses, response)
	return nil
}

func (r *fakeResponseRepo) GetByID(_ context.Context, id string) (*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, nil
}

func (r *fakeResponseRepo) ListBySurvey(_ context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) ListPendingBySurvey(_ context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID && resp.Status == model.ResponseStatusPending {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) SetScore(_ context.Context, id string, score *forces.RawScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ID == id {
			resp.Status = model.ResponseStatusScored
			resp.Score = score
			resp.ScoringError = ""
			return nil
		}
	}
	return fmt.Errorf("response %s not found", id)
}

func (r *fakeResponseRepo) SetFailed(_ context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ID == id {
			resp.Status = model.ResponseStatusFailed
			resp.ScoringError = reason
			return nil
		}
	}
	return fmt.Errorf("response %s not found", id)
}

func (r *fakeResponseRepo) CountByStatus(_ context.Context, surveyID string, status model.ResponseStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID && resp.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeAnalysisRepo struct {
	mu        sync.Mutex
	snapshots map[string]*model.AnalysisSnapshot
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{snapshots: make(map[string]*model.AnalysisSnapshot)}
}

func (r *fakeAnalysisRepo) Save(_ context.Context, snapshot *model.AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshot.SurveyID] = snapshot
	return nil
}

func (r *fakeAnalysisRepo) GetBySurvey(_ context.Context, surveyID string) (*model.AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots[surveyID], nil
}

func (r *fakeAnalysisRepo) ListByOrganization(_ context.Context, orgID string) ([]*model.AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.AnalysisSnapshot
	for _, s := range r.snapshots {
		if s.OrganizationID == orgID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAnalysisCache struct {
	mu      sync.Mutex
	entries map[string]*forces.OrganizationalAnalysis
}

func newFakeAnalysisCache() *fakeAnalysisCache {
	return &fakeAnalysisCache{entries: make(map[string]*forces.OrganizationalAnalysis)}
}

func (c *fakeAnalysisCache) Get(_ context.Context, surveyID string) (*forces.OrganizationalAnalysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[surveyID], nil
}

func (c *fakeAnalysisCache) Set(_ context.Context, surveyID string, analysis *forces.OrganizationalAnalysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[surveyID] = analysis
	return nil
}

func (c *fakeAnalysisCache) Invalidate(_ context.Context, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, surveyID)
	return nil
}

type fakeProgressCache struct {
	mu       sync.Mutex
	progress map[string]*model.ScoringProgress
}

func newFakeProgressCache() *fakeProgressCache {
	return &fakeProgressCache{progress: make(map[string]*model.ScoringProgress)}
}

func (c *fakeProgressCache) Start(_ context.Context, surveyID string, total int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress[surveyID] = &model.ScoringProgress{SurveyID: surveyID, Total: total}
	return nil
}

func (c *fakeProgressCache) IncrScored(_ context.Context, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.progress[surveyID]; ok {
		p.Scored++
	}
	return nil
}

func (c *fakeProgressCache) IncrFailed(_ context.Context, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.progress[surveyID]; ok {
		p.Failed++
	}
	return nil
}

func (c *fakeProgressCache) Get(_ context.Context, surveyID string) (*model.ScoringProgress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.progress[surveyID]; ok {
		snap := *p
		return &snap, nil
	}
	return &model.ScoringProgress{SurveyID: surveyID}, nil
}

// fakeScorer scores deterministically and can be told to fail the
// first N calls per response
type fakeScorer struct {
	mu       sync.Mutex
	failures map[string]int
	calls    map[string]int
}

func newFakeScorer() *fakeScorer {
	return &fakeScorer{
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

func (s *fakeScorer) failFirst(responseID string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[responseID] = n
}

func (s *fakeScorer) ScoreResponse(_ context.Context, _ *model.Survey, response *model.SurveyResponse) (*forces.RawScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[response.ID]++
	if s.failures[response.ID] > 0 {
		s.failures[response.ID]--
		return nil, fmt.Errorf("scorer unavailable")
	}
	return &forces.RawScore{
		PrimaryForce: forces.PainOfOld,
		Strength:     4,
		Confidence:   3.5,
		KeyThemes:    []string{"manual work"},
	}, nil
}
