package service

import (
	"context"
	"errors"
	"fmt"

	"readypulse/internal/model"
	"readypulse/internal/repository"
)

var (
	ErrSurveyNotFound = errors.New("survey not found")
	ErrSurveyClosed   = errors.New("survey is not accepting responses")
)

// SurveyService handles survey CRUD and response intake
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	analysisSvc  *AnalysisService
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

// SetAnalysisService wires the analysis service so response intake can
// invalidate stale cached rollups
func (s *SurveyService) SetAnalysisService(svc *AnalysisService) {
	s.analysisSvc = svc
}

// Create creates a new survey for an organization
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) error {
	if survey.Title == "" {
		return errors.New("survey title is required")
	}
	if survey.OrganizationID == "" {
		return errors.New("organization is required")
	}
	return s.surveyRepo.Create(ctx, survey)
}

// Get returns one survey by ID
func (s *SurveyService) Get(ctx context.Context, id string) (*model.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// ListByOrganization returns all surveys of an organization
func (s *SurveyService) ListByOrganization(ctx context.Context, orgID string) ([]*model.Survey, error) {
	return s.surveyRepo.ListByOrganization(ctx, orgID)
}

// ListByHost returns all surveys created by a host
func (s *SurveyService) ListByHost(ctx context.Context, hostID string) ([]*model.Survey, error) {
	return s.surveyRepo.ListByHost(ctx, hostID)
}

// Update updates survey metadata, settings and questions
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) error {
	return s.surveyRepo.Update(ctx, survey)
}

// Open starts accepting responses
func (s *SurveyService) Open(ctx context.Context, id string) error {
	return s.surveyRepo.SetStatus(ctx, id, model.SurveyStatusOpen)
}

// Close stops accepting responses
func (s *SurveyService) Close(ctx context.Context, id string) error {
	return s.surveyRepo.SetStatus(ctx, id, model.SurveyStatusClosed)
}

// SubmitResponse records one respondent's free-text answer. The
// response starts pending; the scoring service picks it up later.
func (s *SurveyService) SubmitResponse(ctx context.Context, response *model.SurveyResponse) error {
	survey, err := s.surveyRepo.GetByID(ctx, response.SurveyID)
	if err != nil {
		return fmt.Errorf("load survey: %w", err)
	}
	if survey == nil {
		return ErrSurveyNotFound
	}
	if survey.Status != model.SurveyStatusOpen {
		return ErrSurveyClosed
	}
	if response.Text == "" {
		return errors.New("response text is required")
	}

	response.OrganizationID = survey.OrganizationID
	response.Status = model.ResponseStatusPending

	if err := s.responseRepo.Create(ctx, response); err != nil {
		return err
	}

	// A new response makes any cached rollup stale
	if s.analysisSvc != nil {
		if err := s.analysisSvc.Invalidate(ctx, response.SurveyID); err != nil {
			// cache miss on next read is the worst case
			return nil
		}
	}
	return nil
}

// ListResponses returns all responses for a survey
func (s *SurveyService) ListResponses(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	return s.responseRepo.ListBySurvey(ctx, surveyID)
}
