package service

import (
	"context"
	"testing"

	"readypulse/internal/forces"
	"readypulse/internal/model"
)

func setupAnalysis(t *testing.T) (*AnalysisService, *fakeSurveyRepo, *fakeResponseRepo, *fakeAnalysisRepo, *fakeAnalysisCache) {
	t.Helper()
	surveyRepo := newFakeSurveyRepo()
	responseRepo := &fakeResponseRepo{}
	analysisRepo := newFakeAnalysisRepo()
	analysisCache := newFakeAnalysisCache()
	svc := NewAnalysisService(surveyRepo, responseRepo, analysisRepo, analysisCache)
	return svc, surveyRepo, responseRepo, analysisRepo, analysisCache
}

func scoredResponse(surveyID string, force forces.ForceKind, strength float64) *model.SurveyResponse {
	return &model.SurveyResponse{
		SurveyID: surveyID,
		Text:     "answer",
		Status:   model.ResponseStatusScored,
		Score: &forces.RawScore{
			PrimaryForce: force,
			Strength:     strength,
			Confidence:   4,
		},
	}
}

func TestAnalyzeSurveyRollsUpScoredResponses(t *testing.T) {
	svc, surveyRepo, responseRepo, analysisRepo, analysisCache := setupAnalysis(t)
	ctx := context.Background()

	survey := &model.Survey{
		OrganizationID: "org1",
		Status:         model.SurveyStatusClosed,
		Settings:       model.SurveySettings{ScaleMax: 10},
	}
	surveyRepo.Create(ctx, survey)

	responseRepo.Create(ctx, scoredResponse(survey.ID, forces.PainOfOld, 7))
	responseRepo.Create(ctx, scoredResponse(survey.ID, forces.PullOfNew, 6))
	// pending responses stay out of the rollup
	responseRepo.Create(ctx, &model.SurveyResponse{SurveyID: survey.ID, Text: "late", Status: model.ResponseStatusPending})

	snapshot, err := svc.AnalyzeSurvey(ctx, survey.ID)
	if err != nil {
		t.Fatalf("AnalyzeSurvey: %v", err)
	}

	analysis := snapshot.Analysis
	if analysis.SampleSize != 2 {
		t.Errorf("sampleSize = %d, want 2", analysis.SampleSize)
	}
	// push = 7/2 + 6/2 = 6.5, pull side 0, net 6.5 -> readiness 83
	if analysis.ReadinessScore != 83 {
		t.Errorf("readiness = %d, want 83", analysis.ReadinessScore)
	}
	if len(analysis.DominantForces) != 1 || analysis.DominantForces[0] != forces.PainOfOld {
		t.Errorf("dominant = %v, want [pain_of_old]", analysis.DominantForces)
	}

	if analysisRepo.snapshots[survey.ID] == nil {
		t.Error("snapshot not persisted")
	}
	if analysisCache.entries[survey.ID] == nil {
		t.Error("analysis not cached")
	}
	if snapshot.OrganizationID != "org1" {
		t.Errorf("organizationId = %s, want org1", snapshot.OrganizationID)
	}
}

func TestGetAnalysisFallsBackToSnapshot(t *testing.T) {
	svc, surveyRepo, responseRepo, _, analysisCache := setupAnalysis(t)
	ctx := context.Background()

	survey := &model.Survey{OrganizationID: "org1", Settings: model.SurveySettings{ScaleMax: 10}}
	surveyRepo.Create(ctx, survey)
	responseRepo.Create(ctx, scoredResponse(survey.ID, forces.PullOfNew, 8))

	if _, err := svc.AnalyzeSurvey(ctx, survey.ID); err != nil {
		t.Fatalf("AnalyzeSurvey: %v", err)
	}

	// drop the cache entry: the persisted snapshot must still serve reads
	if err := svc.Invalidate(ctx, survey.ID); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	analysis, err := svc.GetAnalysis(ctx, survey.ID)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if analysis == nil {
		t.Fatal("expected analysis from snapshot")
	}
	if analysis.SampleSize != 1 {
		t.Errorf("sampleSize = %d, want 1", analysis.SampleSize)
	}
	// the read warms the cache back up
	if analysisCache.entries[survey.ID] == nil {
		t.Error("cache not repopulated after snapshot read")
	}
}

func TestGetAnalysisNoRollupYet(t *testing.T) {
	svc, _, _, _, _ := setupAnalysis(t)

	analysis, err := svc.GetAnalysis(context.Background(), "unseen")
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if analysis != nil {
		t.Errorf("expected nil analysis, got %+v", analysis)
	}
}

func TestCompareSurveys(t *testing.T) {
	svc, surveyRepo, responseRepo, _, _ := setupAnalysis(t)
	ctx := context.Background()

	base := &model.Survey{OrganizationID: "org1", Settings: model.SurveySettings{ScaleMax: 10}}
	target := &model.Survey{OrganizationID: "org1", Settings: model.SurveySettings{ScaleMax: 10}}
	surveyRepo.Create(ctx, base)
	surveyRepo.Create(ctx, target)

	responseRepo.Create(ctx, scoredResponse(base.ID, forces.PainOfOld, 4))
	responseRepo.Create(ctx, scoredResponse(target.ID, forces.PainOfOld, 8))

	if _, err := svc.AnalyzeSurvey(ctx, base.ID); err != nil {
		t.Fatalf("analyze base: %v", err)
	}
	if _, err := svc.AnalyzeSurvey(ctx, target.ID); err != nil {
		t.Fatalf("analyze target: %v", err)
	}

	comparison, err := svc.Compare(ctx, base.ID, target.ID)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if comparison.ReadinessDelta != comparison.TargetReadiness-comparison.BaseReadiness {
		t.Errorf("readiness delta %d inconsistent with %d - %d",
			comparison.ReadinessDelta, comparison.TargetReadiness, comparison.BaseReadiness)
	}
	if len(comparison.ForceShifts) != len(forces.Kinds) {
		t.Fatalf("got %d force shifts, want %d", len(comparison.ForceShifts), len(forces.Kinds))
	}

	var painShift *model.ForceShift
	for i := range comparison.ForceShifts {
		if comparison.ForceShifts[i].Force == forces.PainOfOld {
			painShift = &comparison.ForceShifts[i]
		}
	}
	if painShift == nil {
		t.Fatal("no shift entry for pain_of_old")
	}
	if painShift.Delta != 4 {
		t.Errorf("pain_of_old delta = %v, want 4", painShift.Delta)
	}
}

func TestCompareMissingAnalysis(t *testing.T) {
	svc, surveyRepo, responseRepo, _, _ := setupAnalysis(t)
	ctx := context.Background()

	survey := &model.Survey{OrganizationID: "org1"}
	surveyRepo.Create(ctx, survey)
	responseRepo.Create(ctx, scoredResponse(survey.ID, forces.PainOfOld, 3))
	if _, err := svc.AnalyzeSurvey(ctx, survey.ID); err != nil {
		t.Fatalf("AnalyzeSurvey: %v", err)
	}

	if _, err := svc.Compare(ctx, survey.ID, "never-analyzed"); err == nil {
		t.Fatal("expected error comparing against missing analysis")
	}
}
