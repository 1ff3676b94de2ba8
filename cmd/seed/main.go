package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readypulse/internal/config"
	"readypulse/internal/forces"
	"readypulse/internal/model"
	"readypulse/internal/repository"
)

// Seeds a demo organization, one open survey and a batch of already
// scored responses so the analysis endpoints have data to work with.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	orgRepo := repository.NewOrganizationRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	org := &model.Organization{
		Name:     "Acme Logistics",
		Industry: "logistics",
		Size:     "201-500",
	}
	if err := orgRepo.Create(ctx, org); err != nil {
		log.Fatalf("Failed to seed organization: %v", err)
	}

	survey := &model.Survey{
		OrganizationID: org.ID,
		HostID:         "host_seed0001",
		Title:          "AI Readiness Pulse Q3",
		Intent:         "Adopting AI-assisted route planning to replace manual dispatch.",
		Status:         model.SurveyStatusOpen,
		Questions: []model.SurveyQuestion{
			{Key: "Q1", Prompt: "How does the current dispatch process affect your daily work?"},
			{Key: "Q2", Prompt: "What would change for you if route planning were AI-assisted?"},
		},
	}
	if err := surveyRepo.Create(ctx, survey); err != nil {
		log.Fatalf("Failed to seed survey: %v", err)
	}

	seedScores := []struct {
		text  string
		score forces.RawScore
	}{
		{
			"Planning routes by hand eats half my morning and mistakes are constant.",
			forces.RawScore{PrimaryForce: forces.PainOfOld, Strength: 4.2, Confidence: 4.0,
				KeyThemes: []string{"manual planning", "time lost", "errors"}},
		},
		{
			"If the system suggested routes I could focus on exceptions instead of spreadsheets.",
			forces.RawScore{PrimaryForce: forces.PullOfNew, Strength: 4.5, Confidence: 4.1,
				KeyThemes: []string{"automation", "focus on exceptions"}},
		},
		{
			"We have years of custom spreadsheets; nobody wants to rebuild that knowledge.",
			forces.RawScore{PrimaryForce: forces.AnchorsToOld, Strength: 3.6, Confidence: 3.8,
				KeyThemes: []string{"sunk investment", "tribal knowledge"}},
		},
		{
			"Honestly I worry the tool decides and my judgement stops mattering.",
			forces.RawScore{PrimaryForce: forces.AnxietyOfNew, Strength: 3.9, Confidence: 3.7,
				KeyThemes: []string{"loss of control", "job relevance"}},
		},
		{
			"I have been a dispatcher for twelve years, mostly night shifts.",
			forces.RawScore{PrimaryForce: forces.Demographic, Strength: 1.0, Confidence: 4.5,
				KeyThemes: []string{"tenure"}},
		},
	}

	for i, seed := range seedScores {
		response := &model.SurveyResponse{
			SurveyID:       survey.ID,
			OrganizationID: org.ID,
			QuestionKey:    fmt.Sprintf("Q%d", i%2+1),
			Text:           seed.text,
		}
		if err := responseRepo.Create(ctx, response); err != nil {
			log.Fatalf("Failed to seed response: %v", err)
		}
		score := seed.score
		if err := responseRepo.SetScore(ctx, response.ID, &score); err != nil {
			log.Fatalf("Failed to score seeded response: %v", err)
		}
	}

	fmt.Println("Seeded:")
	fmt.Printf("  organization %s (%s)\n", org.Name, org.ID)
	fmt.Printf("  survey %s (%s)\n", survey.Title, survey.ID)
	fmt.Printf("  %d scored responses\n", len(seedScores))
	os.Exit(0)
}
