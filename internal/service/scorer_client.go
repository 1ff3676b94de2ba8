package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"readypulse/internal/config"
	"readypulse/internal/forces"
	"readypulse/internal/model"
)

// Scorer converts one free-text response into the five JTBD force
// values. The engine treats the scorer as a black box; anything that
// satisfies this interface can feed a rollup.
type Scorer interface {
	ScoreResponse(ctx context.Context, survey *model.Survey, response *model.SurveyResponse) (*forces.RawScore, error)
}

// ScorerClient calls the Gemini API to score survey responses. Falls
// back to a deterministic keyword-based mock when no API key is set.
type ScorerClient struct {
	config *config.ScorerConfig
	client *http.Client
}

// NewScorerClient creates a new scorer client
func NewScorerClient(cfg *config.ScorerConfig) *ScorerClient {
	return &ScorerClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// ScoreResponse scores one response into the raw force-score contract
func (s *ScorerClient) ScoreResponse(ctx context.Context, survey *model.Survey, response *model.SurveyResponse) (*forces.RawScore, error) {
	if !s.config.IsEnabled() {
		return s.mockScore(response), nil
	}

	prompt := s.buildScoringPrompt(survey, response)
	raw, err := s.callGemini(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var score forces.RawScore
	if err := json.Unmarshal([]byte(raw), &score); err != nil {
		return nil, fmt.Errorf("scorer returned malformed JSON: %w", err)
	}
	return &score, nil
}

// callGemini makes a request to the Gemini API
func (s *ScorerClient) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func (s *ScorerClient) buildScoringPrompt(survey *model.Survey, response *model.SurveyResponse) string {
	return fmt.Sprintf(`You are analyzing one survey response with the Jobs-to-be-Done forces framework.
The survey assesses organizational readiness for a change. Return ONLY valid JSON matching this schema:
{
  "primaryJtbdForce": "pain_of_old" | "pull_of_new" | "anchors_to_old" | "anxiety_of_new" | "demographic",
  "secondaryJtbdForces": ["zero to four of the same values, never the primary"],
  "forceStrengthScore": 0.0 to 5.0,
  "confidenceScore": 0.0 to 5.0,
  "keyThemes": ["short themes in the order they appear in the text"]
}

Forces:
- pain_of_old: frustration with the current way of working
- pull_of_new: attraction to the new way
- anchors_to_old: habits, tooling or investments holding people to the old way
- anxiety_of_new: worry about what the new way means
- demographic: baseline facts about the respondent, no stance on change

Change being assessed: %s
Question: %s
Response: "%s"`,
		survey.Intent, response.QuestionKey, response.Text)
}

// keyword tables for the mock scorer, checked in canonical force order
var mockKeywords = []struct {
	force forces.ForceKind
	words []string
}{
	{forces.PainOfOld, []string{"slow", "manual", "tedious", "frustrating", "waste", "error"}},
	{forces.PullOfNew, []string{"faster", "automate", "excited", "opportunity", "improve", "save"}},
	{forces.AnchorsToOld, []string{"always done", "invested", "existing", "used to", "legacy"}},
	{forces.AnxietyOfNew, []string{"worried", "afraid", "unsure", "risk", "replace", "job"}},
}

// mockScore is a deterministic stand-in used when no API key is
// configured: keyword matches pick the primary force and become themes.
func (s *ScorerClient) mockScore(response *model.SurveyResponse) *forces.RawScore {
	text := strings.ToLower(response.Text)

	score := &forces.RawScore{
		PrimaryForce:    forces.Demographic,
		Strength:        1.5,
		Confidence:      2,
		SecondaryForces: []forces.ForceKind{},
		KeyThemes:       []string{},
	}

	best := 0
	for _, entry := range mockKeywords {
		matches := 0
		for _, word := range entry.words {
			if strings.Contains(text, word) {
				matches++
			}
		}
		if matches > 0 && entry.force != score.PrimaryForce {
			if matches > best {
				if score.PrimaryForce != forces.Demographic {
					score.SecondaryForces = append(score.SecondaryForces, score.PrimaryForce)
				}
				score.PrimaryForce = entry.force
				best = matches
			} else {
				score.SecondaryForces = append(score.SecondaryForces, entry.force)
			}
		}
	}

	if best > 0 {
		score.Strength = clampMock(2+float64(best), 0, 5)
		score.Confidence = 3.5
		score.KeyThemes = append(score.KeyThemes, string(score.PrimaryForce))
	}
	return score
}

func clampMock(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
