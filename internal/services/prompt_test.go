package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/types"
)

func promptFixtures() (*types.Relationship, []*types.Favor, *types.Profile) {
	userID := uuid.New()
	rel := &types.Relationship{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       "Sam",
		Category:   "colleague",
		Importance: 3,
	}
	favors := []*types.Favor{
		{Direction: types.FavorDirectionReceived, Category: "food", Description: "Bought me lunch", EmotionalWeight: 2},
		{Direction: types.FavorDirectionGiven, Category: "help", Description: "Reviewed their resume", EmotionalWeight: 3},
	}
	return rel, favors, types.DefaultProfile(userID)
}

func TestBuildRecommendationPrompt_Deterministic(t *testing.T) {
	rel, favors, profile := promptFixtures()

	a := buildRecommendationPrompt(rel, favors, profile, "ctx", "en")
	b := buildRecommendationPrompt(rel, favors, profile, "ctx", "en")
	if a != b {
		t.Fatalf("same inputs produced different prompts")
	}
}

func TestBuildRecommendationPrompt_RendersAllSections(t *testing.T) {
	rel, favors, profile := promptFixtures()

	prompt := buildRecommendationPrompt(rel, favors, profile, "planning a trip together", "en")
	for _, want := range []string{
		"Sam (colleague), importance 3/5",
		"[received] food: Bought me lunch",
		"[given] help: Reviewed their resume",
		"planning a trip together",
		"Provide 3 to 5 recommendations",
		"Write every human-readable value in English.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildRecommendationPrompt_EmptyHistory(t *testing.T) {
	rel, _, profile := promptFixtures()

	prompt := buildRecommendationPrompt(rel, nil, profile, "", "en")
	if !strings.Contains(prompt, "No favors have been logged") {
		t.Fatalf("expected empty-history line, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "Additional context") {
		t.Fatalf("blank context must not render a context section")
	}
}

func TestBuildRecommendationPrompt_LanguageFallsBackToEnglish(t *testing.T) {
	rel, favors, profile := promptFixtures()

	for _, lang := range []string{"", "klingon", "EN", " fr "} {
		prompt := buildRecommendationPrompt(rel, favors, profile, "", lang)
		switch strings.TrimSpace(strings.ToLower(lang)) {
		case "fr":
			if !strings.Contains(prompt, "French") {
				t.Fatalf("lang %q: expected French", lang)
			}
		default:
			if !strings.Contains(prompt, "English") {
				t.Fatalf("lang %q: expected English fallback", lang)
			}
		}
	}
}

func TestStripMarkdownFences(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"plain text", "plain text"},
	} {
		if got := stripMarkdownFences(tc.in); got != tc.want {
			t.Fatalf("stripMarkdownFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
