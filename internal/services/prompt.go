package services

import (
	"fmt"
	"strings"

	"github.com/equify/equify-backend/internal/types"
)

const recommendationSystemPrompt = `You are a relationship advisor for Equify, an app that tracks favors and balance between people. You suggest small, concrete actions that keep relationships healthy. Reply with JSON only, no markdown, matching exactly the schema the user describes.`

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
	"it": "Italian",
	"ja": "Japanese",
	"zh": "Chinese",
}

// buildRecommendationPrompt renders the assembled context into the model
// instruction. Same inputs always produce the same prompt.
func buildRecommendationPrompt(rel *types.Relationship, favors []*types.Favor, profile *types.Profile, extraContext, language string) string {
	var b strings.Builder

	b.WriteString("Generate personalized recommendations for this relationship.\n\n")

	fmt.Fprintf(&b, "Relationship: %s (%s), importance %d/5.\n", rel.Name, rel.Category, rel.Importance)
	fmt.Fprintf(&b, "User personality type: %s. Reciprocity style: %s.\n", profile.PersonalityType, profile.ReciprocityStyle)

	if len(favors) == 0 {
		b.WriteString("\nNo favors have been logged for this relationship yet.\n")
	} else {
		fmt.Fprintf(&b, "\nRecent favors (newest first, %d total):\n", len(favors))
		for _, f := range favors {
			fmt.Fprintf(&b, "- [%s] %s: %s (emotional weight %d/5)\n", f.Direction, f.Category, f.Description, f.EmotionalWeight)
		}
	}

	if extraContext = strings.TrimSpace(extraContext); extraContext != "" {
		fmt.Fprintf(&b, "\nAdditional context from the user: %s\n", extraContext)
	}

	b.WriteString(`
Respond with a JSON object of this exact shape:
{
  "recommendations": [
    {
      "title": "...",
      "description": "...",
      "category": "communication|favor|milestone|appreciation|connection",
      "effort_level": "low|medium|high",
      "estimated_cost": "free|low|medium|high",
      "reasoning": "...",
      "steps": ["..."],
      "expected_impact": "...",
      "priority": 1
    }
  ],
  "relationship_insights": {
    "balance_assessment": "...",
    "strength_areas": ["..."],
    "improvement_areas": ["..."],
    "suggested_next_interaction": "..."
  }
}
Provide 3 to 5 recommendations ordered by priority (1 = most important).
`)

	langName, ok := languageNames[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		langName = languageNames["en"]
	}
	fmt.Fprintf(&b, "Write every human-readable value in %s.\n", langName)

	return b.String()
}

// stripMarkdownFences unwraps replies the model insisted on fencing anyway.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
