package generator

import (
	"fmt"
	"strings"

	"shortcast/internal/brief"
	"shortcast/internal/script"
)

const draftingSystemPrompt = `You are a short-form video copywriter. You write tight,
spoken-word marketing scripts for vertical videos under 60 seconds.

Respond with a single JSON object, no prose, using this shape:
{
  "title": "video title, at most 100 characters",
  "description": "video description",
  "tags": ["plain", "keywords"],
  "hashtags": ["#tag"],
  "segments": [
    {
      "text": "one narration beat, a sentence or two",
      "duration": 5.0,
      "visual_description": "what is on screen during this beat",
      "transition_type": "cut",
      "emotion": "neutral"
    }
  ]
}

Rules:
- Write narration in the requested language.
- 5 to 10 segments, hook first, call to action last.
- emotion is one of: neutral, excited, happy, curious, surprised.
- transition_type is one of: cut, fade, slide, zoom.
- Durations are estimates in seconds; they will be recomputed later.`

// BuildUserPrompt renders the campaign brief into the drafting request.
func BuildUserPrompt(b *brief.Brief, style script.Style, language string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Product: %s\n", strings.TrimSpace(b.Product))
	if b.LandingURL != "" {
		fmt.Fprintf(&sb, "Landing page: %s\n", strings.TrimSpace(b.LandingURL))
	}
	fmt.Fprintf(&sb, "Style: %s\n", style)
	fmt.Fprintf(&sb, "Language: %s\n", language)
	if b.Audience != "" {
		fmt.Fprintf(&sb, "Audience: %s\n", strings.TrimSpace(b.Audience))
	}
	if b.Description != "" {
		fmt.Fprintf(&sb, "About the product: %s\n", strings.TrimSpace(b.Description))
	}
	if len(b.SellingPts) > 0 {
		sb.WriteString("Selling points:\n")
		for _, point := range b.SellingPts {
			fmt.Fprintf(&sb, "- %s\n", strings.TrimSpace(point))
		}
	}
	sb.WriteString("\nWrite the script now.")
	return sb.String()
}
