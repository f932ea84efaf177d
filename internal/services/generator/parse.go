package generator

import (
	"context"
	"fmt"
	"strings"

	"shortcast/internal/brief"
	"shortcast/internal/script"
	"shortcast/internal/services"
)

type draftSegment struct {
	Text              string  `json:"text"`
	Duration          float64 `json:"duration"`
	VisualDescription string  `json:"visual_description"`
	TransitionType    string  `json:"transition_type"`
	Emotion           string  `json:"emotion"`
}

type draftScript struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Hashtags    []string       `json:"hashtags"`
	Segments    []draftSegment `json:"segments"`
}

// GenerateScript drafts a script for the campaign brief and returns it as a
// validated script.Script. Durations are the model's rough estimates.
func (c *Client) GenerateScript(ctx context.Context, b *brief.Brief, language string) (*script.Script, error) {
	if b == nil {
		return nil, services.Wrap(services.ErrValidation, "generator", "generate", "nil brief", nil)
	}
	style := b.ScriptStyle()
	content, err := c.CompleteJSON(ctx, draftingSystemPrompt, BuildUserPrompt(b, style, language))
	if err != nil {
		return nil, services.Wrap(services.ErrScriptGeneration, "generator", "generate", "chat completion failed", err)
	}

	var draft draftScript
	if err := DecodeModelJSON(content, &draft); err != nil {
		return nil, services.Wrap(services.ErrScriptGeneration, "generator", "parse", "model returned unparseable payload", err)
	}
	return draftToScript(b, style, draft)
}

func draftToScript(b *brief.Brief, style script.Style, draft draftScript) (*script.Script, error) {
	if len(draft.Segments) == 0 {
		return nil, services.Wrap(services.ErrScriptGeneration, "generator", "parse", "model returned no segments", nil)
	}

	s := script.New(b.Product, style)
	s.LandingURL = strings.TrimSpace(b.LandingURL)
	s.Title = strings.TrimSpace(draft.Title)
	s.Description = strings.TrimSpace(draft.Description)
	s.Tags = cleanList(draft.Tags)
	s.Hashtags = cleanList(draft.Hashtags)

	for i, ds := range draft.Segments {
		text := strings.TrimSpace(ds.Text)
		if text == "" {
			return nil, services.Wrap(services.ErrScriptGeneration, "generator", "parse",
				fmt.Sprintf("segment %d has empty text", i+1), nil)
		}
		duration := ds.Duration
		if duration < 0 {
			duration = 0
		}
		seg := script.NewSegment(text, duration)
		seg.VisualDescription = strings.TrimSpace(ds.VisualDescription)
		if transition := strings.ToLower(strings.TrimSpace(ds.TransitionType)); transition != "" {
			seg.TransitionType = transition
		}
		if emotion, ok := script.ParseEmotion(ds.Emotion); ok {
			seg.Emotion = emotion
		}
		s.AddSegment(seg)
	}

	if err := s.Validate(); err != nil {
		return nil, services.Wrap(services.ErrScriptGeneration, "generator", "parse", "draft failed validation", err)
	}
	return s, nil
}

func cleanList(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
