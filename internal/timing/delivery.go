package timing

import (
	"regexp"

	"shortcast/internal/script"
)

// Emphasis detection scans four surface-pattern classes in fixed order:
// superlative/novelty adjectives, surprise/revelation markers,
// urgency/exclusivity markers, and numeric/percentage patterns. Matches are
// collected in pattern order, then occurrence order, deduplicated.
var emphasisPatterns = []*regexp.Regexp{
	regexp.MustCompile(`すごい|素晴らしい|最高|最新|革新的|画期的|(?i:amazing|incredible|revolutionary|groundbreaking)`),
	regexp.MustCompile(`なんと|実は|ついに|初めて|(?i:actually|finally|introducing)`),
	regexp.MustCompile(`今だけ|限定|特別|お得|(?i:limited|exclusive|only today)`),
	regexp.MustCompile(`[0-9０-９]+[％%]|[一二三四五六七八九十百千万億]+倍|[0-9]+(?:\.[0-9]+)?x`),
}

func detectEmphasis(text string) []string {
	var words []string
	seen := make(map[string]struct{})
	for _, pattern := range emphasisPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			words = append(words, match)
		}
	}
	return words
}

type emotionRule struct {
	pattern *regexp.Regexp
	emotion script.Emotion
}

// Emotion rules are evaluated in order; the first match wins. This is a
// deliberately simple rule table, not a statistical model, so unit tests can
// rely on exact pattern-order fidelity.
var emotionRules = []emotionRule{
	{regexp.MustCompile(`[！!]{2,}|すごい|最高|素晴らしい|(?i:amazing|awesome|incredible)`), script.EmotionExcited},
	{regexp.MustCompile(`[？?]|どう|なぜ|どうして|(?i:\bwhy\b|\bhow\b|\bcurious\b)`), script.EmotionCurious},
	{regexp.MustCompile(`嬉しい|楽しい|幸せ|笑|😊|😄|(?i:\bhappy\b|\bfun\b|\bjoy\b)`), script.EmotionHappy},
	{regexp.MustCompile(`なんと|実は|驚き|びっくり|(?i:surprising|unexpected)`), script.EmotionSurprised},
}

func classifyEmotion(text string) script.Emotion {
	for _, rule := range emotionRules {
		if rule.pattern.MatchString(text) {
			return rule.emotion
		}
	}
	return script.EmotionNeutral
}
