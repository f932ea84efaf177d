package timing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"shortcast/internal/script"
)

// Stage 2: any segment whose duration exceeds the per-segment ceiling is
// split at sentence boundaries, falling back to phrase boundaries when the
// text holds a single sentence. Splitting never drops trailing content.
func (e *Engine) splitLongSegments(s *script.Script) {
	out := make([]*script.Segment, 0, len(s.Segments))
	for _, segment := range s.Segments {
		if segment.Duration <= e.opts.MaxSegmentDuration {
			out = append(out, segment)
			continue
		}
		out = append(out, e.splitSegment(segment)...)
	}
	s.Segments = out
}

func (e *Engine) splitSegment(segment *script.Segment) []*script.Segment {
	sentences := e.splitSentences(segment.Text)
	if len(sentences) > 1 {
		return e.packParts(segment, sentences, sentencePackingPause, " ")
	}
	phrases := e.splitPhrases(segment.Text)
	if len(phrases) > 1 {
		return e.packParts(segment, phrases, 0, "")
	}
	return []*script.Segment{segment}
}

// packParts greedily packs consecutive parts into derived segments until the
// next part would exceed the per-segment ceiling. Derived segments inherit
// the parent's visual description and emotion; emphasis words are filtered to
// those that survive in the derived text. The first child keeps the parent
// identifier so references stay stable across splits.
func (e *Engine) packParts(parent *script.Segment, parts []string, pad float64, joiner string) []*script.Segment {
	var children []*script.Segment
	currentText := ""
	currentDuration := 0.0

	flush := func() {
		text := strings.TrimSpace(currentText)
		if text == "" {
			return
		}
		child := parent.Clone()
		child.Text = text
		child.Duration = currentDuration
		child.Pauses = nil
		child.EmphasisWords = filterEmphasis(parent.EmphasisWords, text)
		if len(children) > 0 {
			child.ID = uuid.NewString()
		}
		children = append(children, child)
	}

	for _, part := range parts {
		partDuration := float64(utf8.RuneCountInString(part))/e.cps + pad
		if currentDuration+partDuration > e.opts.MaxSegmentDuration && currentText != "" {
			flush()
			currentText = part
			currentDuration = partDuration
			continue
		}
		if currentText == "" {
			currentText = part
		} else {
			currentText += joiner + part
		}
		currentDuration += partDuration
	}
	flush()

	if len(children) == 0 {
		return []*script.Segment{parent}
	}
	return children
}

func filterEmphasis(words []string, text string) []string {
	var kept []string
	for _, word := range words {
		if strings.Contains(text, word) {
			kept = append(kept, word)
		}
	}
	return kept
}

func (e *Engine) isTerminal(r rune) bool {
	if e.cjk {
		switch r {
		case '。', '．', '！', '？', '!', '?':
			return true
		}
		return false
	}
	switch r {
	case '.', '!', '?':
		return true
	}
	return false
}

// splitSentences splits text on terminal punctuation, keeping the punctuation
// attached to the preceding sentence. Outside CJK, a terminator only closes a
// sentence at end of text or before whitespace, so decimals like "3.5" stay
// whole.
func (e *Engine) splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !e.isTerminal(runes[i]) {
			continue
		}
		for i+1 < len(runes) && e.isTerminal(runes[i+1]) {
			i++
		}
		end := i + 1
		if !e.cjk && end < len(runes) && !unicode.IsSpace(runes[end]) {
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start:end])); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// Multi-rune particles come first so they match whole.
var cjkPhraseDelims = regexp.MustCompile(`[、，,]|から|まで|より|が|で|に|を|は|と|の`)

var latinClauseDelims = regexp.MustCompile(`[,;:]`)

var latinConnectors = regexp.MustCompile(`\s+(?i:and|but|or|so|because|while|although)\s+`)

// splitPhrases splits text at clause-level punctuation and function-word
// boundaries, keeping delimiters attached to the preceding phrase. Used only
// when sentence splitting yields a single piece.
func (e *Engine) splitPhrases(text string) []string {
	if e.cjk {
		return splitAfterMatches(text, cjkPhraseDelims)
	}
	var phrases []string
	for _, clause := range splitAfterMatches(text, latinClauseDelims) {
		phrases = append(phrases, splitBeforeMatches(clause, latinConnectors)...)
	}
	return phrases
}

// splitAfterMatches cuts text after each delimiter match.
func splitAfterMatches(text string, delims *regexp.Regexp) []string {
	var parts []string
	start := 0
	for _, loc := range delims.FindAllStringIndex(text, -1) {
		if part := strings.TrimSpace(text[start:loc[1]]); part != "" {
			parts = append(parts, part)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}

// splitBeforeMatches cuts text before each connector match, so the connector
// leads the following phrase.
func splitBeforeMatches(text string, connectors *regexp.Regexp) []string {
	var parts []string
	start := 0
	for _, loc := range connectors.FindAllStringIndex(text, -1) {
		if loc[0] <= start {
			continue
		}
		if part := strings.TrimSpace(text[start:loc[0]]); part != "" {
			parts = append(parts, part)
		}
		start = loc[0]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}
