package timing

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"shortcast/internal/script"
)

const (
	// fullPauseSeconds follows sentence-terminal punctuation.
	fullPauseSeconds = 0.3
	// shortPauseSeconds follows clause-level punctuation.
	shortPauseSeconds = 0.2
	// leadPauseSeconds precedes contrastive conjunctions.
	leadPauseSeconds = 0.3
	// pauseDurationBump is added to the segment duration per inserted pause.
	pauseDurationBump = 0.3
)

var cjkConjunctions = []string{"しかし", "でも", "ただし", "それでは", "さて"}

var latinConjunctionRE = regexp.MustCompile(`(?i)\b(however|but|meanwhile|instead|yet)\b`)

// Stage 3: record pauses for breathing and emphasis. Pauses live out of band
// as rune-offset marks, so the segment text itself never changes; the TTS
// export renders them as placeholders.
func (e *Engine) insertPauses(s *script.Script) {
	for _, segment := range s.Segments {
		segment.Pauses = e.pauseMarks(segment.Text)
		segment.Duration += float64(len(segment.Pauses)) * pauseDurationBump
	}
}

func (e *Engine) pauseMarks(text string) []script.Pause {
	runes := []rune(text)
	var marks []script.Pause

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case e.isTerminal(r):
			// Collapse punctuation runs into a single pause after the run.
			for i+1 < len(runes) && e.isTerminal(runes[i+1]) {
				i++
			}
			if !e.cjk && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
				continue
			}
			marks = append(marks, script.Pause{Offset: i + 1, Duration: fullPauseSeconds})
		case r == '、' || r == '，':
			marks = append(marks, script.Pause{Offset: i + 1, Duration: shortPauseSeconds})
		case r == ',':
			if e.cjk || i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				marks = append(marks, script.Pause{Offset: i + 1, Duration: shortPauseSeconds})
			}
		}
	}

	marks = append(marks, e.conjunctionMarks(text)...)
	sort.Slice(marks, func(a, b int) bool { return marks[a].Offset < marks[b].Offset })
	return marks
}

// conjunctionMarks places a lead pause before each contrastive conjunction.
func (e *Engine) conjunctionMarks(text string) []script.Pause {
	var marks []script.Pause
	if e.cjk {
		for _, conj := range cjkConjunctions {
			from := 0
			for {
				idx := strings.Index(text[from:], conj)
				if idx < 0 {
					break
				}
				at := from + idx
				marks = append(marks, script.Pause{
					Offset:   utf8.RuneCountInString(text[:at]),
					Duration: leadPauseSeconds,
				})
				from = at + len(conj)
			}
		}
		return marks
	}
	for _, loc := range latinConjunctionRE.FindAllStringIndex(text, -1) {
		marks = append(marks, script.Pause{
			Offset:   utf8.RuneCountInString(text[:loc[0]]),
			Duration: leadPauseSeconds,
		})
	}
	return marks
}
