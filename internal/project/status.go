package project

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle of a project.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusScriptGenerated  Status = "script_generated"
	StatusAudioGenerated   Status = "audio_generated"
	StatusVisualsGenerated Status = "visuals_generated"
	StatusVideoComposed    Status = "video_composed"
	StatusReadyToUpload    Status = "ready_to_upload"
	StatusUploaded         Status = "uploaded"
	StatusFailed           Status = "failed"
	StatusArchived         Status = "archived"
)

var allStatuses = []Status{
	StatusDraft,
	StatusScriptGenerated,
	StatusAudioGenerated,
	StatusVisualsGenerated,
	StatusVideoComposed,
	StatusReadyToUpload,
	StatusUploaded,
	StatusFailed,
	StatusArchived,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// forwardTransitions is the directed graph consulted by the opt-in strict
// transition mode. Failed is reachable from every non-terminal state and
// archived only by explicit request, so both are handled in
// ValidateTransition rather than listed here.
var forwardTransitions = map[Status][]Status{
	StatusDraft:            {StatusScriptGenerated},
	StatusScriptGenerated:  {StatusAudioGenerated},
	StatusAudioGenerated:   {StatusVisualsGenerated},
	StatusVisualsGenerated: {StatusVideoComposed},
	StatusVideoComposed:    {StatusReadyToUpload},
	StatusReadyToUpload:    {StatusUploaded},
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether no further pipeline work applies to the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusUploaded, StatusArchived:
		return true
	}
	return false
}

// ValidateTransition reports whether moving from one status to another is
// allowed under the strict transition policy: monotonic forward steps, failed
// reachable from any non-terminal state, archived reachable explicitly from
// anywhere.
func ValidateTransition(from, to Status) error {
	if _, ok := statusSet[to]; !ok {
		return fmt.Errorf("unknown status %q", to)
	}
	if to == StatusArchived {
		return nil
	}
	if to == StatusFailed {
		if from.IsTerminal() {
			return fmt.Errorf("cannot fail terminal status %q", from)
		}
		return nil
	}
	for _, next := range forwardTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("illegal transition %q -> %q", from, to)
}
