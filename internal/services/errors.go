package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks missing or invalid timing/provider parameters.
	ErrConfiguration = errors.New("configuration error")
	// ErrScriptGeneration marks malformed provisional scripts from the
	// drafting collaborator (empty segment list, missing required fields).
	ErrScriptGeneration = errors.New("script generation error")
	// ErrValidation marks segment or script invariant violations.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks references to artifacts that no longer exist.
	ErrNotFound = errors.New("not found")
	// ErrExternalTool marks failures in shelled-out tools such as ffmpeg.
	ErrExternalTool = errors.New("external tool error")
	// ErrTransient marks retryable collaborator failures.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
