package pipeline

import (
	"context"
	"errors"
	"fmt"

	"shortcast/internal/logging"
	"shortcast/internal/project"
	"shortcast/internal/services"
)

// ErrUnsupportedResume marks statuses the resumption contract rejects.
var ErrUnsupportedResume = errors.New("unsupported resume status")

// UnsupportedResumeError names the status resumption was attempted from.
// Only draft and ready_to_upload projects can resume; the intermediate
// statuses have no re-entry path because their artifacts carry no record of
// how far the failed phase got.
type UnsupportedResumeError struct {
	Status project.Status
}

func (e *UnsupportedResumeError) Error() string {
	return fmt.Sprintf("cannot resume from status %q: only draft and ready_to_upload projects are resumable", e.Status)
}

func (e *UnsupportedResumeError) Is(target error) bool {
	return target == ErrUnsupportedResume
}

// Resume continues a persisted project according to its recorded status.
// Drafts restart the whole pipeline; ready_to_upload projects go straight to
// upload after the final video is verified on disk.
func (m *Manager) Resume(ctx context.Context, p *project.Project) error {
	if p == nil {
		return services.Wrap(services.ErrValidation, "pipeline", "resume", "nil project", nil)
	}

	switch p.Status {
	case project.StatusDraft:
		m.logger.Info("resuming draft from the start",
			logging.String(logging.FieldProjectID, p.ID))
		return m.Run(ctx, p)
	case project.StatusReadyToUpload:
		if !p.HasFinalVideo() {
			return services.Wrap(services.ErrNotFound, "pipeline", "resume",
				fmt.Sprintf("final video missing at %s", p.FinalVideoPath), nil)
		}
		m.logger.Info("resuming at upload",
			logging.String(logging.FieldProjectID, p.ID),
			logging.String("final_video", p.FinalVideoPath))
		// An explicit resume of a ready project is an upload request,
		// whatever the config toggle says.
		return m.runPhase(ctx, m.phases[4], p)
	default:
		return &UnsupportedResumeError{Status: p.Status}
	}
}
