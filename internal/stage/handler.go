// Package stage defines the contract between the pipeline manager and the
// phases it runs.
package stage

import (
	"context"

	"shortcast/internal/project"
)

// Handler describes the contract the pipeline manager needs from each phase.
type Handler interface {
	Prepare(context.Context, *project.Project) error
	Execute(context.Context, *project.Project) error
	HealthCheck(context.Context) Health
}
