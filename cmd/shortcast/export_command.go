package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"shortcast/internal/pipeline"
	"shortcast/internal/services"
	"shortcast/internal/timing"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export a project's timed script as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			p, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			if !p.HasScript() {
				return services.Wrap(services.ErrNotFound, "export", "load",
					fmt.Sprintf("project %s has no script yet", p.ID), nil)
			}

			engine, err := pipeline.EngineFromConfig(cfg)
			if err != nil {
				return err
			}

			var payload any
			switch format {
			case "tts":
				payload = engine.ExportForTTS(p.Script)
			case "summary":
				payload = timing.Summarize(p.Script)
			case "script":
				payload = p.Script
			default:
				return fmt.Errorf("unknown export format %q (tts, summary, script)", format)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(payload)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tts", "Export format: tts, summary, or script")
	return cmd
}
