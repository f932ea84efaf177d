package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process <project-id>",
		Short: "Run the generation pipeline for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			manager, err := ctx.buildManager()
			if err != nil {
				return err
			}
			if err := manager.Run(cmd.Context(), p); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project %s finished with status %s\n", p.ID, p.Status)
			if p.FinalVideoPath != "" {
				fmt.Fprintf(out, "Final video: %s\n", p.FinalVideoPath)
			}
			if p.Upload.VideoURL != "" {
				fmt.Fprintf(out, "Published: %s\n", p.Upload.VideoURL)
			}
			return nil
		},
	}
}

func newResumeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <project-id>",
		Short: "Resume a persisted project from its recorded status",
		Long: "Resume continues a saved project. Drafts restart the whole pipeline; " +
			"ready_to_upload projects go straight to upload. Other statuses are not resumable.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			manager, err := ctx.buildManager()
			if err != nil {
				return err
			}
			if err := manager.Resume(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s resumed; status %s\n", p.ID, p.Status)
			return nil
		},
	}
}
