package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shortcast/internal/brief"
	"shortcast/internal/pipeline"
	"shortcast/internal/project"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var briefPath string
	var process bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project from a campaign brief",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			b, err := brief.Load(briefPath)
			if err != nil {
				return err
			}

			p := project.New(b.ProjectName(), b.Product)
			p.LandingURL = b.LandingURL
			pipeline.StashBrief(p, b)

			docPath := project.DocumentPath(cfg.Paths.OutputDir, p.ID)
			if _, err := p.SaveToFile(docPath); err != nil {
				return err
			}
			if store, storeErr := ctx.ensureCatalog(); storeErr == nil {
				if err := store.Upsert(cmd.Context(), p, docPath); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created project %s for %s\n", p.ID, p.ProductName)
			fmt.Fprintf(out, "Document: %s\n", docPath)

			if !process {
				fmt.Fprintf(out, "Run `shortcast process %s` to generate the video.\n", p.ID)
				return nil
			}

			manager, err := ctx.buildManager()
			if err != nil {
				return err
			}
			if err := manager.Run(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(out, "Project %s finished with status %s\n", p.ID, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&briefPath, "brief", "b", "", "Path to the campaign brief YAML file")
	cmd.Flags().BoolVar(&process, "process", false, "Run the generation pipeline immediately")
	_ = cmd.MarkFlagRequired("brief")
	return cmd
}
