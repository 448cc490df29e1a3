package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/podkit/pkg/commands/cleanplan"
	"github.com/arthur-debert/podkit/pkg/commands/headermap"
)

func newCleanPlanCmd(g *globalFlags) *cobra.Command {
	var s sessionFlags

	cmd := &cobra.Command{
		Use:     "clean-plan <manifest>",
		Short:   MsgCleanPlanShort,
		Long:    MsgCleanPlanLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, nil)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			opts, err := sessionOptions(args[0], cfg, &s)
			if err != nil {
				return err
			}

			plans, err := cleanplan.PlanPods(opts)
			if err != nil {
				return err
			}
			return renderer.RenderResult(plans)
		},
	}
	addSessionFlags(cmd, &s)
	return cmd
}

func newHeadersCmd(g *globalFlags) *cobra.Command {
	var s sessionFlags

	cmd := &cobra.Command{
		Use:     "headers <manifest>",
		Short:   MsgHeadersShort,
		Long:    MsgHeadersLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, nil)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			opts, err := sessionOptions(args[0], cfg, &s)
			if err != nil {
				return err
			}

			reports, err := headermap.MapPods(opts)
			if err != nil {
				return err
			}
			return renderer.RenderResult(reports)
		},
	}
	addSessionFlags(cmd, &s)
	return cmd
}
