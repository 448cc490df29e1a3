package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/podkit/pkg/commands/install"
	"github.com/arthur-debert/podkit/pkg/logging"
)

func newInstallCmd(g *globalFlags) *cobra.Command {
	var (
		s            sessionFlags
		noClean      bool
		docs         bool
		installDocs  bool
		aggressive   bool
		lockfilePath string
	)

	cmd := &cobra.Command{
		Use:     "install <manifest>",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.install")

			overrides := make(map[string]interface{})
			if cmd.Flags().Changed("no-clean") {
				overrides["install.clean"] = !noClean
			}
			if cmd.Flags().Changed("docs") {
				overrides["install.generate_docs"] = docs
			}
			if cmd.Flags().Changed("install-docs") {
				overrides["install.install_docs"] = installDocs
			}
			if cmd.Flags().Changed("aggressive-cache") {
				overrides["cache.aggressive"] = aggressive
			}

			cfg, err := loadConfig(g, overrides)
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
			opts.Reporter = newReporter(cmd)

			logger.Info().
				Str("manifest", args[0]).
				Bool("clean", cfg.Install.Clean).
				Bool("docs", cfg.Install.GenerateDocs).
				Msg("Starting install")

			report, err := install.InstallPods(cmd.Context(), install.InstallPodsOptions{
				SessionOptions: opts,
				LockfilePath:   lockfilePath,
			})
			if report != nil && len(report.Pods) > 0 {
				if rerr := renderer.RenderResult(report); rerr != nil {
					return rerr
				}
			}
			return err
		},
	}

	addSessionFlags(cmd, &s)
	cmd.Flags().BoolVar(&noClean, "no-clean", false, MsgFlagNoClean)
	cmd.Flags().BoolVar(&docs, "docs", false, MsgFlagDocs)
	cmd.Flags().BoolVar(&installDocs, "install-docs", false, MsgFlagInstallDocs)
	cmd.Flags().BoolVar(&aggressive, "aggressive-cache", false, MsgFlagAggressive)
	cmd.Flags().StringVar(&lockfilePath, "lockfile", "", MsgFlagLockfile)
	return cmd
}
