package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/podkit/internal/version"
	podcommands "github.com/arthur-debert/podkit/pkg/commands"
	"github.com/arthur-debert/podkit/pkg/config"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/output"
	"github.com/arthur-debert/podkit/pkg/spec"
)

// globalFlags are shared by every command
type globalFlags struct {
	verbosity  int
	configFile string
	format     string
	sandbox    string
}

// sessionFlags select and tune the pods a command works on
type sessionFlags struct {
	platforms     []string
	pods          []string
	local         map[string]string
	predownloaded []string
	head          []string
}

// NewRootCmd creates the podkit command tree
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:     "podkit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&g.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&g.sandbox, "sandbox", "", MsgFlagSandbox)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Commands"},
		&cobra.Group{ID: "misc", Title: "Misc"},
	)
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(g))
	rootCmd.AddCommand(newCleanPlanCmd(g))
	rootCmd.AddCommand(newHeadersCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func addSessionFlags(cmd *cobra.Command, s *sessionFlags) {
	cmd.Flags().StringSliceVarP(&s.platforms, "platform", "p", nil, MsgFlagPlatform)
	cmd.Flags().StringSliceVar(&s.pods, "pod", nil, MsgFlagPod)
	cmd.Flags().StringToStringVar(&s.local, "local", nil, MsgFlagLocal)
	cmd.Flags().StringSliceVar(&s.predownloaded, "predownloaded", nil, MsgFlagPredownloaded)
	cmd.Flags().StringSliceVar(&s.head, "head", nil, MsgFlagHead)
}

// loadConfig layers the changed flags in overrides over the configuration
func loadConfig(g *globalFlags, overrides map[string]interface{}) (*config.Config, error) {
	if overrides == nil {
		overrides = make(map[string]interface{})
	}
	if g.sandbox != "" {
		overrides["sandbox.root"] = g.sandbox
	}
	cfg, err := config.Load(config.LoadOptions{
		UserConfigPath: g.configFile,
		Overrides:      overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

func sessionOptions(manifest string, cfg *config.Config, s *sessionFlags) (podcommands.SessionOptions, error) {
	platforms := make([]spec.Platform, 0, len(s.platforms))
	for _, name := range s.platforms {
		p, err := spec.ParsePlatform(name)
		if err != nil {
			return podcommands.SessionOptions{}, err
		}
		platforms = append(platforms, p)
	}
	return podcommands.SessionOptions{
		ManifestPath:  manifest,
		Config:        cfg,
		Platforms:     platforms,
		Pods:          s.pods,
		LocalPaths:    s.local,
		Predownloaded: s.predownloaded,
		HeadPods:      s.head,
	}, nil
}

// newRenderer creates the renderer for the --format flag
func newRenderer(cmd *cobra.Command, g *globalFlags) (output.Renderer, error) {
	format, err := output.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(format, cmd.OutOrStdout())
}

// newReporter prints install progress on stderr, never into json or yaml
func newReporter(cmd *cobra.Command) *output.PtermReporter {
	color := output.DetectFormat(os.Stderr) == output.FormatTerminal
	return output.NewReporter(cmd.ErrOrStderr(), color)
}
