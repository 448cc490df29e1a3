// Package install installs every pod of a manifest into the sandbox.
package install

import (
	"context"

	"github.com/arthur-debert/podkit/pkg/commands"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/output"
)

// InstallPodsOptions contains options for the install command
type InstallPodsOptions struct {
	commands.SessionOptions

	// LockfilePath receives the recorded specific sources when set
	LockfilePath string
}

// InstallPods installs the selected pods in manifest order. It stops at
// the first failing pod; the report then holds the pods done so far.
func InstallPods(ctx context.Context, opts InstallPodsOptions) (*output.InstallReport, error) {
	logger := logging.GetLogger("commands.install")

	session, err := commands.NewSession(opts.SessionOptions)
	if err != nil {
		return nil, err
	}

	report := &output.InstallReport{Sandbox: session.Sandbox.Root()}
	for _, i := range session.Installers {
		result, err := i.Install(ctx)
		if result != nil {
			report.Pods = append(report.Pods, result)
		}
		if err != nil {
			logger.Error().Err(err).Str("pod", i.Name()).Msg("Install failed")
			return report, err
		}
	}

	if opts.LockfilePath != "" {
		if err := WriteLockfile(opts.LockfilePath, session.Sandbox.CheckoutSources()); err != nil {
			return report, err
		}
	}

	logger.Info().Int("pods", len(report.Pods)).Msg("Install completed")
	return report, nil
}
