// Package cleanplan lists the files a cleanup would remove, without
// removing anything.
package cleanplan

import (
	"github.com/arthur-debert/podkit/pkg/commands"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/output"
)

// PlanPods returns the cleanup plan of every selected pod. Local pods
// are never cleaned so their plan is empty.
func PlanPods(opts commands.SessionOptions) ([]*output.CleanPlan, error) {
	logger := logging.GetLogger("commands.cleanplan")

	session, err := commands.NewSession(opts)
	if err != nil {
		return nil, err
	}

	plans := make([]*output.CleanPlan, 0, len(session.Installers))
	for _, i := range session.Installers {
		plan := &output.CleanPlan{Pod: i.Name(), Root: i.Root(), Paths: []string{}}
		if !i.IsLocal() {
			paths, err := i.CleanPaths()
			if err != nil {
				return nil, err
			}
			plan.Paths = paths
		}
		logger.Debug().Str("pod", plan.Pod).Int("paths", len(plan.Paths)).Msg("Planned cleanup")
		plans = append(plans, plan)
	}
	return plans, nil
}
