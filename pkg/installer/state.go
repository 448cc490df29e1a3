package installer

import (
	"github.com/arthur-debert/podkit/pkg/errors"
)

// State is the furthest install step a pod has completed
type State int

const (
	NotStarted State = iota
	Fetched
	Documented
	Cleaned
	Linked
)

var stateNames = map[State]string{
	NotStarted: "not-started",
	Fetched:    "fetched",
	Documented: "documented",
	Cleaned:    "cleaned",
	Linked:     "linked",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the state by name in reports
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// canEnter reports whether a step leading to next may run from s.
// Steps may be skipped or repeated but never run after a later one.
func (s State) canEnter(next State) bool {
	return next >= s
}

// guard rejects a step that would move the pod backwards
func (i *PodSourceInstaller) guard(next State) error {
	if i.state.canEnter(next) {
		return nil
	}
	if next == Documented {
		return errors.Newf(errors.ErrOrderingViolation,
			"attempt to generate documentation after cleaning the installation of %s", i.Name()).
			WithDetail("pod", i.Name()).
			WithDetail("state", i.state.String())
	}
	return errors.Newf(errors.ErrOrderingViolation,
		"cannot move %s from %s back to %s", i.Name(), i.state, next).
		WithDetail("pod", i.Name()).
		WithDetail("state", i.state.String())
}

func (i *PodSourceInstaller) advance(next State) {
	if next > i.state {
		i.logger.Debug().Stringer("from", i.state).Stringer("to", next).Msg("State changed")
		i.state = next
	}
}
