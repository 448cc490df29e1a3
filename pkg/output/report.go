package output

import (
	"github.com/arthur-debert/podkit/pkg/headers"
	"github.com/arthur-debert/podkit/pkg/installer"
)

// InstallReport is the outcome of installing every pod of a manifest
type InstallReport struct {
	Sandbox string              `json:"sandbox" yaml:"sandbox"`
	Pods    []*installer.Result `json:"pods" yaml:"pods"`
}

// CleanPlan lists what a cleanup would remove from one pod
type CleanPlan struct {
	Pod   string   `json:"pod" yaml:"pod"`
	Root  string   `json:"root" yaml:"root"`
	Paths []string `json:"paths" yaml:"paths"`
}

// HeaderReport lists the header mappings of one pod
type HeaderReport struct {
	Pod    string          `json:"pod" yaml:"pod"`
	Build  headers.Mapping `json:"build" yaml:"build"`
	Public headers.Mapping `json:"public" yaml:"public"`
}
