package commands

import (
	_ "embed"
	"strings"
)

const (
	MsgRootShort       = "Install pod sources into a sandbox"
	MsgInstallShort    = "Install the pods of a manifest"
	MsgCleanPlanShort  = "List the files a cleanup would remove"
	MsgCleanPlanLong   = "Plan the cleanup of every pod without removing anything. Local pods are never cleaned."
	MsgHeadersShort    = "Show where pod headers are linked"
	MsgHeadersLong     = "Show the build and public header mappings of every pod, merged across platforms."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/podkit/config.toml)"
	MsgFlagFormat        = "Output format: auto, term, text, json or yaml"
	MsgFlagSandbox       = "Sandbox directory (default ./Pods)"
	MsgFlagPlatform      = "Install for these platforms only (ios, osx, tvos, watchos)"
	MsgFlagPod           = "Only process these pods"
	MsgFlagLocal         = "Use a local working copy for a pod (name=path)"
	MsgFlagPredownloaded = "Pods already downloaded into the sandbox"
	MsgFlagHead          = "Pods to install from the tip of their source"
	MsgFlagNoClean       = "Keep files no specification uses"
	MsgFlagDocs          = "Generate documentation"
	MsgFlagInstallDocs   = "Install generated docsets"
	MsgFlagAggressive    = "Use cached sources without fetching when possible"
	MsgFlagLockfile      = "Write pinned sources to this TOML file"

	MsgVersionFormat = "podkit version %s\n  commit: %s\n  built:  %s\n"

	MsgErrLoadConfig = "failed to load configuration: %w"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
