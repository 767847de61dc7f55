package commandmeta

import (
	"strings"
)

const RootCommandName = "geoserverctl"

type OutputPolicy uint8

const (
	OutputPolicyStructured OutputPolicy = iota
	OutputPolicyTextOnly
	OutputPolicyYAMLDefaultTextOrYAML
)

// RequiresContextBootstrapPath reports whether the command talks to the
// server and therefore needs the logger, transport and catalog built first.
func RequiresContextBootstrapPath(commandPath string) bool {
	normalized := strings.TrimSpace(commandPath)
	prefix := RootCommandName + " "
	if !strings.HasPrefix(normalized, prefix) {
		return false
	}

	group, _, _ := strings.Cut(strings.TrimPrefix(normalized, prefix), " ")
	switch group {
	case "config", "completion", "version", "help":
		return false
	default:
		return true
	}
}

func EmitsExecutionStatusPath(path string) bool {
	normalized := strings.TrimSpace(path)
	if normalized == RootCommandName+" snapshot" {
		return true
	}
	for _, verb := range []string{" create", " delete", " delete-all", " set-default"} {
		if strings.HasSuffix(normalized, verb) {
			return true
		}
	}
	return false
}

func OutputPolicyForPath(path string) OutputPolicy {
	switch strings.TrimSpace(path) {
	case RootCommandName + " config show":
		return OutputPolicyYAMLDefaultTextOrYAML
	case RootCommandName + " style sld",
		RootCommandName + " config path",
		RootCommandName + " completion bash",
		RootCommandName + " completion zsh",
		RootCommandName + " completion fish",
		RootCommandName + " completion powershell":
		return OutputPolicyTextOnly
	default:
		return OutputPolicyStructured
	}
}
