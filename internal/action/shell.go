package action

import (
	"os/exec"
	"runtime"
)

// buildShellCmd constructs an *exec.Cmd for the given shell. Pure function: no execution.
func buildShellCmd(shell, commandStr string) *exec.Cmd {
	switch shell {
	case "bash":
		return commandFn("bash", "-lc", commandStr)
	case "sh":
		return commandFn("sh", "-c", commandStr)
	case "zsh":
		return commandFn("zsh", "-lc", commandStr)
	case "fish":
		return commandFn("fish", "-c", commandStr)
	case "pwsh", "powershell":
		return commandFn("pwsh", "-NoLogo", "-NoProfile", "-Command", commandStr)
	case "cmd", "cmd.exe":
		return commandFn("cmd", "/C", commandStr)
	default:
		if runtime.GOOS == "windows" {
			return commandFn("pwsh", "-NoLogo", "-NoProfile", "-Command", commandStr)
		}
		return commandFn("bash", "-lc", commandStr)
	}
}
