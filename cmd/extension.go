package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// EnvConfig passes the -config flag to extensions.
const EnvConfig = "STRACK_CONFIG"

// IsCommand reports whether name is a built-in subcommand.
func IsCommand(name string) bool {
	for _, c := range Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// RunExtension executes the strack-<subcommand> binary found in PATH. It
// returns (false, 0) when there is none, (true, exit code) otherwise.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath("strack-" + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), EnvConfig+"="+*configPath)

	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return true, exit.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}
