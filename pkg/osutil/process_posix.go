//go:build unix

package osutil

import (
	"os/exec"
	"syscall"
)

// SetProcessGroup runs the command in its own process group so that a
// validator and anything it spawns can be killed together.
func SetProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// SetProcessGroupKill makes context cancellation SIGKILL the whole process
// group. Must be called after SetProcessGroup and before cmd.Start().
func SetProcessGroupKill(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
