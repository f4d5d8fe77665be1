//go:build windows

package osutil

import (
	"os"
	"os/exec"
	"syscall"
)

// SetProcessGroup starts the command in a new process group.
func SetProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

// SetProcessGroupKill terminates the main process on cancellation. Child
// processes may outlive it since Windows has no Unix-style process groups.
func SetProcessGroupKill(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Kill)
	}
}
