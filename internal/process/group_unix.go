//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the command as the leader of a new process group.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; error ignored as Wait reports the exit
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
