//go:build !unix

package app

import "os/exec"

// setProcessGroup is a no-op; CommandContext kills only the direct child and
// WaitDelay stops Wait from blocking on inherited pipes.
func setProcessGroup(cmd *exec.Cmd) {}
