//go:build !unix

package observe

import "os/exec"

func setProcessGroup(*exec.Cmd) {}

func exitSignal(*exec.ExitError) (string, int) { return "", 0 }
