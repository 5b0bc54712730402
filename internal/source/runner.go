package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// CommandTimeout bounds each smi invocation.
const CommandTimeout = 5 * time.Second

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands on the local machine.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// rocmCandidates are checked in order before searching PATH.
var rocmCandidates = []string{
	"/opt/rocm/bin/rocm-smi",
	"/usr/bin/rocm-smi",
	"/usr/local/bin/rocm-smi",
	"/opt/amdgpu-pro/bin/amd-smi",
	"/usr/bin/amd-smi",
}

// rocmNames are searched on PATH when no candidate exists.
var rocmNames = []string{"rocm-smi", "amd-smi"}

var lookPath = exec.LookPath

// FindROCmSMI returns the path of a usable rocm-smi or amd-smi binary, or ""
// when none is installed.
func FindROCmSMI() string {
	for _, p := range rocmCandidates {
		if isExecutable(p) {
			return p
		}
	}
	for _, name := range rocmNames {
		if p, err := lookPath(name); err == nil {
			return p
		}
	}
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
