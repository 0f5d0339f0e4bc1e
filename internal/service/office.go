package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"office-converter/internal/domain"
)

// killGracePeriod bounds how long we wait for the process to die after the
// deadline fires before Wait gives up on it.
const killGracePeriod = 5 * time.Second

// sofficeCandidates are probed in order when SOFFICE_PATH is not set.
var sofficeCandidates = []string{
	"/usr/bin/soffice",
	"/usr/bin/libreoffice",
	"/opt/homebrew/bin/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
}

// LibreOffice runs the soffice binary in headless mode. Each invocation gets
// its own UserInstallation profile directory so concurrent jobs never contend
// on the engine's lock files or cached state.
type LibreOffice struct {
	binary string
	logger domain.Logger
}

// NewLibreOffice resolves the soffice binary and returns a runner.
// An empty binary path triggers autodetection.
func NewLibreOffice(binary string, logger domain.Logger) (*LibreOffice, error) {
	if binary == "" {
		binary = findSoffice()
	}
	if binary == "" {
		return nil, fmt.Errorf("soffice binary not found: %w", domain.ErrEngineUnavailable)
	}
	if _, err := os.Stat(binary); err != nil {
		return nil, fmt.Errorf("soffice binary %s: %w", binary, domain.ErrEngineUnavailable)
	}
	return &LibreOffice{binary: binary, logger: logger}, nil
}

// Binary returns the resolved soffice binary path.
func (l *LibreOffice) Binary() string {
	return l.binary
}

// Healthy reports whether the engine binary is still present.
func (l *LibreOffice) Healthy() bool {
	_, err := os.Stat(l.binary)
	return err == nil
}

// Run converts inputPath to the target format, writing the result into
// outDir. The context carries the conversion deadline; when it fires the
// whole soffice process group is killed and ErrConversionTimeout is returned.
func (l *LibreOffice) Run(ctx context.Context, inputPath, outDir, profileDir string, target domain.Format) error {
	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolving output dir: %w", err)
	}
	absProfile, err := filepath.Abs(profileDir)
	if err != nil {
		return fmt.Errorf("resolving profile dir: %w", err)
	}

	args := []string{
		"-env:UserInstallation=file://" + absProfile,
		"--headless",
		"--norestore",
		"--convert-to", string(target),
		"--outdir", absOut,
		absInput,
	}

	cmd := exec.CommandContext(ctx, l.binary, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	// soffice forks helpers; put the whole tree in one process group so the
	// deadline kill reaps all of it.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = killGracePeriod

	l.logger.Debug("Invoking soffice", "binary", l.binary, "target", target, "outdir", absOut)

	err = cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			l.logger.Warn("soffice killed at deadline", "input", absInput, "target", target)
			return fmt.Errorf("soffice exceeded deadline: %w", domain.ErrConversionTimeout)
		}
		// Engine output stays in the error chain for logs; callers must not
		// expose it to clients.
		l.logger.Error("soffice failed", err, "target", target, "output", output.String())
		return fmt.Errorf("soffice exited with error: %v: %s: %w", err, output.String(), domain.ErrConversionFailed)
	}
	return nil
}

// findSoffice probes well-known locations, then PATH.
func findSoffice() string {
	for _, candidate := range sofficeCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	for _, name := range []string{"soffice", "libreoffice"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// IsTimeout reports whether err stems from the conversion deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, domain.ErrConversionTimeout)
}
