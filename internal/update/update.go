// Package update handles self-updating of the mx binary from GitHub releases.
package update

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creativeprojects/go-selfupdate"
)

// Repository is the GitHub slug releases are published under.
const Repository = "pengelbrecht/mathx"

// InstallMethod describes how the running binary was installed.
type InstallMethod int

const (
	// InstallBinary means a directly downloaded or go-installed binary.
	InstallBinary InstallMethod = iota
	// InstallHomebrew means the binary was installed via Homebrew.
	InstallHomebrew
)

// Release describes an available release.
type Release struct {
	Version string
}

// DetectInstallMethod inspects the running executable's path to determine
// how it was installed. Homebrew installs must be upgraded via brew, not
// in-place.
func DetectInstallMethod() InstallMethod {
	exe, err := os.Executable()
	if err != nil {
		return InstallBinary
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if strings.Contains(exe, "/Cellar/") || strings.Contains(exe, "/homebrew/") || strings.Contains(exe, "/linuxbrew/") {
		return InstallHomebrew
	}
	return InstallBinary
}

// CheckForUpdate looks up the latest release and reports whether it is newer
// than the current version. Development builds always report an update when
// any release exists.
func CheckForUpdate(current string) (*Release, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(Repository))
	if err != nil {
		return nil, false, fmt.Errorf("detect latest release: %w", err)
	}
	if !found || latest == nil {
		return nil, false, nil
	}

	release := &Release{Version: latest.Version()}

	if isDevBuild(current) {
		return release, true, nil
	}
	if latest.LessOrEqual(current) {
		return release, false, nil
	}
	return release, true, nil
}

// Update replaces the running binary with the latest release.
func Update(current string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := selfupdate.UpdateSelf(ctx, current, selfupdate.ParseSlug(Repository)); err != nil {
		return fmt.Errorf("update binary: %w", err)
	}
	return nil
}

// isDevBuild reports whether version is a non-release build string.
func isDevBuild(version string) bool {
	version = strings.TrimPrefix(version, "v")
	return version == "" || version == "dev" || strings.HasSuffix(version, "-dev")
}
