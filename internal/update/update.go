// Package update checks for newer releases and replaces the running binary.
package update

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/wahlandcase/attuned.changelog/internal/github"
)

// ReleaseSource is the part of the API client the updater needs
type ReleaseSource interface {
	LatestRelease(ctx context.Context, owner, name string) (github.Release, error)
	DownloadAsset(ctx context.Context, owner, name string, id int64) (io.ReadCloser, error)
}

func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid update repo %q, want owner/name", repo)
	}
	return owner, name, nil
}

// CheckForUpdate returns the latest release if it is newer than currentVersion
func CheckForUpdate(ctx context.Context, src ReleaseSource, currentVersion, repo string) (*github.Release, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	latest, err := src.LatestRelease(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	if latest.TagName == "" {
		return nil, nil
	}
	if Newer(latest.TagName, currentVersion) {
		return &latest, nil
	}
	return nil, nil
}

// Newer reports whether version a is newer than b. "dev" is older than
// every release.
func Newer(a, b string) bool {
	a, b = normalizeVersion(a), normalizeVersion(b)
	if b == "dev" || b == "" {
		return a != "dev" && a != ""
	}
	if a == "dev" {
		return false
	}
	pa, pb := versionParts(a), versionParts(b)
	for i := 0; i < max(len(pa), len(pb)); i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if x != y {
			return x > y
		}
	}
	return false
}

// versionParts parses "1.2.3-rc1" into [1 2 3]; pre-release suffixes are ignored
func versionParts(v string) []int {
	v, _, _ = strings.Cut(v, "-")
	var parts []int
	for _, s := range strings.Split(v, ".") {
		n, err := strconv.Atoi(s)
		if err != nil {
			n = 0
		}
		parts = append(parts, n)
	}
	return parts
}

// normalizeVersion strips version prefixes for comparison
func normalizeVersion(v string) string {
	v = strings.TrimPrefix(v, "attcl/")
	v = strings.TrimPrefix(v, "v")
	return v
}

// getBinaryPath returns the path to the current executable
func getBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	// Resolve symlinks to get actual path
	return filepath.EvalSymlinks(exe)
}

// AssetName returns the expected binary name for the current platform
func AssetName() string {
	return fmt.Sprintf("attcl-%s-%s", runtime.GOOS, runtime.GOARCH)
}

// DownloadAndInstall downloads the platform binary and replaces the current executable
func DownloadAndInstall(ctx context.Context, src ReleaseSource, release *github.Release, repo string) error {
	binaryPath, err := getBinaryPath()
	if err != nil {
		return fmt.Errorf("failed to get binary path: %w", err)
	}
	return install(ctx, src, release, repo, AssetName(), binaryPath)
}

func install(ctx context.Context, src ReleaseSource, release *github.Release, repo, assetName, binaryPath string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	var assetID int64
	for _, a := range release.Assets {
		if a.Name == assetName {
			assetID = a.ID
			break
		}
	}
	if assetID == 0 {
		return fmt.Errorf("release %s has no asset %s", release.TagName, assetName)
	}

	rc, err := src.DownloadAsset(ctx, owner, name, assetID)
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp("", "attcl-update-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	size, err := io.Copy(tmp, rc)
	tmp.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	// Verify the download is a plausible executable
	if size < 1000 {
		os.Remove(tmpPath)
		return fmt.Errorf("downloaded file too small (%d bytes), likely invalid", size)
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod failed: %w", err)
	}

	// Atomic replace: rename over the current binary
	if err := os.Rename(tmpPath, binaryPath); err != nil {
		// If rename fails (e.g., cross-device), fall back to copy
		return copyFile(tmpPath, binaryPath)
	}
	return nil
}

// copyFile copies src to dst with proper permissions
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	// Create temp file in same directory as dst for atomic replace
	tmpFile, err := os.CreateTemp(filepath.Dir(dst), "attcl-update-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, srcFile); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	tmpFile.Close()

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// Clean up source
	os.Remove(src)
	return nil
}

// VersionDisplay returns a formatted version string for display
func VersionDisplay(tag string) string {
	return normalizeVersion(tag)
}
