package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the released version of portfolioai.
// Override it at build time:
//
//	go build -ldflags "-X github.com/hrygo/portfolioai/internal/version.Version=0.3.0"
var Version = "0.1.0-dev"

// GitCommit is the git commit hash at build time.
var GitCommit = "unknown"

// BuildTime is the build timestamp in RFC3339 format.
var BuildTime = "unknown"

// canonical adds the "v" prefix semver expects.
func canonical(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// IsValid reports whether v is a semantic version, with or without "v".
func IsValid(v string) bool {
	return semver.IsValid(canonical(v))
}

// GetMinorVersion returns "major.minor" of a valid version, or "".
func GetMinorVersion(v string) string {
	mm := semver.MajorMinor(canonical(v))
	return strings.TrimPrefix(mm, "v")
}

// IsVersionGreaterOrEqualThan returns true if version is greater than or equal to target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(canonical(version), canonical(target)) > -1
}

// IsPrerelease reports whether v carries a prerelease suffix such as "-dev".
func IsPrerelease(v string) bool {
	return semver.Prerelease(canonical(v)) != ""
}

func shortCommit() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return ""
	}
	if len(GitCommit) > 8 {
		return GitCommit[:8]
	}
	return GitCommit
}

// String returns the version string with optional commit hash.
func String() string {
	if c := shortCommit(); c != "" {
		return fmt.Sprintf("%s-%s", Version, c)
	}
	return Version
}

// StringFull returns the complete version information including build metadata.
func StringFull() string {
	parts := []string{fmt.Sprintf("Version=%s", Version)}
	if c := shortCommit(); c != "" {
		parts = append(parts, fmt.Sprintf("Commit=%s", c))
	}
	if BuildTime != "" && BuildTime != "unknown" {
		parts = append(parts, fmt.Sprintf("BuildTime=%s", BuildTime))
	}
	return strings.Join(parts, " ")
}
