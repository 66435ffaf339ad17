package version

import (
	"fmt"
	"strings"

	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// BumpLevel is the size or category of change applied to produce the next
// version.
type BumpLevel uint8

const (
	// BumpNone leaves the version unchanged.
	BumpNone BumpLevel = iota
	// BumpPatch increments the patch component.
	BumpPatch
	// BumpMinor increments the minor component.
	BumpMinor
	// BumpMajor increments the major component.
	BumpMajor
	// BumpPreRelease produces a pre-release version.
	BumpPreRelease
	// BumpRelease promotes a pre-release to its final release.
	BumpRelease
	// BumpAlpha is reserved for a dedicated alpha cycle.
	BumpAlpha
	// BumpBeta is reserved for a dedicated beta cycle.
	BumpBeta
	// BumpRc is reserved for a dedicated release-candidate cycle.
	BumpRc
)

var bumpLevelNames = [...]string{
	BumpNone:       "none",
	BumpPatch:      "patch",
	BumpMinor:      "minor",
	BumpMajor:      "major",
	BumpPreRelease: "prerelease",
	BumpRelease:    "release",
	BumpAlpha:      "alpha",
	BumpBeta:       "beta",
	BumpRc:         "rc",
}

// String returns the lower-case name of the bump level.
func (b BumpLevel) String() string {
	if int(b) < len(bumpLevelNames) {
		return bumpLevelNames[b]
	}
	return fmt.Sprintf("BumpLevel(%d)", uint8(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b BumpLevel) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// IsRelease reports whether the level produces a new version.
func (b BumpLevel) IsRelease() bool {
	return b != BumpNone
}

// dampen applies the pre-1.0 rule once: major before 1.0.0 is reserved for
// the first production release.
func (b BumpLevel) dampen(v SemanticVersion) BumpLevel {
	if v.major != 0 {
		return b
	}
	switch b {
	case BumpMajor:
		return BumpMinor
	case BumpMinor:
		return BumpPatch
	default:
		return b
	}
}

// apply returns v incremented by a numeric level.
func (b BumpLevel) apply(v SemanticVersion) SemanticVersion {
	switch b {
	case BumpMajor:
		return v.IncrementMajor()
	case BumpMinor:
		return v.IncrementMinor()
	case BumpPatch:
		return v.IncrementPatch()
	default:
		return v
	}
}

// ForceLevel overrides commit-driven detection.
type ForceLevel string

const (
	// ForceMajor behaves as if a breaking commit was found.
	ForceMajor ForceLevel = "major"
	// ForceMinor behaves as if one feature commit was found.
	ForceMinor ForceLevel = "minor"
	// ForcePatch behaves as if one fix commit was found.
	ForcePatch ForceLevel = "patch"
	// ForceFirst promotes 0.x.y to the first production release.
	ForceFirst ForceLevel = "first"
)

// IsValid returns true if the force level is valid.
func (f ForceLevel) IsValid() bool {
	switch f {
	case ForceMajor, ForceMinor, ForcePatch, ForceFirst:
		return true
	default:
		return false
	}
}

// String returns the string representation of the force level.
func (f ForceLevel) String() string {
	return string(f)
}

// ParseForceLevel parses a string into a ForceLevel, case-insensitively.
func ParseForceLevel(s string) (ForceLevel, error) {
	f := ForceLevel(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", rperrors.Validation("version.ParseForceLevel",
			fmt.Sprintf("invalid force level %q (must be major, minor, patch, or first)", s))
	}
	return f, nil
}
