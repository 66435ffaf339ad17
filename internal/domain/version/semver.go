// Package version provides domain types for semantic versioning.
package version

import (
	"cmp"
	"strconv"
	"strings"

	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// DefaultPrefix is the tag prefix used when none is configured.
const DefaultPrefix = "v"

// SemanticVersion is a value object representing a prefixed semantic version
// tag such as "v1.4.2" or "v2.0.0-rc.3".
// Immutable by design - all operations return new instances.
type SemanticVersion struct {
	prefix     string
	major      uint64
	minor      uint64
	patch      uint64
	preRelease *PreRelease
}

// Zero is the zero version (0.0.0) with no prefix.
var Zero = SemanticVersion{}

// NewSemanticVersion creates a new SemanticVersion value object.
func NewSemanticVersion(prefix string, major, minor, patch uint64) SemanticVersion {
	return SemanticVersion{
		prefix: prefix,
		major:  major,
		minor:  minor,
		patch:  patch,
	}
}

// Parse parses a tag into a SemanticVersion. The tag must start with prefix
// exactly; the remainder must be MAJOR.MINOR.PATCH optionally followed by
// -SUFFIX.ID.
func Parse(tag, prefix string) (SemanticVersion, error) {
	const op = "version.Parse"

	fail := func(sentinel error, format string, args ...any) (SemanticVersion, error) {
		return Zero, rperrors.Wrapf(sentinel, rperrors.KindVersion, op, format, args...).
			WithDetail("tag", tag).
			WithDetail("prefix", prefix)
	}

	rest, ok := strings.CutPrefix(tag, prefix)
	if !ok {
		return fail(ErrNotVersionTag, "version tags must start with %q but tag is %s", prefix, tag)
	}

	core, preText, hasPre := strings.Cut(rest, "-")

	var numbers [3]uint64
	count := 0
	for _, segment := range strings.Split(core, ".") {
		count++
		if count > 3 {
			return fail(ErrTooManyComponents, "version must have three components but at least %d were found", count)
		}
		n, ok := parseNumber(segment)
		if !ok {
			return fail(ErrMustBeNumber, "version must be a number but found %q", segment)
		}
		numbers[count-1] = n
	}
	if count < 3 {
		return fail(ErrTooFewComponents, "version must have three components but only %d found", count)
	}

	v := SemanticVersion{
		prefix: prefix,
		major:  numbers[0],
		minor:  numbers[1],
		patch:  numbers[2],
	}

	if hasPre {
		pre, err := parsePreRelease(preText)
		if err != nil {
			return fail(ErrInvalidPreReleaseFormat, "invalid pre-release format: %s", preText)
		}
		v.preRelease = &pre
	}

	return v, nil
}

// MustParse parses a tag and panics if invalid.
// Use only for known-good version strings.
func MustParse(tag, prefix string) SemanticVersion {
	v, err := Parse(tag, prefix)
	if err != nil {
		panic(err)
	}
	return v
}

// parseNumber accepts decimal digits without leading zeros so that a parsed
// version always formats back to the same text.
func parseNumber(s string) (uint64, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Prefix returns the tag prefix.
func (v SemanticVersion) Prefix() string {
	return v.prefix
}

// Major returns the major version component.
func (v SemanticVersion) Major() uint64 {
	return v.major
}

// Minor returns the minor version component.
func (v SemanticVersion) Minor() uint64 {
	return v.minor
}

// Patch returns the patch version component.
func (v SemanticVersion) Patch() uint64 {
	return v.patch
}

// PreRelease returns the pre-release and whether one is set.
func (v SemanticVersion) PreRelease() (PreRelease, bool) {
	if v.preRelease == nil {
		return PreRelease{}, false
	}
	return *v.preRelease, true
}

// IsPreRelease returns true if this is a pre-release version.
func (v SemanticVersion) IsPreRelease() bool {
	return v.preRelease != nil
}

// Core returns MAJOR.MINOR.PATCH without prefix or pre-release.
func (v SemanticVersion) Core() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(v.major, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.minor, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.patch, 10))
	return sb.String()
}

// Number returns the version without its prefix.
func (v SemanticVersion) Number() string {
	if v.preRelease == nil {
		return v.Core()
	}
	return v.Core() + v.preRelease.String()
}

// String returns the tag text: prefix, MAJOR.MINOR.PATCH and any pre-release.
func (v SemanticVersion) String() string {
	return v.prefix + v.Number()
}

// IncrementPatch returns v with patch increased by one and any pre-release cleared.
func (v SemanticVersion) IncrementPatch() SemanticVersion {
	return SemanticVersion{
		prefix: v.prefix,
		major:  v.major,
		minor:  v.minor,
		patch:  v.patch + 1,
	}
}

// IncrementMinor returns v with minor increased by one and patch reset.
func (v SemanticVersion) IncrementMinor() SemanticVersion {
	return SemanticVersion{
		prefix: v.prefix,
		major:  v.major,
		minor:  v.minor + 1,
	}
}

// IncrementMajor returns v with major increased by one and minor and patch reset.
func (v SemanticVersion) IncrementMajor() SemanticVersion {
	return SemanticVersion{
		prefix: v.prefix,
		major:  v.major + 1,
	}
}

// BreakingIncrement applies a breaking change: major before 1.0.0 is
// reserved, so the minor component absorbs it.
func (v SemanticVersion) BreakingIncrement() SemanticVersion {
	if v.major == 0 {
		return v.IncrementMinor()
	}
	return v.IncrementMajor()
}

// FirstProduction promotes a 0.x.y version to 1.0.0. It fails once the
// major component is already in use.
func (v SemanticVersion) FirstProduction() (SemanticVersion, error) {
	const op = "version.FirstProduction"

	if v.major > 0 {
		return v, rperrors.Wrapf(ErrMajorAlreadyUsed, rperrors.KindConflict, op,
			"current major version: %d", v.major).
			WithDetail("major", strconv.FormatUint(v.major, 10))
	}
	return SemanticVersion{prefix: v.prefix, major: 1}, nil
}

// FirstPreRelease returns v with pre-release suffix.0 attached.
// It panics if ValidSuffix rejects suffix, since the result could not be
// parsed back.
func (v SemanticVersion) FirstPreRelease(suffix string) SemanticVersion {
	if !ValidSuffix(suffix) {
		panic("version: FirstPreRelease called with invalid suffix " + strconv.Quote(suffix))
	}
	pre := NewPreRelease(suffix)
	v.preRelease = &pre
	return v
}

// IncrementPreRelease returns v with the pre-release id increased by one.
// It panics if v has no pre-release; callers check IsPreRelease first.
func (v SemanticVersion) IncrementPreRelease() SemanticVersion {
	if v.preRelease == nil {
		panic("version: IncrementPreRelease called on " + v.String() + " which has no pre-release")
	}
	next := v.preRelease.Increment()
	v.preRelease = &next
	return v
}

// UnsetPreRelease returns v without its pre-release, keeping the numeric triple.
func (v SemanticVersion) UnsetPreRelease() SemanticVersion {
	v.preRelease = nil
	return v
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// The prefix does not take part in ordering.
func (v SemanticVersion) Compare(other SemanticVersion) int {
	if c := cmp.Compare(v.major, other.major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.minor, other.minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.patch, other.patch); c != 0 {
		return c
	}

	// A version without pre-release has higher precedence than one with.
	switch {
	case v.preRelease == nil && other.preRelease == nil:
		return 0
	case v.preRelease == nil:
		return 1
	case other.preRelease == nil:
		return -1
	}
	return v.preRelease.Compare(*other.preRelease)
}

// LessThan returns true if v < other.
func (v SemanticVersion) LessThan(other SemanticVersion) bool {
	return v.Compare(other) < 0
}

// GreaterThan returns true if v > other.
func (v SemanticVersion) GreaterThan(other SemanticVersion) bool {
	return v.Compare(other) > 0
}

// Equal returns true if two versions have the same precedence.
func (v SemanticVersion) Equal(other SemanticVersion) bool {
	return v.Compare(other) == 0
}
