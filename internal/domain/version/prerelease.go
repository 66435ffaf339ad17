package version

import (
	"cmp"
	"errors"
	"strconv"
	"strings"
)

// Common pre-release suffixes.
const (
	SuffixAlpha = "alpha"
	SuffixBeta  = "beta"
	SuffixRC    = "rc"
)

// PreRelease is the -SUFFIX.ID portion of a version, e.g. "-rc.2".
type PreRelease struct {
	suffix string
	id     uint64
}

// NewPreRelease returns the first pre-release (id 0) for suffix.
func NewPreRelease(suffix string) PreRelease {
	return PreRelease{suffix: suffix}
}

// Suffix returns the pre-release label.
func (p PreRelease) Suffix() string {
	return p.suffix
}

// ID returns the pre-release counter.
func (p PreRelease) ID() uint64 {
	return p.id
}

// Increment returns the next pre-release of the same suffix.
func (p PreRelease) Increment() PreRelease {
	return PreRelease{suffix: p.suffix, id: p.id + 1}
}

// String returns the pre-release with its leading hyphen.
func (p PreRelease) String() string {
	return "-" + p.suffix + "." + strconv.FormatUint(p.id, 10)
}

// Compare orders pre-releases by suffix, then id.
func (p PreRelease) Compare(other PreRelease) int {
	if c := strings.Compare(p.suffix, other.suffix); c != 0 {
		return c
	}
	return cmp.Compare(p.id, other.id)
}

var errBadPreRelease = errors.New("pre-release must be suffix.id")

// ValidSuffix reports whether s can be used as a pre-release suffix.
func ValidSuffix(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-':
		default:
			return false
		}
	}
	return true
}

func parsePreRelease(s string) (PreRelease, error) {
	suffix, idText, ok := strings.Cut(s, ".")
	if !ok || !ValidSuffix(suffix) {
		return PreRelease{}, errBadPreRelease
	}
	id, ok := parseNumber(idText)
	if !ok {
		return PreRelease{}, errBadPreRelease
	}
	return PreRelease{suffix: suffix, id: id}, nil
}
