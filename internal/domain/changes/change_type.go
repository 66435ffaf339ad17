package changes

import (
	"fmt"
	"strings"

	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// ChangeType ranks a change by how much it matters to consumers of a release.
// The numeric values are ordered; comparisons between levels are meaningful.
type ChangeType uint8

const (
	// ChangeTypeNone means no conventional commit has been classified.
	ChangeTypeNone ChangeType = iota
	// ChangeTypeOther covers docs, chores, refactors and unknown types.
	ChangeTypeOther
	// ChangeTypeFix covers fixes and reverts.
	ChangeTypeFix
	// ChangeTypeFeature covers new features.
	ChangeTypeFeature
	// ChangeTypeBreaking covers any commit marked as breaking.
	ChangeTypeBreaking
)

// String returns the hierarchy name of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeTypeOther:
		return "Other"
	case ChangeTypeFix:
		return "Fix"
	case ChangeTypeFeature:
		return "Feature"
	case ChangeTypeBreaking:
		return "Breaking"
	default:
		return "None"
	}
}

// IsNone reports whether no change has been classified.
func (c ChangeType) IsNone() bool {
	return c == ChangeTypeNone
}

// OrOther returns c, or ChangeTypeOther when c is ChangeTypeNone.
func (c ChangeType) OrOther() ChangeType {
	if c.IsNone() {
		return ChangeTypeOther
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// ChangeTypeFromCommit determines the hierarchy level of a single commit.
func ChangeTypeFromCommit(ct CommitType, breaking bool) ChangeType {
	if breaking {
		return ChangeTypeBreaking
	}
	return ct.ChangeType()
}

// MaxChangeType returns the higher of two change types.
func MaxChangeType(a, b ChangeType) ChangeType {
	if a > b {
		return a
	}
	return b
}

// ParseChangeType parses a hierarchy name or a conventional commit type
// token, case-insensitively.
func ParseChangeType(s string) (ChangeType, error) {
	const op = "changes.ParseChangeType"

	token := strings.ToLower(strings.TrimSpace(s))
	switch token {
	case "other":
		return ChangeTypeOther, nil
	case "fix":
		return ChangeTypeFix, nil
	case "feature":
		return ChangeTypeFeature, nil
	case "breaking":
		return ChangeTypeBreaking, nil
	}
	if ct, ok := ParseCommitType(token); ok {
		return ct.ChangeType(), nil
	}
	return ChangeTypeNone, rperrors.ValidationWrap(
		fmt.Errorf("%w: %s is not a valid type hierarchy name", ErrNotTypeHierarchyName, s),
		op, "invalid change type",
	).WithDetail("token", s)
}
