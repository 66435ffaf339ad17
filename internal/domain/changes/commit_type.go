// Package changes provides domain types for classifying commit changes.
package changes

import "strings"

// CommitType represents the type token of a conventional commit.
type CommitType string

// Standard conventional commit types.
const (
	CommitTypeFeat     CommitType = "feat"
	CommitTypeFix      CommitType = "fix"
	CommitTypeDocs     CommitType = "docs"
	CommitTypeStyle    CommitType = "style"
	CommitTypeRefactor CommitType = "refactor"
	CommitTypePerf     CommitType = "perf"
	CommitTypeTest     CommitType = "test"
	CommitTypeBuild    CommitType = "build"
	CommitTypeCI       CommitType = "ci"
	CommitTypeChore    CommitType = "chore"
	CommitTypeRevert   CommitType = "revert"
)

// IsValid returns true if the commit type is a recognized type.
func (t CommitType) IsValid() bool {
	switch t {
	case CommitTypeFeat, CommitTypeFix, CommitTypeDocs, CommitTypeStyle,
		CommitTypeRefactor, CommitTypePerf, CommitTypeTest, CommitTypeBuild,
		CommitTypeCI, CommitTypeChore, CommitTypeRevert:
		return true
	default:
		return false
	}
}

// String returns the string representation of the commit type.
func (t CommitType) String() string {
	return string(t)
}

// ChangeType returns the hierarchy level a non-breaking commit of this type
// implies. Unknown types rank as ChangeTypeOther.
func (t CommitType) ChangeType() ChangeType {
	switch t {
	case CommitTypeFeat:
		return ChangeTypeFeature
	case CommitTypeFix, CommitTypeRevert:
		return ChangeTypeFix
	default:
		return ChangeTypeOther
	}
}

// ParseCommitType parses a string into a CommitType.
// Returns the commit type and true if valid, or empty string and false if invalid.
func ParseCommitType(s string) (CommitType, bool) {
	t := CommitType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, true
	}
	return "", false
}
