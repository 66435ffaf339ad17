package changes

import (
	"regexp"
	"strings"
)

// ConventionalCommit represents a parsed conventional commit.
type ConventionalCommit struct {
	hash string

	commitType CommitType
	scope      string
	subject    string
	body       string

	breaking    bool
	breakingMsg string
}

var (
	// Matches: type(scope)!: subject or type!: subject or type(scope): subject or type: subject
	conventionalCommitRegex = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?\s*:\s*(.+)$`)

	// Matches BREAKING CHANGE: or BREAKING-CHANGE: in footer
	breakingChangeRegex = regexp.MustCompile(`(?i)^BREAKING[ -]CHANGE:\s*(.+)$`)
)

// ParseConventionalCommit parses a commit message into a ConventionalCommit.
// Returns nil if the message is not a valid conventional commit.
func ParseConventionalCommit(hash, message string) *ConventionalCommit {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(trimmed, "\n")
	matches := conventionalCommitRegex.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if matches == nil {
		return nil
	}

	commitType, valid := ParseCommitType(matches[1])
	if !valid {
		// Unknown types still count; they rank as Other.
		commitType = CommitType(strings.ToLower(matches[1]))
	}

	c := &ConventionalCommit{
		hash:       hash,
		commitType: commitType,
		scope:      matches[2],
		subject:    strings.TrimSpace(matches[4]),
		breaking:   matches[3] == "!",
	}

	var bodyLines []string
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if bc := breakingChangeRegex.FindStringSubmatch(strings.TrimSpace(line)); bc != nil {
			c.breaking = true
			c.breakingMsg = strings.TrimSpace(bc[1])
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	c.body = strings.TrimSpace(strings.Join(bodyLines, "\n"))

	return c
}

// Summary returns the first line of a commit message.
func Summary(message string) string {
	message = strings.TrimSpace(message)
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return strings.TrimSpace(message[:i])
	}
	return message
}

// Hash returns the commit hash.
func (c *ConventionalCommit) Hash() string {
	return c.hash
}

// Type returns the commit type.
func (c *ConventionalCommit) Type() CommitType {
	return c.commitType
}

// Scope returns the commit scope.
func (c *ConventionalCommit) Scope() string {
	return c.scope
}

// Subject returns the commit description.
func (c *ConventionalCommit) Subject() string {
	return c.subject
}

// Body returns the commit body with breaking footers removed.
func (c *ConventionalCommit) Body() string {
	return c.body
}

// IsBreaking returns true if this is a breaking change.
func (c *ConventionalCommit) IsBreaking() bool {
	return c.breaking
}

// BreakingMessage returns the breaking change footer text, if any.
func (c *ConventionalCommit) BreakingMessage() string {
	return c.breakingMsg
}

// ChangeType returns the hierarchy level this commit implies.
func (c *ConventionalCommit) ChangeType() ChangeType {
	return ChangeTypeFromCommit(c.commitType, c.breaking)
}

// String returns the normalized summary line.
func (c *ConventionalCommit) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.commitType))
	if c.scope != "" {
		sb.WriteString("(")
		sb.WriteString(c.scope)
		sb.WriteString(")")
	}
	if c.breaking {
		sb.WriteString("!")
	}
	sb.WriteString(": ")
	sb.WriteString(c.subject)
	return sb.String()
}
