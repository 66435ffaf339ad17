package sourcecontrol

import (
	"slices"
	"testing"
	"time"
)

func TestCommitHash_Short(t *testing.T) {
	tests := []struct {
		name string
		hash CommitHash
		want string
	}{
		{"full hash", CommitHash("abc1234567890def"), "abc1234"},
		{"exactly 7 chars", CommitHash("abc1234"), "abc1234"},
		{"less than 7 chars", CommitHash("abc12"), "abc12"},
		{"empty hash", CommitHash(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hash.Short(); got != tt.want {
				t.Errorf("CommitHash.Short() = %v, want %v", got, tt.want)
			}
		})
	}

	if !CommitHash("").IsEmpty() || CommitHash("a").IsEmpty() {
		t.Error("IsEmpty() mismatch")
	}
}

func TestCommit_Accessors(t *testing.T) {
	date := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	author := Author{Name: "Ada", Email: "ada@example.com"}
	c := NewCommit("0123456789abcdef", "feat: add thing\n\nbody text", author, date)
	c.SetParents([]CommitHash{"p1", "p2"})
	c.SetFiles([]string{"README.md", "cmd/main.go"})

	if c.Subject() != "feat: add thing" {
		t.Errorf("Subject() = %q", c.Subject())
	}
	if c.Message() != "feat: add thing\n\nbody text" {
		t.Errorf("Message() = %q", c.Message())
	}
	if c.ShortHash() != "0123456" {
		t.Errorf("ShortHash() = %q", c.ShortHash())
	}
	if c.Author() != author || !c.Date().Equal(date) {
		t.Errorf("Author/Date = %v %v", c.Author(), c.Date())
	}
	if !c.IsMergeCommit() {
		t.Error("IsMergeCommit() = false with two parents")
	}
	if len(c.Files()) != 2 {
		t.Errorf("Files() = %v", c.Files())
	}

	single := NewCommit("h", "fix: one line", author, date)
	if single.Subject() != "fix: one line" {
		t.Errorf("Subject() = %q", single.Subject())
	}
	if single.IsMergeCommit() {
		t.Error("IsMergeCommit() = true without parents")
	}
}

func TestHistory(t *testing.T) {
	now := time.Now()
	a := NewCommit("a", "feat: a", Author{}, now)
	a.SetFiles([]string{"b.go", "README.md"})
	b := NewCommit("b", "fix: b", Author{}, now)
	b.SetFiles([]string{"a.go", "b.go"})
	h := History{a, b}

	if got := h.Messages(); !slices.Equal(got, []string{"feat: a", "fix: b"}) {
		t.Errorf("Messages() = %v", got)
	}
	if got := h.Files(); !slices.Equal(got, []string{"README.md", "a.go", "b.go"}) {
		t.Errorf("Files() = %v", got)
	}

	empty := History{}
	if files := empty.Files(); files == nil || len(files) != 0 {
		t.Errorf("empty History.Files() = %#v, want empty non-nil", files)
	}
}
