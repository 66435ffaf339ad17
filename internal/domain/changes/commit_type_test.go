package changes

import (
	"testing"
)

func TestCommitType_IsValid(t *testing.T) {
	valid := []CommitType{
		CommitTypeFeat, CommitTypeFix, CommitTypeDocs, CommitTypeStyle,
		CommitTypeRefactor, CommitTypePerf, CommitTypeTest, CommitTypeBuild,
		CommitTypeCI, CommitTypeChore, CommitTypeRevert,
	}
	for _, ct := range valid {
		if !ct.IsValid() {
			t.Errorf("IsValid() = false for %s, want true", ct)
		}
	}

	invalidTypes := []CommitType{"invalid", "", "FEAT", "feature"}
	for _, ct := range invalidTypes {
		if ct.IsValid() {
			t.Errorf("IsValid() = true for %q, want false", ct)
		}
	}
}

func TestParseCommitType(t *testing.T) {
	tests := []struct {
		input     string
		want      CommitType
		wantValid bool
	}{
		{"feat", CommitTypeFeat, true},
		{"FEAT", CommitTypeFeat, true},
		{"  fix  ", CommitTypeFix, true},
		{"Revert", CommitTypeRevert, true},
		{"ci", CommitTypeCI, true},
		{"wip", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, valid := ParseCommitType(tt.input)
			if valid != tt.wantValid {
				t.Errorf("ParseCommitType(%q) valid = %v, want %v", tt.input, valid, tt.wantValid)
			}
			if got != tt.want {
				t.Errorf("ParseCommitType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommitType_ChangeType(t *testing.T) {
	tests := []struct {
		ct   CommitType
		want ChangeType
	}{
		{CommitTypeFeat, ChangeTypeFeature},
		{CommitTypeFix, ChangeTypeFix},
		{CommitTypeRevert, ChangeTypeFix},
		{CommitTypeDocs, ChangeTypeOther},
		{CommitTypeStyle, ChangeTypeOther},
		{CommitTypeRefactor, ChangeTypeOther},
		{CommitTypePerf, ChangeTypeOther},
		{CommitTypeTest, ChangeTypeOther},
		{CommitTypeBuild, ChangeTypeOther},
		{CommitTypeCI, ChangeTypeOther},
		{CommitTypeChore, ChangeTypeOther},
		{CommitType("wip"), ChangeTypeOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.ct), func(t *testing.T) {
			if got := tt.ct.ChangeType(); got != tt.want {
				t.Errorf("%s.ChangeType() = %v, want %v", tt.ct, got, tt.want)
			}
		})
	}
}
