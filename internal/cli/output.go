package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/relicta-tech/nextver/internal/application/versioning"
	"github.com/relicta-tech/nextver/internal/config"
	"github.com/relicta-tech/nextver/internal/domain/changes"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

var titleCaser = cases.Title(language.English)

// calculateResult is the machine-readable result of a calculation.
type calculateResult struct {
	RunID          string         `json:"run_id" yaml:"run_id"`
	Tag            string         `json:"tag" yaml:"tag"`
	CurrentVersion string         `json:"current_version" yaml:"current_version"`
	Version        string         `json:"version" yaml:"version"`
	BumpLevel      string         `json:"bump_level" yaml:"bump_level"`
	Release        bool           `json:"release" yaml:"release"`
	ChangeLevel    string         `json:"change_level" yaml:"change_level"`
	Commits        int            `json:"commits" yaml:"commits"`
	Types          []string       `json:"types" yaml:"types"`
	Counts         map[string]int `json:"counts" yaml:"counts"`
	Breaking       bool           `json:"breaking" yaml:"breaking"`
	BreakingNotes  []string       `json:"breaking_notes,omitempty" yaml:"breaking_notes,omitempty"`
	Stage          string         `json:"stage" yaml:"stage"`
}

func newCalculateResult(out *versioning.CalculateVersionOutput) calculateResult {
	r := calculateResult{
		RunID:          out.RunID,
		Tag:            out.Tag,
		CurrentVersion: out.CurrentVersion.String(),
		Version:        out.Answer.Version.String(),
		BumpLevel:      out.Answer.BumpLevel.String(),
		Release:        out.Answer.BumpLevel.IsRelease(),
		ChangeLevel:    changeName(out.Answer.ChangeLevel),
		Types:          []string{},
		Counts:         map[string]int{},
		Stage:          string(out.Stage),
	}
	if cl := out.Classifier; cl != nil {
		r.Commits = len(cl.Commits())
		r.Breaking = cl.Breaking()
		r.BreakingNotes = cl.BreakingNotes()
		for _, t := range cl.Types() {
			r.Types = append(r.Types, t.String())
			r.Counts[t.String()] = cl.CommitsByType(t)
		}
	}
	return r
}

// tagEntry is one listed version tag.
type tagEntry struct {
	Tag       string `json:"tag" yaml:"tag"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Annotated bool   `json:"annotated" yaml:"annotated"`
}

// tagsResult is the machine-readable tag listing.
type tagsResult struct {
	Latest string     `json:"latest" yaml:"latest"`
	Tags   []tagEntry `json:"tags" yaml:"tags"`
}

func newTagsResult(out *versioning.ListVersionsOutput) tagsResult {
	r := tagsResult{Tags: make([]tagEntry, 0, len(out.Tags))}
	if out.Latest != nil {
		r.Latest = out.Latest.Name()
	}
	for _, t := range out.Tags {
		r.Tags = append(r.Tags, tagEntry{
			Tag:       t.Name(),
			Version:   t.Version().Number(),
			Commit:    t.Hash().Short(),
			Annotated: t.IsAnnotated(),
		})
	}
	return r
}

// checkResult is the machine-readable result of a minimum check.
type checkResult struct {
	RunID          string `json:"run_id" yaml:"run_id"`
	Tag            string `json:"tag" yaml:"tag"`
	CurrentVersion string `json:"current_version" yaml:"current_version"`
	ChangeLevel    string `json:"change_level" yaml:"change_level"`
	Minimum        string `json:"minimum" yaml:"minimum"`
	Met            bool   `json:"met" yaml:"met"`
	Stage          string `json:"stage" yaml:"stage"`
}

func newCheckResult(out *versioning.CheckMinimumOutput) checkResult {
	return checkResult{
		RunID:          out.RunID,
		Tag:            out.Tag,
		CurrentVersion: out.CurrentVersion.String(),
		ChangeLevel:    changeName(out.ChangeLevel),
		Minimum:        changeName(out.Minimum),
		Met:            out.Met,
		Stage:          string(out.Stage),
	}
}

// changeName returns the lower-case name of a change type.
func changeName(c changes.ChangeType) string {
	return strings.ToLower(c.String())
}

func renderCalculateResult(w io.Writer, format string, r calculateResult) error {
	switch format {
	case config.FormatVersion:
		_, err := fmt.Fprintln(w, r.Version)
		return err
	case config.FormatLevel:
		_, err := fmt.Fprintln(w, r.BumpLevel)
		return err
	case config.FormatJSON, config.FormatYAML:
		return renderStructured(w, format, r)
	default:
		return renderCalculateText(w, r)
	}
}

func renderCalculateText(w io.Writer, r calculateResult) error {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Next version") + "\n")
	fmt.Fprintf(&sb, "  %s %s\n", styles.Subtle.Render("current:"), r.CurrentVersion)
	fmt.Fprintf(&sb, "  %s %s\n", styles.Subtle.Render("next:   "), styles.Bold.Render(r.Version))
	fmt.Fprintf(&sb, "  %s %s\n", styles.Subtle.Render("bump:   "), bumpStyle(r.BumpLevel).Render(titleCaser.String(r.BumpLevel)))
	fmt.Fprintf(&sb, "  %s %s\n", styles.Subtle.Render("change: "), titleCaser.String(r.ChangeLevel))

	fmt.Fprintf(&sb, "  %s %d", styles.Subtle.Render("commits:"), r.Commits)
	if len(r.Types) > 0 {
		parts := make([]string, 0, len(r.Types))
		for _, t := range r.Types {
			parts = append(parts, fmt.Sprintf("%s=%d", t, r.Counts[t]))
		}
		fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
	}
	sb.WriteString("\n")

	if !r.Release {
		sb.WriteString("  " + styles.Subtle.Render("no release needed") + "\n")
	}

	if r.Breaking {
		sb.WriteString("  " + styles.Warning.Render("⚠ breaking changes") + "\n")
		for _, note := range r.BreakingNotes {
			sb.WriteString("    - " + note + "\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func bumpStyle(level string) lipgloss.Style {
	switch level {
	case "major":
		return styles.Error
	case "minor", "prerelease", "release":
		return styles.Warning
	case "patch":
		return styles.Success
	default:
		return styles.Subtle
	}
}

func renderCheckResult(w io.Writer, format string, r checkResult) error {
	switch format {
	case config.FormatLevel:
		_, err := fmt.Fprintln(w, r.ChangeLevel)
		return err
	case config.FormatVersion:
		_, err := fmt.Fprintln(w, r.CurrentVersion)
		return err
	case config.FormatJSON, config.FormatYAML:
		return renderStructured(w, format, r)
	}

	var line string
	if r.Met {
		line = styles.Success.Render(fmt.Sprintf("✓ change level %s meets minimum %s",
			titleCaser.String(r.ChangeLevel), titleCaser.String(r.Minimum)))
	} else {
		line = styles.Error.Render(fmt.Sprintf("✗ change level %s is below minimum %s",
			titleCaser.String(r.ChangeLevel), titleCaser.String(r.Minimum)))
	}
	_, err := fmt.Fprintf(w, "%s %s\n", line, styles.Subtle.Render("(since "+r.Tag+")"))
	return err
}

func renderTagsResult(w io.Writer, format string, r tagsResult) error {
	switch format {
	case config.FormatVersion:
		for _, t := range r.Tags {
			if _, err := fmt.Fprintln(w, t.Tag); err != nil {
				return err
			}
		}
		return nil
	case config.FormatJSON, config.FormatYAML:
		return renderStructured(w, format, r)
	}

	if len(r.Tags) == 0 {
		_, err := fmt.Fprintln(w, styles.Subtle.Render("no version tags"))
		return err
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Version tags") + "\n")
	for _, t := range r.Tags {
		name := t.Tag
		if name == r.Latest {
			name = styles.Bold.Render(name)
		}
		kind := "lightweight"
		if t.Annotated {
			kind = "annotated"
		}
		fmt.Fprintf(&sb, "  %s %s %s\n", name, styles.Subtle.Render(t.Commit), styles.Subtle.Render(kind))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderStructured(w io.Writer, format string, v any) error {
	const op = "cli.render"

	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return rperrors.IOWrap(err, op, "failed to encode yaml")
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return rperrors.IOWrap(err, op, "failed to encode json")
	}
	return nil
}
