// Package versioning provides application use cases for version management.
package versioning

import (
	"context"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/relicta-tech/nextver/internal/domain/changes"
	"github.com/relicta-tech/nextver/internal/domain/sourcecontrol"
	"github.com/relicta-tech/nextver/internal/domain/version"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// CalculateVersionInput represents input for the CalculateVersion use case.
type CalculateVersionInput struct {
	// TagPrefix is the prefix version tags start with. Defaults to "v".
	TagPrefix string
	// Force overrides the commit classification. ForceFirst promotes 0.x.y
	// to 1.0.0.
	Force version.ForceLevel
	// PreRelease is the pre-release suffix to calculate for, if any.
	PreRelease string
	// RequiredFiles must all have changed once the change level reaches
	// EnforceLevel. ChangeTypeNone enforces at every level.
	RequiredFiles []string
	EnforceLevel  changes.ChangeType
	// Constraint is an optional semver range the next version must satisfy.
	Constraint string
}

// CalculateVersionOutput represents output of the CalculateVersion use case.
type CalculateVersionOutput struct {
	RunID          string
	Tag            string
	CurrentVersion version.SemanticVersion
	Answer         version.Answer
	Classifier     *changes.Classifier
	ChangedFiles   []string
	Stage          Stage
}

// CalculateVersionUseCase calculates the next version from the history since
// the latest version tag.
type CalculateVersionUseCase struct {
	repo   sourcecontrol.Repository
	logger *slog.Logger
}

// NewCalculateVersionUseCase creates a new CalculateVersionUseCase.
func NewCalculateVersionUseCase(repo sourcecontrol.Repository) *CalculateVersionUseCase {
	return &CalculateVersionUseCase{
		repo:   repo,
		logger: slog.Default().With("usecase", "calculate_version"),
	}
}

// Execute discovers the current version, walks the history since it,
// decides the next version and applies the required-file and constraint
// gates.
func (uc *CalculateVersionUseCase) Execute(ctx context.Context, input CalculateVersionInput) (*CalculateVersionOutput, error) {
	r, err := startRun(ctx, uc.repo, uc.logger, input.TagPrefix)
	if err != nil {
		return nil, err
	}

	calc := r.calculator()
	if input.Force != "" && input.Force != version.ForceFirst {
		calc.Force(input.Force)
	}
	if _, err := calc.WithPreRelease(input.PreRelease); err != nil {
		return nil, r.fail(err)
	}

	var answer version.Answer
	if input.Force == version.ForceFirst {
		answer, err = calc.PromoteFirst()
		if err != nil {
			return nil, r.fail(err)
		}
	} else {
		answer = calc.NextVersion()
	}
	r.machine.Send(EventCalculate)

	r.logger.Debug("version calculated",
		"current", r.current.String(),
		"next", answer.Version.String(),
		"bump_level", answer.BumpLevel.String(),
		"change_level", answer.ChangeLevel.String())

	if len(input.RequiredFiles) > 0 {
		if err := calc.HasRequired(input.RequiredFiles, input.EnforceLevel); err != nil {
			return nil, r.fail(err)
		}
	}

	if input.Constraint != "" {
		if err := checkConstraint(input.Constraint, answer.Version); err != nil {
			return nil, r.fail(err)
		}
	}
	if err := r.complete(); err != nil {
		return nil, err
	}

	r.logger.Info("next version",
		"version", answer.Version.String(),
		"bump_level", answer.BumpLevel.String(),
		"commits", len(r.history))

	return &CalculateVersionOutput{
		RunID:          r.id,
		Tag:            r.tag.Name(),
		CurrentVersion: r.current,
		Answer:         answer,
		Classifier:     calc.Classifier(),
		ChangedFiles:   calc.ChangedFiles(),
		Stage:          r.machine.Stage(),
	}, nil
}

// checkConstraint verifies v satisfies the semver range constraint.
func checkConstraint(constraint string, v version.SemanticVersion) error {
	const op = "versioning.checkConstraint"

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return rperrors.ValidationWrap(err, op, "invalid version constraint").
			WithDetail("constraint", constraint)
	}

	sv, err := semver.NewVersion(v.Number())
	if err != nil {
		return rperrors.VersionWrap(err, op, "failed to parse calculated version").
			WithDetail("version", v.String())
	}

	if ok, errs := c.Validate(sv); !ok {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, e.Error())
		}
		return rperrors.ValidationWrap(ErrOutsideConstraint, op, "calculated version rejected").
			WithDetail("version", v.String()).
			WithDetail("constraint", constraint).
			WithDetail("reasons", details)
	}
	return nil
}

// run carries the state shared by the steps of one use case execution.
type run struct {
	id      string
	logger  *slog.Logger
	machine *RunMachine
	tag     *sourcecontrol.Tag
	current version.SemanticVersion
	history sourcecontrol.History
}

// startRun discovers the latest version tag and walks the history since it.
func startRun(ctx context.Context, repo sourcecontrol.Repository, logger *slog.Logger, prefix string) (*run, error) {
	const op = "versioning.startRun"

	if prefix == "" {
		prefix = version.DefaultPrefix
	}

	machine, err := NewRunMachine()
	if err != nil {
		return nil, rperrors.Wrap(err, rperrors.KindInternal, op, "failed to start run")
	}

	id := uuid.New().String()
	r := &run{
		id:      id,
		logger:  logger.With("run_id", id),
		machine: machine,
	}

	tag, current, err := sourcecontrol.NewVersionDiscovery(prefix).DiscoverCurrentVersion(ctx, repo)
	if err != nil {
		return nil, r.fail(err)
	}
	r.tag, r.current = tag, current
	r.machine.Send(EventDiscover)
	r.logger.Debug("current version discovered", "tag", tag.Name(), "version", current.String())

	history, err := repo.CommitsSince(ctx, tag.Name())
	if err != nil {
		return nil, r.fail(err)
	}
	r.history = history
	r.machine.Send(EventWalk)
	r.logger.Debug("history walked", "commits", len(history))

	return r, nil
}

// calculator builds a version calculator over the walked history.
func (r *run) calculator() *version.VersionCalculator {
	return version.NewVersionCalculator(r.current).
		WithCommits(r.history.Messages(), r.history.Files())
}

// complete moves the run to StageChecked. A run that skipped a stage
// cannot finish and reports an internal error.
func (r *run) complete() error {
	const op = "versioning.complete"

	r.machine.Send(EventCheck)
	if !r.machine.IsDone() {
		return r.fail(rperrors.Internal(op, "run did not complete").
			WithDetail("stage", string(r.machine.Stage())))
	}
	return nil
}

// fail moves the run to StageFailed and returns err unchanged.
func (r *run) fail(err error) error {
	prev := r.machine.Stage()
	r.machine.Send(EventFail)
	r.logger.Debug("run failed", "stage", string(prev), "kind", rperrors.GetKind(err).String(), "error", err)
	return err
}
