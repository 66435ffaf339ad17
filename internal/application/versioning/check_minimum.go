package versioning

import (
	"context"
	"log/slog"

	"github.com/relicta-tech/nextver/internal/domain/changes"
	"github.com/relicta-tech/nextver/internal/domain/sourcecontrol"
	"github.com/relicta-tech/nextver/internal/domain/version"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// CheckMinimumInput represents input for the CheckMinimum use case.
type CheckMinimumInput struct {
	TagPrefix string
	Minimum   changes.ChangeType
}

// CheckMinimumOutput represents output of the CheckMinimum use case.
type CheckMinimumOutput struct {
	RunID          string
	Tag            string
	CurrentVersion version.SemanticVersion
	ChangeLevel    changes.ChangeType
	Minimum        changes.ChangeType
	Met            bool
	Stage          Stage
}

// CheckMinimumUseCase gates on the change level since the latest version tag.
type CheckMinimumUseCase struct {
	repo   sourcecontrol.Repository
	logger *slog.Logger
}

// NewCheckMinimumUseCase creates a new CheckMinimumUseCase.
func NewCheckMinimumUseCase(repo sourcecontrol.Repository) *CheckMinimumUseCase {
	return &CheckMinimumUseCase{
		repo:   repo,
		logger: slog.Default().With("usecase", "check_minimum"),
	}
}

// Execute reports whether the change level since the latest version tag
// reaches the minimum. When it does not, the output is returned together
// with an error wrapping version.ErrMinimumChangeLevelNotMet.
func (uc *CheckMinimumUseCase) Execute(ctx context.Context, input CheckMinimumInput) (*CheckMinimumOutput, error) {
	const op = "versioning.CheckMinimum"

	r, err := startRun(ctx, uc.repo, uc.logger, input.TagPrefix)
	if err != nil {
		return nil, err
	}

	calc := r.calculator()
	r.machine.Send(EventCalculate)

	out := &CheckMinimumOutput{
		RunID:          r.id,
		Tag:            r.tag.Name(),
		CurrentVersion: r.current,
		ChangeLevel:    calc.TopType(),
		Minimum:        input.Minimum,
		Met:            calc.MeetsMinimum(input.Minimum),
	}

	if !out.Met {
		err := rperrors.PolicyWrap(version.ErrMinimumChangeLevelNotMet, op, "change level below minimum").
			WithDetail("change_level", out.ChangeLevel.String()).
			WithDetail("minimum", input.Minimum.String())
		_ = r.fail(err)
		out.Stage = r.machine.Stage()
		return out, err
	}

	if err := r.complete(); err != nil {
		return nil, err
	}
	out.Stage = r.machine.Stage()
	r.logger.Info("minimum change level met",
		"change_level", out.ChangeLevel.String(),
		"minimum", input.Minimum.String())
	return out, nil
}
