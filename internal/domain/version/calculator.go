package version

import (
	"path"
	"slices"

	"github.com/relicta-tech/nextver/internal/domain/changes"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// Answer is the outcome of a calculation.
type Answer struct {
	// BumpLevel is the kind of change applied to the current version.
	BumpLevel BumpLevel
	// Version is the next version, or the current one when BumpLevel is BumpNone.
	Version SemanticVersion
	// ChangeLevel is the highest change type seen, ChangeTypeNone if none.
	ChangeLevel changes.ChangeType
}

// VersionCalculator decides the next version from the current version and
// the classified commits since it was tagged. Inputs are supplied in stages;
// the classifier, the changed-file set and the pre-release target are each
// absent until set.
type VersionCalculator struct {
	current    SemanticVersion
	classifier *changes.Classifier
	files      map[string]struct{}
	fileList   []string
	preRelease string
}

// NewVersionCalculator creates a calculator for the current version.
func NewVersionCalculator(current SemanticVersion) *VersionCalculator {
	return &VersionCalculator{current: current}
}

// Current returns the version the calculation starts from.
func (c *VersionCalculator) Current() SemanticVersion {
	return c.current
}

// Classifier returns the classifier in use, or nil.
func (c *VersionCalculator) Classifier() *changes.Classifier {
	return c.classifier
}

// ChangedFiles returns the changed paths, or nil if never listed.
func (c *VersionCalculator) ChangedFiles() []string {
	if c.files == nil {
		return nil
	}
	return slices.Clone(c.fileList)
}

// PreReleaseSuffix returns the requested pre-release suffix, or "".
func (c *VersionCalculator) PreReleaseSuffix() string {
	return c.preRelease
}

// WithClassifier sets the classified commits.
func (c *VersionCalculator) WithClassifier(cl *changes.Classifier) *VersionCalculator {
	c.classifier = cl
	return c
}

// WithChangedFiles sets the paths changed since the current version. An
// empty, non-nil list means history was walked and nothing changed.
func (c *VersionCalculator) WithChangedFiles(files []string) *VersionCalculator {
	c.files = make(map[string]struct{}, len(files)*2)
	c.fileList = make([]string, 0, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		c.fileList = append(c.fileList, f)
		c.files[f] = struct{}{}
		c.files[path.Base(f)] = struct{}{}
	}
	slices.Sort(c.fileList)
	c.fileList = slices.Compact(c.fileList)
	return c
}

// WithCommits classifies messages and records the changed files in one step.
func (c *VersionCalculator) WithCommits(messages []string, files []string) *VersionCalculator {
	return c.WithClassifier(changes.ClassifyAll(messages)).WithChangedFiles(files)
}

// WithPreRelease requests that the next version be a pre-release with the
// given suffix. An empty suffix requests a final release. A suffix that
// ValidSuffix rejects fails with ErrInvalidPreReleaseFormat.
func (c *VersionCalculator) WithPreRelease(suffix string) (*VersionCalculator, error) {
	if suffix != "" && !ValidSuffix(suffix) {
		return c, rperrors.ValidationWrap(ErrInvalidPreReleaseFormat, "version.WithPreRelease",
			"invalid pre-release suffix").WithDetail("suffix", suffix)
	}
	c.preRelease = suffix
	return c, nil
}

// Force replaces the classifier with one that represents a single commit of
// the forced category. ForceFirst is not a classifier override; use
// PromoteFirst for it.
func (c *VersionCalculator) Force(level ForceLevel) *VersionCalculator {
	switch level {
	case ForceMajor:
		c.classifier = changes.NewClassifier().SetBreaking(true)
	case ForceMinor:
		c.classifier = changes.NewClassifier().SetOneFeat()
	case ForcePatch:
		c.classifier = changes.NewClassifier().SetOneFix()
	}
	return c
}

// TopType returns the highest change type observed, defaulting to
// ChangeTypeOther.
func (c *VersionCalculator) TopType() changes.ChangeType {
	if c.classifier == nil {
		return changes.ChangeTypeOther
	}
	return c.classifier.TopType().OrOther()
}

func (c *VersionCalculator) changeLevel() changes.ChangeType {
	if c.classifier == nil {
		return changes.ChangeTypeNone
	}
	return c.classifier.TopType()
}

// NextVersion computes the next version. Any answer other than BumpNone is
// greater than the current version.
//
// Without a classifier the answer is BumpNone and the current version. A
// current pre-release is released when no suffix is requested, or moved
// along its pre-release train. Switching to a suffix that orders after the
// current one keeps the version triple; switching to one that orders before
// it applies the commit level first so the result still moves forward.
// Otherwise a breaking commit means major, any feature means minor and any
// other conventional commit means patch, each demoted one step while major
// is 0.
func (c *VersionCalculator) NextVersion() Answer {
	change := c.changeLevel()
	if c.classifier == nil {
		return Answer{BumpLevel: BumpNone, Version: c.current, ChangeLevel: change}
	}

	if pre, ok := c.current.PreRelease(); ok {
		switch {
		case c.preRelease == "":
			return Answer{BumpLevel: BumpRelease, Version: c.current.UnsetPreRelease(), ChangeLevel: change}
		case pre.Suffix() == c.preRelease:
			return Answer{BumpLevel: BumpPreRelease, Version: c.current.IncrementPreRelease(), ChangeLevel: change}
		}

		if next := c.current.FirstPreRelease(c.preRelease); next.GreaterThan(c.current) {
			return Answer{BumpLevel: BumpPreRelease, Version: next, ChangeLevel: change}
		}
	}

	level := c.commitLevel().dampen(c.current)
	next := level.apply(c.current)
	if c.preRelease != "" && level.IsRelease() {
		next = next.FirstPreRelease(c.preRelease)
		level = BumpPreRelease
	}

	return Answer{BumpLevel: level, Version: next, ChangeLevel: change}
}

// commitLevel is the undampened level the classified commits call for.
func (c *VersionCalculator) commitLevel() BumpLevel {
	switch {
	case c.classifier.Breaking():
		return BumpMajor
	case c.classifier.CommitsByType(changes.CommitTypeFeat) > 0:
		return BumpMinor
	case c.classifier.CommitsAllTypes() > 0:
		return BumpPatch
	default:
		return BumpNone
	}
}

// PromoteFirst promotes 0.x.y to 1.0.0. It fails with ErrMajorAlreadyUsed
// once the first production release has been made.
func (c *VersionCalculator) PromoteFirst() (Answer, error) {
	next, err := c.current.FirstProduction()
	if err != nil {
		return Answer{BumpLevel: BumpNone, Version: c.current, ChangeLevel: c.changeLevel()}, err
	}
	return Answer{BumpLevel: BumpMajor, Version: next, ChangeLevel: c.changeLevel()}, nil
}

// HasRequired checks that every required file changed when the observed
// change level is at least enforce. A required name matches a changed path
// exactly or by base name. All missing files are reported together, sorted
// and without repeats.
func (c *VersionCalculator) HasRequired(required []string, enforce changes.ChangeType) error {
	const op = "version.HasRequired"

	if c.files == nil {
		return rperrors.StateWrap(ErrNoFilesListed, op, "history has not been walked")
	}
	if c.TopType() < enforce {
		return nil
	}

	var missing []string
	for _, name := range slices.Compact(slices.Sorted(slices.Values(required))) {
		if _, ok := c.files[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return rperrors.PolicyWrap(&MissingFilesError{Files: missing}, op, "required files did not change").
			WithDetail("missing", missing).
			WithDetail("change_level", c.TopType().String())
	}
	return nil
}

// MeetsMinimum reports whether the observed change level is at least minimum.
func (c *VersionCalculator) MeetsMinimum(minimum changes.ChangeType) bool {
	return c.TopType() >= minimum
}
