package versioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicta-tech/nextver/internal/domain/changes"
	"github.com/relicta-tech/nextver/internal/domain/sourcecontrol"
	"github.com/relicta-tech/nextver/internal/domain/version"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

func TestCheckMinimumUseCase_Execute(t *testing.T) {
	tests := []struct {
		name    string
		commits sourcecontrol.History
		minimum changes.ChangeType
		wantMet bool
		wantTop changes.ChangeType
	}{
		{"feature meets feature", sourcecontrol.History{commit("feat: a")}, changes.ChangeTypeFeature, true, changes.ChangeTypeFeature},
		{"fix below feature", sourcecontrol.History{commit("fix: a")}, changes.ChangeTypeFeature, false, changes.ChangeTypeFix},
		{"breaking meets fix", sourcecontrol.History{commit("fix!: a")}, changes.ChangeTypeFix, true, changes.ChangeTypeBreaking},
		{"nothing defaults to other", sourcecontrol.History{}, changes.ChangeTypeOther, true, changes.ChangeTypeOther},
		{"nothing below fix", sourcecontrol.History{commit("wip")}, changes.ChangeTypeFix, false, changes.ChangeTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{tags: tagged("v1.0.0"), commits: tt.commits}

			out, err := NewCheckMinimumUseCase(repo).Execute(context.Background(), CheckMinimumInput{Minimum: tt.minimum})
			require.NotNil(t, out)
			assert.Equal(t, tt.wantMet, out.Met)
			assert.Equal(t, tt.wantTop, out.ChangeLevel)
			assert.Equal(t, tt.minimum, out.Minimum)

			if tt.wantMet {
				require.NoError(t, err)
				assert.Equal(t, StageChecked, out.Stage)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, version.ErrMinimumChangeLevelNotMet)
			assert.True(t, rperrors.IsKind(err, rperrors.KindPolicy))
			assert.Equal(t, StageFailed, out.Stage)
		})
	}
}

func TestCheckMinimumUseCase_NoTag(t *testing.T) {
	out, err := NewCheckMinimumUseCase(&mockRepository{}).Execute(context.Background(), CheckMinimumInput{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, sourcecontrol.ErrNoVersionTag)
}
