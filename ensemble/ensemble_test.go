package ensemble

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var members = []string{
	"MPI-ESM.historical.r1",
	"MPI-ESM.historical.r2",
	"CESM.historical.r1",
	"MPI-ESM.ssp585.r1",
}

func TestSetKeyTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  error
	}{
		{name: "valid", template: "model.experiment.realization"},
		{name: "no dot", template: "model_experiment", wantErr: ErrTemplateFormat},
		{name: "member element", template: "model.member", wantErr: ErrTemplateMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Accessor
			err := a.SetKeyTemplate(tt.template)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				_, err = a.KeyTemplate()
				assert.ErrorIs(t, err, ErrTemplateUnset)
				return
			}
			require.NoError(t, err)
			got, err := a.KeyTemplate()
			require.NoError(t, err)
			assert.Equal(t, tt.template, got)
		})
	}
}

func TestSetKeyTemplate_MemberSubstringAllowed(t *testing.T) {
	_, err := NewAccessor("model.membership")
	assert.NoError(t, err)
}

func TestUnset(t *testing.T) {
	var a Accessor
	_, err := a.KeyTemplate()
	require.ErrorIs(t, err, ErrTemplateUnset)
	_, err = a.ParseKey("a.b")
	require.ErrorIs(t, err, ErrTemplateUnset)
	_, err = a.Fields()
	assert.ErrorIs(t, err, ErrTemplateUnset)
}

func TestParseKey(t *testing.T) {
	a, err := NewAccessor("model.experiment.realization")
	require.NoError(t, err)

	got, err := a.ParseKey("MPI-ESM.historical.r1")
	require.NoError(t, err)
	want := map[string]string{"model": "MPI-ESM", "experiment": "historical", "realization": "r1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseKey mismatch (-want +got):\n%s", diff)
	}

	_, err = a.ParseKey("MPI-ESM.historical")
	assert.ErrorIs(t, err, ErrKeyFormat)
}

func TestSelect(t *testing.T) {
	a, err := NewAccessor("model.experiment.realization")
	require.NoError(t, err)

	got, err := a.Select(members, map[string]string{"model": "MPI-ESM", "experiment": "historical"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MPI-ESM.historical.r1", "MPI-ESM.historical.r2"}, got)

	got, err = a.Select(members, nil)
	require.NoError(t, err)
	assert.Equal(t, members, got)
}

func TestGroup(t *testing.T) {
	a, err := NewAccessor("model.experiment.realization")
	require.NoError(t, err)

	order, groups, err := a.Group(members, "experiment")
	require.NoError(t, err)
	assert.Equal(t, []string{"historical", "ssp585"}, order)
	assert.Len(t, groups["historical"], 3)

	_, _, err = a.Group(members, "variant")
	assert.ErrorIs(t, err, ErrKeyFormat)
}

func ExampleAccessor_ParseKey() {
	a, _ := NewAccessor("model.experiment.realization")
	fields, _ := a.ParseKey("CESM.historical.r3")
	fmt.Println(fields["model"], fields["realization"])
	// Output: CESM r3
}
