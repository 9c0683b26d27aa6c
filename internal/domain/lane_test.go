package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLane(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Lane
		wantErr bool
	}{
		{input: "Top", want: domain.LaneTop},
		{input: "jungle", want: domain.LaneJungle},
		{input: " MID ", want: domain.LaneMid},
		{input: "adc", want: domain.LaneBot},
		{input: "Bottom", want: domain.LaneBot},
		{input: "sup", want: domain.LaneSupport},
		{input: "roam", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseLane(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidLane)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLaneSet_Operations(t *testing.T) {
	s := domain.NewLaneSet(domain.LaneMid, domain.LaneTop)

	assert.True(t, s.Has(domain.LaneTop))
	assert.True(t, s.Has(domain.LaneMid))
	assert.False(t, s.Has(domain.LaneBot))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []domain.Lane{domain.LaneTop, domain.LaneMid}, s.Lanes())
	assert.Equal(t, "Top|Mid", s.String())

	s = s.Toggle(domain.LaneTop)
	assert.False(t, s.Has(domain.LaneTop))
	s = s.Toggle(domain.LaneSupport)
	assert.True(t, s.Has(domain.LaneSupport))

	assert.Equal(t, domain.AllLaneSet, s.Union(domain.NewLaneSet(domain.LaneTop, domain.LaneJungle, domain.LaneBot)))
	assert.True(t, domain.LaneSet(0).IsEmpty())
	assert.True(t, domain.AllLaneSet.IsValid())
	assert.False(t, domain.LaneSet(1<<6).IsValid())
}

func TestLaneSet_WithInvalidLanePanics(t *testing.T) {
	assert.Panics(t, func() {
		domain.NewLaneSet(domain.Lane(7))
	})
}

func TestLaneSet_JSON(t *testing.T) {
	s := domain.NewLaneSet(domain.LaneBot, domain.LaneSupport)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["Bot","Support"]`, string(data))

	var decoded domain.LaneSet
	require.NoError(t, json.Unmarshal([]byte(`["support","adc"]`), &decoded))
	assert.Equal(t, s, decoded)

	err = json.Unmarshal([]byte(`["river"]`), &decoded)
	assert.ErrorIs(t, err, domain.ErrInvalidLane)
}
