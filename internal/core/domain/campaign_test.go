package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignInputValidate(t *testing.T) {
	valid := CampaignInput{Website: "example.com", TargetHits: 10, Duration: 1.5, HitType: HitTypeClick}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mut  func(*CampaignInput)
		msg  string
	}{
		{"blank website", func(in *CampaignInput) { in.Website = "   " }, "website is required"},
		{"zero hits", func(in *CampaignInput) { in.TargetHits = 0 }, "targetHits must be positive"},
		{"negative duration", func(in *CampaignInput) { in.Duration = -1 }, "duration must be positive"},
		{"duration too long", func(in *CampaignInput) { in.Duration = 3e6 }, "duration must be at most 2000000"},
		{"unknown hit type", func(in *CampaignInput) { in.HitType = "scroll" }, `unknown hitType "scroll"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mut(&in)
			err := in.Validate()
			require.ErrorIs(t, err, ErrInvalidCampaign)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCampaignPatchApply(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := Campaign{ID: "c1", Website: "a.com", TargetHits: 5, CurrentHits: 1}

	assert.True(t, CampaignPatch{}.Empty())

	p := CampaignPatch{IsActive: Ptr(true), StartTime: &start, CurrentHits: Ptr(3)}
	assert.False(t, p.Empty())
	p.Apply(&c)
	assert.True(t, c.IsActive)
	assert.Equal(t, start, *c.StartTime)
	assert.Equal(t, 3, c.CurrentHits)
	assert.Equal(t, "a.com", c.Website)
}

func TestCampaignWindowAndCompleted(t *testing.T) {
	c := Campaign{Duration: 0.5, TargetHits: 2, CurrentHits: 1}
	assert.Equal(t, 30*time.Minute, c.Window())
	assert.False(t, c.Completed())
	c.CurrentHits = 2
	assert.True(t, c.Completed())
}

func TestHoursToDurationSaturates(t *testing.T) {
	assert.Equal(t, 90*time.Minute, HoursToDuration(1.5))
	assert.Equal(t, time.Duration(math.MaxInt64), HoursToDuration(3e6))
	assert.Equal(t, time.Duration(math.MaxInt64), Campaign{Duration: 1e300}.Window())
	assert.Zero(t, HoursToDuration(-1))
	assert.Zero(t, HoursToDuration(math.NaN()))

	longest := CampaignInput{Website: "a.com", TargetHits: 1, Duration: MaxDurationHours, HitType: HitTypePageView}
	require.NoError(t, longest.Validate())
	assert.Positive(t, Campaign{Duration: MaxDurationHours}.Window())
}
