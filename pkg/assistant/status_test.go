package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabelRoundTrip(t *testing.T) {
	require.Len(t, Statuses(), 30)

	for _, info := range Statuses() {
		t.Run(string(info.Status), func(t *testing.T) {
			got, ok := DetectStatus(StatusLabel(string(info.Status)))
			require.True(t, ok)
			assert.Equal(t, info.Status, got)
		})
	}
}

func TestDetectStatus(t *testing.T) {
	tests := []struct {
		text  string
		want  Status
		exact bool
	}{
		{"pending", "PENDING", true},
		{"SUBMITTED_TO_CLIENT", "SUBMITTED_TO_CLIENT", true},
		{"Submitted to client!", "SUBMITTED_TO_CLIENT", true},
		{"hired", "PLACED", true},
		{"candidates submitted to client", "SUBMITTED_TO_CLIENT", false},
		{"who got rejected by client", "CLIENT_REJECTED", false},
		{"show documents pending profiles", "DOCUMENTS_PENDING", false},
		{"people in 2nd round", "SECOND_ROUND", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, exact, ok := MatchStatus(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.exact, exact)
		})
	}
}

func TestDetectStatusNeedsWordBoundary(t *testing.T) {
	for _, text := range []string{"renewal", "unplaced", "", "   "} {
		_, ok := DetectStatus(text)
		assert.False(t, ok, text)
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Submitted to Client", StatusLabel("SUBMITTED_TO_CLIENT"))
	assert.Equal(t, "On Hold", StatusLabel("on hold"))
	assert.Equal(t, "SOMETHING ELSE", StatusLabel("SOMETHING_ELSE"))
	assert.Equal(t, "Unknown", StatusLabel(""))
}

func TestFollowUpStatuses(t *testing.T) {
	assert.True(t, IsFollowUpStatus("PENDING"))
	assert.True(t, IsFollowUpStatus("client_review"))
	assert.False(t, IsFollowUpStatus("PLACED"))
	assert.False(t, IsFollowUpStatus("NOT_A_STATUS"))
}

func TestEveryStatusHasKnownGroup(t *testing.T) {
	groups := map[StatusGroup]bool{}
	for _, g := range StatusGroups() {
		groups[g] = true
	}
	for _, info := range Statuses() {
		assert.True(t, groups[info.Group], info.Status)
	}
}
