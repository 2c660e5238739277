package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityHigh > SeverityMedium)
	assert.True(t, SeverityMedium > SeverityLow)
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	tests := []struct {
		severity Severity
		wire     string
	}{
		{SeverityHigh, `"high"`},
		{SeverityMedium, `"medium"`},
		{SeverityLow, `"low"`},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			data, err := json.Marshal(tt.severity)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, string(data))

			var back Severity
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.severity, back)
		})
	}
}

func TestSeverityUnmarshalUnknown(t *testing.T) {
	var s Severity
	err := json.Unmarshal([]byte(`"catastrophic"`), &s)
	assert.Error(t, err)
}

func TestFrameMidpoint(t *testing.T) {
	f := Frame{Landmarks: make([]Landmark, LandmarkCount)}
	f.Landmarks[LeftHip] = Landmark{X: 1, Y: 2, Z: 3}
	f.Landmarks[RightHip] = Landmark{X: 3, Y: 4, Z: 5}

	x, y, z := f.Midpoint(LeftHip, RightHip)
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 3.0, y)
	assert.Equal(t, 4.0, z)
}
