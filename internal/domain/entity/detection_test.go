package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDetections(t *testing.T) {
	detections, err := ParseDetections([]byte(`[
		{"class": "burger", "count": 1},
		{"class": "fries"},
		{"class": "drink", "count": "2"},
		{"class": "sauce", "count": null}
	]`))
	require.NoError(t, err)
	require.Equal(t, []Detection{
		{Class: "burger", Count: 1},
		{Class: "fries", Count: 1},
		{Class: "drink", Count: 2},
		{Class: "sauce", Count: 1},
	}, detections)
}

func TestParseDetections_Invalid(t *testing.T) {
	cases := map[string]string{
		"not a list":     `{"class": "burger"}`,
		"missing class":  `[{"count": 1}]`,
		"numeric class":  `[{"class": 3, "count": 1}]`,
		"empty class":    `[{"class": "", "count": 1}]`,
		"negative count": `[{"class": "burger", "count": -2}]`,
		"text count":     `[{"class": "burger", "count": "many"}]`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDetections([]byte(input))
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDetectionReport_Detections(t *testing.T) {
	report := &DetectionReport{
		Objects: []DetectedObject{
			{Class: "nuggets"},
			{Class: "burger"},
			{Class: "nuggets"},
		},
	}

	require.True(t, report.HasObjects())
	require.Equal(t, []Detection{
		{Class: "burger", Count: 1},
		{Class: "nuggets", Count: 2},
	}, report.Detections())
}

func TestDetectionReport_Nil(t *testing.T) {
	var report *DetectionReport
	require.False(t, report.HasObjects())
	require.Empty(t, report.Detections())
}
