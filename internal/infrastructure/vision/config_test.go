package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYOLOConfig_Defaults(t *testing.T) {
	cfg := YOLOConfig{ModelPath: "models/best.onnx"}.withDefaults()
	require.Equal(t, DefaultClasses, cfg.Classes)
	require.InDelta(t, 0.25, cfg.Confidence, 1e-9)
	require.InDelta(t, 0.45, cfg.NMSThreshold, 1e-9)
	require.Equal(t, 640, cfg.InputSize)
	require.NoError(t, cfg.validate())
}

func TestYOLOConfig_Validate(t *testing.T) {
	require.Error(t, YOLOConfig{}.withDefaults().validate())
	require.Error(t, YOLOConfig{ModelPath: "m.onnx", Classes: []string{"burger", " "}}.validate())
}

func TestYOLOConfig_ClassName(t *testing.T) {
	cfg := YOLOConfig{}.withDefaults()

	name, ok := cfg.className(3)
	require.True(t, ok)
	require.Equal(t, "nuggets", name)

	_, ok = cfg.className(5)
	require.False(t, ok)
	_, ok = cfg.className(-1)
	require.False(t, ok)
}
