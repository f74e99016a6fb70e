package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePort(t *testing.T) {
	m := NewManager(nil, nil)

	testCases := []struct {
		name     string
		base     int
		override int
		expected int
	}{
		{"override non-default wins", 8000, 9000, 9000},
		{"override default keeps base", 9000, 8000, 9000},
		{"both default", 8000, 8000, 8000},
		{"override zero is not the default", 9000, 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base := NewInferenceConfig()
			base.Port = tc.base
			override := NewInferenceConfig()
			override.Port = tc.override

			assert.Equal(t, tc.expected, m.Merge(base, override).Port)
		})
	}
}

func TestMergeBooleansAlwaysOverride(t *testing.T) {
	m := NewManager(nil, nil)

	base := NewInferenceConfig()
	base.Verbose = true
	base.ShowFrame = true
	base.EnableAsync = true
	base.EnableMultimodal = true
	override := NewInferenceConfig()
	override.WriteFrame = false

	merged := m.Merge(base, override)
	assert.False(t, merged.Verbose)
	assert.False(t, merged.ShowFrame)
	assert.False(t, merged.WriteFrame)
	assert.False(t, merged.EnableAsync)
	assert.False(t, merged.EnableMultimodal)

	base = NewInferenceConfig()
	override = NewInferenceConfig()
	assert.False(t, m.Merge(base, override).Verbose)
}

func TestMergeStrings(t *testing.T) {
	m := NewManager(nil, nil)

	base := validConfig()
	base.LabelsFile = "coco.names"
	base.ServerAddress = "triton"
	base.LogLevel = "debug"
	base.SharedMemoryType = "cuda"
	base.LogFile = "base.log"

	override := NewInferenceConfig()
	override.ModelName = "resnet"
	override.ServerAddress = ""
	override.Protocol = ""

	merged := m.Merge(base, override)
	assert.Equal(t, "resnet", merged.ModelName)
	assert.Equal(t, "yolov8", merged.ModelType, "empty override keeps base")
	assert.Equal(t, "input.jpg", merged.Source)
	assert.Equal(t, "coco.names", merged.LabelsFile)
	assert.Equal(t, "triton", merged.ServerAddress)
	assert.Equal(t, "http", merged.Protocol)
	assert.Equal(t, "debug", merged.LogLevel, "default-valued override keeps base")
	assert.Equal(t, "cuda", merged.SharedMemoryType)
	assert.Equal(t, "base.log", merged.LogFile)

	override.ServerAddress = "localhost"
	override.LogLevel = "error"
	override.SharedMemoryType = "system"
	merged = m.Merge(base, override)
	assert.Equal(t, "localhost", merged.ServerAddress, "non-empty server address always overrides")
	assert.Equal(t, "error", merged.LogLevel)
	assert.Equal(t, "system", merged.SharedMemoryType)
}

func TestMergeNumerics(t *testing.T) {
	m := NewManager(nil, nil)

	base := NewInferenceConfig()
	base.BatchSize = 8
	base.ConfidenceThreshold = 0.9
	base.NumThreads = 4
	base.CUDADeviceID = 3

	override := NewInferenceConfig()
	override.NMSThreshold = 0.6
	override.ImageWeight = 2

	merged := m.Merge(base, override)
	assert.Equal(t, 8, merged.BatchSize)
	assert.Equal(t, float32(0.9), merged.ConfidenceThreshold)
	assert.Equal(t, float32(0.6), merged.NMSThreshold)
	assert.Equal(t, 4, merged.NumThreads)
	assert.Equal(t, 3, merged.CUDADeviceID)
	assert.Equal(t, float32(2), merged.ImageWeight)
	assert.Equal(t, float32(1), merged.TextWeight)

	override.BatchSize = 2
	override.ConfidenceThreshold = 0.3
	merged = m.Merge(base, override)
	assert.Equal(t, 2, merged.BatchSize)
	assert.Equal(t, float32(0.3), merged.ConfidenceThreshold)
}

func TestMergeInputSizesAndCustomParams(t *testing.T) {
	m := NewManager(nil, nil)

	base := NewInferenceConfig()
	base.InputSizes = [][]int64{{3, 640, 640}}
	base.SetCustomParam("from", "base")
	override := NewInferenceConfig()
	override.SetCustomParam("from", "override")
	override.SetCustomParam("extra", "x")

	merged := m.Merge(base, override)
	assert.Equal(t, [][]int64{{3, 640, 640}}, merged.InputSizes)
	assert.Equal(t, map[string]string{"from": "base"}, merged.CustomParams(), "custom params are not merged")

	override.InputSizes = [][]int64{{1, 3, 224, 224}}
	merged = m.Merge(base, override)
	assert.Equal(t, [][]int64{{1, 3, 224, 224}}, merged.InputSizes)
}

func TestMergeDoesNotAlias(t *testing.T) {
	m := NewManager(nil, nil)

	base := NewInferenceConfig()
	base.InputSizes = [][]int64{{3, 640, 640}}
	base.SetCustomParam("k", "v")
	override := NewInferenceConfig()

	merged := m.Merge(base, override)
	require.NotSame(t, base, merged)
	require.NotSame(t, override, merged)

	merged.InputSizes[0][0] = 1
	merged.SetCustomParam("k", "changed")
	assert.Equal(t, int64(3), base.InputSizes[0][0])
	value, _ := base.CustomParam("k")
	assert.Equal(t, "v", value)
}

func TestMergeNil(t *testing.T) {
	m := NewManager(nil, nil)

	cfg := validConfig()
	cfg.Port = 9000

	merged := m.Merge(nil, cfg)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "yolov8n", merged.ModelName)

	merged = m.Merge(cfg, nil)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "yolov8n", merged.ModelName)
	assert.NotSame(t, cfg, merged)

	assert.Equal(t, NewInferenceConfig(), m.Merge(nil, nil))
}
