package config

import (
	"maps"
	"slices"
)

// Enumerated string values accepted by the validators.
const (
	ProtocolHTTP = "http"
	ProtocolGRPC = "grpc"

	SharedMemoryNone   = "none"
	SharedMemorySystem = "system"
	SharedMemoryCUDA   = "cuda"

	ModalityConcat    = "concat"
	ModalityAttention = "attention"
	ModalityFusion    = "fusion"
)

// Field defaults.
const (
	DefaultServerAddress       = "localhost"
	DefaultPort                = 8000
	DefaultProtocol            = ProtocolHTTP
	DefaultBatchSize           = 1
	DefaultWriteFrame          = true
	DefaultConfidenceThreshold = float32(0.5)
	DefaultNMSThreshold        = float32(0.4)
	DefaultNumThreads          = 1
	DefaultSharedMemoryType    = SharedMemoryNone
	DefaultCUDADeviceID        = 0
	DefaultLogLevel            = "info"
	DefaultModalityCombination = ModalityConcat
	DefaultModalityWeight      = float32(1.0)
)

// InferenceConfig holds the parameters of one inference-serving session.
//
// Loaders hand out a fresh *InferenceConfig that the caller owns. Use Clone
// to get an independent copy; plain struct assignment shares the custom
// parameter map and the input size slices.
type InferenceConfig struct {
	// Server
	ServerAddress string `mapstructure:"server_address" yaml:"server_address" validate:"required"`
	Port          int    `mapstructure:"port" yaml:"port" validate:"gt=0,lte=65535"`
	Protocol      string `mapstructure:"protocol" yaml:"protocol" validate:"oneof=http grpc"`
	Verbose       bool   `mapstructure:"verbose" yaml:"verbose"`

	// Model
	ModelName    string    `mapstructure:"model_name" yaml:"model_name" validate:"required,excludesall=/\\"`
	ModelVersion string    `mapstructure:"model_version" yaml:"model_version"`
	ModelType    string    `mapstructure:"model_type" yaml:"model_type" validate:"required"`
	InputSizes   [][]int64 `mapstructure:"input_sizes" yaml:"input_sizes,flow,omitempty"`

	// Input/output
	Source     string `mapstructure:"source" yaml:"source" validate:"required"`
	LabelsFile string `mapstructure:"labels_file" yaml:"labels_file"`
	BatchSize  int    `mapstructure:"batch_size" yaml:"batch_size" validate:"gte=1"`

	// Processing
	ShowFrame           bool    `mapstructure:"show_frame" yaml:"show_frame"`
	WriteFrame          bool    `mapstructure:"write_frame" yaml:"write_frame"`
	ConfidenceThreshold float32 `mapstructure:"confidence_threshold" yaml:"confidence_threshold" validate:"gte=0,lte=1"`
	NMSThreshold        float32 `mapstructure:"nms_threshold" yaml:"nms_threshold" validate:"gte=0,lte=1"`

	// Performance
	NumThreads  int  `mapstructure:"num_threads" yaml:"num_threads" validate:"gte=1"`
	EnableAsync bool `mapstructure:"enable_async" yaml:"enable_async"`

	// Shared memory
	SharedMemoryType string `mapstructure:"shared_memory_type" yaml:"shared_memory_type" validate:"oneof=none system cuda"`
	CUDADeviceID     int    `mapstructure:"cuda_device_id" yaml:"cuda_device_id" validate:"gte=0"`

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`

	// Multimodal
	EnableMultimodal    bool    `mapstructure:"enable_multimodal" yaml:"enable_multimodal"`
	TextInput           string  `mapstructure:"text_input" yaml:"text_input"`
	AudioInput          string  `mapstructure:"audio_input" yaml:"audio_input"`
	TextPrompt          string  `mapstructure:"text_prompt" yaml:"text_prompt"`
	ModalityCombination string  `mapstructure:"modality_combination" yaml:"modality_combination" validate:"oneof=concat attention fusion"`
	TextWeight          float32 `mapstructure:"text_weight" yaml:"text_weight" validate:"gte=0"`
	ImageWeight         float32 `mapstructure:"image_weight" yaml:"image_weight" validate:"gte=0"`
	AudioWeight         float32 `mapstructure:"audio_weight" yaml:"audio_weight" validate:"gte=0"`

	customParams map[string]string
}

// NewInferenceConfig returns a config with every field at its default.
func NewInferenceConfig() *InferenceConfig {
	return &InferenceConfig{
		ServerAddress:       DefaultServerAddress,
		Port:                DefaultPort,
		Protocol:            DefaultProtocol,
		BatchSize:           DefaultBatchSize,
		WriteFrame:          DefaultWriteFrame,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		NMSThreshold:        DefaultNMSThreshold,
		NumThreads:          DefaultNumThreads,
		SharedMemoryType:    DefaultSharedMemoryType,
		CUDADeviceID:        DefaultCUDADeviceID,
		LogLevel:            DefaultLogLevel,
		ModalityCombination: DefaultModalityCombination,
		TextWeight:          DefaultModalityWeight,
		ImageWeight:         DefaultModalityWeight,
		AudioWeight:         DefaultModalityWeight,
	}
}

// SetCustomParam stores value under key, replacing any previous value.
func (c *InferenceConfig) SetCustomParam(key, value string) {
	if c.customParams == nil {
		c.customParams = make(map[string]string)
	}
	c.customParams[key] = value
}

// CustomParam returns the value stored under key. ok is false when the key
// was never set.
func (c *InferenceConfig) CustomParam(key string) (value string, ok bool) {
	value, ok = c.customParams[key]
	return value, ok
}

// CustomParams returns a copy of all custom parameters.
func (c *InferenceConfig) CustomParams() map[string]string {
	out := make(map[string]string, len(c.customParams))
	maps.Copy(out, c.customParams)
	return out
}

// Clone returns a deep copy of c.
func (c *InferenceConfig) Clone() *InferenceConfig {
	out := *c
	out.InputSizes = cloneSizes(c.InputSizes)
	out.customParams = nil
	if len(c.customParams) > 0 {
		out.customParams = c.CustomParams()
	}
	return &out
}

func cloneSizes(sizes [][]int64) [][]int64 {
	if sizes == nil {
		return nil
	}
	out := make([][]int64, len(sizes))
	for i, dims := range sizes {
		out[i] = slices.Clone(dims)
	}
	return out
}
