package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olibartfast/vision-infra/parse"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable read by
// LoadFromEnvironment, e.g. INFERENCE_SERVER_PORT.
const EnvPrefix = "INFERENCE"

// Environment keys; the variable name is EnvPrefix + "_" + upper(key).
const (
	envServerAddress       = "server_address"
	envServerPort          = "server_port"
	envProtocol            = "protocol"
	envModelName           = "model_name"
	envModelVersion        = "model_version"
	envModelType           = "model_type"
	envSource              = "source"
	envLabelsFile          = "labels_file"
	envBatchSize           = "batch_size"
	envShowFrame           = "show_frame"
	envWriteFrame          = "write_frame"
	envConfidence          = "confidence_threshold"
	envNMS                 = "nms_threshold"
	envNumThreads          = "num_threads"
	envEnableAsync         = "enable_async"
	envVerbose             = "verbose"
	envSharedMemoryType    = "shared_memory_type"
	envCUDADeviceID        = "cuda_device_id"
	envLogLevel            = "log_level"
	envLogFile             = "log_file"
	envInputSizes          = "input_sizes"
	envEnableMultimodal    = "enable_multimodal"
	envTextInput           = "text_input"
	envAudioInput          = "audio_input"
	envTextPrompt          = "text_prompt"
	envModalityCombination = "modality_combination"
	envTextWeight          = "text_weight"
	envImageWeight         = "image_weight"
	envAudioWeight         = "audio_weight"
	envCustomParams        = "custom_params"
)

var envKeys = []string{
	envServerAddress, envServerPort, envProtocol,
	envModelName, envModelVersion, envModelType,
	envSource, envLabelsFile, envBatchSize,
	envShowFrame, envWriteFrame, envConfidence, envNMS,
	envNumThreads, envEnableAsync, envVerbose,
	envSharedMemoryType, envCUDADeviceID,
	envLogLevel, envLogFile, envInputSizes,
	envEnableMultimodal, envTextInput, envAudioInput, envTextPrompt,
	envModalityCombination, envTextWeight, envImageWeight, envAudioWeight,
	envCustomParams,
}

// EnvVarName returns the environment variable read for key.
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// LoadFromEnvironment reads INFERENCE_* variables. Unset or empty variables
// keep the field default. Booleans are true only for the exact string
// "true", except write_frame which stays true unless set to exactly "false".
func (l *DefaultLoader) LoadFromEnvironment() (*InferenceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", EnvVarName(key), err)
		}
	}

	r := &envReader{v: v}
	cfg := NewInferenceConfig()

	cfg.ServerAddress = r.str(envServerAddress, cfg.ServerAddress)
	cfg.Port = r.intVal(envServerPort, cfg.Port)
	cfg.Protocol = r.str(envProtocol, cfg.Protocol)
	cfg.ModelName = r.str(envModelName, cfg.ModelName)
	cfg.ModelVersion = r.str(envModelVersion, cfg.ModelVersion)
	cfg.ModelType = r.str(envModelType, cfg.ModelType)
	cfg.Source = r.str(envSource, cfg.Source)
	cfg.LabelsFile = r.str(envLabelsFile, cfg.LabelsFile)
	cfg.BatchSize = r.intVal(envBatchSize, cfg.BatchSize)
	cfg.ShowFrame = r.str(envShowFrame, "") == "true"
	cfg.WriteFrame = r.str(envWriteFrame, "") != "false"
	cfg.ConfidenceThreshold = r.floatVal(envConfidence, cfg.ConfidenceThreshold)
	cfg.NMSThreshold = r.floatVal(envNMS, cfg.NMSThreshold)
	cfg.NumThreads = r.intVal(envNumThreads, cfg.NumThreads)
	cfg.EnableAsync = r.str(envEnableAsync, "") == "true"
	cfg.Verbose = r.str(envVerbose, "") == "true"
	cfg.SharedMemoryType = r.str(envSharedMemoryType, cfg.SharedMemoryType)
	cfg.CUDADeviceID = r.intVal(envCUDADeviceID, cfg.CUDADeviceID)
	cfg.LogLevel = r.str(envLogLevel, cfg.LogLevel)
	cfg.LogFile = r.str(envLogFile, cfg.LogFile)
	cfg.EnableMultimodal = r.str(envEnableMultimodal, "") == "true"
	cfg.TextInput = r.str(envTextInput, cfg.TextInput)
	cfg.AudioInput = r.str(envAudioInput, cfg.AudioInput)
	cfg.TextPrompt = r.str(envTextPrompt, cfg.TextPrompt)
	cfg.ModalityCombination = r.str(envModalityCombination, cfg.ModalityCombination)
	cfg.TextWeight = r.floatVal(envTextWeight, cfg.TextWeight)
	cfg.ImageWeight = r.floatVal(envImageWeight, cfg.ImageWeight)
	cfg.AudioWeight = r.floatVal(envAudioWeight, cfg.AudioWeight)
	cfg.InputSizes = r.sizes(envInputSizes)
	r.params(envCustomParams, cfg)

	if r.err != nil {
		return nil, r.err
	}
	log.Debugln("Loaded configuration from environment")
	return cfg, nil
}

// envReader reads typed values from viper and keeps the first parse error.
type envReader struct {
	v   *viper.Viper
	err error
}

func (r *envReader) lookup(key string) (string, bool) {
	if !r.v.IsSet(key) {
		return "", false
	}
	return r.v.GetString(key), true
}

func (r *envReader) str(key, def string) string {
	if raw, ok := r.lookup(key); ok {
		return raw
	}
	return def
}

func (r *envReader) fail(key, raw string, err error) {
	if r.err == nil {
		r.err = &ParseError{Source: SourceEnvironment, Field: EnvVarName(key), Value: raw, Err: err}
	}
}

func (r *envReader) intVal(key string, def int) int {
	raw, ok := r.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		r.fail(key, raw, err)
		return def
	}
	return n
}

func (r *envReader) floatVal(key string, def float32) float32 {
	raw, ok := r.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		r.fail(key, raw, err)
		return def
	}
	return float32(f)
}

func (r *envReader) sizes(key string) [][]int64 {
	raw, ok := r.lookup(key)
	if !ok {
		return nil
	}
	sizes, err := parse.InputSizes(raw)
	if err != nil {
		r.fail(key, raw, err)
		return nil
	}
	return sizes
}

// params reads "k=v,k2=v2" into custom parameters.
func (r *envReader) params(key string, cfg *InferenceConfig) {
	raw, ok := r.lookup(key)
	if !ok {
		return
	}
	for _, item := range parse.StringList(raw, ",") {
		if item == "" {
			continue
		}
		k, v, found := strings.Cut(item, "=")
		if !found || strings.TrimSpace(k) == "" {
			r.fail(key, raw, fmt.Errorf("expected key=value, got %q", item))
			return
		}
		cfg.SetCustomParam(strings.TrimSpace(k), strings.TrimSpace(v))
	}
}
