package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Serializer reads and writes configurations in one file format.
type Serializer interface {
	SaveToFile(cfg *InferenceConfig, path string) error
	LoadFromFile(path string) (*InferenceConfig, error)
}

// document is the on-disk shape: every field plus the custom parameters.
type document struct {
	InferenceConfig `mapstructure:",squash" yaml:",inline"`
	Params          map[string]string `mapstructure:"custom_params" yaml:"custom_params,omitempty"`
}

func newDocument(cfg *InferenceConfig) *document {
	doc := &document{InferenceConfig: *cfg.Clone()}
	if len(cfg.customParams) > 0 {
		doc.Params = cfg.CustomParams()
	}
	return doc
}

func (d *document) config() *InferenceConfig {
	cfg := d.InferenceConfig.Clone()
	for k, v := range d.Params {
		cfg.SetCustomParam(k, v)
	}
	return cfg
}

// YAMLSerializer stores configurations as YAML documents. Keys missing from
// a file keep their defaults on load.
type YAMLSerializer struct{}

func (YAMLSerializer) SaveToFile(cfg *InferenceConfig, path string) error {
	b, err := yaml.Marshal(newDocument(cfg))
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (YAMLSerializer) LoadFromFile(path string) (*InferenceConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	doc := &document{InferenceConfig: *NewInferenceConfig()}
	if err := yaml.Unmarshal(b, doc); err != nil {
		return nil, &ParseError{Source: SourceFile, Field: path, Err: err}
	}
	return doc.config(), nil
}

// ViperSerializer stores configurations in any format viper understands,
// chosen from the file extension (json, toml, yaml, ...). Viper folds map
// keys to lower case, so custom parameter keys are lower-cased on load.
type ViperSerializer struct{}

func (ViperSerializer) SaveToFile(cfg *InferenceConfig, path string) error {
	v := viper.New()
	if err := v.MergeConfigMap(configMap(cfg)); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (ViperSerializer) LoadFromFile(path string) (*InferenceConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	for key, value := range configMap(NewInferenceConfig()) {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var doc document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, &ParseError{Source: SourceFile, Field: path, Err: fmt.Errorf("error unmarshaling config: %w", err)}
	}
	return doc.config(), nil
}

// configMap flattens cfg into the keys used by the file formats. Empty
// input sizes and custom parameters are left out.
func configMap(cfg *InferenceConfig) map[string]any {
	m := map[string]any{
		"server_address":       cfg.ServerAddress,
		"port":                 cfg.Port,
		"protocol":             cfg.Protocol,
		"verbose":              cfg.Verbose,
		"model_name":           cfg.ModelName,
		"model_version":        cfg.ModelVersion,
		"model_type":           cfg.ModelType,
		"source":               cfg.Source,
		"labels_file":          cfg.LabelsFile,
		"batch_size":           cfg.BatchSize,
		"show_frame":           cfg.ShowFrame,
		"write_frame":          cfg.WriteFrame,
		"confidence_threshold": cfg.ConfidenceThreshold,
		"nms_threshold":        cfg.NMSThreshold,
		"num_threads":          cfg.NumThreads,
		"enable_async":         cfg.EnableAsync,
		"shared_memory_type":   cfg.SharedMemoryType,
		"cuda_device_id":       cfg.CUDADeviceID,
		"log_level":            cfg.LogLevel,
		"log_file":             cfg.LogFile,
		"enable_multimodal":    cfg.EnableMultimodal,
		"text_input":           cfg.TextInput,
		"audio_input":          cfg.AudioInput,
		"text_prompt":          cfg.TextPrompt,
		"modality_combination": cfg.ModalityCombination,
		"text_weight":          cfg.TextWeight,
		"image_weight":         cfg.ImageWeight,
		"audio_weight":         cfg.AudioWeight,
	}
	if len(cfg.InputSizes) > 0 {
		m["input_sizes"] = cloneSizes(cfg.InputSizes)
	}
	if len(cfg.customParams) > 0 {
		params := make(map[string]any, len(cfg.customParams))
		for k, v := range cfg.customParams {
			params[k] = v
		}
		m["custom_params"] = params
	}
	return m
}
