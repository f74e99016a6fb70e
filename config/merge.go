package config

// Merge returns a new config that starts from base and takes each field of
// override that differs from "unset":
//
//   - strings: non-empty (for shared memory type, log level and modality
//     combination: non-empty and not the default)
//   - numbers: not equal to the field default
//   - input sizes: non-empty
//   - booleans: always taken from override
//
// Custom parameters are not merged; the result carries base's. A nil base
// or override stands for a default config.
func (m *Manager) Merge(base, override *InferenceConfig) *InferenceConfig {
	if base == nil {
		base = NewInferenceConfig()
	}
	if override == nil {
		override = NewInferenceConfig()
	}
	merged := base.Clone()

	mergeString(&merged.ServerAddress, override.ServerAddress)
	mergeString(&merged.Protocol, override.Protocol)
	mergeString(&merged.ModelName, override.ModelName)
	mergeString(&merged.ModelVersion, override.ModelVersion)
	mergeString(&merged.ModelType, override.ModelType)
	mergeString(&merged.Source, override.Source)
	mergeString(&merged.LabelsFile, override.LabelsFile)
	mergeString(&merged.TextInput, override.TextInput)
	mergeString(&merged.AudioInput, override.AudioInput)
	mergeString(&merged.TextPrompt, override.TextPrompt)

	mergeString(&merged.LogFile, override.LogFile)
	mergeStringNonDefault(&merged.SharedMemoryType, override.SharedMemoryType, DefaultSharedMemoryType)
	mergeStringNonDefault(&merged.LogLevel, override.LogLevel, DefaultLogLevel)
	mergeStringNonDefault(&merged.ModalityCombination, override.ModalityCombination, DefaultModalityCombination)

	mergeNonDefault(&merged.Port, override.Port, DefaultPort)
	mergeNonDefault(&merged.BatchSize, override.BatchSize, DefaultBatchSize)
	mergeNonDefault(&merged.NumThreads, override.NumThreads, DefaultNumThreads)
	mergeNonDefault(&merged.CUDADeviceID, override.CUDADeviceID, DefaultCUDADeviceID)
	mergeNonDefault(&merged.ConfidenceThreshold, override.ConfidenceThreshold, DefaultConfidenceThreshold)
	mergeNonDefault(&merged.NMSThreshold, override.NMSThreshold, DefaultNMSThreshold)
	mergeNonDefault(&merged.TextWeight, override.TextWeight, DefaultModalityWeight)
	mergeNonDefault(&merged.ImageWeight, override.ImageWeight, DefaultModalityWeight)
	mergeNonDefault(&merged.AudioWeight, override.AudioWeight, DefaultModalityWeight)

	if len(override.InputSizes) > 0 {
		merged.InputSizes = cloneSizes(override.InputSizes)
	}

	merged.ShowFrame = override.ShowFrame
	merged.WriteFrame = override.WriteFrame
	merged.Verbose = override.Verbose
	merged.EnableAsync = override.EnableAsync
	merged.EnableMultimodal = override.EnableMultimodal

	log.Debugf("Merged configuration for model %q", merged.ModelName)
	return merged
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeStringNonDefault(dst *string, v, def string) {
	if v != "" && v != def {
		*dst = v
	}
}

func mergeNonDefault[T comparable](dst *T, v, def T) {
	if v != def {
		*dst = v
	}
}
