package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olibartfast/vision-infra/parse"
	"github.com/spf13/pflag"
)

// Flag names understood by LoadFromCommandLine.
const (
	SourceFlag              = "source"
	ShortSourceFlag         = "s"
	ModelTypeFlag           = "model_type"
	ModelFlag               = "model"
	ShortModelFlag          = "m"
	ModelVersionFlag        = "model_version"
	LabelsFileFlag          = "labelsFile"
	ProtocolFlag            = "protocol"
	ShortProtocolFlag       = "p"
	ServerAddressFlag       = "serverAddress"
	PortFlag                = "port"
	InputSizesFlag          = "input_sizes"
	BatchSizeFlag           = "batch_size"
	ShowFrameFlag           = "show_frame"
	WriteFrameFlag          = "write_frame"
	ConfidenceFlag          = "confidence_threshold"
	NMSFlag                 = "nms_threshold"
	NumThreadsFlag          = "num_threads"
	EnableAsyncFlag         = "enable_async"
	VerboseFlag             = "verbose"
	ShortVerboseFlag        = "v"
	SharedMemoryTypeFlag    = "shared_memory_type"
	CUDADeviceIDFlag        = "cuda_device_id"
	LogLevelFlag            = "log_level"
	LogFileFlag             = "log_file"
	EnableMultimodalFlag    = "enable_multimodal"
	TextInputFlag           = "text_input"
	AudioInputFlag          = "audio_input"
	TextPromptFlag          = "text_prompt"
	ModalityCombinationFlag = "modality_combination"
	TextWeightFlag          = "text_weight"
	ImageWeightFlag         = "image_weight"
	AudioWeightFlag         = "audio_weight"
	ParamFlag               = "param"
)

// cliArgs holds flag values that need post-processing before they land in
// the config.
type cliArgs struct {
	InputSizes string
	Params     map[string]string
}

// newFlagSet binds every flag to a field of cfg, using the field's current
// value as the flag default.
func newFlagSet(cfg *InferenceConfig, args *cliArgs) *pflag.FlagSet {
	fs := pflag.NewFlagSet("vision-infra", pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&cfg.Source, SourceFlag, ShortSourceFlag, cfg.Source, "path to input image/video file")
	fs.StringVar(&cfg.ModelType, ModelTypeFlag, cfg.ModelType, "type of model (yolov5, yolov8, etc.)")
	fs.StringVarP(&cfg.ModelName, ModelFlag, ShortModelFlag, cfg.ModelName, "model name on inference server")
	fs.StringVar(&cfg.ModelVersion, ModelVersionFlag, cfg.ModelVersion, "model version on inference server")
	fs.StringVar(&cfg.LabelsFile, LabelsFileFlag, cfg.LabelsFile, "path to labels file")
	fs.StringVarP(&cfg.Protocol, ProtocolFlag, ShortProtocolFlag, cfg.Protocol, "protocol to use (http or grpc)")
	fs.StringVar(&cfg.ServerAddress, ServerAddressFlag, cfg.ServerAddress, "inference server address")
	fs.IntVar(&cfg.Port, PortFlag, cfg.Port, "inference server port")
	fs.StringVar(&args.InputSizes, InputSizesFlag, "", "input sizes for dynamic axes (format: 'c,h,w;c,h,w')")
	fs.IntVar(&cfg.BatchSize, BatchSizeFlag, cfg.BatchSize, "batch size")
	fs.BoolVar(&cfg.ShowFrame, ShowFrameFlag, cfg.ShowFrame, "show processed frames")
	fs.BoolVar(&cfg.WriteFrame, WriteFrameFlag, cfg.WriteFrame, "write processed frames to disk")
	fs.Float32Var(&cfg.ConfidenceThreshold, ConfidenceFlag, cfg.ConfidenceThreshold, "confidence threshold")
	fs.Float32Var(&cfg.NMSThreshold, NMSFlag, cfg.NMSThreshold, "NMS threshold")
	fs.IntVar(&cfg.NumThreads, NumThreadsFlag, cfg.NumThreads, "number of worker threads")
	fs.BoolVar(&cfg.EnableAsync, EnableAsyncFlag, cfg.EnableAsync, "use asynchronous inference requests")
	fs.BoolVarP(&cfg.Verbose, VerboseFlag, ShortVerboseFlag, cfg.Verbose, "verbose output")
	fs.StringVar(&cfg.SharedMemoryType, SharedMemoryTypeFlag, cfg.SharedMemoryType, "shared memory type (none, system, cuda)")
	fs.IntVar(&cfg.CUDADeviceID, CUDADeviceIDFlag, cfg.CUDADeviceID, "CUDA device ID for CUDA shared memory")
	fs.StringVar(&cfg.LogLevel, LogLevelFlag, cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, LogFileFlag, cfg.LogFile, "log file path")
	fs.BoolVar(&cfg.EnableMultimodal, EnableMultimodalFlag, cfg.EnableMultimodal, "enable multimodal model support")
	fs.StringVar(&cfg.TextInput, TextInputFlag, cfg.TextInput, "path to text input file")
	fs.StringVar(&cfg.AudioInput, AudioInputFlag, cfg.AudioInput, "path to audio input file")
	fs.StringVar(&cfg.TextPrompt, TextPromptFlag, cfg.TextPrompt, "text prompt for multimodal model")
	fs.StringVar(&cfg.ModalityCombination, ModalityCombinationFlag, cfg.ModalityCombination, "how to combine modalities (concat, attention, fusion)")
	fs.Float32Var(&cfg.TextWeight, TextWeightFlag, cfg.TextWeight, "weight for text modality")
	fs.Float32Var(&cfg.ImageWeight, ImageWeightFlag, cfg.ImageWeight, "weight for image modality")
	fs.Float32Var(&cfg.AudioWeight, AudioWeightFlag, cfg.AudioWeight, "weight for audio modality")
	fs.StringToStringVar(&args.Params, ParamFlag, nil, "custom parameter as key=value (repeatable)")
	return fs
}

// LoadFromCommandLine parses args (without the program name). When -h or
// --help is present, usage is written to l.Output and ErrHelp is returned
// with a nil config.
func (l *DefaultLoader) LoadFromCommandLine(args []string) (*InferenceConfig, error) {
	cfg := NewInferenceConfig()
	var extra cliArgs

	fs := newFlagSet(cfg, &extra)
	out := l.output()
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [options]\n\nOptions:\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, flagError(err)
	}
	if fs.NArg() > 0 {
		return nil, &ParseError{
			Source: SourceCommandLine,
			Err:    fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " ")),
		}
	}

	if fs.Changed(InputSizesFlag) {
		sizes, err := parse.InputSizes(extra.InputSizes)
		if err != nil {
			return nil, &ParseError{Source: SourceCommandLine, Field: "--" + InputSizesFlag, Value: extra.InputSizes, Err: err}
		}
		cfg.InputSizes = sizes
	}
	for k, v := range extra.Params {
		cfg.SetCustomParam(k, v)
	}

	log.Debugf("Loaded configuration from %d command line arguments", len(args))
	return cfg, nil
}

// flagError wraps a pflag parse error, naming the offending flag in Field.
func flagError(err error) *ParseError {
	perr := &ParseError{Source: SourceCommandLine, Err: err}

	var invalid *pflag.InvalidValueError
	var required *pflag.ValueRequiredError
	var unknown *pflag.NotExistError
	var syntax *pflag.InvalidSyntaxError
	switch {
	case errors.As(err, &invalid):
		perr.Field = "--" + invalid.GetFlag().Name
		perr.Value = invalid.GetValue()
	case errors.As(err, &required):
		if f := required.GetFlag(); f != nil {
			perr.Field = "--" + f.Name
		} else {
			perr.Field = "--" + required.GetSpecifiedName()
		}
	case errors.As(err, &unknown):
		if unknown.GetSpecifiedShortnames() != "" {
			perr.Field = "-" + unknown.GetSpecifiedName()
		} else {
			perr.Field = "--" + unknown.GetSpecifiedName()
		}
	case errors.As(err, &syntax):
		perr.Field = syntax.GetSpecifiedFlag()
	}
	return perr
}
