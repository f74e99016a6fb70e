package config

import (
	"fmt"
	"io"
	"strconv"
)

// Print writes a human-readable dump of cfg to w, one field per line.
func (m *Manager) Print(w io.Writer, cfg *InferenceConfig) error {
	p := &printer{w: w}
	p.line("Configuration:")
	p.line("  Server: %s:%d (%s)", cfg.ServerAddress, cfg.Port, cfg.Protocol)
	p.line("  Model: %s (%s)", cfg.ModelName, cfg.ModelType)
	p.line("  Source: %s", cfg.Source)
	p.line("  Labels: %s", cfg.LabelsFile)
	p.line("  Batch Size: %d", cfg.BatchSize)
	p.line("  Show Frame: %t", cfg.ShowFrame)
	p.line("  Write Frame: %t", cfg.WriteFrame)
	p.line("  Confidence Threshold: %s", formatFloat(cfg.ConfidenceThreshold))
	p.line("  NMS Threshold: %s", formatFloat(cfg.NMSThreshold))
	p.line("  Verbose: %t", cfg.Verbose)
	p.line("  Shared Memory Type: %s", cfg.SharedMemoryType)
	if cfg.SharedMemoryType == SharedMemoryCUDA {
		p.line("  CUDA Device ID: %d", cfg.CUDADeviceID)
	}
	p.line("  Log Level: %s", cfg.LogLevel)
	if cfg.LogFile != "" {
		p.line("  Log File: %s", cfg.LogFile)
	}
	if cfg.EnableMultimodal {
		p.line("  Multimodal: enabled")
		if cfg.TextInput != "" {
			p.line("  Text Input: %s", cfg.TextInput)
		}
		if cfg.AudioInput != "" {
			p.line("  Audio Input: %s", cfg.AudioInput)
		}
		if cfg.TextPrompt != "" {
			p.line("  Text Prompt: %s", cfg.TextPrompt)
		}
		p.line("  Modality Combination: %s", cfg.ModalityCombination)
		p.line("  Weights - Text: %s, Image: %s, Audio: %s",
			formatFloat(cfg.TextWeight), formatFloat(cfg.ImageWeight), formatFloat(cfg.AudioWeight))
	}
	return p.err
}

// printer stops writing after the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
