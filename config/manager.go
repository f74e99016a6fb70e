package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Manager loads, validates, merges and prints configurations. The loader,
// validator and serializers are strategies fixed at setup; Manager is not
// safe for concurrent RegisterSerializer calls.
type Manager struct {
	loader      Loader
	validator   Validator
	serializers map[string]Serializer
}

// NewManager returns a Manager using loader and validator. A nil loader
// means &DefaultLoader{}, a nil validator means DefaultValidator{}.
func NewManager(loader Loader, validator Validator) *Manager {
	if loader == nil {
		loader = &DefaultLoader{}
	}
	if validator == nil {
		validator = DefaultValidator{}
	}
	return &Manager{
		loader:      loader,
		validator:   validator,
		serializers: make(map[string]Serializer),
	}
}

// LoadFromCommandLine parses args, not including the program name. It
// returns ErrHelp and no config when help was requested.
func (m *Manager) LoadFromCommandLine(args []string) (*InferenceConfig, error) {
	return m.loader.LoadFromCommandLine(args)
}

func (m *Manager) LoadFromEnvironment() (*InferenceConfig, error) {
	return m.loader.LoadFromEnvironment()
}

func (m *Manager) LoadFromFile(path string) (*InferenceConfig, error) {
	return m.loader.LoadFromFile(path)
}

func (m *Manager) CreateDefault() (*InferenceConfig, error) {
	return m.loader.CreateDefault()
}

func (m *Manager) Validate(cfg *InferenceConfig) bool {
	return m.validator.Validate(cfg)
}

func (m *Manager) ValidationErrors(cfg *InferenceConfig) string {
	return m.validator.ValidationErrors(cfg)
}

// RegisterSerializer installs s for files with the given extension,
// replacing any earlier registration. The extension is used as given.
func (m *Manager) RegisterSerializer(ext string, s Serializer) {
	m.serializers[ext] = s
	log.Debugf("Registered config serializer for %q", ext)
}

// Serializer returns the serializer registered for ext.
func (m *Manager) Serializer(ext string) (Serializer, bool) {
	s, ok := m.serializers[ext]
	return s, ok
}

// serializerFor finds the serializer for path's extension, registered with
// or without the leading dot.
func (m *Manager) serializerFor(path string) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if s, ok := m.serializers[ext]; ok {
		return s, nil
	}
	if s, ok := m.serializers[strings.TrimPrefix(ext, ".")]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no serializer registered for %q: %w", path, ErrNotSupported)
}

// SaveToFile writes cfg with the serializer registered for path's extension.
func (m *Manager) SaveToFile(cfg *InferenceConfig, path string) error {
	s, err := m.serializerFor(path)
	if err != nil {
		return err
	}
	if err := s.SaveToFile(cfg, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	log.Debugf("Saved configuration to %s", path)
	return nil
}

// ReadFile reads a config with the serializer registered for path's
// extension. Unlike LoadFromFile it never consults the loader.
func (m *Manager) ReadFile(path string) (*InferenceConfig, error) {
	s, err := m.serializerFor(path)
	if err != nil {
		return nil, err
	}
	cfg, err := s.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Debugf("Read configuration from %s", path)
	return cfg, nil
}
