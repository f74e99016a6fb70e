// Package config holds the configuration of an inference application: the
// InferenceConfig record, loaders for command-line flags and INFERENCE_*
// environment variables, pluggable validators and file serializers, and
// the Manager that ties them together and merges configurations from
// several sources.
package config
