package config

import "strings"

const maxPort = 65535

// Validation messages, in the order ValidationErrors reports them.
const (
	msgServerAddressRequired = "Server address is required"
	msgModelNameRequired     = "Model name is required"
	msgModelNameIsPath       = "Model name must not contain path separators (/ or \\). Use only the model repository name."
	msgModelTypeRequired     = "Model type is required"
	msgSourceRequired        = "Source is required"
	msgPortRange             = "Port must be between 1 and 65535"
	msgProtocol              = "Protocol must be 'http' or 'grpc'"
)

// IsModelNameAPath reports whether the model name contains a path separator.
// Model names refer to a repository entry, never to a file.
func (c *InferenceConfig) IsModelNameAPath() bool {
	return strings.ContainsAny(c.ModelName, `/\`)
}

// IsValid reports whether the required fields are set and the port is in
// range. The protocol is only checked by ValidationErrors.
func (c *InferenceConfig) IsValid() bool {
	return c.ServerAddress != "" &&
		c.ModelName != "" &&
		c.ModelType != "" &&
		c.Source != "" &&
		validPort(c.Port) &&
		!c.IsModelNameAPath()
}

// ValidationErrors runs every check and joins the failures with "; ".
// It returns "" when nothing failed.
func (c *InferenceConfig) ValidationErrors() string {
	var errs []string
	if c.ServerAddress == "" {
		errs = append(errs, msgServerAddressRequired)
	}
	if c.ModelName == "" {
		errs = append(errs, msgModelNameRequired)
	}
	if c.IsModelNameAPath() {
		errs = append(errs, msgModelNameIsPath)
	}
	if c.ModelType == "" {
		errs = append(errs, msgModelTypeRequired)
	}
	if c.Source == "" {
		errs = append(errs, msgSourceRequired)
	}
	if !validPort(c.Port) {
		errs = append(errs, msgPortRange)
	}
	if c.Protocol != ProtocolHTTP && c.Protocol != ProtocolGRPC {
		errs = append(errs, msgProtocol)
	}
	return strings.Join(errs, "; ")
}

func validPort(port int) bool {
	return port > 0 && port <= maxPort
}
