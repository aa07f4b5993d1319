package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the built-in booth configuration.
//
//go:embed default_config.yaml
var DefaultConfigYAML []byte
