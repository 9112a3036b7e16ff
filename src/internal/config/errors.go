package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	ErrInvalidResolver = errors.New("invalid resolver: must be an absolute http(s) URL")
	ErrInvalidTimeout  = errors.New("invalid timeout: must be positive")
	ErrInvalidStyle    = errors.New("invalid style: use apa, vancouver, harvard1, bibtex, biblatex or ris")
	ErrInvalidCacheTTL = errors.New("invalid cache ttl: must be non-negative")
	ErrInvalidWidth    = errors.New("invalid width: must be at least 20 columns")
	ErrInvalidAddr     = errors.New("invalid listen address: want host:port")
	ErrEmptyMetadata   = errors.New("invalid metadata resource: must not be empty")
)

// ErrConfigNotFound is returned when an explicitly named file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
