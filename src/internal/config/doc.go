// Package config loads certview settings from defaults, an optional YAML
// file and CERTVIEW_* environment variables, in that order of precedence
// (later wins). Command-line flags are applied by the commands on top.
package config
