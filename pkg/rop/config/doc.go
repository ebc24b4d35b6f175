// Package config loads client and preset settings from YAML or JSONC files.
package config
