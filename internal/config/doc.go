// Package config loads the optional YAML configuration of the mcnp-csg
// command. Every field has a default, so an empty or missing file is valid;
// command-line flags override whatever the file sets.
package config
