// Package config provides application configuration loaded from environment
// variables (DATAWEAVER_* prefix) merged with an optional config.yaml file,
// together with a centralized Paths component that resolves every file path
// relative to the executable directory.
package config
