// Package config loads and validates application settings from defaults, an
// optional config.yaml file and PROMPTNEST_ environment variables. Components
// receive the typed section they need instead of reading the environment.
package config
