// Package config defines the settings shared by the alarm clock binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Config carries the gRPC address, the wall clock location, the persistence
// backend (YAML files or Redis) and the sound options.
package config
