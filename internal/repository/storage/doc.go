// Package storage implements persistence for alarms and global settings.
//
// FileRepository keeps them in two YAML files replaced atomically on every
// write; RedisRepository keeps them under prefixed Redis keys. Both satisfy
// Repository, which the server wires into the stores at startup.
package storage
