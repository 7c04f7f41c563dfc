// Package common holds helpers shared by the server and the control client.
//
// It provides a typed gRPC client for the alarm clock service with call
// timeouts, and detection of the current system actor (hostname/username)
// that is sent along with every request for audit purposes.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
