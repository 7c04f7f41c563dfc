// Package client implements the alarm-clock-ctl operations.
//
// Each operation is an Action run against a connected service client; Run
// loads the configuration, identifies the local actor, dials the server and
// optionally retries the action until the server becomes reachable.
package client
