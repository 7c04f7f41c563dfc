// Package logger wraps zap with a process-wide sugared logger and
// context-scoped children.
//
// Components attach a name or key-value pairs to the context with WithName
// and WithKV and log through helpers such as InfoKV, which pick the scoped
// logger back up with FromContext.
package logger
