// Package logsink adapts structured loggers to [rintercept.Logger], so interception failures and
// warnings end up in the application's log.
package logsink
