// Package logger provides structured logging for tinyioc using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("di")
//	log.Debug("service registered", logger.Fields(logger.FieldService, "*app.Mailer"))
package logger
