// Package logger builds context-aware slog loggers for the request pipeline.
//
// New returns a *slog.Logger configured by functional options: output
// format (text or json), minimum level, static attributes and
// ContextExtractor callbacks that pull request-scoped values (request id,
// application id, session id) out of context.Context on every record.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "spindle"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "request dispatched", logger.Route("common/home"))
//
// Attribute helpers in attr.go keep key names consistent across packages.
package logger
