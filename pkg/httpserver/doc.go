// Package httpserver runs an HTTP handler with graceful shutdown and
// provides liveness and readiness probe handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, handler); err != nil {
//		return err
//	}
//
// Run returns when ctx is cancelled or the process receives SIGINT or
// SIGTERM, after in-flight requests finished or the shutdown timeout passed.
package httpserver
