// Package spindle wires the request lifecycle engine into an http.Handler.
//
// Every request passes the same middleware chain: panic recovery, request
// id, client IP, application selection and a request timeout. Requests to
// "/" then open the session, build the CSRF guard and run the dispatcher,
// whose output is written by an HTTPSink.
//
//	resolver := route.NewResolver()
//	controllers.Register(resolver)
//
//	pipeline, err := spindle.LoadPipeline(cfg.PipelinePath)
//	if err != nil {
//		return err
//	}
//	app, err := spindle.New(cfg, pipeline, resolver, sessions,
//		spindle.WithLogger(log),
//		spindle.WithService(controllers.KeySettingsSource, repo),
//	)
//	if err != nil {
//		return err
//	}
//	return server.Run(ctx, app)
//
// The route is read from the "route" query parameter; requests without one
// dispatch the pipeline's default route.
package spindle
