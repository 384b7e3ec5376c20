// Package redis connects to Redis and exposes it as the session key-value
// store.
//
// Connect parses a redis:// URL and pings the server with retries:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewStoreFromConfig(client, cfg)
//	sessions, err := session.New(store, cookies)
//
// Store maps a missing key to (nil, nil) and passes TTLs straight to SET.
// Store.Healthcheck can be mounted as an httpserver readiness check.
// Errors are sentinel values joined with the driver error, so errors.Is
// works on both.
package redis
