// Package pg manages PostgreSQL connection pools built on pgx.
//
// A Manager holds one lazily opened pgxpool.Pool per named connection.
// The first caller of Pool dials; concurrent callers wait on the same dial
// through singleflight. WithConn scopes a checked-out connection to a
// callback and always releases it:
//
//	db := pg.NewManager(map[string]pg.Config{pg.DefaultConnection: cfg})
//	defer db.Close()
//
//	err := db.WithConn(ctx, pg.DefaultConnection, func(ctx context.Context, conn *pgxpool.Conn) error {
//		_, err := conn.Exec(ctx, "SELECT 1")
//		return err
//	})
//
// Migrate applies goose migrations from a directory. Manager.Healthcheck is
// a readiness probe over every pool opened so far.
package pg
