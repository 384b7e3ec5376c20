package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/spindle/pkg/pg"
)

const (
	settingsQuery = `SELECT key, value FROM setting
WHERE application = '' OR application = $1
ORDER BY (application <> '')`

	eventsQuery = `SELECT trigger, route, priority FROM event
WHERE status AND (application = '' OR application = $1)
ORDER BY priority, id`
)

// Postgres reads settings and events through a named pg.Manager connection.
type Postgres struct {
	db   *pg.Manager
	conn string
}

func NewPostgres(db *pg.Manager, conn string) *Postgres {
	if conn == "" {
		conn = pg.DefaultConnection
	}
	return &Postgres{db: db, conn: conn}
}

func (p *Postgres) Settings(ctx context.Context, application string) (map[string]string, error) {
	out := make(map[string]string)
	err := p.db.WithConn(ctx, p.conn, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, settingsQuery, application)
		if err != nil {
			return err
		}
		var key, value string
		_, err = pgx.ForEachRow(rows, []any{&key, &value}, func() error {
			// shared rows sort first so application rows overwrite them
			out[key] = value
			return nil
		})
		return err
	})
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return out, nil
}

func (p *Postgres) Events(ctx context.Context, application string) ([]Event, error) {
	var out []Event
	err := p.db.WithConn(ctx, p.conn, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, eventsQuery, application)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[Event])
		return err
	})
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return out, nil
}
