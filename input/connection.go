package input

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers "postgres"
	"github.com/pkg/errors"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"

	"github.com/pganalyze/session-collector/config"
	"github.com/pganalyze/session-collector/util"
)

// EstablishConnection - Opens a single connection pool for the server and
// verifies it is reachable
func EstablishConnection(ctx context.Context, server config.ServerConfig, logger *util.Logger) (*sqlx.DB, error) {
	dsn, err := server.GetDataSourceName()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(server.DbDriver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open connection")
	}

	// Session collection runs a single query, never hold more than one connection
	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	logger.PrintVerbose("Connected to %s server at %s", server.DbDriver, server.GetDbHost())

	return db, nil
}
