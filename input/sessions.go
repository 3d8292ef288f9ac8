package input

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pganalyze/session-collector/config"
	"github.com/pganalyze/session-collector/input/oracle"
	"github.com/pganalyze/session-collector/input/postgres"
	"github.com/pganalyze/session-collector/state"
	"github.com/pganalyze/session-collector/util"
)

// CollectSessions - Reads all sessions of the server through db, using the
// decoder that matches the configured driver
func CollectSessions(ctx context.Context, server config.ServerConfig, db *sqlx.DB, logger *util.Logger) (state.SessionList, error) {
	var sessions []state.Session

	if server.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(server.QueryTimeout)*time.Second)
		defer cancel()
	}

	switch server.DbDriver {
	case config.DriverOracle:
		oracleSessions, err := oracle.GetSessions(ctx, logger, db, server.SessionQuery)
		if err != nil {
			return state.SessionList{}, err
		}
		for _, s := range oracleSessions {
			sessions = append(sessions, s)
		}
	case config.DriverPostgres:
		backends, err := postgres.GetBackends(ctx, logger, db, server.SessionQuery)
		if err != nil {
			return state.SessionList{}, err
		}
		for _, b := range backends {
			sessions = append(sessions, b)
		}
	default:
		return state.SessionList{}, fmt.Errorf("Unsupported db_driver \"%s\"", server.DbDriver)
	}

	return state.NewSessionList(server.SectionName, server.DbDriver, time.Now(), sessions), nil
}
