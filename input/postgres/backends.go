package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"github.com/pganalyze/session-collector/input/row"
	"github.com/pganalyze/session-collector/state"
	"github.com/pganalyze/session-collector/util"
)

const QueryMarkerSQL = "/* session-collector */ "

// https://www.postgresql.org/docs/current/monitoring-stats.html#MONITORING-PG-STAT-ACTIVITY-VIEW
//
// query_id requires Postgres 14, use a query override without it on older servers
const DefaultBackendsSQL string = `SELECT pid, datname, usename, application_name, client_addr::text, backend_start,
       xact_start, query_start, state_change, wait_event_type, wait_event, backend_type, state, query,
       query_id
  FROM pg_stat_activity
 WHERE pid <> pg_backend_pid()`

// DecodeBackend - Builds a backend snapshot from one pg_stat_activity row,
// following the same missing-column and error rules as the Oracle decoder
func DecodeBackend(r row.Accessor) (state.PostgresBackend, error) {
	var b state.PostgresBackend

	rd := row.NewReader(r)
	b.Pid = rd.Int64("pid")
	b.DatabaseName = rd.String("datname")
	b.Username = rd.String("usename")
	b.ApplicationName = rd.String("application_name")
	b.ClientAddr = rd.String("client_addr")
	b.BackendStart = rd.Time("backend_start")
	b.XactStart = rd.Time("xact_start")
	b.QueryStart = rd.Time("query_start")
	b.StateChange = rd.Time("state_change")
	b.WaitEventType = rd.String("wait_event_type")
	b.WaitEvent = rd.String("wait_event")
	b.BackendType = rd.String("backend_type")
	b.State = rd.String("state")
	b.Query = rd.String("query")
	b.QueryID = rd.String("query_id")

	if err := rd.Err(); err != nil {
		return state.PostgresBackend{}, err
	}

	return b, nil
}

func GetBackends(ctx context.Context, logger *util.Logger, db *sqlx.DB, query string) ([]state.PostgresBackend, error) {
	if query == "" {
		query = DefaultBackendsSQL
	}

	rows, err := db.QueryxContext(ctx, QueryMarkerSQL+query)
	if err != nil {
		return nil, errors.Wrap(err, "Backends/Query")
	}
	defer rows.Close()

	var backends []state.PostgresBackend
	err = row.Each(rows, func(r row.Accessor) error {
		b, err := DecodeBackend(r)
		if err != nil {
			return err
		}
		if b.Query.Valid && b.Query.String == "<insufficient privilege>" {
			b.Query = null.String{}
		}
		backends = append(backends, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.PrintVerbose("Decoded %d Postgres backends", len(backends))

	return backends, nil
}
