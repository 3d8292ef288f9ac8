package input_test

import (
	"context"
	"database/sql/driver"
	"io"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v3"

	"github.com/pganalyze/session-collector/config"
	"github.com/pganalyze/session-collector/input"
	"github.com/pganalyze/session-collector/input/oracle"
	"github.com/pganalyze/session-collector/input/postgres"
	"github.com/pganalyze/session-collector/state"
	"github.com/pganalyze/session-collector/util"
)

var collectSessionsTests = []struct {
	server   config.ServerConfig
	query    string
	columns  []string
	values   []driver.Value
	expected state.Session
}{
	{
		config.ServerConfig{SectionName: "erp", DbDriver: config.DriverOracle, QueryTimeout: 5},
		oracle.QueryMarkerSQL + oracle.DefaultSessionsSQL,
		[]string{"SID", "EVENT"},
		[]driver.Value{int64(42), "SQL*Net message from client"},
		state.OracleSession{SessionID: 42, WaitEvent: null.StringFrom("SQL*Net message from client")},
	},
	{
		config.ServerConfig{SectionName: "web", DbDriver: config.DriverPostgres, SessionQuery: "SELECT pid, wait_event FROM pg_stat_activity"},
		postgres.QueryMarkerSQL + "SELECT pid, wait_event FROM pg_stat_activity",
		[]string{"pid", "wait_event"},
		[]driver.Value{int64(4711), "ClientRead"},
		state.PostgresBackend{Pid: 4711, WaitEvent: null.StringFrom("ClientRead")},
	},
}

func TestCollectSessions(t *testing.T) {
	logger := util.NewLogger(io.Discard, false, false)

	for _, test := range collectSessionsTests {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to create sqlmock: %s", err)
		}

		rows := sqlmock.NewRows(test.columns).AddRow(test.values...)
		mock.ExpectQuery(regexp.QuoteMeta(test.query)).WillReturnRows(rows)

		list, err := input.CollectSessions(context.Background(), test.server, sqlx.NewDb(db, "sqlmock"), logger)
		db.Close()
		if err != nil {
			t.Errorf("%s: unexpected error: %s", test.server.SectionName, err)
			continue
		}

		if list.Server != test.server.SectionName || list.Backend != test.server.DbDriver || list.CollectedAt.IsZero() {
			t.Errorf("%s: unexpected list metadata %+v", test.server.SectionName, list)
		}
		if len(list.Sessions) != 1 || list.Sessions[0].Key() != test.expected.Key() {
			t.Errorf("%s: expected [%s], got %v", test.server.SectionName, test.expected, list.Sessions)
		}
	}
}

func TestCollectSessionsUnsupportedDriver(t *testing.T) {
	logger := util.NewLogger(io.Discard, false, false)
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %s", err)
	}
	defer db.Close()

	_, err = input.CollectSessions(context.Background(), config.ServerConfig{DbDriver: "db2"}, sqlx.NewDb(db, "sqlmock"), logger)
	if err == nil {
		t.Errorf("expected an error for an unsupported driver")
	}
}
