package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/pganalyze/session-collector/config"
	"github.com/pganalyze/session-collector/output"
	"github.com/pganalyze/session-collector/util"
)

func stubConnections(t *testing.T, setup map[string]func(sqlmock.Sqlmock)) {
	t.Helper()

	original := establishConnection
	t.Cleanup(func() { establishConnection = original })

	establishConnection = func(ctx context.Context, server config.ServerConfig, logger *util.Logger) (*sqlx.DB, error) {
		fn, ok := setup[server.SectionName]
		if !ok {
			return nil, errors.New("connection refused")
		}
		db, mock, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		fn(mock)
		return sqlx.NewDb(db, "sqlmock"), nil
	}
}

func TestCollectSessionsFromAllServers(t *testing.T) {
	stubConnections(t, map[string]func(sqlmock.Sqlmock){
		"erp": func(mock sqlmock.Sqlmock) {
			mock.ExpectQuery("GV\\$SESSION").WillReturnRows(
				sqlmock.NewRows([]string{"SID", "EVENT"}).AddRow(int64(42), "SQL*Net message from client"))
		},
	})

	servers := []config.ServerConfig{
		{SectionName: "erp", DbDriver: config.DriverOracle},
		{SectionName: "disabled", DbDriver: config.DriverOracle, DisableSessions: true},
	}

	var buf bytes.Buffer
	logger := util.NewLogger(io.Discard, false, false)
	if !CollectSessionsFromAllServers(context.Background(), servers, output.FormatText, &buf, logger) {
		t.Fatalf("expected collection to succeed")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "# erp (oracle)") || lines[1] != "42 - SQL*Net message from client" {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestCollectSessionsFromAllServersFailure(t *testing.T) {
	stubConnections(t, map[string]func(sqlmock.Sqlmock){
		"web": func(mock sqlmock.Sqlmock) {
			mock.ExpectQuery("pg_stat_activity").WillReturnRows(
				sqlmock.NewRows([]string{"pid", "backend_start"}).AddRow(int64(1), "not a timestamp"))
		},
	})

	servers := []config.ServerConfig{
		{SectionName: "web", DbDriver: config.DriverPostgres},
		{SectionName: "unreachable", DbDriver: config.DriverPostgres},
	}

	var buf, logs bytes.Buffer
	logger := util.NewLogger(&logs, false, false)
	if CollectSessionsFromAllServers(context.Background(), servers, output.FormatJSON, &buf, logger) {
		t.Fatalf("expected collection to fail")
	}

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
	if logger.ErrorCount() != 2 {
		t.Errorf("expected 2 errors to be logged, got %d:\n%s", logger.ErrorCount(), logs.String())
	}
	if !strings.Contains(logs.String(), "[web] Could not collect sessions for server: error collecting sessions: column backend_start") {
		t.Errorf("expected coercion failure to be logged, got:\n%s", logs.String())
	}
}
