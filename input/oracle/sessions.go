package oracle

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/pganalyze/session-collector/input/row"
	"github.com/pganalyze/session-collector/state"
	"github.com/pganalyze/session-collector/util"
)

// QueryMarkerSQL - Marks statements issued by the collector so they can be
// told apart (and filtered) in V$SQL
const QueryMarkerSQL = "/* session-collector */ "

// https://docs.oracle.com/en/database/oracle/oracle-database/19/refrn/GV-SESSION.html
const DefaultSessionsSQL string = `SELECT s.INST_ID, s.SID, s.SERIAL#, s.USERNAME, s.SCHEMANAME, s.TYPE, s.STATUS, s.STATE,
       s.SQL_ID, s.SQL_CHILD_NUMBER, sq.SQL_FULLTEXT, s.LAST_CALL_ET, s.LOGON_TIME, s.SERVICE_NAME,
       s.SERVER, s.MACHINE, s.OSUSER, s.PROGRAM, s.MODULE, s.ACTION, s.CLIENT_INFO, s.PROCESS,
       io.BLOCK_GETS, io.CONSISTENT_GETS, io.PHYSICAL_READS, io.BLOCK_CHANGES, io.CONSISTENT_CHANGES,
       s.EVENT, s.SECONDS_IN_WAIT
  FROM GV$SESSION s
  LEFT JOIN GV$SQL sq ON (sq.INST_ID = s.INST_ID AND sq.SQL_ID = s.SQL_ID AND sq.CHILD_NUMBER = s.SQL_CHILD_NUMBER)
  LEFT JOIN GV$SESS_IO io ON (io.INST_ID = s.INST_ID AND io.SID = s.SID)
 WHERE s.SID <> SYS_CONTEXT('USERENV', 'SID')`

// DecodeSession - Builds a session snapshot from one GV$SESSION row
//
// Missing or NULL columns leave the field at its zero value. Errors from the
// accessor (coercion failures, broken cursors) are returned unchanged and no
// partial snapshot is returned with them.
func DecodeSession(r row.Accessor) (state.OracleSession, error) {
	var s state.OracleSession

	rd := row.NewReader(r)
	s.InstanceID = rd.Int64("INST_ID")
	s.SessionID = rd.Int64("SID")
	s.SerialNumber = rd.Int64("SERIAL#")
	s.User = rd.String("USERNAME")
	s.Schema = rd.String("SCHEMANAME")
	s.Type = rd.String("TYPE")
	s.Status = rd.String("STATUS")
	s.State = rd.String("STATE")
	s.SQLID = rd.String("SQL_ID")
	s.SQLChildNumber = rd.Int64("SQL_CHILD_NUMBER")
	s.SQLText = rd.String("SQL_FULLTEXT")
	s.ElapsedTimeMs = rd.Int64("LAST_CALL_ET")
	s.LogonTime = rd.Time("LOGON_TIME")
	s.ServiceName = rd.String("SERVICE_NAME")

	s.Server = rd.String("SERVER")
	s.RemoteHost = rd.String("MACHINE")
	s.RemoteUser = rd.String("OSUSER")
	s.RemoteProgram = rd.String("PROGRAM")
	s.Module = rd.String("MODULE")
	s.Action = rd.String("ACTION")
	s.ClientInfo = rd.String("CLIENT_INFO")
	s.OsProcessID = rd.String("PROCESS")

	s.BlockGets = rd.Int64("BLOCK_GETS")
	s.ConsistentGets = rd.Int64("CONSISTENT_GETS")
	s.PhysicalReads = rd.Int64("PHYSICAL_READS")
	s.BlockChanges = rd.Int64("BLOCK_CHANGES")
	s.ConsistentChanges = rd.Int64("CONSISTENT_CHANGES")

	s.WaitEvent = rd.String("EVENT")
	s.SecondsInWait = rd.Int64("SECONDS_IN_WAIT")

	if err := rd.Err(); err != nil {
		return state.OracleSession{}, err
	}

	return s, nil
}

// GetSessions - Runs the session query (DefaultSessionsSQL if query is empty)
// and decodes every row, in the order the database returned them
func GetSessions(ctx context.Context, logger *util.Logger, db *sqlx.DB, query string) ([]state.OracleSession, error) {
	if query == "" {
		query = DefaultSessionsSQL
	}

	rows, err := db.QueryxContext(ctx, QueryMarkerSQL+query)
	if err != nil {
		return nil, errors.Wrap(err, "OracleSessions/Query")
	}
	defer rows.Close()

	var sessions []state.OracleSession
	err = row.Each(rows, func(r row.Accessor) error {
		s, err := DecodeSession(r)
		if err != nil {
			return err
		}
		sessions = append(sessions, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.PrintVerbose("Decoded %d Oracle sessions", len(sessions))

	return sessions, nil
}
