package state

import "gopkg.in/guregu/null.v3"

// OracleSession - Oracle server session as seen in GV$SESSION (joined with
// the SQL text and session IO counters), captured at one point in time
type OracleSession struct {
	InstanceID   int64 `json:"instance_id"`
	SessionID    int64 `json:"session_id"`
	SerialNumber int64 `json:"serial_number"`

	SQLChildNumber int64       `json:"sql_child_number"`
	SQLID          null.String `json:"sql_id"`
	SQLText        null.String `json:"sql_text"`

	User          null.String `json:"user"`
	Schema        null.String `json:"schema"`
	Type          null.String `json:"type"`
	Status        null.String `json:"status"`
	State         null.String `json:"state"`
	ElapsedTimeMs int64       `json:"elapsed_time_ms"` // LAST_CALL_ET
	LogonTime     null.Time   `json:"logon_time"`
	ServiceName   null.String `json:"service_name"`

	Server        null.String `json:"server"`
	RemoteHost    null.String `json:"remote_host"`
	RemoteUser    null.String `json:"remote_user"`
	RemoteProgram null.String `json:"remote_program"`
	Module        null.String `json:"module"`
	Action        null.String `json:"action"`
	ClientInfo    null.String `json:"client_info"`
	OsProcessID   null.String `json:"os_process_id"`

	// IO counters, copied as reported (not clamped)
	BlockGets         int64 `json:"block_gets"`
	ConsistentGets    int64 `json:"consistent_gets"`
	PhysicalReads     int64 `json:"physical_reads"`
	BlockChanges      int64 `json:"block_changes"`
	ConsistentChanges int64 `json:"consistent_changes"`

	WaitEvent     null.String `json:"wait_event"`
	SecondsInWait int64       `json:"seconds_in_wait"`
}

// Key - Snapshots are the same session in the same wait state if their keys
// match, regardless of counters or any other field
func (s OracleSession) Key() SessionKey {
	return newSessionKey(s.SessionID, s.WaitEvent)
}

func (s OracleSession) Equal(other OracleSession) bool {
	return s.Key() == other.Key()
}

func (s OracleSession) ActiveQuery() null.String {
	return s.SQLText
}

// ActiveQueryID - SQL_ID, correlates the session with the cursor cache
func (s OracleSession) ActiveQueryID() null.String {
	return s.SQLID
}

func (s OracleSession) String() string {
	return sessionLabel(s.Key())
}

// OracleSessionFields - Display metadata for every OracleSession field, in
// declaration order
var OracleSessionFields = []FieldInfo{
	{Name: "InstanceID", Column: "INST_ID", Category: CategorySession, Order: 1},
	{Name: "SessionID", Column: "SID", Category: CategorySession, Order: 2, Viewable: true},
	{Name: "SerialNumber", Column: "SERIAL#", Category: CategorySession, Order: 3},
	{Name: "SQLChildNumber", Column: "SQL_CHILD_NUMBER", Category: CategorySQL, Order: 22},
	{Name: "SQLID", Column: "SQL_ID", Category: CategorySQL, Order: 21},
	{Name: "SQLText", Column: "SQL_FULLTEXT", Category: CategorySQL, Order: 20},
	{Name: "User", Column: "USERNAME", Category: CategorySession, Order: 4, Viewable: true},
	{Name: "Schema", Column: "SCHEMANAME", Category: CategorySession, Order: 5, Viewable: true},
	{Name: "Type", Column: "TYPE", Category: CategorySession, Order: 6, Viewable: true},
	{Name: "Status", Column: "STATUS", Category: CategorySession, Order: 7, Viewable: true},
	{Name: "State", Column: "STATE", Category: CategorySession, Order: 8, Viewable: true},
	{Name: "ElapsedTimeMs", Column: "LAST_CALL_ET", Category: CategorySession, Order: 9, Viewable: true},
	{Name: "LogonTime", Column: "LOGON_TIME", Category: CategorySession, Order: 10},
	{Name: "ServiceName", Column: "SERVICE_NAME", Category: CategorySession, Order: 11},
	{Name: "Server", Column: "SERVER", Category: CategoryProcess, Order: 30, Viewable: true},
	{Name: "RemoteHost", Column: "MACHINE", Category: CategoryProcess, Order: 30, Viewable: true},
	{Name: "RemoteUser", Column: "OSUSER", Category: CategoryProcess, Order: 31, Viewable: true},
	{Name: "RemoteProgram", Column: "PROGRAM", Category: CategoryProcess, Order: 32, Viewable: true},
	{Name: "Module", Column: "MODULE", Category: CategoryProcess, Order: 32},
	{Name: "Action", Column: "ACTION", Category: CategoryProcess, Order: 32},
	{Name: "ClientInfo", Column: "CLIENT_INFO", Category: CategoryProcess, Order: 32},
	{Name: "OsProcessID", Column: "PROCESS", Category: CategoryProcess, Order: 32},
	{Name: "BlockGets", Column: "BLOCK_GETS", Category: CategoryIO, Order: 70},
	{Name: "ConsistentGets", Column: "CONSISTENT_GETS", Category: CategoryIO, Order: 70},
	{Name: "PhysicalReads", Column: "PHYSICAL_READS", Category: CategoryIO, Order: 70},
	{Name: "BlockChanges", Column: "BLOCK_CHANGES", Category: CategoryIO, Order: 70},
	{Name: "ConsistentChanges", Column: "CONSISTENT_CHANGES", Category: CategoryIO, Order: 70},
	{Name: "WaitEvent", Column: "EVENT", Category: CategoryWait, Order: 41, Viewable: true},
	{Name: "SecondsInWait", Column: "SECONDS_IN_WAIT", Category: CategoryWait, Order: 42, Viewable: true},
}
