package state

import "gopkg.in/guregu/null.v3"

// PostgresBackend - PostgreSQL server backend thats currently working, waiting
// or idling (also known as an open connection)
type PostgresBackend struct {
	Pid             int64       `json:"pid"`
	DatabaseName    null.String `json:"database_name"`
	Username        null.String `json:"username"`
	ApplicationName null.String `json:"application_name"`
	ClientAddr      null.String `json:"client_addr"`
	BackendStart    null.Time   `json:"backend_start"`
	XactStart       null.Time   `json:"xact_start"`
	QueryStart      null.Time   `json:"query_start"`
	StateChange     null.Time   `json:"state_change"`
	WaitEventType   null.String `json:"wait_event_type"`
	WaitEvent       null.String `json:"wait_event"`
	BackendType     null.String `json:"backend_type"`
	State           null.String `json:"state"`
	Query           null.String `json:"query"`
	QueryID         null.String `json:"query_id"` // Postgres 14+, NULL unless compute_query_id is active
}

func (b PostgresBackend) Key() SessionKey {
	return newSessionKey(b.Pid, b.WaitEvent)
}

func (b PostgresBackend) Equal(other PostgresBackend) bool {
	return b.Key() == other.Key()
}

func (b PostgresBackend) ActiveQuery() null.String {
	return b.Query
}

func (b PostgresBackend) ActiveQueryID() null.String {
	return b.QueryID
}

func (b PostgresBackend) String() string {
	return sessionLabel(b.Key())
}

var PostgresBackendFields = []FieldInfo{
	{Name: "Pid", Column: "pid", Category: CategorySession, Order: 1, Viewable: true},
	{Name: "DatabaseName", Column: "datname", Category: CategorySession, Order: 2, Viewable: true},
	{Name: "Username", Column: "usename", Category: CategorySession, Order: 3, Viewable: true},
	{Name: "ApplicationName", Column: "application_name", Category: CategoryProcess, Order: 30, Viewable: true},
	{Name: "ClientAddr", Column: "client_addr", Category: CategoryProcess, Order: 31, Viewable: true},
	{Name: "BackendStart", Column: "backend_start", Category: CategorySession, Order: 5},
	{Name: "XactStart", Column: "xact_start", Category: CategorySession, Order: 6},
	{Name: "QueryStart", Column: "query_start", Category: CategorySQL, Order: 22},
	{Name: "StateChange", Column: "state_change", Category: CategorySession, Order: 7},
	{Name: "WaitEventType", Column: "wait_event_type", Category: CategoryWait, Order: 40, Viewable: true},
	{Name: "WaitEvent", Column: "wait_event", Category: CategoryWait, Order: 41, Viewable: true},
	{Name: "BackendType", Column: "backend_type", Category: CategorySession, Order: 4},
	{Name: "State", Column: "state", Category: CategorySession, Order: 8, Viewable: true},
	{Name: "Query", Column: "query", Category: CategorySQL, Order: 20},
	{Name: "QueryID", Column: "query_id", Category: CategorySQL, Order: 21},
}
