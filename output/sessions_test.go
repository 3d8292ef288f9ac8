package output_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kylelemons/godebug/pretty"
	"gopkg.in/guregu/null.v3"

	"github.com/pganalyze/session-collector/output"
	"github.com/pganalyze/session-collector/state"
)

var testList = state.SessionList{
	ID:          uuid.MustParse("6f1c3f4e-8d2a-4f57-9f0e-3b1d2c4a5e6f"),
	Server:      "erp",
	Backend:     "oracle",
	CollectedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	Sessions: []state.Session{
		state.OracleSession{SessionID: 42, WaitEvent: null.StringFrom("SQL*Net message from client"), SQLText: null.StringFrom("SELECT 1")},
		state.OracleSession{SessionID: 7},
	},
}

func TestWriteSessionsText(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteSessions(&buf, testList, output.FormatText); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	expected := "# erp (oracle) at 2024-05-01T10:00:00Z: 2 sessions [6f1c3f4e-8d2a-4f57-9f0e-3b1d2c4a5e6f]\n" +
		"42 - SQL*Net message from client\n" +
		"7\n"
	if buf.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestWriteSessionsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteSessions(&buf, testList, output.FormatJSON); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	var actual struct {
		ID       string                   `json:"id"`
		Server   string                   `json:"server"`
		Sessions []map[string]interface{} `json:"sessions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &actual); err != nil {
		t.Fatalf("invalid JSON %q: %s", buf.String(), err)
	}

	if actual.ID != testList.ID.String() || actual.Server != "erp" || len(actual.Sessions) != 2 {
		t.Fatalf("unexpected document %+v", actual)
	}

	first := map[string]interface{}{
		"session_id": float64(42),
		"wait_event": "SQL*Net message from client",
		"sql_text":   "SELECT 1",
		"sql_id":     nil,
		"logon_time": nil,
		"block_gets": float64(0),
	}
	for key, want := range first {
		if diff := pretty.Compare(actual.Sessions[0][key], want); diff != "" {
			t.Errorf("%s: diff: (-got +want)\n%s", key, diff)
		}
	}
}

func TestWriteSessionsUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteSessions(&buf, testList, "xml"); err == nil {
		t.Errorf("expected an error for an unsupported format")
	}
}
