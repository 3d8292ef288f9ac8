package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pganalyze/session-collector/state"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// WriteSessions - Writes one collected session list to w
//
// The "json" format writes the full snapshots as a single JSON document per
// line, "text" writes a header followed by the display label of each session.
func WriteSessions(w io.Writer, list state.SessionList, format string) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(list)
	case FormatText:
		return writeSessionsText(w, list)
	}

	return fmt.Errorf("Unsupported output format \"%s\" (expected %s or %s)", format, FormatJSON, FormatText)
}

func writeSessionsText(w io.Writer, list state.SessionList) error {
	_, err := fmt.Fprintf(w, "# %s (%s) at %s: %d sessions [%s]\n", list.Server, list.Backend, list.CollectedAt.UTC().Format(time.RFC3339), len(list.Sessions), list.ID)
	if err != nil {
		return err
	}

	for _, s := range list.Sessions {
		_, err = fmt.Fprintln(w, s.String())
		if err != nil {
			return err
		}
	}

	return nil
}
