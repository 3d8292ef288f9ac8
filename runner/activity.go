package runner

import (
	"context"
	"io"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/pganalyze/session-collector/config"
	"github.com/pganalyze/session-collector/input"
	"github.com/pganalyze/session-collector/output"
	"github.com/pganalyze/session-collector/state"
	"github.com/pganalyze/session-collector/util"
)

// Replaced in tests
var establishConnection = input.EstablishConnection

func processSessionsForServer(ctx context.Context, server config.ServerConfig, logger *util.Logger) (state.SessionList, error) {
	connection, err := establishConnection(ctx, server, logger)
	if err != nil {
		return state.SessionList{}, err
	}
	defer connection.Close()

	return collectSessions(ctx, server, connection, logger)
}

func collectSessions(ctx context.Context, server config.ServerConfig, connection *sqlx.DB, logger *util.Logger) (state.SessionList, error) {
	list, err := input.CollectSessions(ctx, server, connection, logger)
	if err != nil {
		return list, errors.Wrap(err, "error collecting sessions")
	}

	logger.PrintVerbose("Collected %d sessions", len(list.Sessions))

	return list, nil
}

// CollectSessionsFromAllServers - Collects sessions from all servers and writes them to w
func CollectSessionsFromAllServers(ctx context.Context, servers []config.ServerConfig, format string, w io.Writer, logger *util.Logger) (allSuccessful bool) {
	var wg sync.WaitGroup
	var mutex sync.Mutex

	allSuccessful = true

	for _, server := range servers {
		if server.DisableSessions {
			logger.WithPrefix(server.SectionName).PrintVerbose("Session collection disabled, skipping")
			continue
		}

		wg.Add(1)
		go func(server config.ServerConfig) {
			defer wg.Done()
			prefixedLogger := logger.WithPrefix(server.SectionName)

			list, err := processSessionsForServer(ctx, server, prefixedLogger)
			if err == nil {
				mutex.Lock()
				err = output.WriteSessions(w, list, format)
				mutex.Unlock()
				if err != nil {
					err = errors.Wrap(err, "failed to write sessions")
				}
			}

			if err != nil {
				prefixedLogger.PrintError("Could not collect sessions for server: %s", err)
				mutex.Lock()
				allSuccessful = false
				mutex.Unlock()
			}
		}(server)
	}

	wg.Wait()

	return
}
