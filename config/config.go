package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"
)

const (
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
)

type Config struct {
	Servers []ServerConfig
}

// ServerConfig -
//   Contains the information how to connect to a database server whose
//   sessions should be collected
type ServerConfig struct {
	// Either "oracle" (default) or "postgres"
	DbDriver string `ini:"db_driver"`

	DbURL      string `ini:"db_url"`
	DbName     string `ini:"db_name"` // service name for Oracle
	DbUsername string `ini:"db_username"`
	DbPassword string `ini:"db_password"`
	DbHost     string `ini:"db_host"`
	DbPort     int    `ini:"db_port"`
	DbSslMode  string `ini:"db_sslmode"` // Postgres only

	// Replaces the built-in session query. The result columns need to be named
	// like the ones of the built-in query, missing columns are left empty.
	SessionQuery string `ini:"session_query"`

	DisableSessions bool `ini:"disable_sessions"`

	// Statement timeout in seconds for the session query
	QueryTimeout int `ini:"query_timeout"`

	SectionName string
}

// GetDataSourceName - Connection string for the configured driver, as
// accepted by sql.Open
func (config ServerConfig) GetDataSourceName() (string, error) {
	switch config.DbDriver {
	case DriverOracle:
		return config.GetOracleURL(), nil
	case DriverPostgres:
		return config.GetPqOpenString(), nil
	}

	return "", fmt.Errorf("Unsupported db_driver \"%s\" (expected %s or %s)", config.DbDriver, DriverOracle, DriverPostgres)
}

// GetOracleURL - Gets the database configuration as an URL that can be passed to go-ora for connecting
func (config ServerConfig) GetOracleURL() string {
	if config.DbURL != "" && config.DbHost == "" && config.DbUsername == "" && config.DbPassword == "" && config.DbPort == 0 && config.DbName == "" {
		return config.DbURL
	}

	dbHost := config.GetDbHost()
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := config.GetDbPort()
	if dbPort == 0 {
		dbPort = 1521
	}

	var dbPassword string
	if config.DbURL != "" {
		if u, err := url.Parse(config.DbURL); err == nil && u.User != nil {
			dbPassword, _ = u.User.Password()
		}
	}
	if config.DbPassword != "" {
		dbPassword = config.DbPassword
	}

	return go_ora.BuildUrl(dbHost, dbPort, config.GetDbName(), config.GetDbUsername(), dbPassword, nil)
}

// GetPqOpenString - Gets the database configuration as a string that can be passed to lib/pq for connecting
func (config ServerConfig) GetPqOpenString() string {
	var dbPassword, dbSslMode string

	if config.DbURL != "" {
		u, _ := url.Parse(config.DbURL)

		if u != nil && u.User != nil {
			dbPassword, _ = u.User.Password()
		}

		if u != nil {
			dbSslMode = u.Query().Get("sslmode")
		}
	}

	if config.DbPassword != "" {
		dbPassword = config.DbPassword
	}
	if config.DbSslMode != "" {
		dbSslMode = config.DbSslMode
	}

	dbHost := config.GetDbHost()
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := config.GetDbPort()
	if dbPort == 0 {
		dbPort = 5432
	}

	// lib/pq has no notion of "prefer", require SSL unless told otherwise
	if dbSslMode == "" || dbSslMode == "prefer" {
		dbSslMode = "require"
	}

	dbinfo := []string{}
	if dbUsername := config.GetDbUsername(); dbUsername != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("user='%s'", escapeConnValue(dbUsername)))
	}
	if dbPassword != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("password='%s'", escapeConnValue(dbPassword)))
	}
	if dbName := config.GetDbName(); dbName != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("dbname='%s'", escapeConnValue(dbName)))
	}
	dbinfo = append(dbinfo, fmt.Sprintf("host='%s'", escapeConnValue(dbHost)))
	dbinfo = append(dbinfo, fmt.Sprintf("port=%d", dbPort))
	dbinfo = append(dbinfo, fmt.Sprintf("sslmode=%s", dbSslMode))
	dbinfo = append(dbinfo, "application_name='session-collector'")
	dbinfo = append(dbinfo, "connect_timeout=10")

	return strings.Join(dbinfo, " ")
}

func escapeConnValue(s string) string {
	return strings.Replace(strings.Replace(s, "\\", "\\\\", -1), "'", "\\'", -1)
}

// GetDbHost - Gets the database hostname from the given configuration
func (config ServerConfig) GetDbHost() string {
	if config.DbHost != "" {
		return config.DbHost
	}

	if config.DbURL != "" {
		if u, err := url.Parse(config.DbURL); err == nil {
			return u.Hostname()
		}
	}

	return ""
}

// GetDbPort - Gets the database port from the given configuration
func (config ServerConfig) GetDbPort() int {
	if config.DbPort != 0 {
		return config.DbPort
	}

	if config.DbURL != "" {
		if u, err := url.Parse(config.DbURL); err == nil {
			port, _ := strconv.Atoi(u.Port())
			return port
		}
	}

	return 0
}

// GetDbUsername - Gets the database username from the given configuration
func (config ServerConfig) GetDbUsername() string {
	if config.DbUsername != "" {
		return config.DbUsername
	}

	if config.DbURL != "" {
		if u, err := url.Parse(config.DbURL); err == nil && u.User != nil {
			return u.User.Username()
		}
	}

	return ""
}

// GetDbName - Gets the database name (Oracle: service name) from the given configuration
func (config ServerConfig) GetDbName() string {
	if config.DbName != "" {
		return config.DbName
	}

	if config.DbURL != "" {
		if u, err := url.Parse(config.DbURL); err == nil && len(u.Path) > 1 {
			return u.Path[1:]
		}
	}

	return ""
}
