package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-ini/ini"

	"github.com/pganalyze/session-collector/util"
)

const DefaultConfigFile = "/etc/session-collector.conf"

// Settings in this section apply to all servers, it doesn't describe a server itself
const globalSectionName = "session-collector"

func getDefaultConfig() *ServerConfig {
	config := &ServerConfig{
		DbDriver:     DriverOracle,
		SectionName:  "default",
		QueryTimeout: 30,
	}

	// The environment variables are the default way to configure when running inside a container.
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		config.DbDriver = dbDriver
	}
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		config.DbURL = dbURL
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		config.DbName = dbName
	}
	if dbUsername := os.Getenv("DB_USERNAME"); dbUsername != "" {
		config.DbUsername = dbUsername
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		config.DbPassword = dbPassword
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		config.DbHost = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		config.DbPort, _ = strconv.Atoi(dbPort)
	}
	if dbSslMode := os.Getenv("DB_SSLMODE"); dbSslMode != "" {
		config.DbSslMode = dbSslMode
	}
	if sessionQuery := os.Getenv("SESSION_QUERY"); sessionQuery != "" {
		config.SessionQuery = sessionQuery
	}
	if queryTimeout := os.Getenv("QUERY_TIMEOUT"); queryTimeout != "" {
		config.QueryTimeout, _ = strconv.Atoi(queryTimeout)
	}

	return config
}

func validateConfig(config *ServerConfig) error {
	if config.DbDriver != DriverOracle && config.DbDriver != DriverPostgres {
		return fmt.Errorf("Config section %s: unsupported db_driver \"%s\" (expected %s or %s)", config.SectionName, config.DbDriver, DriverOracle, DriverPostgres)
	}
	if config.QueryTimeout < 0 {
		return fmt.Errorf("Config section %s: query_timeout must not be negative", config.SectionName)
	}
	return nil
}

func hasConnectionInfo(config *ServerConfig) bool {
	return config.DbURL != "" || config.DbHost != ""
}

func Read(logger *util.Logger, filename string) (Config, error) {
	var conf Config
	var err error

	if _, err = os.Stat(filename); err == nil {
		configFile, err := ini.Load(filename)
		if err != nil {
			return conf, err
		}

		defaultConfig := getDefaultConfig()
		var dsns []string

		err = configFile.Section(globalSectionName).MapTo(defaultConfig)
		if err != nil {
			logger.PrintVerbose("Failed to map %s section: %s", globalSectionName, err)
		}

		for _, section := range configFile.Sections() {
			if section.Name() == ini.DefaultSection || section.Name() == globalSectionName {
				continue
			}

			config := &ServerConfig{}
			*config = *defaultConfig

			err = section.MapTo(config)
			if err != nil {
				return conf, err
			}
			config.SectionName = section.Name()

			if !hasConnectionInfo(config) {
				logger.PrintWarning("Skipping config section %s, no db_url or db_host set", config.SectionName)
				continue
			}

			err = validateConfig(config)
			if err != nil {
				return conf, err
			}

			// Ensure we don't collect the same server twice
			dsn, _ := config.GetDataSourceName()
			if util.SliceContains(dsns, dsn) {
				logger.PrintError("Skipping config section %s, detected as duplicate", config.SectionName)
			} else {
				dsns = append(dsns, dsn)
				conf.Servers = append(conf.Servers, *config)
			}
		}

		if len(conf.Servers) == 0 {
			return conf, fmt.Errorf("Configuration file is empty, please edit %s and add a server section", filename)
		}
	} else {
		config := getDefaultConfig()
		if !hasConnectionInfo(config) {
			return conf, fmt.Errorf("No configuration file found at %s, and no environment variables set", filename)
		}
		err = validateConfig(config)
		if err != nil {
			return conf, err
		}
		conf.Servers = append(conf.Servers, *config)
	}

	return conf, nil
}
