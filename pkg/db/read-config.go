package db

import (
	"fmt"
	"log/slog"
)

// DBConfigFromYamlObj builds the connection config from the yaml block.
// Credentials are expected to be filled in already (from the file or from the
// environment override in the service's init).
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	if yamlObj.ConnectionStr == "" || yamlObj.Username == "" || yamlObj.Password == "" {
		slog.Error("couldn't read DB credentials")
		panic("couldn't read DB credentials")
	}

	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)

	return DBConfig{
		URI:              uri,
		Timeout:          yamlObj.Timeout,
		IdleConnTimeout:  yamlObj.IdleConnTimeout,
		MaxPoolSize:      uint64(yamlObj.MaxPoolSize),
		NoCursorTimeout:  yamlObj.UseNoCursorTimeout,
		DBNamePrefix:     yamlObj.DBNamePrefix,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}
