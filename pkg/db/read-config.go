package db

import (
	"fmt"
)

// DBConfigFromYamlObj turns the yaml config (credentials already overridden
// from env where applicable) into the connection config the DB services use.
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	URI := yamlObj.ConnectionStr
	if yamlObj.Username != "" || yamlObj.Password != "" {
		URI = fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	}

	timeout := yamlObj.Timeout
	if timeout <= 0 {
		timeout = 30
	}
	idleConnTimeout := yamlObj.IdleConnTimeout
	if idleConnTimeout <= 0 {
		idleConnTimeout = 45
	}
	maxPoolSize := yamlObj.MaxPoolSize
	if maxPoolSize <= 0 {
		maxPoolSize = 8
	}

	return DBConfig{
		URI:              URI,
		Timeout:          timeout,
		IdleConnTimeout:  idleConnTimeout,
		MaxPoolSize:      uint64(maxPoolSize),
		DBNamePrefix:     yamlObj.DBNamePrefix,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}
