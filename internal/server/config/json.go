package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/umeduck/quack-note/internal/flagx"
	"github.com/umeduck/quack-note/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	ServerAddress      string         `json:"server_address"`
	AWSRegion          string         `json:"aws_region"`
	CognitoUserPoolID  string         `json:"cognito_user_pool_id"`
	CognitoClientID    string         `json:"cognito_client_id"`
	DynamoDBUsersTable string         `json:"dynamodb_users_table"`
	DynamoDBEndpoint   string         `json:"dynamodb_endpoint"`
	AWSCallTimeout     timex.Duration `json:"aws_call_timeout"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags. If
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerAddress = c.ServerAddress
	config.AWSRegion = c.AWSRegion
	config.CognitoUserPoolID = c.CognitoUserPoolID
	config.CognitoClientID = c.CognitoClientID
	config.DynamoDBUsersTable = c.DynamoDBUsersTable
	config.DynamoDBEndpoint = c.DynamoDBEndpoint
	config.AWSCallTimeout = time.Duration(c.AWSCallTimeout.Duration)
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
}
