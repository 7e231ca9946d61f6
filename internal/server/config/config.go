// Package config handles configuration for the server component,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the QuackNote server.
//
// Fields:
//   - ServerAddress: bind address for the public HTTP endpoint.
//   - AWSRegion: region for the Cognito and DynamoDB clients.
//   - CognitoUserPoolID / CognitoClientID: hosted user pool coordinates.
//     When either is empty the server falls back to in-memory stand-ins,
//     which is only useful for local development.
//   - DynamoDBUsersTable: table holding accounts and user settings.
//   - DynamoDBEndpoint: override endpoint for a local DynamoDB.
//   - AWSCallTimeout: per-call deadline for AWS requests.
//   - ShutdownTimeout: grace period for draining in-flight HTTP requests.
type Config struct {
	ServerAddress      string
	AWSRegion          string
	CognitoUserPoolID  string
	CognitoClientID    string
	DynamoDBUsersTable string
	DynamoDBEndpoint   string
	AWSCallTimeout     time.Duration
	ShutdownTimeout    time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: The empty Cognito coordinates select the in-memory provider and
// must be overridden in any real deployment.
func (c *Config) LoadDefaults() {
	c.ServerAddress = ":8080"
	c.AWSRegion = "ap-northeast-1"
	c.CognitoUserPoolID = ""
	c.CognitoClientID = ""
	c.DynamoDBUsersTable = "dev_quacknote_users"
	c.DynamoDBEndpoint = ""
	c.AWSCallTimeout = 5 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables, an optional JSON file, and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
