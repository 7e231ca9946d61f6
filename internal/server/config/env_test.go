package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("COGNITO_USER_POOL_ID", "eu-west-1_pool")
	t.Setenv("COGNITO_CLIENT_ID", "client")
	t.Setenv("DYNAMODB_USERS_TABLE", "prod_quacknote_users")
	t.Setenv("DYNAMODB_ENDPOINT", "http://127.0.0.1:8000")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "eu-west-1_pool", cfg.CognitoUserPoolID)
	assert.Equal(t, "client", cfg.CognitoClientID)
	assert.Equal(t, "prod_quacknote_users", cfg.DynamoDBUsersTable)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.DynamoDBEndpoint)
}

func TestParseEnv_UnsetLeavesDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "dev_quacknote_users", cfg.DynamoDBUsersTable)
}
