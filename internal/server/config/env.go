package config

import "os"

// parseEnv overlays Config fields from environment variables. Unset
// variables leave the existing values untouched.
//
// Recognized variables:
//
//	SERVER_ADDRESS        HTTP bind address
//	AWS_REGION            AWS region
//	COGNITO_USER_POOL_ID  Cognito user pool id
//	COGNITO_CLIENT_ID     Cognito app client id
//	DYNAMODB_USERS_TABLE  users table name
//	DYNAMODB_ENDPOINT     local DynamoDB endpoint override
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok {
		config.ServerAddress = v
	}
	if v, ok := os.LookupEnv("AWS_REGION"); ok {
		config.AWSRegion = v
	}
	if v, ok := os.LookupEnv("COGNITO_USER_POOL_ID"); ok {
		config.CognitoUserPoolID = v
	}
	if v, ok := os.LookupEnv("COGNITO_CLIENT_ID"); ok {
		config.CognitoClientID = v
	}
	if v, ok := os.LookupEnv("DYNAMODB_USERS_TABLE"); ok {
		config.DynamoDBUsersTable = v
	}
	if v, ok := os.LookupEnv("DYNAMODB_ENDPOINT"); ok {
		config.DynamoDBEndpoint = v
	}
}
