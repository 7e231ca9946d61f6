package config

import (
	"flag"
	"os"
	"time"

	"github.com/umeduck/quack-note/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   AWS region
//	-p string   Cognito user pool id
//	-i string   Cognito app client id
//	-t string   DynamoDB users table name
//	-e string   DynamoDB endpoint override (e.g., "http://127.0.0.1:8000")
//	-w int      AWS call timeout, seconds
//	-s int      shutdown grace period, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in seconds and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-p", "-i", "-t", "-e", "-w", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerAddress, "a", config.ServerAddress, "address and port to run server")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.CognitoUserPoolID, "p", config.CognitoUserPoolID, "Cognito user pool id")
	fs.StringVar(&config.CognitoClientID, "i", config.CognitoClientID, "Cognito app client id")
	fs.StringVar(&config.DynamoDBUsersTable, "t", config.DynamoDBUsersTable, "DynamoDB users table")
	fs.StringVar(&config.DynamoDBEndpoint, "e", config.DynamoDBEndpoint, "DynamoDB endpoint override")

	awsCallTimeout := fs.Int("w", int(config.AWSCallTimeout.Seconds()), "aws_call_timeout (in seconds)")
	shutdownTimeout := fs.Int("s", int(config.ShutdownTimeout.Seconds()), "shutdown_timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AWSCallTimeout = time.Duration(*awsCallTimeout) * time.Second
	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
