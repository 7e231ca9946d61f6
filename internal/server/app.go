// Package server initializes and runs the main application server.
// It wires the identity provider, the DynamoDB-backed stores and the HTTP
// endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/umeduck/quack-note/internal/logging"
	"github.com/umeduck/quack-note/internal/server/accounts"
	"github.com/umeduck/quack-note/internal/server/auth"
	"github.com/umeduck/quack-note/internal/server/config"
	"github.com/umeduck/quack-note/internal/server/httpapi"
	"github.com/umeduck/quack-note/internal/server/notify"
	"github.com/umeduck/quack-note/internal/server/provider"
	"github.com/umeduck/quack-note/internal/server/registration"
	"github.com/umeduck/quack-note/internal/server/settings"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	var idp provider.Provider
	var accountStore accounts.Repository
	var settingsStore settings.Repository

	if c.CognitoUserPoolID != "" && c.CognitoClientID != "" {
		awsCfg, err := loadAWSConfig(c)
		if err != nil {
			return nil, fmt.Errorf("aws config init error: %w", err)
		}

		cognitoClient := cognitoidentityprovider.NewFromConfig(awsCfg)
		dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if c.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(c.DynamoDBEndpoint)
			}
		})

		idp = provider.NewCognito(cognitoClient, c.CognitoUserPoolID, c.CognitoClientID, c.AWSCallTimeout)
		accountStore = accounts.NewDynamoDBRepository(dynamoClient, c.DynamoDBUsersTable, c.AWSCallTimeout)
		settingsStore = settings.NewDynamoDBRepository(dynamoClient, c.DynamoDBUsersTable, c.AWSCallTimeout)
	} else {
		logger.Warn(context.Background(), "cognito pool/client id not configured, using in-memory provider and stores")
		idp = provider.NewMemory()
		accountStore = accounts.NewMemoryRepository()
		settingsStore = settings.NewMemoryRepository()
	}

	registrationService := registration.NewService(idp, accountStore, logger)
	settingsService := settings.NewService(settingsStore, notify.NewSlack(c.AWSCallTimeout), logger)

	api := httpapi.NewServer(registrationService, settingsService, auth.UnverifiedDecoder{}, logger)

	return &App{config: c, logger: logger, handler: api.Router()}, nil
}

// loadAWSConfig builds the shared AWS config. A local DynamoDB endpoint
// implies static throwaway credentials so the SDK does not reach for the
// instance metadata chain.
func loadAWSConfig(c *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWSRegion),
	}
	if c.DynamoDBEndpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", "")))
	}
	return awsconfig.LoadDefaultConfig(context.Background(), opts...)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.ServerAddress)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{Addr: app.config.ServerAddress, Handler: app.handler}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
	app.logger.Info(context.Background(), "Server stopped")
}
