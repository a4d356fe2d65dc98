// Command db-access is the Lambda function that reads test_table through
// RDS Proxy.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"

	appconfig "github.com/lex00/lambda-aurora-go/internal/config"
	"github.com/lex00/lambda-aurora-go/internal/database"
	"github.com/lex00/lambda-aurora-go/internal/handler"
	"github.com/lex00/lambda-aurora-go/internal/logging"
	"github.com/lex00/lambda-aurora-go/internal/secret"
)

func main() {
	ctx := context.Background()

	cfg := appconfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer logger.Sync()

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		logger.Fatal("loading AWS config", zap.Error(err))
	}

	cred, err := secret.NewFetcher(secretsmanager.NewFromConfig(awsCfg)).Fetch(ctx, cfg.SecretID)
	if err != nil {
		logger.Fatal("fetching credential", zap.String("secretId", cfg.SecretID), zap.Error(err))
	}

	h := &handler.DBAccess{
		Connector: &database.Connector{
			Endpoint:   cfg.ProxyEndpoint,
			Credential: cred,
			Database:   cfg.DatabaseName,
			Logger:     logger,
		},
		Logger: logger,
	}

	lambda.Start(h.Handle)
}
