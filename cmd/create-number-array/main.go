// Command create-number-array is the Lambda function that returns
// [1..number] for the fan-out state machines.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/lex00/lambda-aurora-go/internal/config"
	"github.com/lex00/lambda-aurora-go/internal/handler"
	"github.com/lex00/lambda-aurora-go/internal/logging"
)

func main() {
	cfg := config.LoadFromEnv()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer logger.Sync()

	h := &handler.NumberArray{Logger: logger}
	lambda.Start(h.Handle)
}
