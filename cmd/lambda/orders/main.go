package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"server-utilities/internal/handlers"
	"server-utilities/pkg/lambda"
)

var router lambda.Handler

func init() {
	rt := lambda.GetRuntime()

	loop, background, err := rt.Get(context.Background())
	if err != nil {
		panic("Failed to initialize runtime: " + err.Error())
	}

	router = handlers.NewRouter(handlers.NewOrderHandler(loop, background, rt.Logger()))
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	lambda.GetRuntime().UpdateLastUsed()
	return router(ctx, event)
}

func main() {
	awslambda.Start(handler)
}
