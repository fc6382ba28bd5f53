package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"server-utilities/pkg/lambda"
)

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewRouter returns a handler dispatching on method and path
func NewRouter(orders *OrderHandler) lambda.Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		switch {
		case req.HTTPMethod == http.MethodPost && req.Path == "/api/v1/orders":
			return orders.HandleCreate(ctx, req)
		case req.HTTPMethod == http.MethodPost && req.Path == "/api/v1/echo":
			return orders.HandleEcho(ctx, req)
		case req.HTTPMethod == http.MethodGet && req.Path == "/health":
			return lambda.OK(HealthResponse{Status: "healthy", Service: "server-utilities"})
		default:
			return lambda.NewErrorResponse(http.StatusNotFound, nil), nil
		}
	}
}
