package lambda

import (
	"github.com/aws/aws-lambda-go/events"

	"server-utilities/pkg/future"
)

// DecodeBodyFuture decodes the request body into T and returns the outcome as
// a future owned by loop
func DecodeBodyFuture[T any](loop *future.EventLoop, req events.APIGatewayProxyRequest) *future.Future[T] {
	v, err := DecodeBody[T](req)
	if err != nil {
		return future.Failed[T](loop, err)
	}
	return future.Succeeded(loop, v)
}

// ResponseFuture serializes v into a response future owned by loop
func ResponseFuture(loop *future.EventLoop, v any, status int) *future.Future[events.APIGatewayProxyResponse] {
	resp, err := NewJSONResponse(v, status)
	if err != nil {
		return future.Failed[events.APIGatewayProxyResponse](loop, err)
	}
	return future.Succeeded(loop, resp)
}

// RespondWith maps a future value into a future JSON response with status
func RespondWith[T any](f *future.Future[T], status int) *future.Future[events.APIGatewayProxyResponse] {
	return future.Map(f, func(v T) (events.APIGatewayProxyResponse, error) {
		return NewJSONResponse(v, status)
	})
}
