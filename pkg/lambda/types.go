package lambda

import (
	"context"
	"encoding/base64"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	RequestID   string            `json:"request_id"`
	Stage       string            `json:"stage"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// Handler is the API Gateway proxy handler shape served by aws-lambda-go
type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// FromAPIGateway converts an API Gateway proxy event into a generic request.
// Base64 bodies are decoded; a body that fails to decode is kept as received.
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(event.Body); err == nil {
			body = decoded
		}
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
		RequestID:   event.RequestContext.RequestID,
		Stage:       event.RequestContext.Stage,
	}
}

// ToAPIGateway converts the request back into an API Gateway proxy event.
// Bodies that are not valid UTF-8 are sent base64 encoded.
func (r *Request) ToAPIGateway() events.APIGatewayProxyRequest {
	event := events.APIGatewayProxyRequest{
		Path:                  r.Path,
		HTTPMethod:            r.Method,
		Headers:               r.Headers,
		QueryStringParameters: r.QueryParams,
		PathParameters:        r.PathParams,
	}
	event.RequestContext.RequestID = r.RequestID
	event.RequestContext.Stage = r.Stage
	event.RequestContext.HTTPMethod = r.Method
	event.RequestContext.Path = r.Path
	event.Body, event.IsBase64Encoded = encodeBody(r.Body)
	return event
}

// FromAPIGatewayResponse converts an API Gateway proxy response into a generic response
func FromAPIGatewayResponse(event events.APIGatewayProxyResponse) *Response {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(event.Body); err == nil {
			body = decoded
		}
	}

	return &Response{
		StatusCode: event.StatusCode,
		Headers:    event.Headers,
		Body:       body,
	}
}

// ToAPIGateway converts the response into an API Gateway proxy response
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	event := events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
	}
	event.Body, event.IsBase64Encoded = encodeBody(r.Body)
	return event
}

func encodeBody(body []byte) (string, bool) {
	if utf8.Valid(body) {
		return string(body), false
	}
	return base64.StdEncoding.EncodeToString(body), true
}
