package lambda

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// ContentTypeJSON is the Content-Type set on every JSON response
const ContentTypeJSON = "application/json"

// ErrorResponse represents a standard error response body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewJSONResponse serializes v as the response body with the given status.
// A zero status means 200 OK. Serialization failures match ErrSerialization.
func NewJSONResponse(v any, status int) (events.APIGatewayProxyResponse, error) {
	if status == 0 {
		status = http.StatusOK
	}

	data, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, newCodecError("NewJSONResponse", reflectType(v), ErrSerialization, err)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": ContentTypeJSON},
		Body:       string(data),
	}, nil
}

// OK serializes v as a 200 response
func OK(v any) (events.APIGatewayProxyResponse, error) {
	return NewJSONResponse(v, http.StatusOK)
}

// NewErrorResponse builds a JSON error response. The error field carries the
// status text and message carries err, when present.
func NewErrorResponse(status int, err error) events.APIGatewayProxyResponse {
	body := ErrorResponse{Error: http.StatusText(status)}
	if err != nil {
		body.Message = err.Error()
	}

	// ErrorResponse holds only strings, so marshalling cannot fail.
	resp, _ := NewJSONResponse(body, status)
	return resp
}

func reflectType(v any) string {
	return fmt.Sprintf("%T", v)
}
