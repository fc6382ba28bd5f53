package lambda

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestNewJSONResponse(t *testing.T) {
	t.Run("FieldOrder", func(t *testing.T) {
		resp, err := NewJSONResponse(widget{ID: 7, Name: "widget"}, http.StatusOK)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if resp.Body != `{"id":7,"name":"widget"}` {
			t.Errorf("Expected body {\"id\":7,\"name\":\"widget\"}, got %s", resp.Body)
		}
		if resp.Headers["Content-Type"] != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", resp.Headers["Content-Type"])
		}
		if resp.StatusCode != 200 {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}
	})

	t.Run("DefaultStatus", func(t *testing.T) {
		resp, err := NewJSONResponse(map[string]string{"k": "v"}, 0)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}
	})

	t.Run("Created", func(t *testing.T) {
		resp, err := NewJSONResponse(widget{}, http.StatusCreated)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", resp.StatusCode)
		}
	})

	t.Run("SerializationError", func(t *testing.T) {
		_, err := NewJSONResponse(map[string]any{"ch": make(chan int)}, http.StatusOK)
		if !errors.Is(err, ErrSerialization) {
			t.Errorf("Expected ErrSerialization, got %v", err)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	values := []widget{{}, {ID: 1, Name: "a"}, {ID: -5, Name: "ünïcødé \"quoted\""}}

	for _, v := range values {
		resp, err := OK(v)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := DecodeBody[widget](events.APIGatewayProxyRequest{Body: resp.Body})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != v {
			t.Errorf("Expected %+v, got %+v", v, got)
		}
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(http.StatusBadRequest, errors.New("bad input"))

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	body, ok := DecodeResponse[ErrorResponse](resp)
	if !ok {
		t.Fatal("Expected error body to decode")
	}
	if body.Error != "Bad Request" || body.Message != "bad input" {
		t.Errorf("Unexpected error body %+v", body)
	}
}
