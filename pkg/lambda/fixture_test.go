package lambda

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTestRequest(t *testing.T) {
	payload := widget{ID: 7, Name: "widget"}

	req, err := NewTestRequest("createOrder", payload)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	encoded, err := OK(payload)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if req.Body != encoded.Body {
		t.Errorf("Expected body %s, got %s", encoded.Body, req.Body)
	}
	if req.HTTPMethod != "POST" {
		t.Errorf("Expected method POST, got %s", req.HTTPMethod)
	}
	if req.RequestContext.HTTPMethod != "POST" {
		t.Errorf("Expected context method POST, got %s", req.RequestContext.HTTPMethod)
	}
	if !strings.HasSuffix(req.RequestContext.Path, "/createOrder") {
		t.Errorf("Expected context path to end with /createOrder, got %s", req.RequestContext.Path)
	}
	if req.Resource != "/{proxy+}" || req.RequestContext.ResourcePath != "/{proxy+}" {
		t.Errorf("Expected resource /{proxy+}, got %s and %s", req.Resource, req.RequestContext.ResourcePath)
	}
	if req.RequestContext.AccountID != "123456789012" {
		t.Errorf("Expected account 123456789012, got %s", req.RequestContext.AccountID)
	}
	if req.RequestContext.Identity.SourceIP != "127.0.0.1" {
		t.Errorf("Expected source IP 127.0.0.1, got %s", req.RequestContext.Identity.SourceIP)
	}
	if req.QueryStringParameters["foo"] != "bar" {
		t.Errorf("Expected query foo=bar, got %v", req.QueryStringParameters)
	}
	if got := req.MultiValueHeaders["Accept-Language"]; len(got) != 1 || got[0] != "en-US,en;q=0.8" {
		t.Errorf("Unexpected multi-value Accept-Language %v", got)
	}
	if req.StageVariables["baz"] != "qux" {
		t.Errorf("Expected stage variable baz=qux, got %v", req.StageVariables)
	}

	decoded, err := DecodeBody[widget](req)
	if err != nil {
		t.Fatalf("Expected fixture body to decode, got %v", err)
	}
	if decoded != payload {
		t.Errorf("Expected %+v, got %+v", payload, decoded)
	}
}

func TestNewTestRequestSerializationError(t *testing.T) {
	_, err := NewTestRequest("broken", func() {})
	if !errors.Is(err, ErrSerialization) {
		t.Errorf("Expected ErrSerialization, got %v", err)
	}
}

func TestTestRequestJSON(t *testing.T) {
	doc, err := TestRequestJSON("listOrders", map[string]int{"page": 1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if doc["body"] != `{"page":1}` {
		t.Errorf("Expected body {\"page\":1}, got %v", doc["body"])
	}
	ctx, ok := doc["requestContext"].(map[string]any)
	if !ok {
		t.Fatalf("Expected requestContext map, got %T", doc["requestContext"])
	}
	if ctx["path"] != "/prod/path/to/app/listOrders" {
		t.Errorf("Unexpected context path %v", ctx["path"])
	}
}
