package lambda

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

const (
	fixtureUserAgent = "Custom User Agent String"
	fixtureAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	fixtureVia       = "1.1 08f323deadbeefa7af34d5feb414ce27.cloudfront.net (CloudFront)"
	fixtureCfID      = "cDehVQoZnx43VYQb9j2-nvCh-9z396Uhbp027Y2JvkCPNLmGJHqlaA=="
)

var fixtureHeaders = map[string]string{
	"Accept":                       fixtureAccept,
	"Accept-Encoding":              "gzip, deflate, sdch",
	"Accept-Language":              "en-US,en;q=0.8",
	"Cache-Control":                "max-age=0",
	"CloudFront-Forwarded-Proto":   "https",
	"CloudFront-Is-Desktop-Viewer": "true",
	"CloudFront-Is-Mobile-Viewer":  "false",
	"CloudFront-Is-SmartTV-Viewer": "false",
	"CloudFront-Is-Tablet-Viewer":  "false",
	"CloudFront-Viewer-Country":    "US",
	"Host":                         "1234567890.execute-api.us-east-1.amazonaws.com",
	"Upgrade-Insecure-Requests":    "1",
	"User-Agent":                   fixtureUserAgent,
	"Via":                          fixtureVia,
	"X-Amz-Cf-Id":                  fixtureCfID,
	"X-Forwarded-For":              "127.0.0.1, 127.0.0.2",
	"X-Forwarded-Port":             "443",
	"X-Forwarded-Proto":            "https",
}

// TestRequestJSON returns the wire form of a sample API Gateway proxy request
// carrying payload, JSON encoded, as its body. label is appended to the
// request context path.
func TestRequestJSON(label string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newCodecError("TestRequestJSON", reflectType(payload), ErrSerialization, err)
	}

	headers := make(map[string]any, len(fixtureHeaders))
	multiValueHeaders := make(map[string]any, len(fixtureHeaders))
	for k, v := range fixtureHeaders {
		headers[k] = v
		multiValueHeaders[k] = []string{v}
	}
	// The multi-value Host differs from the single-value one in real captures.
	multiValueHeaders["Host"] = []string{"0123456789.execute-api.us-east-1.amazonaws.com"}

	return map[string]any{
		"body":            string(body),
		"resource":        "/{proxy+}",
		"path":            "/path/to/apps",
		"httpMethod":      "POST",
		"isBase64Encoded": false,
		"queryStringParameters": map[string]string{
			"foo": "bar",
		},
		"multiValueQueryStringParameters": map[string][]string{
			"foo": {"bar"},
		},
		"pathParameters": map[string]string{
			"proxy": "/path/to/apps",
		},
		"stageVariables": map[string]string{
			"baz": "qux",
		},
		"headers":           headers,
		"multiValueHeaders": multiValueHeaders,
		"requestContext": map[string]any{
			"accountId":        "123456789012",
			"resourceId":       "123456",
			"stage":            "prod",
			"requestId":        "c6af9ac6-7b61-11e6-9a41-93e8deadbeef",
			"requestTime":      "09/Apr/2015:12:34:56 +0000",
			"requestTimeEpoch": 1428582896000,
			"identity": map[string]any{
				"cognitoIdentityPoolId":         nil,
				"accountId":                     nil,
				"cognitoIdentityId":             nil,
				"caller":                        nil,
				"accessKey":                     nil,
				"sourceIp":                      "127.0.0.1",
				"cognitoAuthenticationType":     nil,
				"cognitoAuthenticationProvider": nil,
				"userArn":                       nil,
				"userAgent":                     fixtureUserAgent,
				"user":                          nil,
			},
			"path":         "/prod/path/to/app/" + label,
			"resourcePath": "/{proxy+}",
			"httpMethod":   "POST",
			"apiId":        "1234567890",
			"protocol":     "HTTP/1.1",
		},
	}, nil
}

// NewTestRequest builds a realistic API Gateway proxy request around payload
// for local and integration tests.
func NewTestRequest(label string, payload any) (events.APIGatewayProxyRequest, error) {
	var req events.APIGatewayProxyRequest

	doc, err := TestRequestJSON(label, payload)
	if err != nil {
		return req, err
	}

	// Round-trip through JSON so the fixture is read exactly as the runtime
	// would read a real event.
	data, err := json.Marshal(doc)
	if err != nil {
		return req, newCodecError("NewTestRequest", "", ErrSerialization, err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, newCodecError("NewTestRequest", typeName[events.APIGatewayProxyRequest](), ErrDecode, err)
	}
	return req, nil
}
