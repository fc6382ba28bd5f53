package lambda

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var errNullBody = errors.New("body is null")

var (
	logger   = logrus.New()
	validate = validator.New()
)

// SetLogger replaces the logger used to report causes discarded by the
// lenient decoders
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}

// DecodeBody decodes the JSON body of an API Gateway request into T.
// Errors match ErrMissingBody, ErrEncoding or ErrDecode.
func DecodeBody[T any](req events.APIGatewayProxyRequest) (T, error) {
	var v T
	data, err := bodyBytes("DecodeBody", req.Body, req.IsBase64Encoded)
	if err != nil {
		return v, err
	}

	if !nullable[T]() && string(bytes.TrimSpace(data)) == "null" {
		return v, newCodecError("DecodeBody", typeName[T](), ErrDecode, errNullBody)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, newCodecError("DecodeBody", typeName[T](), ErrDecode, err)
	}
	return v, nil
}

// DecodeAndValidate decodes the body into T and runs struct validation on it.
// Validation failures match ErrValidation.
func DecodeAndValidate[T any](req events.APIGatewayProxyRequest) (T, error) {
	v, err := DecodeBody[T](req)
	if err != nil {
		return v, err
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() && rv.Type().Elem().Kind() == reflect.Struct {
		return v, newCodecError("DecodeAndValidate", typeName[T](), ErrDecode, errNullBody)
	}

	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// T is not a struct; there is nothing to validate.
			return v, nil
		}
		return v, newCodecError("DecodeAndValidate", typeName[T](), ErrValidation, err)
	}
	return v, nil
}

// StringMap decodes the body as a flat JSON object of strings. It never fails:
// a missing, malformed or non-string body yields nil, false.
func StringMap(req events.APIGatewayProxyRequest) (map[string]string, bool) {
	data, err := bodyBytes("StringMap", req.Body, req.IsBase64Encoded)
	if err != nil {
		logger.WithError(err).Debug("Request body is not a string map")
		return nil, false
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		logger.WithError(err).Debug("Request body is not a string map")
		return nil, false
	}

	m := make(map[string]string, len(raw))
	for k, value := range raw {
		s, ok := value.(string)
		if !ok {
			logger.WithFields(logrus.Fields{"key": k, "value": value}).Debug("Request body has a non-string value")
			return nil, false
		}
		m[k] = s
	}
	return m, true
}

// DecodeResponse decodes the JSON body of an API Gateway response into T.
// Any failure yields the zero value and false.
func DecodeResponse[T any](resp events.APIGatewayProxyResponse) (T, bool) {
	var v T
	data, err := bodyBytes("DecodeResponse", resp.Body, resp.IsBase64Encoded)
	if err != nil {
		logger.WithError(err).Debug("Could not read response body")
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		logger.WithError(err).WithField("type", typeName[T]()).Debug("Could not decode response body")
		return v, false
	}
	return v, true
}

// bodyBytes returns the raw body, rejecting empty and non-text bodies
func bodyBytes(op, body string, isBase64 bool) ([]byte, error) {
	if body == "" {
		return nil, newCodecError(op, "", ErrMissingBody, nil)
	}

	data := []byte(body)
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, newCodecError(op, "", ErrEncoding, err)
		}
		data = decoded
	}

	if !utf8.Valid(data) {
		return nil, newCodecError(op, "", ErrEncoding, nil)
	}
	return data, nil
}

// nullable reports whether a JSON null is a legitimate value of T
func nullable[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return true
	default:
		return false
	}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
