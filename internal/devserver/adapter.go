package devserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"server-utilities/internal/middleware"
	"server-utilities/pkg/lambda"
)

// Adapt serves a Lambda proxy handler from gin, translating each HTTP request
// into an API Gateway proxy event and the handler's response back into HTTP
func Adapt(handler lambda.Handler, stage string, logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, lambda.ErrorResponse{
					Error:   "Request too large",
					Message: fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", tooLarge.Limit),
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, lambda.ErrorResponse{
				Error:   http.StatusText(http.StatusBadRequest),
				Message: err.Error(),
			})
			return
		}

		event := toEvent(c, body, stage)

		resp, err := handler(c.Request.Context(), event)
		if err != nil {
			// API Gateway answers a failed invocation with a bare 502.
			logger.WithError(err).WithField("request_id", event.RequestContext.RequestID).Error("Handler returned an error")
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"message": "Internal server error"})
			return
		}

		writeResponse(c, resp)
	}
}

func toEvent(c *gin.Context, body []byte, stage string) events.APIGatewayProxyRequest {
	req := &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     firstValues(c.Request.Header),
		QueryParams: firstValues(c.Request.URL.Query()),
		Body:        body,
		RequestID:   c.GetString(middleware.RequestIDKey),
		Stage:       stage,
	}

	event := req.ToAPIGateway()
	event.Resource = "/{proxy+}"
	event.MultiValueHeaders = c.Request.Header
	event.MultiValueQueryStringParameters = c.Request.URL.Query()
	event.PathParameters = map[string]string{"proxy": c.Request.URL.Path}
	event.RequestContext.ResourcePath = "/{proxy+}"
	event.RequestContext.Protocol = c.Request.Proto
	event.RequestContext.Identity.SourceIP = c.ClientIP()
	event.RequestContext.Identity.UserAgent = c.Request.UserAgent()
	return event
}

func writeResponse(c *gin.Context, resp events.APIGatewayProxyResponse) {
	out := lambda.FromAPIGatewayResponse(resp)

	for k, v := range out.Headers {
		c.Header(k, v)
	}
	for k, values := range resp.MultiValueHeaders {
		for _, v := range values {
			c.Writer.Header().Add(k, v)
		}
	}

	status := out.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.Data(status, c.Writer.Header().Get("Content-Type"), out.Body)
}

func firstValues(values map[string][]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	return m
}
