package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"server-utilities/internal/models"
	"server-utilities/pkg/future"
	"server-utilities/pkg/lambda"
)

// OrderHandler handles order-related API Gateway requests
type OrderHandler struct {
	loop       *future.EventLoop
	background *future.BackgroundService
	logger     *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(loop *future.EventLoop, background *future.BackgroundService, logger *logrus.Logger) *OrderHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &OrderHandler{
		loop:       loop,
		background: background,
		logger:     logger,
	}
}

// HandleCreate decodes and validates an order, prices it in the background
// and responds 201 with the receipt
func (h *OrderHandler) HandleCreate(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.logger.WithField("request_id", req.RequestContext.RequestID)

	order, err := lambda.DecodeAndValidate[models.Order](req)
	if err != nil {
		log.WithError(err).Info("Rejected order")
		return lambda.NewErrorResponse(statusForError(err), err), nil
	}

	pricing := future.SubmitValue(h.background, h.loop, func() *models.OrderReceipt {
		return models.NewOrderReceipt(order)
	})

	receipt, err := future.Await(ctx, pricing)
	if err != nil {
		log.WithError(err).Error("Failed to price order")
		return lambda.NewErrorResponse(statusForError(err), err), nil
	}

	resp, err := lambda.NewJSONResponse(receipt, http.StatusCreated)
	if err != nil {
		log.WithError(err).Error("Failed to encode receipt")
		return lambda.NewErrorResponse(http.StatusInternalServerError, err), nil
	}

	log.WithFields(logrus.Fields{
		"order_id": receipt.OrderID,
		"total":    receipt.Total,
	}).Info("Order created")
	return resp, nil
}

// HandleEcho returns the flat string map carried in the request body, or an
// empty object when the body is not one
func (h *OrderHandler) HandleEcho(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	fields, ok := lambda.StringMap(req)
	if !ok {
		fields = map[string]string{}
	}
	return lambda.OK(fields)
}
