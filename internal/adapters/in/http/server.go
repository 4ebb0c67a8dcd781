package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	updateShippingHandler    commands.UpdateShippingCommandHandler
	updatePaymentHandler     commands.UpdatePaymentCommandHandler
	addOrderNoteHandler      commands.AddOrderNoteCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	updateShippingHandler commands.UpdateShippingCommandHandler,
	updatePaymentHandler commands.UpdatePaymentCommandHandler,
	addOrderNoteHandler commands.AddOrderNoteCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		updateShippingHandler:    updateShippingHandler,
		updatePaymentHandler:     updatePaymentHandler,
		addOrderNoteHandler:      addOrderNoteHandler,
		getOrderHandler:          getOrderHandler,
		getStatusHistoryHandler:  getStatusHistoryHandler,
	}
}

// RegisterRoutes attaches all order endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	api.PATCH("/orders/:id/shipping", s.UpdateShipping)
	api.PATCH("/orders/:id/payment", s.UpdatePayment)
	api.POST("/orders/:id/notes", s.AddOrderNote)
	api.GET("/orders/:id/history", s.GetStatusHistory)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, codeValidationError,
			"invalid request body", err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	totals, err := req.Totals.toTotals()
	if err != nil {
		return writeDomainError(ctx, err)
	}
	buyer, err := req.Buyer.toSnapshot()
	if err != nil {
		return writeDomainError(ctx, err)
	}
	shipping, err := req.Shipping.toSnapshot()
	if err != nil {
		return writeDomainError(ctx, err)
	}
	billing, err := req.Billing.toSnapshot()
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), req.Code, totals, buyer, shipping, billing, req.AsDraft, actor,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromAggregate(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(result))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var req changeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, codeValidationError,
			"invalid request body", err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	newStatus, err := order.StatusFromString(req.NewStatus)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, newStatus, actor,
		req.NoteInternal, req.NoteCustomer, req.CancelReason,
		req.Force, req.NotifyCustomer,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// UpdateShipping handles PATCH /api/v1/orders/:id/shipping.
func (s *Server) UpdateShipping(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var req updateShippingRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, codeValidationError,
			"invalid request body", err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewUpdateShippingCommand(
		orderID, actor,
		req.Carrier, req.TrackingCode,
		req.MarkShipped, req.MarkDelivered, req.Force,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	updated, err := s.updateShippingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// UpdatePayment handles PATCH /api/v1/orders/:id/payment.
func (s *Server) UpdatePayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var req updatePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, codeValidationError,
			"invalid request body", err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	paymentState, err := order.PaymentStateFromString(req.PaymentState)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentCommand(orderID, actor, paymentState, req.TransactionRef)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	updated, err := s.updatePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// AddOrderNote handles POST /api/v1/orders/:id/notes.
func (s *Server) AddOrderNote(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var req addNoteRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, codeValidationError,
			"invalid request body", err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewAddOrderNoteCommand(orderID, actor, req.NoteInternal, req.NoteCustomer)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	updated, err := s.addOrderNoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromAggregate(updated))
}

// GetStatusHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetStatusHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	query, err := queries.NewGetStatusHistoryQuery(orderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	result, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyResponseFromQuery(result))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
