package http

import (
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the HTTP API delegates to.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	PublishOrder    commands.PublishOrderCommandHandler
	RejectOrder     commands.RejectOrderCommandHandler
	AdjudicateOrder commands.AdjudicateOrderCommandHandler
	DispatchOrder   commands.DispatchOrderCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler
	AddComment      commands.AddCommentCommandHandler
	SubmitQuote     commands.SubmitQuoteCommandHandler

	GetOrder           queries.GetOrderQueryHandler
	ListOrders         queries.ListOrdersQueryHandler
	GetQuote           queries.GetQuoteQueryHandler
	ListQuotes         queries.ListQuotesQueryHandler
	ListQuoteRevisions queries.ListQuoteRevisionsQueryHandler
	GetBestOffer       queries.GetBestOfferQueryHandler
	GetComparison      queries.GetQuoteComparisonQueryHandler
}

// Server implements ServerInterface. It turns requests into commands and queries and
// leaves status mapping of their errors to the echo error handler.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

func actor(params ActorParams) (order.Actor, error) {
	return order.NewActor(params.XActorId, params.XActorRole)
}

func bindBody(ctx echo.Context, dest any) error {
	if err := ctx.Bind(dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// CreateOrder handles POST /api/v1/orders. The actor becomes the buyer.
func (s *Server) CreateOrder(ctx echo.Context, params ActorParams) error {
	var body NewOrder
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	buyer, err := actor(params)
	if err != nil {
		return err
	}

	items := make([]order.LineItemDraft, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, order.LineItemDraft{
			Quantity:       item.Quantity,
			Description:    item.Description,
			PreferredBrand: item.PreferredBrand,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, buyer, body.BuyerName, items, body.ExpirationDate, body.RequestedDeliveryDate, body.Terms,
	)
	if err != nil {
		return err
	}
	if err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID})
}

// ListOrders handles GET /api/v1/orders?status=...&buyerId=...
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var statuses []order.Status
	if params.Status != nil {
		for _, code := range *params.Status {
			status, err := order.StatusFromString(code)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
	}

	var buyerID *kernel.UUID
	if params.BuyerId != nil {
		id, err := kernel.UUIDFromBytes(params.BuyerId[:])
		if err != nil {
			return err
		}
		buyerID = &id
	}

	query, err := queries.NewListOrdersQuery(statuses, buyerID)
	if err != nil {
		return err
	}
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orders)
}

func (s *Server) GetOrder(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *Server) PublishOrder(ctx echo.Context, orderID kernel.UUID, params ActorParams) error {
	a, err := actor(params)
	if err != nil {
		return err
	}
	cmd, err := commands.NewPublishOrderCommand(orderID, a)
	if err != nil {
		return err
	}
	if err := s.h.PublishOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) RejectOrder(ctx echo.Context, orderID kernel.UUID, params ActorParams) error {
	var body Rejection
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	a, err := actor(params)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRejectOrderCommand(orderID, a, body.Reason)
	if err != nil {
		return err
	}
	if err := s.h.RejectOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdjudicateOrder handles POST /api/v1/orders/{orderId}/adjudicate and answers with the
// committed awards.
func (s *Server) AdjudicateOrder(ctx echo.Context, orderID kernel.UUID, params ActorParams) error {
	var body Overrides
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	a, err := actor(params)
	if err != nil {
		return err
	}

	overrides := make([]commands.Override, 0, len(body.Overrides))
	for _, o := range body.Overrides {
		overrides = append(overrides, commands.Override{LineItemID: o.LineItemID, SupplierID: o.SupplierID})
	}
	cmd, err := commands.NewAdjudicateOrderCommand(orderID, a, overrides)
	if err != nil {
		return err
	}
	awards, err := s.h.AdjudicateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := make([]queries.AwardView, 0, len(awards))
	for _, award := range awards {
		response = append(response, queries.AwardView{
			LineItemID:   award.LineItemID(),
			SupplierID:   award.SupplierID(),
			SupplierName: award.SupplierName(),
			UnitPrice:    award.UnitPrice(),
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) DispatchOrder(ctx echo.Context, orderID kernel.UUID, params ActorParams) error {
	var body Dispatch
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	a, err := actor(params)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDispatchOrderCommand(orderID, a, body.DriverName, body.VehicleID)
	if err != nil {
		return err
	}
	trackingNumber, err := s.h.DispatchOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, Dispatched{TrackingNumber: trackingNumber})
}

func (s *Server) ConfirmDelivery(ctx echo.Context, orderID kernel.UUID, params ActorParams) error {
	a, err := actor(params)
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmDeliveryCommand(orderID, a)
	if err != nil {
		return err
	}
	if err := s.h.ConfirmDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) AddComment(ctx echo.Context, orderID kernel.UUID, params ActorParams) error {
	var body NewComment
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	a, err := actor(params)
	if err != nil {
		return err
	}
	commentID := kernel.NewUUID()
	cmd, err := commands.NewAddCommentCommand(orderID, commentID, a, body.AuthorName, body.Text)
	if err != nil {
		return err
	}
	if err := s.h.AddComment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, Created{ID: commentID})
}

func (s *Server) ListQuotes(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewListQuotesQuery(orderID)
	if err != nil {
		return err
	}
	quotes, err := s.h.ListQuotes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, quotes)
}

// SubmitQuote handles PUT /api/v1/orders/{orderId}/quotes/{supplierId}. Repeating the
// request stores a new revision.
func (s *Server) SubmitQuote(ctx echo.Context, orderID kernel.UUID, supplierID kernel.UUID) error {
	var body NewQuote
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	lines := make([]commands.QuoteLine, 0, len(body.Offers))
	for _, offer := range body.Offers {
		lines = append(lines, commands.QuoteLine{
			LineItemID:   offer.LineItemID,
			UnitPrice:    offer.UnitPrice,
			OfferedBrand: offer.OfferedBrand,
			Note:         offer.Note,
		})
	}
	cmd, err := commands.NewSubmitQuoteCommand(
		orderID, supplierID, body.SupplierName, lines, body.PaymentTerm, body.DeliveryDays, body.ValidUntil,
	)
	if err != nil {
		return err
	}
	revision, err := s.h.SubmitQuote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, Submitted{Revision: revision})
}

func (s *Server) GetQuote(ctx echo.Context, orderID kernel.UUID, supplierID kernel.UUID) error {
	query, err := queries.NewGetQuoteQuery(orderID, supplierID)
	if err != nil {
		return err
	}
	view, err := s.h.GetQuote.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *Server) ListQuoteRevisions(ctx echo.Context, orderID kernel.UUID, supplierID kernel.UUID) error {
	query, err := queries.NewListQuoteRevisionsQuery(orderID, supplierID)
	if err != nil {
		return err
	}
	revisions, err := s.h.ListQuoteRevisions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, revisions)
}

func (s *Server) GetComparison(ctx echo.Context, orderID kernel.UUID) error {
	return s.comparison(ctx, orderID, nil)
}

// PreviewComparison shows what an adjudication with the given overrides would award.
func (s *Server) PreviewComparison(ctx echo.Context, orderID kernel.UUID) error {
	var body Overrides
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	overrides := make([]queries.LineOverride, 0, len(body.Overrides))
	for _, o := range body.Overrides {
		overrides = append(overrides, queries.LineOverride{LineItemID: o.LineItemID, SupplierID: o.SupplierID})
	}
	return s.comparison(ctx, orderID, overrides)
}

func (s *Server) comparison(ctx echo.Context, orderID kernel.UUID, overrides []queries.LineOverride) error {
	query, err := queries.NewGetQuoteComparisonQuery(orderID, overrides)
	if err != nil {
		return err
	}
	cmp, err := s.h.GetComparison.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cmp)
}

func (s *Server) GetBestOffer(ctx echo.Context, orderID kernel.UUID, lineItemID order.LineItemID) error {
	query, err := queries.NewGetBestOfferQuery(orderID, lineItemID)
	if err != nil {
		return err
	}
	view, err := s.h.GetBestOffer.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
