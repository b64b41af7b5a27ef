package http

import (
	"fmt"
	"net/http"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ActorParams are the X-Actor-* headers identifying who issues a command.
type ActorParams struct {
	XActorId   kernel.UUID
	XActorRole order.Role
}

// ListOrdersParams are the query parameters of GET /orders.
type ListOrdersParams struct {
	Status  *[]string
	BuyerId *uuid.UUID
}

// ServerInterface lists one method per operation of openapi.yaml.
type ServerInterface interface {
	CreateOrder(ctx echo.Context, params ActorParams) error
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	GetOrder(ctx echo.Context, orderId kernel.UUID) error
	PublishOrder(ctx echo.Context, orderId kernel.UUID, params ActorParams) error
	RejectOrder(ctx echo.Context, orderId kernel.UUID, params ActorParams) error
	AdjudicateOrder(ctx echo.Context, orderId kernel.UUID, params ActorParams) error
	DispatchOrder(ctx echo.Context, orderId kernel.UUID, params ActorParams) error
	ConfirmDelivery(ctx echo.Context, orderId kernel.UUID, params ActorParams) error
	AddComment(ctx echo.Context, orderId kernel.UUID, params ActorParams) error
	ListQuotes(ctx echo.Context, orderId kernel.UUID) error
	SubmitQuote(ctx echo.Context, orderId kernel.UUID, supplierId kernel.UUID) error
	GetQuote(ctx echo.Context, orderId kernel.UUID, supplierId kernel.UUID) error
	ListQuoteRevisions(ctx echo.Context, orderId kernel.UUID, supplierId kernel.UUID) error
	GetComparison(ctx echo.Context, orderId kernel.UUID) error
	PreviewComparison(ctx echo.Context, orderId kernel.UUID) error
	GetBestOffer(ctx echo.Context, orderId kernel.UUID, lineItemId order.LineItemID) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindHeader(ctx echo.Context, name string, dest any) error {
	values, found := ctx.Request().Header[http.CanonicalHeaderKey(name)]
	if !found {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Header parameter %s is required, but not found", name))
	}
	if n := len(values); n != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for %s, got %d", name, n))
	}
	err := runtime.BindStyledParameterWithOptions("simple", name, values[0], dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindActor(ctx echo.Context) (ActorParams, error) {
	var params ActorParams
	if err := bindHeader(ctx, "X-Actor-Id", &params.XActorId); err != nil {
		return params, err
	}
	if err := bindHeader(ctx, "X-Actor-Role", &params.XActorRole); err != nil {
		return params, err
	}
	return params, nil
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateOrder(ctx, params)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, false, "buyerId", ctx.QueryParams(), &params.BuyerId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter buyerId: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderId kernel.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// orderCommand binds the order id and actor shared by every lifecycle command.
func (w *ServerInterfaceWrapper) orderCommand(
	ctx echo.Context,
	handle func(echo.Context, kernel.UUID, ActorParams) error,
) error {
	var orderId kernel.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return handle(ctx, orderId, params)
}

func (w *ServerInterfaceWrapper) PublishOrder(ctx echo.Context) error {
	return w.orderCommand(ctx, w.Handler.PublishOrder)
}

func (w *ServerInterfaceWrapper) RejectOrder(ctx echo.Context) error {
	return w.orderCommand(ctx, w.Handler.RejectOrder)
}

func (w *ServerInterfaceWrapper) AdjudicateOrder(ctx echo.Context) error {
	return w.orderCommand(ctx, w.Handler.AdjudicateOrder)
}

func (w *ServerInterfaceWrapper) DispatchOrder(ctx echo.Context) error {
	return w.orderCommand(ctx, w.Handler.DispatchOrder)
}

func (w *ServerInterfaceWrapper) ConfirmDelivery(ctx echo.Context) error {
	return w.orderCommand(ctx, w.Handler.ConfirmDelivery)
}

func (w *ServerInterfaceWrapper) AddComment(ctx echo.Context) error {
	return w.orderCommand(ctx, w.Handler.AddComment)
}

func (w *ServerInterfaceWrapper) ListQuotes(ctx echo.Context) error {
	var orderId kernel.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.ListQuotes(ctx, orderId)
}

// supplierQuote binds the order and supplier ids of the /quotes/{supplierId} routes.
func (w *ServerInterfaceWrapper) supplierQuote(
	ctx echo.Context,
	handle func(echo.Context, kernel.UUID, kernel.UUID) error,
) error {
	var orderId, supplierId kernel.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	if err := bindPath(ctx, "supplierId", &supplierId); err != nil {
		return err
	}
	return handle(ctx, orderId, supplierId)
}

func (w *ServerInterfaceWrapper) SubmitQuote(ctx echo.Context) error {
	return w.supplierQuote(ctx, w.Handler.SubmitQuote)
}

func (w *ServerInterfaceWrapper) GetQuote(ctx echo.Context) error {
	return w.supplierQuote(ctx, w.Handler.GetQuote)
}

func (w *ServerInterfaceWrapper) ListQuoteRevisions(ctx echo.Context) error {
	return w.supplierQuote(ctx, w.Handler.ListQuoteRevisions)
}

func (w *ServerInterfaceWrapper) GetComparison(ctx echo.Context) error {
	var orderId kernel.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetComparison(ctx, orderId)
}

func (w *ServerInterfaceWrapper) PreviewComparison(ctx echo.Context) error {
	var orderId kernel.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.PreviewComparison(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetBestOffer(ctx echo.Context) error {
	var orderId kernel.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	var lineItemId order.LineItemID
	if err := bindPath(ctx, "lineItemId", &lineItemId); err != nil {
		return err
	}
	return w.Handler.GetBestOffer(ctx, orderId, lineItemId)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders", w.ListOrders)
	router.GET(baseURL+"/orders/:orderId", w.GetOrder)
	router.POST(baseURL+"/orders/:orderId/publish", w.PublishOrder)
	router.POST(baseURL+"/orders/:orderId/reject", w.RejectOrder)
	router.POST(baseURL+"/orders/:orderId/adjudicate", w.AdjudicateOrder)
	router.POST(baseURL+"/orders/:orderId/dispatch", w.DispatchOrder)
	router.POST(baseURL+"/orders/:orderId/confirm-delivery", w.ConfirmDelivery)
	router.POST(baseURL+"/orders/:orderId/comments", w.AddComment)
	router.GET(baseURL+"/orders/:orderId/quotes", w.ListQuotes)
	router.PUT(baseURL+"/orders/:orderId/quotes/:supplierId", w.SubmitQuote)
	router.GET(baseURL+"/orders/:orderId/quotes/:supplierId", w.GetQuote)
	router.GET(baseURL+"/orders/:orderId/quotes/:supplierId/revisions", w.ListQuoteRevisions)
	router.GET(baseURL+"/orders/:orderId/comparison", w.GetComparison)
	router.POST(baseURL+"/orders/:orderId/comparison", w.PreviewComparison)
	router.GET(baseURL+"/orders/:orderId/lines/:lineItemId/best-offer", w.GetBestOffer)
}
