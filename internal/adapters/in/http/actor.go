package http

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Actor identity headers set by the authentication layer in front of this
// service.
const (
	headerActorID   = "X-Actor-Id"
	headerActorName = "X-Actor-Name"
	headerActorRole = "X-Actor-Role"
)

// actorFromRequest resolves the acting identity from request headers.
// Requests without an X-Actor-Id header are attributed to the system actor.
func actorFromRequest(ctx echo.Context) (order.Actor, error) {
	rawID := ctx.Request().Header.Get(headerActorID)
	if rawID == "" {
		return order.SystemActor(), nil
	}

	actorID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return order.Actor{}, err
	}

	role, err := order.RoleFromString(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return order.Actor{}, err
	}

	return order.NewActor(actorID, ctx.Request().Header.Get(headerActorName), role)
}
