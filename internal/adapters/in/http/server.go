// Package http exposes the delivery use cases over a JSON API.
//
// The caller identifies itself with the X-Actor-Id and X-Actor-Role headers;
// the domain layer decides what that actor is allowed to do. The public
// tracking endpoint requires no identity.
package http

import (
	"errors"
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler     commands.CreateDeliveryCommandHandler
	transitionDeliveryHandler commands.TransitionDeliveryCommandHandler
	cancelDeliveryHandler     commands.CancelDeliveryCommandHandler
	agentClaimHandler         commands.AgentClaimDeliveryCommandHandler
	adminAssignHandler        commands.AdminAssignDeliveryCommandHandler

	// Query handlers
	listUnassignedHandler queries.ListUnassignedDeliveriesQueryHandler
	listForOwnerHandler   queries.ListDeliveriesForOwnerQueryHandler
	listForAgentHandler   queries.ListDeliveriesForAgentQueryHandler
	trackDeliveryHandler  queries.TrackDeliveryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	transitionDeliveryHandler commands.TransitionDeliveryCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	agentClaimHandler commands.AgentClaimDeliveryCommandHandler,
	adminAssignHandler commands.AdminAssignDeliveryCommandHandler,
	listUnassignedHandler queries.ListUnassignedDeliveriesQueryHandler,
	listForOwnerHandler queries.ListDeliveriesForOwnerQueryHandler,
	listForAgentHandler queries.ListDeliveriesForAgentQueryHandler,
	trackDeliveryHandler queries.TrackDeliveryQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:     createDeliveryHandler,
		transitionDeliveryHandler: transitionDeliveryHandler,
		cancelDeliveryHandler:     cancelDeliveryHandler,
		agentClaimHandler:         agentClaimHandler,
		adminAssignHandler:        adminAssignHandler,
		listUnassignedHandler:     listUnassignedHandler,
		listForOwnerHandler:       listForOwnerHandler,
		listForAgentHandler:       listForAgentHandler,
		trackDeliveryHandler:      trackDeliveryHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.POST("/deliveries/:id/transition", s.TransitionDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.POST("/deliveries/:id/claim", s.ClaimDelivery)
	api.POST("/deliveries/:id/assign", s.AssignDelivery)

	api.GET("/deliveries", s.ListOwnerDeliveries)
	api.GET("/deliveries/unassigned", s.ListUnassignedDeliveries)
	api.GET("/deliveries/assigned", s.ListAgentDeliveries)
	api.GET("/track/:trackingId", s.TrackDelivery)

	e.GET("/health", s.Health)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateDelivery handles POST /api/v1/deliveries - registers a new delivery
// request for the calling owner.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	if actor.Role() != delivery.RoleOwner {
		return errorResponse(ctx, delivery.ErrActorForbidden)
	}

	var req CreateDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	pickup, err := kernel.NewAddress(req.PickupText, req.PickupLatitude, req.PickupLongitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	dropoff, err := kernel.NewAddress(req.DropoffText, req.DropoffLatitude, req.DropoffLongitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID,
		actor.ID(),
		pickup,
		dropoff,
		req.ParcelDescription,
		req.ContactNumber,
		req.DeliveryDate,
		req.PriceAmount,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateDeliveryResponse{ID: deliveryID.String()})
}

// TransitionDelivery handles POST /api/v1/deliveries/:id/transition - moves a
// delivery to the requested status on behalf of the calling actor.
func (s *Server) TransitionDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req TransitionDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := delivery.StatusFromString(req.Target)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewTransitionDeliveryCommand(deliveryID, target, actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.transitionDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel - aborts a
// delivery on behalf of the calling actor.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimDelivery handles POST /api/v1/deliveries/:id/claim - lets the calling
// agent claim a pending delivery. At most one agent wins a contested claim.
func (s *Server) ClaimDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	if actor.Role() != delivery.RoleAgent {
		return errorResponse(ctx, delivery.ErrActorForbidden)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAgentClaimDeliveryCommand(deliveryID, actor.ID())
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.agentClaimHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDelivery handles POST /api/v1/deliveries/:id/assign - lets an admin
// bind a specific agent to a pending delivery.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	if actor.Role() != delivery.RoleAdmin {
		return errorResponse(ctx, delivery.ErrActorForbidden)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req AssignDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAdminAssignDeliveryCommand(deliveryID, agentID, actor.ID())
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.adminAssignHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListUnassignedDeliveries handles GET /api/v1/deliveries/unassigned - the
// feed of claimable deliveries.
func (s *Server) ListUnassignedDeliveries(ctx echo.Context) error {
	query := queries.NewListUnassignedDeliveriesQuery()

	deliveries, err := s.listUnassignedHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]UnassignedDelivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = UnassignedDelivery{
			ID:                d.ID.String(),
			TrackingID:        d.TrackingID,
			PickupText:        d.PickupText,
			DropoffText:       d.DropoffText,
			ParcelDescription: d.ParcelDescription,
			DeliveryDate:      d.DeliveryDate,
			PriceAmount:       d.PriceAmount,
			CreatedAt:         d.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListOwnerDeliveries handles GET /api/v1/deliveries - the calling owner's
// deliveries.
func (s *Server) ListOwnerDeliveries(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewListDeliveriesForOwnerQuery(actor.ID())
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveries, err := s.listForOwnerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OwnerDelivery, len(deliveries))
	for i, d := range deliveries {
		entry := OwnerDelivery{
			ID:           d.ID.String(),
			TrackingID:   d.TrackingID,
			Status:       d.Status.String(),
			DropoffText:  d.DropoffText,
			DeliveryDate: d.DeliveryDate,
			CreatedAt:    d.CreatedAt,
			UpdatedAt:    d.UpdatedAt,
		}
		if d.AssignedAgentID != nil {
			agentID := d.AssignedAgentID.String()
			entry.AssignedAgentID = &agentID
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListAgentDeliveries handles GET /api/v1/deliveries/assigned - the calling
// agent's worklist.
func (s *Server) ListAgentDeliveries(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	if actor.Role() != delivery.RoleAgent {
		return errorResponse(ctx, delivery.ErrActorForbidden)
	}

	query, err := queries.NewListDeliveriesForAgentQuery(actor.ID())
	if err != nil {
		return errorResponse(ctx, err)
	}

	deliveries, err := s.listForAgentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]AgentDelivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = AgentDelivery{
			ID:            d.ID.String(),
			TrackingID:    d.TrackingID,
			Status:        d.Status.String(),
			PickupText:    d.PickupText,
			DropoffText:   d.DropoffText,
			ContactNumber: d.ContactNumber,
			DeliveryDate:  d.DeliveryDate,
			UpdatedAt:     d.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TrackDelivery handles GET /api/v1/track/:trackingId - the public tracking
// view. No identity required.
func (s *Server) TrackDelivery(ctx echo.Context) error {
	trackingID, err := delivery.TrackingIDFromString(ctx.Param("trackingId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewTrackDeliveryQuery(trackingID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.trackDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	timeline := make([]TimelineEntry, len(result.Timeline))
	for i, entry := range result.Timeline {
		timeline[i] = TimelineEntry{
			Status:     entry.Status.String(),
			OccurredAt: entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, TrackedDelivery{
		TrackingID:   result.TrackingID,
		Status:       result.Status.String(),
		PickupText:   result.PickupText,
		DropoffText:  result.DropoffText,
		DeliveryDate: result.DeliveryDate,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
		Timeline:     timeline,
	})
}

// actorFromRequest builds the acting identity from the X-Actor-Id and
// X-Actor-Role headers.
func actorFromRequest(ctx echo.Context) (delivery.Actor, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return delivery.Actor{}, errs.NewValueIsRequiredError(headerActorID + " header")
	}

	role, err := delivery.RoleFromString(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return delivery.Actor{}, errs.NewValueIsRequiredError(headerActorRole + " header")
	}

	return delivery.NewActor(actorID, role)
}

// errorResponse maps domain and application errors to HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, delivery.ErrActorForbidden):
		code = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrAlreadyAssigned),
		errors.Is(err, errs.ErrConcurrentConflict),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, delivery.ErrIllegalTransition),
		errors.Is(err, delivery.ErrDeliveryAlreadyFinal):
		code = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}
