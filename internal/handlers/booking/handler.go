package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staysync/infras/otel"
	"staysync/internal/domains/booking/model"
	"staysync/internal/domains/booking/service"
	syncDto "staysync/internal/domains/sync/model/dto"
	syncService "staysync/internal/domains/sync/service"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/validator"
	"staysync/transport/http/response"
)

type Handler struct {
	service service.Booking
	sync    syncService.Sync
	otel    otel.Otel
}

func New(service service.Booking, sync syncService.Sync, otel otel.Otel) Handler {
	return Handler{
		service: service,
		sync:    sync,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
	})

	router.Post("/blocks", handler.CreateManualBlock)
}

// CreateManualBlock blocks a date range without a source reservation.
// @Summary Block a date range manually
// @Description Record a manual booking and block its dates on the requested platforms.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body syncDto.ManualBlockRequest true "Manual block request"
// @Success 202 {object} syncDto.SyncAcceptedResponse "Blocking started"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks [post]
func (handler *Handler) CreateManualBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateManualBlock")
	defer scope.End()

	req := syncDto.ManualBlockRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.sync.HandleManualBlock(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create manual block")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Manual block accepted for booking " + res.BookingID)

	response.WithJSON(w, http.StatusAccepted, res)
}

// GetBookings retrieves bookings with their sync state.
// @Summary Get all bookings
// @Description Retrieve bookings with optional platform and property filters and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param platform query string false "Filter by source platform"
// @Param property_id query string false "Filter by property"
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if platform := r.URL.Query().Get(model.FieldPlatform); platform != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPlatform,
			Operator: gDto.FilterOperatorEq,
			Value:    platform,
			Table:    model.TableName,
		})
	}

	if propertyID := r.URL.Query().Get(model.FieldPropertyID); propertyID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPropertyID,
			Operator: gDto.FilterOperatorEq,
			Value:    propertyID,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves one booking with its block task history.
// @Summary Get a booking by ID
// @Description Retrieve a booking and all of its block tasks.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingWithTasksResponse "Booking with task history"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.GetWithTasks(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}
