package webhook

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staysync/infras/otel"
	"staysync/internal/domains/sync/model/dto"
	"staysync/internal/domains/sync/service"
	"staysync/shared/constant"
	"staysync/shared/validator"
	"staysync/transport/http/response"
)

type Handler struct {
	service service.Sync
	otel    otel.Otel
}

func New(service service.Sync, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/webhook", func(routerGroup chi.Router) {
		routerGroup.Post("/email", handler.ReceiveEmail)
	})
}

// ReceiveEmail ingests a forwarded confirmation email.
// @Summary Ingest a booking confirmation email
// @Description Parse a forwarded confirmation email into a booking and start blocking the dates on the opposite platform.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param request body dto.EmailWebhookRequest true "Forwarded email payload"
// @Success 202 {object} dto.SyncAcceptedResponse "Booking recorded, blocking started"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/webhook/email [post]
func (handler *Handler) ReceiveEmail(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReceiveEmail")
	defer scope.End()

	req := dto.EmailWebhookRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.HandleEmail(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to ingest confirmation email")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Email ingested for booking " + res.BookingID)

	response.WithJSON(w, http.StatusAccepted, res)
}
