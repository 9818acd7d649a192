package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	bookingModel "staysync/internal/domains/booking/model"
	bookingDto "staysync/internal/domains/booking/model/dto"
	bookingService "staysync/internal/domains/booking/service"
	"staysync/internal/domains/sync/model/dto"
	"staysync/internal/platform"
	"staysync/shared/constant"
	"staysync/shared/emailparse"
	"staysync/shared/failure"
	"staysync/shared/timezone"
)

const (
	statusAccepted = "accepted"

	manualGuestName        = "Walk-in"
	manualConfirmationCode = "MANUAL"
)

// Sync ingests reservations and drives the cross-platform blocking work.
// Both entry points record the booking and its tasks synchronously, then
// run the browser work in the background; every dispatched task reaches
// exactly one terminal status.
type Sync interface {
	HandleEmail(ctx context.Context, req dto.EmailWebhookRequest) (dto.SyncAcceptedResponse, error)
	HandleManualBlock(ctx context.Context, req dto.ManualBlockRequest) (dto.SyncAcceptedResponse, error)
}

type resultEvent struct {
	BookingID      string                  `json:"booking_id"`
	TaskID         string                  `json:"task_id"`
	TargetPlatform bookingModel.Platform   `json:"target_platform"`
	Status         bookingModel.TaskStatus `json:"status"`
	Error          string                  `json:"error,omitempty"`
}

type serviceImpl struct {
	bookings bookingService.Booking
	blocker  platform.Blocker
	parser   *emailparse.Parser
	kafka    kafka.Client
	cfg      *config.Config
	otel     otel.Otel
}

func New(bookings bookingService.Booking, blocker platform.Blocker, parser *emailparse.Parser, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Sync {
	return &serviceImpl{
		bookings: bookings,
		blocker:  blocker,
		parser:   parser,
		kafka:    kafkaClient,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) HandleEmail(ctx context.Context, req dto.EmailWebhookRequest) (res dto.SyncAcceptedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := req.BodyText
	if body == "" && req.BodyHTML != "" {
		body, err = emailparse.TextFromHTML(req.BodyHTML)
		if err != nil {
			log.Warn().Err(err).Msg("failed to extract text from HTML body")

			return res, failure.BadRequestFromString("could not read HTML email body") // nolint:wrapcheck
		}
	}

	parsed, ok := s.parser.Parse(body, req.Subject)
	if !ok {
		return res, failure.BadRequestFromString("could not parse booking from email") // nolint:wrapcheck
	}

	booking, err := s.bookings.CreateBooking(ctx, bookingDto.CreateBookingRequest{
		Platform:         bookingModel.Platform(parsed.Platform),
		Checkin:          parsed.Checkin,
		Checkout:         parsed.Checkout,
		GuestName:        parsed.GuestName,
		ConfirmationCode: parsed.ConfirmationCode,
	})
	if err != nil {
		return res, fmt.Errorf("failed to record parsed booking: %w", err)
	}

	target, ok := booking.Platform.Other()
	if !ok {
		return res, failure.BadRequestFromString("no opposite platform for booking source") // nolint:wrapcheck
	}

	task, err := s.bookings.CreateTask(ctx, booking.ID, target)
	if err != nil {
		return res, fmt.Errorf("failed to create block task: %w", err)
	}

	go s.process(context.WithoutCancel(ctx), booking, task)

	return dto.SyncAcceptedResponse{
		BookingID: booking.ID,
		TaskIDs:   []string{task.ID},
		Status:    statusAccepted,
	}, nil
}

func (s *serviceImpl) HandleManualBlock(ctx context.Context, req dto.ManualBlockRequest) (res dto.SyncAcceptedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleManualBlock")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkin, err := timezone.Parse(constant.DateOnlyFormat, req.Checkin)
	if err != nil {
		return res, failure.BadRequestFromString("invalid checkin date") // nolint:wrapcheck
	}

	checkout, err := timezone.Parse(constant.DateOnlyFormat, req.Checkout)
	if err != nil {
		return res, failure.BadRequestFromString("invalid checkout date") // nolint:wrapcheck
	}

	targets := make([]bookingModel.Platform, 0, 2)

	if req.BlockAirbnb {
		targets = append(targets, bookingModel.PlatformAirbnb)
	}

	if req.BlockBooking {
		targets = append(targets, bookingModel.PlatformBooking)
	}

	if len(targets) == 0 {
		return res, failure.BadRequestFromString("at least one target platform is required") // nolint:wrapcheck
	}

	booking, err := s.bookings.CreateBooking(ctx, bookingDto.CreateBookingRequest{
		Platform:         bookingModel.PlatformManual,
		Checkin:          checkin,
		Checkout:         checkout,
		PropertyID:       req.PropertyID,
		GuestName:        manualGuestName,
		ConfirmationCode: manualConfirmationCode,
	})
	if err != nil {
		return res, fmt.Errorf("failed to record manual booking: %w", err)
	}

	taskIDs := make([]string, 0, len(targets))

	for _, target := range targets {
		task, err := s.bookings.CreateTask(ctx, booking.ID, target)
		if err != nil {
			return res, fmt.Errorf("failed to create block task: %w", err)
		}

		taskIDs = append(taskIDs, task.ID)

		go s.process(context.WithoutCancel(ctx), booking, task)
	}

	return dto.SyncAcceptedResponse{
		BookingID: booking.ID,
		TaskIDs:   taskIDs,
		Status:    statusAccepted,
	}, nil
}

// process runs one task to a terminal status. A panic out of the driver is
// converted into a failed transition so the task never sticks in processing.
func (s *serviceImpl) process(ctx context.Context, booking bookingModel.Booking, task bookingModel.BlockTask) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		message := fmt.Sprintf("panic during block execution: %v", r)

		log.Error().Str("taskID", task.ID).Str("message", message).Msg("recovered from blocking panic")

		if err := s.bookings.MarkFailed(ctx, task.ID, booking.ID, message); err != nil {
			log.Error().Err(err).Str("taskID", task.ID).Msg("failed to record panic as task failure")
		}

		s.publishResult(ctx, task, bookingModel.TaskStatusFailed, message)
	}()

	if err := s.bookings.MarkProcessing(ctx, task.ID); err != nil {
		log.Error().Err(err).Str("taskID", task.ID).Msg("failed to mark task as processing")

		return
	}

	result, err := s.blocker.Block(ctx, task.TargetPlatform, booking.Checkin, booking.Checkout, booking.PropertyID)
	if err != nil {
		log.Error().Err(err).Str("taskID", task.ID).Str("target", string(task.TargetPlatform)).Msg("blocking failed")

		if markErr := s.bookings.MarkFailed(ctx, task.ID, booking.ID, err.Error()); markErr != nil {
			log.Error().Err(markErr).Str("taskID", task.ID).Msg("failed to mark task as failed")
		}

		s.publishResult(ctx, task, bookingModel.TaskStatusFailed, err.Error())

		return
	}

	note := ""
	if len(result.MissedDates) > 0 {
		note = "completed with unselectable dates: " + strings.Join(result.MissedDates, ", ")

		log.Warn().Str("taskID", task.ID).Strs("missedDates", result.MissedDates).Msg("block completed partially")
	}

	if err := s.bookings.MarkCompleted(ctx, task.ID, booking.ID, note); err != nil {
		log.Error().Err(err).Str("taskID", task.ID).Msg("failed to mark task as completed")

		return
	}

	s.publishResult(ctx, task, bookingModel.TaskStatusCompleted, note)
}

// publishResult is best effort: the task row is the source of truth, the
// event only mirrors it for downstream consumers.
func (s *serviceImpl) publishResult(ctx context.Context, task bookingModel.BlockTask, status bookingModel.TaskStatus, message string) {
	if s.kafka == nil || s.cfg.Kafka.ResultTopic == "" {
		return
	}

	event := resultEvent{
		BookingID:      task.BookingID,
		TaskID:         task.ID,
		TargetPlatform: task.TargetPlatform,
		Status:         status,
		Error:          message,
	}

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.ResultTopic, kafka.Message{
		Key:   task.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("taskID", task.ID).Msg("failed to publish sync result event")
	}
}
