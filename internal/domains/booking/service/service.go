package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/otel"
	"staysync/internal/domains/booking/model"
	"staysync/internal/domains/booking/model/dto"
	"staysync/internal/domains/booking/repository"
	"staysync/shared"
	"staysync/shared/cache"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
)

const (
	cacheGetBooking     = "booking:get"
	cacheGetAllBookings = "booking:gets"
)

// Booking is the durable store for reservations and their block tasks.
// Task status transitions are forward-only; violations come back as
// Conflict, never as silent overwrites.
type Booking interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (model.Booking, error)
	CreateTask(ctx context.Context, bookingID string, target model.Platform) (model.BlockTask, error)
	MarkProcessing(ctx context.Context, taskID string) error
	MarkCompleted(ctx context.Context, taskID, bookingID, note string) error
	MarkFailed(ctx context.Context, taskID, bookingID, message string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetWithTasks(ctx context.Context, id string) (dto.BookingWithTasksResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	taskRepo repository.Task
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Booking, taskRepo repository.Task, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		taskRepo: taskRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (booking model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.Platform.Valid() {
		return booking, failure.BadRequestFromString("unknown platform") // nolint:wrapcheck
	}

	if !req.Checkin.Before(req.Checkout) {
		return booking, failure.BadRequestFromString("checkin must be before checkout") // nolint:wrapcheck
	}

	booking = req.ToModel()

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return booking, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateBookingCaches(ctx)

	return booking, nil
}

func (s *serviceImpl) CreateTask(ctx context.Context, bookingID string, target model.Platform) (task model.BlockTask, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateTask")
	defer scope.End()
	defer scope.TraceIfError(err)

	if target != model.PlatformAirbnb && target != model.PlatformBooking {
		return task, failure.BadRequestFromString("invalid target platform") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return task, fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return task, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	task = model.BlockTask{
		ID:             uuid.NewString(),
		BookingID:      bookingID,
		TargetPlatform: target,
		Status:         model.TaskStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}

	if err = s.taskRepo.Insert(ctx, task); err != nil {
		log.Error().Err(err).Msg("failed to create block task")

		return task, fmt.Errorf("failed to create block task: %w", err)
	}

	s.invalidateBookingCaches(ctx)

	return task, nil
}

func (s *serviceImpl) MarkProcessing(ctx context.Context, taskID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkProcessing")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, taskID, model.TaskStatusProcessing, map[string]any{})
}

func (s *serviceImpl) MarkCompleted(ctx context.Context, taskID, bookingID, note string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkCompleted")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.transition(ctx, taskID, model.TaskStatusCompleted, map[string]any{
		model.FieldCompletedAt:  timezone.Now(),
		model.FieldErrorMessage: note,
	})
	if err != nil {
		return err
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldBlockedOnOtherPlatform: true,
		model.FieldUpdatedAt:              timezone.Now(),
	}, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to flag booking as blocked")

		return fmt.Errorf("failed to flag booking as blocked: %w", err)
	}

	s.invalidateBookingCaches(ctx)

	return nil
}

func (s *serviceImpl) MarkFailed(ctx context.Context, taskID, bookingID, message string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkFailed")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.transition(ctx, taskID, model.TaskStatusFailed, map[string]any{
		model.FieldCompletedAt:  timezone.Now(),
		model.FieldErrorMessage: message,
	})
	if err != nil {
		return err
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldErrorMessage: message,
		model.FieldUpdatedAt:    timezone.Now(),
	}, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to record booking error")

		return fmt.Errorf("failed to record booking error: %w", err)
	}

	s.invalidateBookingCaches(ctx)

	return nil
}

// transition enforces the forward-only task state machine before writing.
func (s *serviceImpl) transition(ctx context.Context, taskID string, next model.TaskStatus, updates map[string]any) error {
	filter := shared.FilterByID(taskID, model.FieldID, model.TaskTableName)

	task, err := s.taskRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("taskID", taskID).Msg("failed to get block task")

		return fmt.Errorf("failed to get block task: %w", err)
	}

	if task.ID == "" {
		return failure.NotFound("block task not found") // nolint:wrapcheck
	}

	if !task.Status.CanTransitionTo(next) {
		return failure.Conflict(fmt.Sprintf("cannot transition task from %s to %s", task.Status, next)) // nolint:wrapcheck
	}

	updates[model.FieldStatus] = next
	updates[model.FieldUpdatedAt] = timezone.Now()

	if err := s.taskRepo.Update(ctx, updates, filter); err != nil {
		log.Error().Err(err).Str("taskID", taskID).Msg("failed to update block task")

		return fmt.Errorf("failed to update block task: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBookings, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to cache bookings")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetWithTasks(ctx context.Context, id string) (res dto.BookingWithTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetWithTasks")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	tasks, err := s.taskRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, shared.FilterByID(id, model.FieldBookingID, model.TaskTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get block tasks")

		return res, fmt.Errorf("failed to get block tasks: %w", err)
	}

	res.FromModels(booking, tasks)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to cache booking")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBookings)
		shared.InvalidateCaches(c, s.cache, cacheGetBooking)
	}()
}
