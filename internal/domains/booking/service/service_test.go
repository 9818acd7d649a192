package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"staysync/config"
	"staysync/infras/otel/mocks"
	"staysync/internal/domains/booking/model"
	"staysync/internal/domains/booking/model/dto"
	repoMocks "staysync/internal/domains/booking/repository/mocks"
	"staysync/internal/domains/booking/service"
	"staysync/shared/cache"
	"staysync/shared/failure"
	gDto "staysync/shared/dto"
)

// stubCache is a deterministic stand-in: every read misses, every write
// succeeds. Safe for the service's async invalidation goroutines.
type stubCache struct {
	mu     sync.Mutex
	clears int
}

func (c *stubCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }

func (c *stubCache) Get(_ context.Context, _ string, _ any) error { return cache.Nil }

func (c *stubCache) Delete(_ context.Context, _ string) error { return nil }

func (c *stubCache) Clear(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears++

	return nil
}

func newService(t *testing.T) (service.Booking, *repoMocks.MockBooking, *repoMocks.MockTask) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := repoMocks.NewMockBooking(ctrl)
	mockTaskRepo := repoMocks.NewMockTask(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTaskRepo, cfg, &stubCache{}, mocks.NewOtel())

	return svc, mockRepo, mockTaskRepo
}

func TestBookingService_CreateBooking(t *testing.T) {
	checkin := time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2025, time.December, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(repo *repoMocks.MockBooking)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateBookingRequest{
				Platform:  model.PlatformAirbnb,
				Checkin:   checkin,
				Checkout:  checkout,
				GuestName: "John Smith",
			},
			setupMock: func(repo *repoMocks.MockBooking) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown platform rejected",
			req: dto.CreateBookingRequest{
				Platform: model.Platform("vrbo"),
				Checkin:  checkin,
				Checkout: checkout,
			},
			setupMock: func(_ *repoMocks.MockBooking) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "checkin equal to checkout rejected",
			req: dto.CreateBookingRequest{
				Platform: model.PlatformBooking,
				Checkin:  checkin,
				Checkout: checkin,
			},
			setupMock: func(_ *repoMocks.MockBooking) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req: dto.CreateBookingRequest{
				Platform: model.PlatformManual,
				Checkin:  checkin,
				Checkout: checkout,
			},
			setupMock: func(repo *repoMocks.MockBooking) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			tt.setupMock(mockRepo)

			booking, err := svc.CreateBooking(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, booking.ID)
			assert.Equal(t, tt.req.Platform, booking.Platform)
			assert.False(t, booking.BlockedOnOtherPlatform)
		})
	}
}

func TestBookingService_CreateTask(t *testing.T) {
	tests := []struct {
		name      string
		target    model.Platform
		setupMock func(repo *repoMocks.MockBooking, taskRepo *repoMocks.MockTask)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "successful creation starts pending",
			target: model.PlatformBooking,
			setupMock: func(repo *repoMocks.MockBooking, taskRepo *repoMocks.MockTask) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				taskRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, task model.BlockTask) error {
						assert.Equal(t, model.TaskStatusPending, task.Status)
						return nil
					})
			},
		},
		{
			name:      "manual is not a valid target",
			target:    model.PlatformManual,
			setupMock: func(_ *repoMocks.MockBooking, _ *repoMocks.MockTask) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "unknown booking",
			target: model.PlatformAirbnb,
			setupMock: func(repo *repoMocks.MockBooking, _ *repoMocks.MockTask) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockTaskRepo := newService(t)
			tt.setupMock(mockRepo, mockTaskRepo)

			task, err := svc.CreateTask(context.Background(), "booking-1", tt.target)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, task.ID)
			assert.Equal(t, "booking-1", task.BookingID)
			assert.Equal(t, tt.target, task.TargetPlatform)
		})
	}
}

func TestBookingService_Transitions(t *testing.T) {
	task := func(status model.TaskStatus) model.BlockTask {
		return model.BlockTask{
			ID:             "task-1",
			BookingID:      "booking-1",
			TargetPlatform: model.PlatformBooking,
			Status:         status,
		}
	}

	t.Run("pending to processing", func(t *testing.T) {
		svc, _, mockTaskRepo := newService(t)

		mockTaskRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(task(model.TaskStatusPending), nil)
		mockTaskRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updates map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.TaskStatusProcessing, updates[model.FieldStatus])
				return nil
			})

		assert.NoError(t, svc.MarkProcessing(context.Background(), "task-1"))
	})

	t.Run("pending cannot skip to completed", func(t *testing.T) {
		svc, _, mockTaskRepo := newService(t)

		mockTaskRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(task(model.TaskStatusPending), nil)

		err := svc.MarkCompleted(context.Background(), "task-1", "booking-1", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("processing to completed flips booking flag", func(t *testing.T) {
		svc, mockRepo, mockTaskRepo := newService(t)

		mockTaskRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(task(model.TaskStatusProcessing), nil)
		mockTaskRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updates map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.TaskStatusCompleted, updates[model.FieldStatus])
				assert.NotNil(t, updates[model.FieldCompletedAt])
				return nil
			})
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updates map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, updates[model.FieldBlockedOnOtherPlatform])
				return nil
			})

		assert.NoError(t, svc.MarkCompleted(context.Background(), "task-1", "booking-1", ""))
	})

	t.Run("processing to failed records message", func(t *testing.T) {
		svc, mockRepo, mockTaskRepo := newService(t)

		mockTaskRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(task(model.TaskStatusProcessing), nil)
		mockTaskRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updates map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.TaskStatusFailed, updates[model.FieldStatus])
				assert.Equal(t, "login timed out", updates[model.FieldErrorMessage])
				return nil
			})
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.MarkFailed(context.Background(), "task-1", "booking-1", "login timed out"))
	})

	t.Run("terminal states are immutable", func(t *testing.T) {
		for _, status := range []model.TaskStatus{model.TaskStatusCompleted, model.TaskStatusFailed} {
			svc, _, mockTaskRepo := newService(t)

			mockTaskRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(task(status), nil)

			err := svc.MarkProcessing(context.Background(), "task-1")

			assert.Error(t, err)
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		}
	})

	t.Run("missing task", func(t *testing.T) {
		svc, _, mockTaskRepo := newService(t)

		mockTaskRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BlockTask{}, nil)

		err := svc.MarkProcessing(context.Background(), "task-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	models := []model.Booking{
		{ID: "booking-1", Platform: model.PlatformAirbnb},
		{ID: "booking-2", Platform: model.PlatformBooking},
	}

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(models, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
}

func TestBookingService_GetWithTasks(t *testing.T) {
	t.Run("found with task history", func(t *testing.T) {
		svc, mockRepo, mockTaskRepo := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Platform: model.PlatformAirbnb}, nil)
		mockTaskRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BlockTask{
				{ID: "task-1", BookingID: "booking-1", Status: model.TaskStatusCompleted},
			}, nil)

		res, err := svc.GetWithTasks(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Len(t, res.Tasks, 1)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.GetWithTasks(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
