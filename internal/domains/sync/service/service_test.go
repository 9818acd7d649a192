package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"staysync/config"
	"staysync/infras/kafka"
	"staysync/infras/otel/mocks"
	bookingModel "staysync/internal/domains/booking/model"
	bookingDto "staysync/internal/domains/booking/model/dto"
	bookingMocks "staysync/internal/domains/booking/service/mocks"
	"staysync/internal/domains/sync/model/dto"
	"staysync/internal/domains/sync/service"
	"staysync/internal/platform"
	platformMocks "staysync/internal/platform/mocks"
	"staysync/shared/emailparse"
	"staysync/shared/failure"
)

const airbnbEmail = `Thanks for booking with Airbnb!
Guest: John Smith
Check-in: Dec 15 2025
Checkout: Dec 17 2025
Confirmation: HMABC123`

// fakeKafka records published messages and signals each publish, so tests
// can wait for the background processing to reach its terminal publish
// before asserting.
type fakeKafka struct {
	mu       sync.Mutex
	messages []kafka.Message
	signal   chan struct{}
}

func newFakeKafka() *fakeKafka {
	return &fakeKafka{signal: make(chan struct{}, 8)}
}

func (f *fakeKafka) SendMessages(_ context.Context, _ string, messages ...kafka.Message) error {
	f.mu.Lock()
	f.messages = append(f.messages, messages...)
	f.mu.Unlock()

	for range messages {
		f.signal <- struct{}{}
	}

	return nil
}

func (f *fakeKafka) waitForPublishes(t *testing.T, n int) []kafka.Message {
	t.Helper()

	for range n {
		select {
		case <-f.signal:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for sync result publish")
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]kafka.Message(nil), f.messages...)
}

func newService(t *testing.T) (service.Sync, *bookingMocks.MockBooking, *platformMocks.MockBlocker, *fakeKafka) {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBooking(ctrl)
	blocker := platformMocks.NewMockBlocker(ctrl)
	broker := newFakeKafka()

	cfg := &config.Config{}
	cfg.Kafka.ResultTopic = "sync.result"

	svc := service.New(bookings, blocker, emailparse.NewParser(), broker, cfg, mocks.NewOtel())

	return svc, bookings, blocker, broker
}

func expectCreateBooking(bookings *bookingMocks.MockBooking, id string) {
	bookings.EXPECT().
		CreateBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req bookingDto.CreateBookingRequest) (bookingModel.Booking, error) {
			booking := req.ToModel()
			booking.ID = id

			return booking, nil
		})
}

func expectCreateTask(bookings *bookingMocks.MockBooking, taskID, bookingID string) {
	bookings.EXPECT().
		CreateTask(gomock.Any(), bookingID, gomock.Any()).
		DoAndReturn(func(_ context.Context, bookingID string, target bookingModel.Platform) (bookingModel.BlockTask, error) {
			return bookingModel.BlockTask{
				ID:             taskID,
				BookingID:      bookingID,
				TargetPlatform: target,
				Status:         bookingModel.TaskStatusPending,
			}, nil
		})
}

func TestSyncHandleEmail(t *testing.T) {
	t.Run("airbnb email blocks the booking.com calendar", func(t *testing.T) {
		svc, bookings, blocker, broker := newService(t)

		expectCreateBooking(bookings, "b1")
		expectCreateTask(bookings, "t1", "b1")
		bookings.EXPECT().MarkProcessing(gomock.Any(), "t1").Return(nil)
		blocker.EXPECT().
			Block(gomock.Any(), bookingModel.PlatformBooking, gomock.Any(), gomock.Any(), "").
			Return(platform.Result{}, nil)
		bookings.EXPECT().MarkCompleted(gomock.Any(), "t1", "b1", "").Return(nil)

		res, err := svc.HandleEmail(context.Background(), dto.EmailWebhookRequest{
			Subject:  "Reservation confirmed",
			BodyText: airbnbEmail,
		})

		assert.NoError(t, err)
		assert.Equal(t, "b1", res.BookingID)
		assert.Equal(t, []string{"t1"}, res.TaskIDs)
		assert.Equal(t, "accepted", res.Status)

		messages := broker.waitForPublishes(t, 1)
		assert.Len(t, messages, 1)
		assert.Equal(t, "b1", messages[0].Key)
	})

	t.Run("html body is parsed when text is absent", func(t *testing.T) {
		svc, bookings, blocker, broker := newService(t)

		expectCreateBooking(bookings, "b2")
		expectCreateTask(bookings, "t2", "b2")
		bookings.EXPECT().MarkProcessing(gomock.Any(), "t2").Return(nil)
		blocker.EXPECT().
			Block(gomock.Any(), bookingModel.PlatformBooking, gomock.Any(), gomock.Any(), "").
			Return(platform.Result{}, nil)
		bookings.EXPECT().MarkCompleted(gomock.Any(), "t2", "b2", "").Return(nil)

		_, err := svc.HandleEmail(context.Background(), dto.EmailWebhookRequest{
			Subject:  "Reservation confirmed",
			BodyHTML: "<html><body><p>Thanks for booking with Airbnb!</p><p>Check-in: Dec 15 2025</p><p>Checkout: Dec 17 2025</p></body></html>",
		})

		assert.NoError(t, err)
		broker.waitForPublishes(t, 1)
	})

	t.Run("unrecognized email is rejected synchronously", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.HandleEmail(context.Background(), dto.EmailWebhookRequest{
			Subject:  "Your newsletter",
			BodyText: "nothing to see here",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("blocking failure marks the task failed", func(t *testing.T) {
		svc, bookings, blocker, broker := newService(t)

		expectCreateBooking(bookings, "b3")
		expectCreateTask(bookings, "t3", "b3")
		bookings.EXPECT().MarkProcessing(gomock.Any(), "t3").Return(nil)
		blocker.EXPECT().
			Block(gomock.Any(), bookingModel.PlatformBooking, gomock.Any(), gomock.Any(), "").
			Return(platform.Result{}, assert.AnError)
		bookings.EXPECT().MarkFailed(gomock.Any(), "t3", "b3", assert.AnError.Error()).Return(nil)

		_, err := svc.HandleEmail(context.Background(), dto.EmailWebhookRequest{
			Subject:  "Reservation confirmed",
			BodyText: airbnbEmail,
		})

		assert.NoError(t, err, "driver failures surface on the task, not the webhook response")
		broker.waitForPublishes(t, 1)
	})

	t.Run("driver panic resolves to exactly one failed transition", func(t *testing.T) {
		svc, bookings, blocker, broker := newService(t)

		expectCreateBooking(bookings, "b4")
		expectCreateTask(bookings, "t4", "b4")
		bookings.EXPECT().MarkProcessing(gomock.Any(), "t4").Return(nil)
		blocker.EXPECT().
			Block(gomock.Any(), bookingModel.PlatformBooking, gomock.Any(), gomock.Any(), "").
			DoAndReturn(func(context.Context, bookingModel.Platform, time.Time, time.Time, string) (platform.Result, error) {
				panic("browser crashed")
			})

		var failureMessage string

		bookings.EXPECT().
			MarkFailed(gomock.Any(), "t4", "b4", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, message string) error {
				failureMessage = message

				return nil
			}).
			Times(1)

		_, err := svc.HandleEmail(context.Background(), dto.EmailWebhookRequest{
			Subject:  "Reservation confirmed",
			BodyText: airbnbEmail,
		})

		assert.NoError(t, err)
		broker.waitForPublishes(t, 1)
		assert.Contains(t, failureMessage, "browser crashed")
	})

	t.Run("partial selection completes with the missed dates recorded", func(t *testing.T) {
		svc, bookings, blocker, broker := newService(t)

		expectCreateBooking(bookings, "b5")
		expectCreateTask(bookings, "t5", "b5")
		bookings.EXPECT().MarkProcessing(gomock.Any(), "t5").Return(nil)
		blocker.EXPECT().
			Block(gomock.Any(), bookingModel.PlatformBooking, gomock.Any(), gomock.Any(), "").
			Return(platform.Result{MissedDates: []string{"2025-12-16"}}, nil)

		var note string

		bookings.EXPECT().
			MarkCompleted(gomock.Any(), "t5", "b5", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, n string) error {
				note = n

				return nil
			})

		_, err := svc.HandleEmail(context.Background(), dto.EmailWebhookRequest{
			Subject:  "Reservation confirmed",
			BodyText: airbnbEmail,
		})

		assert.NoError(t, err)
		broker.waitForPublishes(t, 1)
		assert.Contains(t, note, "2025-12-16")
	})
}

func TestSyncHandleManualBlock(t *testing.T) {
	t.Run("dual-platform request produces two independent tasks", func(t *testing.T) {
		svc, bookings, blocker, broker := newService(t)

		bookings.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req bookingDto.CreateBookingRequest) (bookingModel.Booking, error) {
				assert.Equal(t, bookingModel.PlatformManual, req.Platform)
				assert.Equal(t, "Walk-in", req.GuestName)
				assert.Equal(t, "MANUAL", req.ConfirmationCode)

				booking := req.ToModel()
				booking.ID = "b6"

				return booking, nil
			})

		taskIDs := map[bookingModel.Platform]string{
			bookingModel.PlatformAirbnb:  "t6a",
			bookingModel.PlatformBooking: "t6b",
		}

		bookings.EXPECT().
			CreateTask(gomock.Any(), "b6", gomock.Any()).
			DoAndReturn(func(_ context.Context, bookingID string, target bookingModel.Platform) (bookingModel.BlockTask, error) {
				return bookingModel.BlockTask{
					ID:             taskIDs[target],
					BookingID:      bookingID,
					TargetPlatform: target,
					Status:         bookingModel.TaskStatusPending,
				}, nil
			}).
			Times(2)

		bookings.EXPECT().MarkProcessing(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		blocker.EXPECT().
			Block(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "prop-1").
			Return(platform.Result{}, nil).
			Times(2)
		bookings.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), "b6", "").Return(nil).Times(2)

		res, err := svc.HandleManualBlock(context.Background(), dto.ManualBlockRequest{
			Checkin:      "2026-07-01",
			Checkout:     "2026-07-05",
			PropertyID:   "prop-1",
			BlockAirbnb:  true,
			BlockBooking: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "b6", res.BookingID)
		assert.ElementsMatch(t, []string{"t6a", "t6b"}, res.TaskIDs)

		broker.waitForPublishes(t, 2)
	})

	t.Run("no target platform is a bad request", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.HandleManualBlock(context.Background(), dto.ManualBlockRequest{
			Checkin:  "2026-07-01",
			Checkout: "2026-07-05",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.HandleManualBlock(context.Background(), dto.ManualBlockRequest{
			Checkin:     "July 1st",
			Checkout:    "2026-07-05",
			BlockAirbnb: true,
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
