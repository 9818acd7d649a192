package dto

import (
	"time"

	"github.com/google/uuid"

	"staysync/internal/domains/booking/model"
	"staysync/shared"
	"staysync/shared/constant"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
)

// CreateBookingRequest carries a normalized reservation into the store. It
// is built by the ingestion paths (email parse result or manual entry),
// never decoded directly from a request body.
type CreateBookingRequest struct {
	Platform         model.Platform
	Checkin          time.Time
	Checkout         time.Time
	PropertyID       string
	GuestName        string
	ConfirmationCode string
}

func (c *CreateBookingRequest) ToModel() model.Booking {
	return model.Booking{
		ID:                     uuid.NewString(),
		Platform:               c.Platform,
		Checkin:                c.Checkin,
		Checkout:               c.Checkout,
		PropertyID:             c.PropertyID,
		GuestName:              c.GuestName,
		ConfirmationCode:       c.ConfirmationCode,
		BlockedOnOtherPlatform: false,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

type BookingResponse struct {
	ID                     string         `json:"id"`
	Platform               model.Platform `json:"platform"`
	Checkin                string         `json:"checkin"`
	Checkout               string         `json:"checkout"`
	PropertyID             string         `json:"property_id,omitempty"`
	GuestName              string         `json:"guest_name,omitempty"`
	ConfirmationCode       string         `json:"confirmation_code,omitempty"`
	BlockedOnOtherPlatform bool           `json:"blocked_on_other_platform"`
	ErrorMessage           string         `json:"error_message,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.Platform = mod.Platform
	r.Checkin = mod.Checkin.Format(constant.DateOnlyFormat)
	r.Checkout = mod.Checkout.Format(constant.DateOnlyFormat)
	r.PropertyID = mod.PropertyID
	r.GuestName = mod.GuestName
	r.ConfirmationCode = mod.ConfirmationCode
	r.BlockedOnOtherPlatform = mod.BlockedOnOtherPlatform
	r.ErrorMessage = mod.ErrorMessage
	r.CreatedAt = mod.CreatedAt
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BlockTaskResponse struct {
	ID             string           `json:"id"`
	TargetPlatform model.Platform   `json:"target_platform"`
	Status         model.TaskStatus `json:"status"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}

func (r *BlockTaskResponse) FromModel(mod model.BlockTask) {
	r.ID = mod.ID
	r.TargetPlatform = mod.TargetPlatform
	r.Status = mod.Status
	r.ErrorMessage = mod.ErrorMessage
	r.CreatedAt = mod.CreatedAt
	r.CompletedAt = mod.CompletedAt
}

type BookingWithTasksResponse struct {
	BookingResponse
	Tasks []BlockTaskResponse `json:"tasks"`
}

func (r *BookingWithTasksResponse) FromModels(booking model.Booking, tasks []model.BlockTask) {
	r.BookingResponse.FromModel(booking)

	r.Tasks = make([]BlockTaskResponse, len(tasks))
	for i, task := range tasks {
		r.Tasks[i].FromModel(task)
	}
}
