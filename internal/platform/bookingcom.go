package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/browser"
	"staysync/internal/domains/booking/model"
	"staysync/shared/constant"
)

const (
	bookingLoginURL       = "https://admin.booking.com/hotel/hoteladmin/login.html"
	bookingCalendarURL    = "https://admin.booking.com/hotel/hoteladmin/extranet_ng/manage/calendar.html"
	bookingExtranetPattern = "**/extranet/**"

	bookingLoginNameSelector   = `input[name="loginname"]`
	bookingPasswordSelector    = `input[name="password"]`
	bookingSubmitSelector      = `button[type="submit"]`
	bookingPropertySelector    = `select[name="hotel_id"]`
	bookingMonthHeaderSelector = `.calendar-current-month`
	bookingNextMonthSelector   = `[data-action="calendar-next-month"]`
	bookingCloseSelector       = `button:has-text("Close")`
	bookingUnavailableSelector = `button:has-text("Unavailable")`
	bookingCloseClassSelector  = `button.availability-close`
	bookingConfirmSelector     = `button:has-text("Confirm")`
)

func bookingDateCellSelector(date time.Time) string {
	return fmt.Sprintf(`td[data-date="%s"]`, date.Format(constant.DateOnlyFormat))
}

type bookingDriver struct{}

func NewBookingDriver() Driver {
	return &bookingDriver{}
}

func (d *bookingDriver) Target() model.Platform {
	return model.PlatformBooking
}

func (d *bookingDriver) Authenticate(ctx context.Context, page browser.Page, creds config.PlatformCredentials) error {
	if err := page.Goto(ctx, bookingLoginURL); err != nil {
		return fmt.Errorf("booking.com login page: %w", err)
	}

	if err := page.Fill(ctx, bookingLoginNameSelector, creds.Email); err != nil {
		return fmt.Errorf("booking.com login field: %w", err)
	}

	if err := page.Fill(ctx, bookingPasswordSelector, creds.Password); err != nil {
		return fmt.Errorf("booking.com password field: %w", err)
	}

	if err := page.Click(ctx, bookingSubmitSelector); err != nil {
		return fmt.Errorf("booking.com login submit: %w", err)
	}

	if err := page.WaitForURL(ctx, bookingExtranetPattern); err != nil {
		return fmt.Errorf("booking.com authentication: %w", err)
	}

	if err := page.Goto(ctx, bookingCalendarURL); err != nil {
		return fmt.Errorf("booking.com calendar page: %w", err)
	}

	return nil
}

func (d *bookingDriver) LocateProperty(ctx context.Context, page browser.Page, propertyID string) {
	if propertyID == "" {
		return
	}

	if err := page.SelectOption(ctx, bookingPropertySelector, propertyID); err != nil {
		log.Warn().Err(err).Str("propertyID", propertyID).Msg("could not select booking.com property, using default")

		return
	}

	page.Settle(ctx)
}

func (d *bookingDriver) NavigateToMonth(ctx context.Context, page browser.Page, target time.Time) error {
	targetLabel := target.Format(monthLabelFormat)

	for range monthNavigationBound {
		current, err := page.TextContent(ctx, bookingMonthHeaderSelector)
		if err != nil {
			return fmt.Errorf("booking.com month header: %w", err)
		}

		if strings.Contains(strings.ToLower(current), strings.ToLower(targetLabel)) {
			return nil
		}

		if err := page.Click(ctx, bookingNextMonthSelector); err != nil {
			return fmt.Errorf("booking.com next month: %w", err)
		}

		page.Settle(ctx)
	}

	return fmt.Errorf("booking.com calendar did not reach %s within %d steps", targetLabel, monthNavigationBound)
}

// SelectRange clicks every night in [checkin, checkout) one cell at a
// time; the extranet has no span selection. A cell that cannot be clicked
// is recorded and skipped, not fatal.
func (d *bookingDriver) SelectRange(ctx context.Context, page browser.Page, checkin, checkout time.Time) ([]string, error) {
	var missed []string

	for date := checkin; date.Before(checkout); date = date.AddDate(0, 0, 1) {
		if err := page.Click(ctx, bookingDateCellSelector(date)); err != nil {
			dateStr := date.Format(constant.DateOnlyFormat)
			log.Warn().Err(err).Str("date", dateStr).Msg("could not select booking.com date cell")
			missed = append(missed, dateStr)

			continue
		}

		page.Settle(ctx)
	}

	return missed, nil
}

func (d *bookingDriver) ApplyBlock(ctx context.Context, page browser.Page, _ time.Time) error {
	return runAttempts(ctx, "booking.com apply block", []attempt{
		{
			name: "close button",
			run: func(ctx context.Context) error {
				return page.Click(ctx, bookingCloseSelector)
			},
		},
		{
			name: "unavailable button",
			run: func(ctx context.Context) error {
				return page.Click(ctx, bookingUnavailableSelector)
			},
		},
		{
			name: "availability close control",
			run: func(ctx context.Context) error {
				return page.Click(ctx, bookingCloseClassSelector)
			},
		},
	})
}

func (d *bookingDriver) Confirm(ctx context.Context, page browser.Page) {
	page.Settle(ctx)

	if err := page.Click(ctx, bookingConfirmSelector); err != nil {
		log.Debug().Err(err).Msg("no booking.com confirmation dialog, closure applied directly")
	}
}
