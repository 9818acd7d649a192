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
	airbnbLoginURL    = "https://www.airbnb.com/login"
	airbnbCalendarURL = "https://www.airbnb.com/hosting/calendar"
	airbnbHostPattern = "**/hosting**"

	airbnbCookieAcceptSelector = `button:has-text("Accept")`
	airbnbEmailSelector        = `input[type="email"]`
	airbnbPasswordSelector     = `input[type="password"]`
	airbnbSubmitSelector       = `button[type="submit"]`
	airbnbMonthHeaderSelector  = `.calendar-month-header`
	airbnbNextMonthSelector    = `[aria-label*="Next"]`
	airbnbBlockSelector        = `button:has-text("Block")`
	airbnbUnavailableSelector  = `button:has-text("Unavailable")`
	airbnbBlockMenuSelector    = `text="Block dates"`
	airbnbConfirmSelector      = `button:has-text("Save")`
)

func airbnbDateCellSelector(date time.Time) string {
	return fmt.Sprintf(`td[data-testid*="%s"]`, date.Format(constant.DateOnlyFormat))
}

type airbnbDriver struct{}

func NewAirbnbDriver() Driver {
	return &airbnbDriver{}
}

func (d *airbnbDriver) Target() model.Platform {
	return model.PlatformAirbnb
}

// Authenticate submits the two-step login form and waits for the hosting
// area URL. The cookie-consent interstitial is dismissed when present;
// its absence is not an error.
func (d *airbnbDriver) Authenticate(ctx context.Context, page browser.Page, creds config.PlatformCredentials) error {
	if err := page.Goto(ctx, airbnbLoginURL); err != nil {
		return fmt.Errorf("airbnb login page: %w", err)
	}

	if err := page.Click(ctx, airbnbCookieAcceptSelector); err != nil {
		log.Debug().Err(err).Msg("no cookie consent to dismiss on airbnb")
	}

	if err := page.Fill(ctx, airbnbEmailSelector, creds.Email); err != nil {
		return fmt.Errorf("airbnb email field: %w", err)
	}

	if err := page.Click(ctx, airbnbSubmitSelector); err != nil {
		return fmt.Errorf("airbnb email submit: %w", err)
	}

	page.Settle(ctx)

	if err := page.Fill(ctx, airbnbPasswordSelector, creds.Password); err != nil {
		return fmt.Errorf("airbnb password field: %w", err)
	}

	if err := page.Click(ctx, airbnbSubmitSelector); err != nil {
		return fmt.Errorf("airbnb password submit: %w", err)
	}

	if err := page.WaitForURL(ctx, airbnbHostPattern); err != nil {
		return fmt.Errorf("airbnb authentication: %w", err)
	}

	if err := page.Goto(ctx, airbnbCalendarURL); err != nil {
		return fmt.Errorf("airbnb calendar page: %w", err)
	}

	return nil
}

func (d *airbnbDriver) LocateProperty(ctx context.Context, page browser.Page, propertyID string) {
	if propertyID == "" {
		return
	}

	selector := fmt.Sprintf(`[data-listing-id="%s"]`, propertyID)
	if err := page.Click(ctx, selector); err != nil {
		log.Warn().Err(err).Str("propertyID", propertyID).Msg("could not find airbnb property, using first available")

		return
	}

	page.Settle(ctx)
}

func (d *airbnbDriver) NavigateToMonth(ctx context.Context, page browser.Page, target time.Time) error {
	targetLabel := target.Format(monthLabelFormat)

	for range monthNavigationBound {
		current, err := page.TextContent(ctx, airbnbMonthHeaderSelector)
		if err != nil {
			return fmt.Errorf("airbnb month header: %w", err)
		}

		if strings.Contains(strings.ToLower(current), strings.ToLower(targetLabel)) {
			return nil
		}

		if err := page.Click(ctx, airbnbNextMonthSelector); err != nil {
			return fmt.Errorf("airbnb next month: %w", err)
		}

		page.Settle(ctx)
	}

	return fmt.Errorf("airbnb calendar did not reach %s within %d steps", targetLabel, monthNavigationBound)
}

// SelectRange clicks the check-in cell then the last blocked night
// (checkout - 1): the airbnb calendar selects a whole span from its two
// endpoints.
func (d *airbnbDriver) SelectRange(ctx context.Context, page browser.Page, checkin, checkout time.Time) ([]string, error) {
	if err := page.Click(ctx, airbnbDateCellSelector(checkin)); err != nil {
		return nil, fmt.Errorf("airbnb check-in cell: %w", err)
	}

	page.Settle(ctx)

	lastNight := checkout.AddDate(0, 0, -1)
	if err := page.Click(ctx, airbnbDateCellSelector(lastNight)); err != nil {
		return nil, fmt.Errorf("airbnb last night cell: %w", err)
	}

	page.Settle(ctx)

	return nil, nil
}

func (d *airbnbDriver) ApplyBlock(ctx context.Context, page browser.Page, checkin time.Time) error {
	return runAttempts(ctx, "airbnb apply block", []attempt{
		{
			name: "block button",
			run: func(ctx context.Context) error {
				return page.Click(ctx, airbnbBlockSelector)
			},
		},
		{
			name: "unavailable button",
			run: func(ctx context.Context) error {
				return page.Click(ctx, airbnbUnavailableSelector)
			},
		},
		{
			name: "context menu",
			run: func(ctx context.Context) error {
				if err := page.RightClick(ctx, airbnbDateCellSelector(checkin)); err != nil {
					return err
				}

				return page.Click(ctx, airbnbBlockMenuSelector)
			},
		},
	})
}

func (d *airbnbDriver) Confirm(ctx context.Context, page browser.Page) {
	page.Settle(ctx)

	if err := page.Click(ctx, airbnbConfirmSelector); err != nil {
		log.Debug().Err(err).Msg("no airbnb confirmation dialog, block applied directly")
	}
}
