package platform

import (
	"context"
	"time"

	"staysync/config"
	"staysync/infras/browser"
	"staysync/internal/domains/booking/model"
)

// monthNavigationBound caps next-month clicks at two years out so calendar
// navigation always terminates.
const monthNavigationBound = 24

const monthLabelFormat = "January 2006"

// Driver automates one platform's host calendar. The step methods run in
// order inside a single browser session owned by the Blocker:
// Authenticate, LocateProperty, NavigateToMonth, SelectRange, ApplyBlock,
// Confirm. LocateProperty and Confirm are lenient; the rest fail the
// attempt.
type Driver interface {
	Target() model.Platform
	Authenticate(ctx context.Context, page browser.Page, creds config.PlatformCredentials) error
	LocateProperty(ctx context.Context, page browser.Page, propertyID string)
	NavigateToMonth(ctx context.Context, page browser.Page, target time.Time) error
	SelectRange(ctx context.Context, page browser.Page, checkin, checkout time.Time) (missed []string, err error)
	ApplyBlock(ctx context.Context, page browser.Page, checkin time.Time) error
	Confirm(ctx context.Context, page browser.Page)
}

// Drivers is the closed set of supported targets. Anything outside this
// map is not a blockable platform.
func Drivers() map[model.Platform]Driver {
	return map[model.Platform]Driver{
		model.PlatformAirbnb:  NewAirbnbDriver(),
		model.PlatformBooking: NewBookingDriver(),
	}
}
