package platform

//go:generate go run go.uber.org/mock/mockgen -source=./blocker.go -destination=./mocks/blocker_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/browser"
	"staysync/infras/otel"
	"staysync/internal/domains/booking/model"
	"staysync/shared/constant"
)

// Result reports a finished blocking attempt. MissedDates lists the
// nights inside the requested range the driver could not select; the
// attempt still counts as successful when the block action applied.
type Result struct {
	MissedDates []string
}

// Blocker runs one complete blocking attempt against a target platform.
// Each call gets a fresh isolated browser session that is released on
// every exit path.
type Blocker interface {
	Block(ctx context.Context, target model.Platform, checkin, checkout time.Time, propertyID string) (Result, error)
}

type blockerImpl struct {
	runtime   browser.Runtime
	drivers   map[model.Platform]Driver
	snapshots SnapshotStore
	cfg       *config.Config
	otel      otel.Otel
}

func NewBlocker(runtime browser.Runtime, snapshots SnapshotStore, cfg *config.Config, otel otel.Otel) Blocker {
	return &blockerImpl{
		runtime:   runtime,
		drivers:   Drivers(),
		snapshots: snapshots,
		cfg:       cfg,
		otel:      otel,
	}
}

func (b *blockerImpl) Block(ctx context.Context, target model.Platform, checkin, checkout time.Time, propertyID string) (res Result, err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelBrowserScopeName, constant.OtelBrowserScopeName+".Block")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"platform": string(target),
		"checkin":  checkin.Format(constant.DateOnlyFormat),
		"checkout": checkout.Format(constant.DateOnlyFormat),
	})

	driver, ok := b.drivers[target]
	if !ok {
		return res, fmt.Errorf("no driver for platform %q", target)
	}

	session, err := b.runtime.NewSession(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to open browser session: %w", err)
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("platform", string(target)).Msg("failed to release browser session")
		}
	}()

	page := session.Page()

	res, err = b.execute(ctx, driver, page, checkin, checkout, propertyID)
	if err != nil {
		b.captureSnapshot(ctx, page, target)

		return res, err
	}

	log.Info().
		Str("platform", string(target)).
		Str("checkin", checkin.Format(constant.DateOnlyFormat)).
		Str("checkout", checkout.Format(constant.DateOnlyFormat)).
		Int("missedDates", len(res.MissedDates)).
		Msg("dates blocked")

	return res, nil
}

func (b *blockerImpl) execute(ctx context.Context, driver Driver, page browser.Page, checkin, checkout time.Time, propertyID string) (res Result, err error) {
	creds := b.credentials(driver.Target())

	if err = driver.Authenticate(ctx, page, creds); err != nil {
		return res, fmt.Errorf("authentication failed: %w", err)
	}

	driver.LocateProperty(ctx, page, propertyID)

	if err = driver.NavigateToMonth(ctx, page, checkin); err != nil {
		return res, fmt.Errorf("calendar navigation failed: %w", err)
	}

	missed, err := driver.SelectRange(ctx, page, checkin, checkout)
	if err != nil {
		return res, fmt.Errorf("date selection failed: %w", err)
	}

	res.MissedDates = missed

	if err = driver.ApplyBlock(ctx, page, checkin); err != nil {
		return res, fmt.Errorf("block action failed: %w", err)
	}

	driver.Confirm(ctx, page)

	return res, nil
}

func (b *blockerImpl) credentials(target model.Platform) config.PlatformCredentials {
	switch target {
	case model.PlatformAirbnb:
		return b.cfg.Platforms.Airbnb
	case model.PlatformBooking:
		return b.cfg.Platforms.Booking
	default:
		return config.PlatformCredentials{}
	}
}

func (b *blockerImpl) captureSnapshot(ctx context.Context, page browser.Page, target model.Platform) {
	image, err := page.Screenshot(ctx)
	if err != nil {
		log.Error().Err(err).Str("platform", string(target)).Msg("failed to capture diagnostic snapshot")

		return
	}

	location, err := b.snapshots.Save(ctx, target, image)
	if err != nil {
		log.Error().Err(err).Str("platform", string(target)).Msg("failed to store diagnostic snapshot")

		return
	}

	log.Info().Str("platform", string(target)).Str("location", location).Msg("diagnostic snapshot stored")
}
