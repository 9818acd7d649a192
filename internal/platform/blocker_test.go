package platform_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"staysync/config"
	"staysync/infras/browser"
	"staysync/infras/otel/mocks"
	"staysync/internal/domains/booking/model"
	"staysync/internal/platform"
	platformMocks "staysync/internal/platform/mocks"
)

// fakePage is a scripted stand-in for a live browser page. Selectors in
// failures produce an error; everything else succeeds. Every action is
// appended to actions for order assertions.
type fakePage struct {
	actions    []string
	failures   map[string]error
	monthLabel string
	waitErr    error
}

func (p *fakePage) do(kind, target string) error {
	p.actions = append(p.actions, kind+" "+target)

	if err, ok := p.failures[target]; ok {
		return err
	}

	return nil
}

func (p *fakePage) Goto(_ context.Context, url string) error { return p.do("goto", url) }

func (p *fakePage) Click(_ context.Context, selector string) error { return p.do("click", selector) }

func (p *fakePage) RightClick(_ context.Context, selector string) error {
	return p.do("rightclick", selector)
}

func (p *fakePage) Fill(_ context.Context, selector, _ string) error { return p.do("fill", selector) }

func (p *fakePage) SelectOption(_ context.Context, selector, _ string) error {
	return p.do("select", selector)
}

func (p *fakePage) TextContent(_ context.Context, selector string) (string, error) {
	if err := p.do("read", selector); err != nil {
		return "", err
	}

	return p.monthLabel, nil
}

func (p *fakePage) IsVisible(_ context.Context, selector string) (bool, error) {
	_, failing := p.failures[selector]

	return !failing, nil
}

func (p *fakePage) WaitForURL(_ context.Context, pattern string) error {
	p.actions = append(p.actions, "wait "+pattern)

	return p.waitErr
}

func (p *fakePage) Screenshot(_ context.Context) ([]byte, error) {
	return []byte("png"), nil
}

func (p *fakePage) Settle(_ context.Context) {}

func (p *fakePage) countActions(prefix string) int {
	count := 0

	for _, action := range p.actions {
		if action == prefix {
			count++
		}
	}

	return count
}

type fakeSession struct {
	page   *fakePage
	closed bool
}

func (s *fakeSession) Page() browser.Page { return s.page }

func (s *fakeSession) Close() error {
	s.closed = true

	return nil
}

type fakeRuntime struct {
	session *fakeSession
}

func (r *fakeRuntime) NewSession(_ context.Context) (browser.Session, error) {
	return r.session, nil
}

func (r *fakeRuntime) Close() error { return nil }

func newBlocker(t *testing.T, page *fakePage, expectSnapshot bool) (platform.Blocker, *fakeSession) {
	t.Helper()

	ctrl := gomock.NewController(t)
	snapshots := platformMocks.NewMockSnapshotStore(ctrl)

	if expectSnapshot {
		snapshots.EXPECT().
			Save(gomock.Any(), gomock.Any(), []byte("png")).
			Return("snapshots/error.png", nil)
	}

	cfg := &config.Config{}
	cfg.Platforms.Airbnb = config.PlatformCredentials{Email: "host@example.com", Password: "secret"}
	cfg.Platforms.Booking = config.PlatformCredentials{Email: "host@example.com", Password: "secret"}

	session := &fakeSession{page: page}

	return platform.NewBlocker(&fakeRuntime{session: session}, snapshots, cfg, mocks.NewOtel()), session
}

var (
	checkin  = time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	checkout = time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)
)

func TestBlocker_AirbnbSuccess(t *testing.T) {
	page := &fakePage{monthLabel: "June 2026"}
	blocker, session := newBlocker(t, page, false)

	res, err := blocker.Block(context.Background(), model.PlatformAirbnb, checkin, checkout, "")

	assert.NoError(t, err)
	assert.Empty(t, res.MissedDates)
	assert.True(t, session.closed)
}

func TestBlocker_AuthenticationTimeout(t *testing.T) {
	page := &fakePage{
		monthLabel: "June 2026",
		waitErr:    context.DeadlineExceeded,
	}
	blocker, session := newBlocker(t, page, true)

	_, err := blocker.Block(context.Background(), model.PlatformAirbnb, checkin, checkout, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.True(t, session.closed, "session must be released on the failure path")
}

func TestBlocker_MonthNavigationBound(t *testing.T) {
	// The displayed month never matches; navigation must stop after 24
	// next-month clicks and fail the attempt.
	page := &fakePage{monthLabel: "January 2020"}
	blocker, session := newBlocker(t, page, true)

	_, err := blocker.Block(context.Background(), model.PlatformAirbnb, checkin, checkout, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "calendar navigation failed")
	assert.Equal(t, 24, page.countActions(`click [aria-label*="Next"]`))
	assert.True(t, session.closed)
}

func TestBlocker_ApplyBlockFallbackOrder(t *testing.T) {
	page := &fakePage{
		monthLabel: "June 2026",
		failures: map[string]error{
			`button:has-text("Block")`:       assert.AnError,
			`button:has-text("Unavailable")`: assert.AnError,
		},
	}
	blocker, _ := newBlocker(t, page, false)

	res, err := blocker.Block(context.Background(), model.PlatformAirbnb, checkin, checkout, "")

	assert.NoError(t, err)
	assert.Empty(t, res.MissedDates)

	// Primary control, then the named fallback, then the context menu.
	blockIdx := indexOf(page.actions, `click button:has-text("Block")`)
	unavailableIdx := indexOf(page.actions, `click button:has-text("Unavailable")`)
	menuIdx := indexOf(page.actions, `rightclick td[data-testid*="2026-06-10"]`)

	assert.True(t, blockIdx >= 0 && unavailableIdx > blockIdx && menuIdx > unavailableIdx)
}

func TestBlocker_ApplyBlockAllFallbacksExhausted(t *testing.T) {
	page := &fakePage{
		monthLabel: "June 2026",
		failures: map[string]error{
			`button:has-text("Block")`:       assert.AnError,
			`button:has-text("Unavailable")`: assert.AnError,
			`text="Block dates"`:             assert.AnError,
		},
	}
	blocker, session := newBlocker(t, page, true)

	_, err := blocker.Block(context.Background(), model.PlatformAirbnb, checkin, checkout, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "block action failed")
	assert.True(t, session.closed)
}

func TestBlocker_BookingMissedDatesTolerated(t *testing.T) {
	page := &fakePage{
		monthLabel: "June 2026",
		failures: map[string]error{
			`td[data-date="2026-06-11"]`: assert.AnError,
		},
	}
	blocker, session := newBlocker(t, page, false)

	res, err := blocker.Block(context.Background(), model.PlatformBooking, checkin, checkout, "")

	assert.NoError(t, err, "a single unselectable day must not fail the attempt")
	assert.Equal(t, []string{"2026-06-11"}, res.MissedDates)
	assert.True(t, session.closed)
}

func TestBlocker_PropertySelectionIsLenient(t *testing.T) {
	page := &fakePage{
		monthLabel: "June 2026",
		failures: map[string]error{
			`[data-listing-id="prop-7"]`: assert.AnError,
		},
	}
	blocker, _ := newBlocker(t, page, false)

	_, err := blocker.Block(context.Background(), model.PlatformAirbnb, checkin, checkout, "prop-7")

	assert.NoError(t, err, "property selection failure falls back to the default property")
}

func TestBlocker_UnknownTarget(t *testing.T) {
	page := &fakePage{monthLabel: "June 2026"}
	blocker, session := newBlocker(t, page, false)

	_, err := blocker.Block(context.Background(), model.PlatformManual, checkin, checkout, "")

	assert.Error(t, err)
	assert.False(t, session.closed, "no session is opened for an unknown target")
}

func indexOf(actions []string, action string) int {
	for i, a := range actions {
		if a == action {
			return i
		}
	}

	return -1
}
