package browser

import (
	"context"
	"fmt"
	"staysync/config"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"
)

// Runtime owns the browser process. One Runtime is shared by the whole
// service; each blocking attempt gets its own isolated Session so that
// cookies and login state never leak between platforms.
type Runtime interface {
	NewSession(ctx context.Context) (Session, error)
	Close() error
}

type Session interface {
	Page() Page
	Close() error
}

type runtimeImpl struct {
	config     *config.Config
	playwright *playwright.Playwright
	browser    playwright.Browser
}

func New(config *config.Config) (Runtime, error) {
	err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to install browser: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(config.Browser.Headless),
	})
	if err != nil {
		stopErr := pw.Stop()
		if stopErr != nil {
			log.Error().Err(stopErr).Msg("Failed to stop playwright after launch failure")
		}

		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Info().Bool("headless", config.Browser.Headless).Msg("Browser runtime started")

	return &runtimeImpl{
		config:     config,
		playwright: pw,
		browser:    browser,
	}, nil
}

func (r *runtimeImpl) NewSession(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}

	browserContext, err := r.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  r.config.Browser.ViewportWidth,
			Height: r.config.Browser.ViewportHeight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := browserContext.NewPage()
	if err != nil {
		closeErr := browserContext.Close()
		if closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close browser context after page failure")
		}

		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &sessionImpl{
		browserContext: browserContext,
		page: &pageImpl{
			page:   page,
			config: r.config,
		},
	}, nil
}

func (r *runtimeImpl) Close() error {
	err := r.browser.Close()
	if err != nil {
		log.Error().Err(err).Msg("Failed to close browser")
	}

	err = r.playwright.Stop()
	if err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}

	return nil
}

type sessionImpl struct {
	browserContext playwright.BrowserContext
	page           *pageImpl
}

func (s *sessionImpl) Page() Page {
	return s.page
}

func (s *sessionImpl) Close() error {
	err := s.browserContext.Close()
	if err != nil {
		return fmt.Errorf("failed to close browser context: %w", err)
	}

	return nil
}
