package browser

import (
	"context"
	"fmt"
	"staysync/config"

	"github.com/playwright-community/playwright-go"
)

// Page is the subset of browser interaction the platform drivers need.
// Every action applies the configured per-action timeout; a timed-out
// selector comes back as an error, never a hang. The context is checked
// before each action so a cancelled blocking attempt stops between steps.
type Page interface {
	Goto(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	RightClick(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	SelectOption(ctx context.Context, selector, value string) error
	TextContent(ctx context.Context, selector string) (string, error)
	IsVisible(ctx context.Context, selector string) (bool, error)
	WaitForURL(ctx context.Context, pattern string) error
	Screenshot(ctx context.Context) ([]byte, error)
	Settle(ctx context.Context)
}

type pageImpl struct {
	page   playwright.Page
	config *config.Config
}

func (p *pageImpl) actionTimeout() *float64 {
	return playwright.Float(float64(p.config.Browser.ActionTimeoutSeconds) * 1000)
}

func (p *pageImpl) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(p.config.Browser.LoginTimeoutSeconds) * 1000),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	return nil
}

func (p *pageImpl) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}

	err := p.page.Click(selector, playwright.PageClickOptions{
		Timeout: p.actionTimeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}

	return nil
}

func (p *pageImpl) RightClick(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to right-click %s: %w", selector, err)
	}

	err := p.page.Click(selector, playwright.PageClickOptions{
		Button:  playwright.MouseButtonRight,
		Timeout: p.actionTimeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to right-click %s: %w", selector, err)
	}

	return nil
}

func (p *pageImpl) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}

	err := p.page.Fill(selector, value, playwright.PageFillOptions{
		Timeout: p.actionTimeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}

	return nil
}

func (p *pageImpl) SelectOption(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to select option on %s: %w", selector, err)
	}

	_, err := p.page.SelectOption(selector, playwright.SelectOptionValues{
		Values: &[]string{value},
	}, playwright.PageSelectOptionOptions{
		Timeout: p.actionTimeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to select option on %s: %w", selector, err)
	}

	return nil
}

func (p *pageImpl) TextContent(ctx context.Context, selector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", selector, err)
	}

	text, err := p.page.TextContent(selector, playwright.PageTextContentOptions{
		Timeout: p.actionTimeout(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", selector, err)
	}

	return text, nil
}

func (p *pageImpl) IsVisible(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", selector, err)
	}

	visible, err := p.page.IsVisible(selector)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", selector, err)
	}

	return visible, nil
}

func (p *pageImpl) WaitForURL(ctx context.Context, pattern string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to wait for %s: %w", pattern, err)
	}

	err := p.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(p.config.Browser.LoginTimeoutSeconds) * 1000),
	})
	if err != nil {
		return fmt.Errorf("failed to wait for %s: %w", pattern, err)
	}

	return nil
}

func (p *pageImpl) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}

	data, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}

	return data, nil
}

func (p *pageImpl) Settle(_ context.Context) {
	p.page.WaitForTimeout(float64(p.config.Browser.SettleMillis))
}
