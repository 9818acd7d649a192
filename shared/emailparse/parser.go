package emailparse

import (
	"regexp"
	"strings"
	"time"
)

// Platform names a booking source recognized inside confirmation text.
type Platform string

const (
	PlatformAirbnb  Platform = "airbnb"
	PlatformBooking Platform = "booking"
)

// Booking is the normalized reservation fact extracted from a confirmation
// email. Guest name and confirmation code are best-effort metadata and may be
// empty; the dates are always set and ordered.
type Booking struct {
	Platform         Platform
	Checkin          time.Time
	Checkout         time.Time
	GuestName        string
	ConfirmationCode string
}

// Label patterns are tried in order. The first one whose captured fragment
// resolves to a real date wins; later patterns for the same field are skipped.
var airbnbCheckinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)check[- ]?in[:\s]+(.+?)(?:\n|check|$)`),
	regexp.MustCompile(`(?im)arrives?[:\s]+(.+?)(?:\n|$)`),
}

var airbnbCheckoutPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)check[- ]?out[:\s]+(.+?)(?:\n|check|$)`),
	regexp.MustCompile(`(?im)departs?[:\s]+(.+?)(?:\n|$)`),
}

var airbnbConfirmationPattern = regexp.MustCompile(`(?i)confirmation[:\s]+([A-Z0-9]+)`)
var airbnbGuestPattern = regexp.MustCompile(`(?i)guest[:\s]+([A-Z][a-z]+(?: [A-Z][a-z]+)?)`)

// Booking.com values often carry a leading weekday ("Thursday, December 15,
// 2025"); the optional leading group swallows it when present.
var bookingCheckinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)check[- ]?in[:\s]+(?:.*?,\s*)?(.+?)(?:\n|from|$)`),
	regexp.MustCompile(`(?im)arrival[:\s]+(?:.*?,\s*)?(.+?)(?:\n|$)`),
}

var bookingCheckoutPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)check[- ]?out[:\s]+(?:.*?,\s*)?(.+?)(?:\n|from|$)`),
	regexp.MustCompile(`(?im)departure[:\s]+(?:.*?,\s*)?(.+?)(?:\n|$)`),
}

var bookingConfirmationPattern = regexp.MustCompile(`(?i)booking(?:\s+number)?[:\s]+(\d+)`)
var bookingGuestPattern = regexp.MustCompile(`(?i)(?:guest|name)[:\s]+([A-Z][a-z]+(?: [A-Z][a-z]+)?)`)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse classifies confirmation text by source platform and extracts a
// normalized Booking. Returns ok=false for unrecognized platforms and for
// text whose dates cannot be resolved or are out of order; callers must
// reject such input rather than guess.
func (p *Parser) Parse(body, subject string) (Booking, bool) {
	bodyLower := strings.ToLower(body)
	subjectLower := strings.ToLower(subject)

	switch {
	case strings.Contains(bodyLower, "airbnb") || strings.Contains(subjectLower, "airbnb"):
		return p.parseWith(body, PlatformAirbnb, airbnbCheckinPatterns, airbnbCheckoutPatterns, airbnbConfirmationPattern, airbnbGuestPattern)
	case strings.Contains(bodyLower, "booking.com") || strings.Contains(subjectLower, "booking.com"):
		return p.parseWith(body, PlatformBooking, bookingCheckinPatterns, bookingCheckoutPatterns, bookingConfirmationPattern, bookingGuestPattern)
	default:
		return Booking{}, false
	}
}

func (p *Parser) parseWith(body string, platform Platform, checkinPatterns, checkoutPatterns []*regexp.Regexp, confirmationPattern, guestPattern *regexp.Regexp) (Booking, bool) {
	checkin, checkinOK := firstDate(body, checkinPatterns)
	checkout, checkoutOK := firstDate(body, checkoutPatterns)

	if !checkinOK || !checkoutOK || !checkin.Before(checkout) {
		return Booking{}, false
	}

	booking := Booking{
		Platform: platform,
		Checkin:  checkin,
		Checkout: checkout,
	}

	if match := confirmationPattern.FindStringSubmatch(body); match != nil {
		booking.ConfirmationCode = match[1]
	}

	if match := guestPattern.FindStringSubmatch(body); match != nil {
		booking.GuestName = match[1]
	}

	return booking, true
}

func firstDate(body string, patterns []*regexp.Regexp) (time.Time, bool) {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(body)
		if match == nil {
			continue
		}

		if date, ok := ExtractDate(match[1]); ok {
			return date, true
		}
	}

	return time.Time{}, false
}
