package emailparse_test

import (
	"staysync/shared/emailparse"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const airbnbEmail = `Your reservation is confirmed!

Airbnb

Guest: John Smith
Check-in: Dec 15, 2025
Checkout: Dec 17, 2025
Confirmation: HMABC123
`

const bookingEmail = `New booking!

Booking.com

Name: Jane Doe
Check-in: Thursday, December 18, 2025
Check-out: Saturday, December 20, 2025
Booking number: 4412345678
`

func TestParserParse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		subject  string
		expected emailparse.Booking
		ok       bool
	}{
		{
			name:    "airbnb confirmation",
			body:    airbnbEmail,
			subject: "Reservation confirmed",
			expected: emailparse.Booking{
				Platform:         emailparse.PlatformAirbnb,
				Checkin:          time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
				Checkout:         time.Date(2025, time.December, 17, 0, 0, 0, 0, time.UTC),
				GuestName:        "John Smith",
				ConfirmationCode: "HMABC123",
			},
			ok: true,
		},
		{
			name:    "booking dot com confirmation",
			body:    bookingEmail,
			subject: "New booking",
			expected: emailparse.Booking{
				Platform:         emailparse.PlatformBooking,
				Checkin:          time.Date(2025, time.December, 18, 0, 0, 0, 0, time.UTC),
				Checkout:         time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC),
				GuestName:        "Jane Doe",
				ConfirmationCode: "4412345678",
			},
			ok: true,
		},
		{
			name:    "platform recognized from subject only",
			body:    "Check-in: Dec 15, 2025\nCheckout: Dec 17, 2025\n",
			subject: "Airbnb reservation confirmed",
			expected: emailparse.Booking{
				Platform: emailparse.PlatformAirbnb,
				Checkin:  time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
				Checkout: time.Date(2025, time.December, 17, 0, 0, 0, 0, time.UTC),
			},
			ok: true,
		},
		{
			name:    "unrecognized platform",
			body:    "Check-in: Dec 15, 2025\nCheckout: Dec 17, 2025\n",
			subject: "Your stay",
			ok:      false,
		},
		{
			name:    "checkout before checkin",
			body:    "Airbnb\nCheck-in: Dec 17, 2025\nCheckout: Dec 15, 2025\n",
			subject: "Reservation confirmed",
			ok:      false,
		},
		{
			name:    "zero night stay",
			body:    "Airbnb\nCheck-in: Dec 15, 2025\nCheckout: Dec 15, 2025\n",
			subject: "Reservation confirmed",
			ok:      false,
		},
		{
			name:    "missing checkout",
			body:    "Airbnb\nCheck-in: Dec 15, 2025\n",
			subject: "Reservation confirmed",
			ok:      false,
		},
		{
			name:    "dates present but unparseable",
			body:    "Airbnb\nCheck-in: Feb 30, 2025\nCheckout: Mar 2, 2025\n",
			subject: "Reservation confirmed",
			ok:      false,
		},
		{
			name:    "empty body",
			body:    "",
			subject: "",
			ok:      false,
		},
	}

	parser := emailparse.NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, ok := parser.Parse(tt.body, tt.subject)

			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.expected, booking)
			}
		})
	}
}

func TestParserParseIsDeterministic(t *testing.T) {
	parser := emailparse.NewParser()

	first, ok := parser.Parse(airbnbEmail, "Reservation confirmed")
	assert.True(t, ok)

	for i := 0; i < 3; i++ {
		again, ok := parser.Parse(airbnbEmail, "Reservation confirmed")

		assert.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestParserAlternateLabels(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		subject  string
		checkin  time.Time
		checkout time.Time
	}{
		{
			name:     "airbnb arrives and departs",
			body:     "Airbnb\nArrives: Jan 5, 2026\nDeparts: Jan 8, 2026\n",
			subject:  "Reservation confirmed",
			checkin:  time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			checkout: time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "booking arrival and departure",
			body:     "Booking.com\nArrival: Monday, 5 January 2026\nDeparture: Thursday, 8 January 2026\n",
			subject:  "New booking",
			checkin:  time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			checkout: time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC),
		},
	}

	parser := emailparse.NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, ok := parser.Parse(tt.body, tt.subject)

			assert.True(t, ok)
			assert.Equal(t, tt.checkin, booking.Checkin)
			assert.Equal(t, tt.checkout, booking.Checkout)
		})
	}
}
