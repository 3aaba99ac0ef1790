package memorysync

import (
	"fmt"
	"strings"
	"time"

	"github.com/soartravel/soar/entity"
)

const (
	dateLayout     = "January 2, 2006"
	dateTimeLayout = "January 2, 2006 at 3:04 PM"
)

// FormatTrip renders a trip as a memory text: its temporal context relative to now, the date range,
// then one bullet per flight and per accommodation in their stored order.
func FormatTrip(trip *entity.Trip, now time.Time) string {
	start := trip.StartDate.Format(dateLayout)
	end := trip.EndDate.Format(dateLayout)

	var b strings.Builder
	switch trip.TemporalLabel(now) {
	case entity.TemporalPast:
		fmt.Fprintf(&b, "PAST TRIP: This trip has already concluded as of %s.", end)
	case entity.TemporalUpcoming:
		fmt.Fprintf(&b, "UPCOMING TRIP: This trip is scheduled for the future, starting on %s.", start)
	default:
		fmt.Fprintf(&b, "CURRENT TRIP: This trip is currently in progress (from %s to %s).", start, end)
	}

	fmt.Fprintf(&b, "\n\nTrip to %s from %s to %s.", trip.Name, start, end)

	b.WriteString("\n\nFlights:")
	for i := range trip.Flights {
		b.WriteString("\n")
		b.WriteString(FormatFlight(&trip.Flights[i]))
	}

	b.WriteString("\n\nAccommodations:")
	for _, a := range trip.Accommodations {
		fmt.Fprintf(&b, "\n• Stay at %s (%s)\n  Address: %s\n  Check-in: %s\n  Check-out: %s",
			a.Name, a.Agent, a.Address,
			a.CheckInDate.Format(dateLayout), a.CheckOutDate.Format(dateLayout),
		)
	}

	return b.String()
}

// FormatFlight renders one flight as a bullet with indented departure and arrival lines.
func FormatFlight(f *entity.Flight) string {
	return fmt.Sprintf("• Flight %s: From %s (%s) to %s (%s)\n  Departure: %s\n  Arrival: %s",
		f.Number, f.DepartureName, f.DepartureCode, f.ArrivalName, f.ArrivalCode,
		f.DepartureDate.Format(dateTimeLayout), f.ArrivalDate.Format(dateTimeLayout),
	)
}

func FormatFlightBooking(booking *entity.FlightBooking, now time.Time) string {
	f := &booking.Flight

	var b strings.Builder
	switch booking.TemporalLabel(now) {
	case entity.TemporalPast:
		b.WriteString("PAST FLIGHT: This flight has already completed.")
	case entity.TemporalUpcoming:
		b.WriteString("UPCOMING FLIGHT: This flight is scheduled for the future.")
	default:
		b.WriteString("CURRENT FLIGHT: This flight is currently in progress.")
	}

	fmt.Fprintf(&b, "\n\nFlight booking: %s", f.Number)
	if airline := f.AirlineName(); airline != "" {
		fmt.Fprintf(&b, " (%s)", airline)
	}
	fmt.Fprintf(&b, "\nFrom: %s (%s)\nTo: %s (%s)\nDeparture: %s\nArrival: %s",
		f.DepartureName, f.DepartureCode, f.ArrivalName, f.ArrivalCode,
		f.DepartureDate.Format(dateTimeLayout), f.ArrivalDate.Format(dateTimeLayout),
	)

	if booking.IsPartOfTrip {
		tripID := "existing"
		if booking.TripID != nil && *booking.TripID != "" {
			tripID = *booking.TripID
		}
		fmt.Fprintf(&b, "\nThis flight is part of your %s trip.", tripID)
	} else {
		b.WriteString("\nThis is a standalone flight booking (not part of a trip).")
	}

	return b.String()
}

// FormatPreferences renders one memory per non-empty preference category, one for budget and planning style,
// and a summary of everything.
func FormatPreferences(pref *entity.TravelPreference) []string {
	var texts []string
	for _, c := range pref.Categories() {
		if len(c.Values) == 0 {
			continue
		}
		texts = append(texts, fmt.Sprintf("My preferred %s: %s", strings.ToLower(c.Name), strings.Join(c.Values, ", ")))
	}

	texts = append(texts, fmt.Sprintf("My travel style: Budget range: %s, Planning style: %s", pref.BudgetRange, pref.TravelStyle))

	var summary strings.Builder
	summary.WriteString("Travel Preferences Summary:")
	for _, line := range []struct {
		name  string
		value string
	}{
		{"Destination Types", strings.Join(pref.PreferredDestinationTypes, ", ")},
		{"Destinations", strings.Join(pref.PreferredDestinations, ", ")},
		{"Accommodation", strings.Join(pref.AccommodationPreferences, ", ")},
		{"Budget Range", pref.BudgetRange},
		{"Travel Style", pref.TravelStyle},
		{"Activities", strings.Join(pref.ActivityPreferences, ", ")},
		{"Dietary Restrictions", strings.Join(pref.DietaryRestrictions, ", ")},
		{"Seasonal Preferences", strings.Join(pref.SeasonalPreferences, ", ")},
	} {
		fmt.Fprintf(&summary, "\n- %s: %s", line.name, line.value)
	}
	texts = append(texts, summary.String())

	return texts
}
