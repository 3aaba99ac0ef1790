package entity

import (
	"time"
)

type (
	Flight struct {
		ID            string    `json:"id" yaml:"id" jsonschema:"required"`
		Number        string    `json:"number" yaml:"number" jsonschema:"required" jsonschema_description:"Flight number, e.g. KE123"`
		Airline       *string   `json:"airline,omitempty" yaml:"airline,omitempty"`
		DepartureName string    `json:"departureName" yaml:"departureName" jsonschema:"required"`
		DepartureCode string    `json:"departureCode" yaml:"departureCode" jsonschema:"required" jsonschema_description:"IATA airport code"`
		ArrivalName   string    `json:"arrivalName" yaml:"arrivalName" jsonschema:"required"`
		ArrivalCode   string    `json:"arrivalCode" yaml:"arrivalCode" jsonschema:"required" jsonschema_description:"IATA airport code"`
		DepartureDate time.Time `json:"departureDate" yaml:"departureDate" jsonschema:"required"`
		ArrivalDate   time.Time `json:"arrivalDate" yaml:"arrivalDate" jsonschema:"required"`
	}

	Accommodation struct {
		ID           string    `json:"id" yaml:"id" jsonschema:"required"`
		Agent        string    `json:"agent" yaml:"agent" jsonschema_description:"Booking agent, e.g. Booking.com"`
		Name         string    `json:"name" yaml:"name" jsonschema:"required"`
		Address      string    `json:"address" yaml:"address"`
		CheckInDate  time.Time `json:"checkInDate" yaml:"checkInDate" jsonschema:"required"`
		CheckOutDate time.Time `json:"checkOutDate" yaml:"checkOutDate" jsonschema:"required"`
	}

	// Trip groups flights and stays between StartDate and EndDate. Flights and Accommodations keep their input order.
	Trip struct {
		ID             string          `json:"id" yaml:"id" jsonschema:"required"`
		Name           string          `json:"name" yaml:"name" jsonschema:"required"`
		Flights        []Flight        `json:"flights" yaml:"flights"`
		Accommodations []Accommodation `json:"accommodations" yaml:"accommodations"`
		StartDate      time.Time       `json:"startDate" yaml:"startDate" jsonschema:"required"`
		EndDate        time.Time       `json:"endDate" yaml:"endDate" jsonschema:"required"`
		UserID         string          `json:"userId" yaml:"userId"`
	}

	FlightBooking struct {
		ID           string  `json:"id" yaml:"id" jsonschema:"required"`
		Flight       Flight  `json:"flight" yaml:"flight" jsonschema:"required"`
		UserID       string  `json:"userId" yaml:"userId"`
		IsPartOfTrip bool    `json:"isPartOfTrip" yaml:"isPartOfTrip"`
		TripID       *string `json:"tripId,omitempty" yaml:"tripId,omitempty"`
	}
)

func (t *Trip) TemporalLabel(now time.Time) TemporalLabel {
	return labelFor(t.StartDate, t.EndDate, now)
}

func (f *Flight) TemporalLabel(now time.Time) TemporalLabel {
	return labelFor(f.DepartureDate, f.ArrivalDate, now)
}

func (f *Flight) AirlineName() string {
	if f.Airline == nil {
		return ""
	}
	return *f.Airline
}

func (b *FlightBooking) TemporalLabel(now time.Time) TemporalLabel {
	return b.Flight.TemporalLabel(now)
}
