package entity

import (
	"time"
)

type TravelPreference struct {
	ID                        string    `json:"id" yaml:"id"`
	UserID                    string    `json:"userId" yaml:"userId" jsonschema:"required"`
	PreferredDestinationTypes []string  `json:"preferredDestinationTypes" yaml:"preferredDestinationTypes"`
	PreferredDestinations     []string  `json:"preferredDestinations" yaml:"preferredDestinations"`
	AccommodationPreferences  []string  `json:"accommodationPreferences" yaml:"accommodationPreferences"`
	BudgetRange               string    `json:"budgetRange" yaml:"budgetRange"`
	TravelStyle               string    `json:"travelStyle" yaml:"travelStyle"`
	ActivityPreferences       []string  `json:"activityPreferences" yaml:"activityPreferences"`
	DietaryRestrictions       []string  `json:"dietaryRestrictions" yaml:"dietaryRestrictions"`
	SeasonalPreferences       []string  `json:"seasonalPreferences" yaml:"seasonalPreferences"`
	CreatedAt                 time.Time `json:"createdAt" yaml:"createdAt"`
}

// PreferenceCategory is a named list of preference values, in display order.
type PreferenceCategory struct {
	Name   string
	Values []string
}

func (p *TravelPreference) Categories() []PreferenceCategory {
	return []PreferenceCategory{
		{Name: "Destination Types", Values: p.PreferredDestinationTypes},
		{Name: "Destinations", Values: p.PreferredDestinations},
		{Name: "Accommodation", Values: p.AccommodationPreferences},
		{Name: "Activities", Values: p.ActivityPreferences},
		{Name: "Dietary Restrictions", Values: p.DietaryRestrictions},
		{Name: "Seasonal Preferences", Values: p.SeasonalPreferences},
	}
}
