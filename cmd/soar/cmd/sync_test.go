package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTravelData(t *testing.T) {
	data, err := loadTravelData("../../../examples/travel.yaml")
	require.NoError(t, err)

	require.Len(t, data.Trips, 1)
	trip := data.Trips[0]
	assert.Equal(t, "trip-tokyo-2030", trip.ID)
	require.Len(t, trip.Flights, 1)
	assert.Equal(t, "Korean Air", trip.Flights[0].AirlineName())
	assert.Equal(t, 10, trip.StartDate.Day())
	require.Len(t, trip.Accommodations, 1)

	require.Len(t, data.FlightBookings, 1)
	assert.Equal(t, "OZ102", data.FlightBookings[0].Flight.Number)
	assert.False(t, data.FlightBookings[0].IsPartOfTrip)

	require.NotNil(t, data.Preferences)
	assert.Equal(t, []string{"Kyoto", "Lisbon"}, data.Preferences.PreferredDestinations)
}

func TestLoadTravelData_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "trips": [{"id": "t1", "name": "Lisbon", "startDate": "2030-06-01T00:00:00Z", "endDate": "2030-06-08T00:00:00Z"}]
}`), 0644))

	data, err := loadTravelData(path)
	require.NoError(t, err)
	require.Len(t, data.Trips, 1)
	assert.Equal(t, "Lisbon", data.Trips[0].Name)
	assert.Empty(t, data.FlightBookings)
	assert.Nil(t, data.Preferences)
}

func TestTravelDataSchema(t *testing.T) {
	schemaBytes, err := travelDataSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(schemaBytes, &schema))
	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "trips")
	assert.Contains(t, properties, "flightBookings")
	assert.Contains(t, properties, "preferences")
}
