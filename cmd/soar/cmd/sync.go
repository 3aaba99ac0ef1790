package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mokiat/gog"
	"github.com/pkg/errors"
	"github.com/soartravel/soar/entity"
	"github.com/soartravel/soar/memorysync"
	"github.com/spf13/cobra"
)

// TravelData is the input file of the sync command. JSON files are accepted as well.
type TravelData struct {
	Trips          []entity.Trip            `json:"trips,omitempty" yaml:"trips,omitempty"`
	FlightBookings []entity.FlightBooking   `json:"flightBookings,omitempty" yaml:"flightBookings,omitempty"`
	Preferences    *entity.TravelPreference `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

type namedResult struct {
	name   string
	result memorysync.Result
}

func loadTravelData(path string) (*TravelData, error) {
	dataBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read travel data file: %s", path)
	}

	var data TravelData
	if err := yaml.Unmarshal(dataBytes, &data); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal travel data file: %s", path)
	}
	return &data, nil
}

func newSyncCmd(flags *rootFlags) *cobra.Command {
	params := &struct {
		UserID string
		File   string
	}{}
	cmd := &cobra.Command{
		Use:   "sync --user <id> --file <travel.yaml>",
		Short: "Copy trips, flight bookings and preferences into the memory store",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadTravelData(params.File)
			if err != nil {
				return err
			}

			a, _, closeFn, err := flags.newAssistant(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			tripsResult, bookingsResult, err := a.SyncUserData(cmd.Context(), params.UserID, data.Trips, data.FlightBookings)
			if err != nil {
				return err
			}
			results := []namedResult{
				{name: "trips", result: tripsResult},
				{name: "flight bookings", result: bookingsResult},
			}

			if data.Preferences != nil {
				pref := *data.Preferences
				if pref.UserID == "" {
					pref.UserID = params.UserID
				}
				if pref.UserID != params.UserID {
					return errors.Errorf("preferences belong to %s, not %s", pref.UserID, params.UserID)
				}
				prefResult, err := a.SyncPreferences(cmd.Context(), pref)
				if err != nil {
					return err
				}
				results = append(results, namedResult{name: "preferences", result: prefResult})
			}

			lines := gog.Map(results, func(r namedResult) string {
				return fmt.Sprintf("%-16s synced=%d failed=%d skipped=%d", r.name, r.result.Synced, r.result.Failed, r.result.Skipped)
			})
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&params.UserID, "user", "u", "", "User the travel data belongs to")
	cmd.Flags().StringVarP(&params.File, "file", "f", "", "YAML or JSON file with trips, flightBookings and preferences")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
