package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the sync input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaBytes, err := travelDataSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(schemaBytes))
			return nil
		},
	}
}

func travelDataSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&TravelData{})
	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal schema")
	}
	return schemaBytes, nil
}
