package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <kind> <id>",
	Short: "Convert an entity without writing it",
	Long:  `Collects and converts one entity and prints the converted record as JSON. Nothing is written to the database.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		result, err := rt.service.Preview(cmd.Context(), ref.Kind, ref.ID, importOptions())
		if err != nil {
			return err
		}
		for _, w := range result.Warnings {
			pterm.Warning.Printf("[%s] %s: %s\n", w.Code, w.Field, w.Message)
		}
		if err := printJSON(result); err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("preview of %s %d failed", ref.Kind, ref.ID)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().BoolVar(&skipCacheFlag, "skip-cache", false, "Bypass cached API responses")
	RootCmd.AddCommand(previewCmd)
}
