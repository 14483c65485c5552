package cmd

import (
	"fmt"
	"strconv"

	"scrapper/feature/scrapping/models"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var decisionFlag string

// typesCmd manages the source type registry used to classify items.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Manage the source type registry",
}

var typesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered source types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		rows, err := rt.service.Types(cmd.Context(), decisionFlag)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			pterm.Info.Println("No source types registered")
			return nil
		}

		data := pterm.TableData{{"Type ID", "Kind", "Decision", "Seen", "Last seen"}}
		for _, r := range rows {
			data = append(data, []string{
				strconv.Itoa(r.SourceTypeID),
				string(r.Kind),
				r.Decision,
				strconv.Itoa(r.SeenCount),
				r.LastSeen.Format("2006-01-02 15:04"),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var typesAllowCmd = &cobra.Command{
	Use:   "allow <type-id> <resource|consumable>",
	Short: "Map a source type to a kind",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setDecision(cmd, args[0], models.EntityKind(args[1]), models.DecisionAllowed)
	},
}

var typesBlockCmd = &cobra.Command{
	Use:   "block <type-id> [kind]",
	Short: "Exclude a source type from a kind, or from every kind",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind models.EntityKind
		if len(args) == 2 {
			kind = models.EntityKind(args[1])
		}
		return setDecision(cmd, args[0], kind, models.DecisionBlocked)
	},
}

func setDecision(cmd *cobra.Command, typeArg string, kind models.EntityKind, decision string) error {
	typeID, err := strconv.Atoi(typeArg)
	if err != nil {
		return fmt.Errorf("invalid source type id %q", typeArg)
	}

	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.service.SetTypeDecision(cmd.Context(), typeID, kind, decision); err != nil {
		return err
	}
	pterm.Success.Printf("Source type %d is now %s\n", typeID, decision)
	return nil
}

func init() {
	typesListCmd.Flags().StringVar(&decisionFlag, "decision", "", "Filter by decision (allowed, blocked, pending)")

	typesCmd.AddCommand(typesListCmd, typesAllowCmd, typesBlockCmd)
	RootCmd.AddCommand(typesCmd)
}
