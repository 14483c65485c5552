package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"scrapper/feature/scrapping"
	"scrapper/feature/scrapping/models"

	"github.com/spf13/cobra"
)

var (
	skipCacheFlag bool
	relationsFlag bool
	jsonFlag      bool
)

// importCmd groups the import commands.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import entities from the external API",
	Long:  `Collects, converts and integrates entities. The job report is printed once the job ends.`,
}

var importOneCmd = &cobra.Command{
	Use:     "one <kind> <id>",
	Short:   "Import a single entity",
	Example: "  scrapper import one monster 31 --relations",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		return runImport(cmd, func(svc *scrapping.Service) (*models.BatchResult, error) {
			return svc.ImportOne(cmd.Context(), ref.Kind, ref.ID, importOptions())
		})
	},
}

var importBatchCmd = &cobra.Command{
	Use:     "batch <kind:id>...",
	Short:   "Import a list of entities",
	Example: "  scrapper import batch monster:31 item:15 spell:201",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		refs := make([]models.EntityRef, 0, len(args))
		for _, arg := range args {
			kind, id, ok := strings.Cut(arg, ":")
			if !ok {
				return fmt.Errorf("expected kind:id, got %q", arg)
			}
			ref, err := parseRef(kind, id)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		}
		return runImport(cmd, func(svc *scrapping.Service) (*models.BatchResult, error) {
			return svc.ImportBatch(cmd.Context(), refs, importOptions())
		})
	},
}

var importCategoryCmd = &cobra.Command{
	Use:     "category <kind>",
	Short:   "Import every entity of a kind",
	Example: "  scrapper import category resource --skip-cache",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		return runImport(cmd, func(svc *scrapping.Service) (*models.BatchResult, error) {
			return svc.ImportCategory(cmd.Context(), kind, importOptions())
		})
	},
}

func importOptions() scrapping.Options {
	return scrapping.Options{SkipCache: skipCacheFlag, IncludeRelations: relationsFlag}
}

func parseRef(kindArg, idArg string) (models.EntityRef, error) {
	kind, err := models.ParseKind(kindArg)
	if err != nil {
		return models.EntityRef{}, err
	}
	id, err := strconv.Atoi(idArg)
	if err != nil || id <= 0 {
		return models.EntityRef{}, fmt.Errorf("invalid id %q", idArg)
	}
	return models.EntityRef{Kind: kind, ID: id}, nil
}

// runImport bootstraps the pipeline, runs one job and prints its report. A
// failed or partial job exits non-zero.
func runImport(cmd *cobra.Command, run func(*scrapping.Service) (*models.BatchResult, error)) error {
	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := run(rt.service)
	if err != nil {
		return err
	}

	if jsonFlag {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if report.Status != models.JobSucceeded {
		return fmt.Errorf("job %s ended %s", report.JobID, report.Status)
	}
	return nil
}

func init() {
	importCmd.PersistentFlags().BoolVar(&skipCacheFlag, "skip-cache", false, "Bypass cached API responses")
	importCmd.PersistentFlags().BoolVar(&relationsFlag, "relations", false, "Also import related entities")
	importCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print the job report as JSON")

	importCmd.AddCommand(importOneCmd, importBatchCmd, importCategoryCmd)
	RootCmd.AddCommand(importCmd)
}
