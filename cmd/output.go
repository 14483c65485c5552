package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"scrapper/feature/scrapping/models"

	"github.com/pterm/pterm"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport renders a job report as a summary line and a result table.
func printReport(report *models.BatchResult) {
	rows := pterm.TableData{{"Kind", "ID", "Status", "Table", "Row", "Action", "Warnings", "Error"}}
	for _, r := range report.Results {
		rows = append(rows, resultRow(r))
		for _, rel := range r.Related {
			row := resultRow(rel)
			row[0] = "  ↳ " + row[0]
			rows = append(rows, row)
		}
	}
	if len(report.Results) > 0 {
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	line := fmt.Sprintf("Job %s %s: %d/%d imported, %d failed (%s)",
		report.JobID, report.Status, report.Summary.Success, report.Summary.Total, report.Summary.Errors,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	switch report.Status {
	case models.JobSucceeded:
		pterm.Success.Println(line)
	case models.JobPartial:
		pterm.Warning.Println(line)
	default:
		pterm.Error.Println(line)
	}
	if report.Error != nil {
		pterm.Error.Printf("%s failed during %s: %s\n", report.Error.Condition, report.Error.Phase, report.Error.Message)
	}
}

func resultRow(r models.ImportResult) []string {
	row := []string{string(r.Kind), strconv.Itoa(r.ExternalID), "ok", "", "", "", strconv.Itoa(len(r.Warnings)), ""}
	if !r.Success {
		row[2] = pterm.Red("failed")
	}
	if r.Data != nil {
		row[3] = r.Data.Table
		row[4] = strconv.FormatUint(uint64(r.Data.ID), 10)
		row[5] = string(r.Data.Action)
	}
	if r.Error != nil {
		row[7] = fmt.Sprintf("%s: %s", r.Error.Condition, r.Error.Message)
	}
	return row
}
