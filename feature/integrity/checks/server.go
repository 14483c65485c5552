package checks

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"scrapper/core/database"

	"gorm.io/gorm"
)

// Table statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusMissing = "missing"
)

// ServerReport strictly types the result of a schema integrity check.
type ServerReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"`
}

type expectedColumn struct {
	name string
	typ  string
}

// CheckServerIntegrity verifies the database schema using the given GORM
// models as the source of truth. Every model must implement TableName.
func CheckServerIntegrity(db *gorm.DB, models []any) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ServerReport{
		Driver:  db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	for _, model := range models {
		tabler, ok := model.(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		tableName := tabler.TableName()

		tblReport := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         StatusOK,
		}

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			tblReport.Status = StatusError
			report.Tables[tableName] = tblReport
			continue
		}
		if len(actualCols) == 0 {
			report.Matched = false
			tblReport.Status = StatusMissing
			report.Tables[tableName] = tblReport
			continue
		}

		actualMap := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actualMap[col.Field] = col
		}

		for _, exp := range expectedColumns(reflect.TypeOf(model)) {
			actCol, exists := actualMap[exp.name]
			if !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, exp.name)
				tblReport.Status = StatusError
				report.Matched = false
				continue
			}
			if exp.typ == "" {
				continue
			}
			// Soft check: "varchar(255)" matches "varchar(255)" and "varchar(255) binary".
			if !strings.Contains(actCol.Type, exp.typ) {
				tblReport.TypeMismatches = append(tblReport.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", exp.name, exp.typ, actCol.Type))
				tblReport.Status = StatusError
				report.Matched = false
			}
		}
		sort.Strings(tblReport.MissingColumns)

		report.Tables[tableName] = tblReport
	}

	return report, nil
}

// expectedColumns walks the struct fields, descending into embedded structs.
func expectedColumns(t reflect.Type) []expectedColumn {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []expectedColumn
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			out = append(out, expectedColumns(field.Type)...)
			continue
		}
		gormTag := field.Tag.Get("gorm")
		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue
		}
		out = append(out, expectedColumn{name: colName, typ: strings.ToLower(parseGormType(gormTag))})
	}
	return out
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	parts := strings.Split(tag, ";")
	for _, p := range parts {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	parts := strings.Split(tag, ";")
	for _, p := range parts {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
