package checks

import (
	"errors"
	"reflect"
	"regexp"
	"testing"

	"scrapper/core/database"
	"scrapper/feature/scrapping/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestCheckServerIntegrity_NilDB(t *testing.T) {
	report, err := CheckServerIntegrity(nil, models.AllModels())
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckServerIntegrity_ModelWithoutTableName(t *testing.T) {
	db, _ := setupMockDB(t)
	type anonymous struct{}

	report, err := CheckServerIntegrity(db, []any{anonymous{}})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckServerIntegrity_MissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := columnRows()
	rows.AddRow("id", "int(10) unsigned", "NO", "PRI", nil, "auto_increment")
	rows.AddRow("external_id", "bigint(20)", "YES", "MUL", nil, "")
	rows.AddRow("name", "varchar(255)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `monsters`").WillReturnRows(rows)

	report, err := CheckServerIntegrity(db, []any{&models.Monster{}})
	require.NoError(t, err)
	assert.Equal(t, "mysql", report.Driver)
	assert.False(t, report.Matched)

	tbl, ok := report.Tables["monsters"]
	require.True(t, ok)
	assert.Equal(t, StatusError, tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "level")
	assert.Contains(t, tbl.MissingColumns, "initiative")
	assert.NotContains(t, tbl.MissingColumns, "name")
	assert.Empty(t, tbl.TypeMismatches)
}

func TestCheckServerIntegrity_TypeMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := columnRows()
	rows.AddRow("id", "int(10) unsigned", "NO", "PRI", nil, "")
	rows.AddRow("external_id", "bigint(20)", "YES", "", nil, "")
	rows.AddRow("name", "int(11)", "YES", "", nil, "")
	rows.AddRow("created_at", "datetime(3)", "YES", "", nil, "")
	rows.AddRow("updated_at", "datetime(3)", "YES", "", nil, "")
	rows.AddRow("item_count", "bigint(20)", "YES", "", nil, "")
	rows.AddRow("is_cosmetic", "tinyint(1)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `panoplies`").WillReturnRows(rows)

	report, err := CheckServerIntegrity(db, []any{&models.Panoply{}})
	require.NoError(t, err)

	tbl := report.Tables["panoplies"]
	assert.Empty(t, tbl.MissingColumns)
	require.Len(t, tbl.TypeMismatches, 1)
	assert.Regexp(t, regexp.MustCompile(`name: expected varchar\(255\), got int\(11\)`), tbl.TypeMismatches[0])
	assert.False(t, report.Matched)
}

func TestCheckServerIntegrity_InspectFailureContinues(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `spells`").WillReturnError(errors.New("table doesn't exist"))
	rows := columnRows()
	rows.AddRow("id", "int(10) unsigned", "NO", "PRI", nil, "")
	rows.AddRow("owner_table", "varchar(64)", "YES", "", nil, "")
	rows.AddRow("owner_id", "int(10) unsigned", "YES", "", nil, "")
	rows.AddRow("related_table", "varchar(64)", "YES", "", nil, "")
	rows.AddRow("related_id", "int(10) unsigned", "YES", "", nil, "")
	rows.AddRow("created_at", "datetime(3)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `entity_relations`").WillReturnRows(rows)

	report, err := CheckServerIntegrity(db, []any{&models.Spell{}, &models.EntityRelation{}})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, StatusError, report.Tables["spells"].Status)
	assert.Equal(t, StatusOK, report.Tables["entity_relations"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckServerIntegrity_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	t.Run("missing tables", func(t *testing.T) {
		report, err := CheckServerIntegrity(db, []any{&models.Spell{}})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, StatusMissing, report.Tables["spells"].Status)
	})

	t.Run("migrated schema matches", func(t *testing.T) {
		require.NoError(t, db.AutoMigrate(models.AllModels()...))

		report, err := CheckServerIntegrity(db, models.AllModels())
		require.NoError(t, err)
		assert.Equal(t, "sqlite", report.Driver)
		assert.True(t, report.Matched, "tables: %+v", report.Tables)
		assert.Len(t, report.Tables, len(models.AllModels()))
	})
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("column:id;primaryKey"))
	assert.Equal(t, "name", parseGormColumn("primaryKey;column:name;type:varchar(255)"))
	assert.Equal(t, "text", parseGormType("column:description;type:text"))
	assert.Equal(t, "", parseGormType("column:id"))
}

func TestExpectedColumns_Embedded(t *testing.T) {
	cols := expectedColumns(reflect.TypeOf(&models.Spell{}))

	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.name)
	}
	assert.Equal(t, []string{"id", "external_id", "name", "created_at", "updated_at", "description", "type_id", "icon_id"}, names)
}
