package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == DriverSQLite {
		type sqliteColumn struct {
			Cid       int
			Name      string
			Type      string
			Notnull   int
			DfltValue *string
			Pk        int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			null := "YES"
			if col.Notnull == 1 {
				null = "NO"
			}
			key := ""
			if col.Pk > 0 {
				key = "PRI"
			}
			columns = append(columns, ColumnInfo{
				Field:   strings.ToLower(col.Name),
				Type:    strings.ToLower(col.Type),
				Null:    null,
				Key:     key,
				Default: col.DfltValue,
			})
		}
		return columns, nil
	}

	if db.Dialector.Name() == DriverPostgres {
		return postgresColumns(db, tableName)
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

func postgresColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type pgColumn struct {
		ColumnName             string
		DataType               string
		IsNullable             string
		ColumnDefault          *string
		CharacterMaximumLength *int
		IsPrimary              bool
	}
	var pgCols []pgColumn
	err := db.Raw(`SELECT c.column_name, c.data_type, c.is_nullable, c.column_default, c.character_maximum_length,
		EXISTS (
			SELECT 1 FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_name = c.table_name
				AND tc.table_schema = c.table_schema AND kcu.column_name = c.column_name
		) AS is_primary
		FROM information_schema.columns c
		WHERE c.table_schema = current_schema() AND c.table_name = ?
		ORDER BY c.ordinal_position`, tableName).Scan(&pgCols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(pgCols))
	for _, col := range pgCols {
		key := ""
		if col.IsPrimary {
			key = "PRI"
		}
		columns = append(columns, ColumnInfo{
			Field:   strings.ToLower(col.ColumnName),
			Type:    postgresType(col.DataType, col.CharacterMaximumLength),
			Null:    col.IsNullable,
			Key:     key,
			Default: col.ColumnDefault,
		})
	}
	return columns, nil
}

// postgresType renders information_schema types the way GORM tags spell them.
func postgresType(dataType string, length *int) string {
	t := strings.ToLower(dataType)
	switch t {
	case "character varying":
		t = "varchar"
	case "character":
		t = "char"
	case "timestamp with time zone":
		t = "timestamptz"
	}
	if length != nil {
		t = fmt.Sprintf("%s(%d)", t, *length)
	}
	return t
}
