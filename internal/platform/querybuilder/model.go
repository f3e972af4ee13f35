package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// modelFields caches the db-tagged field layout per struct type.
var modelFields sync.Map // reflect.Type -> []modelField

type modelField struct {
	index  int
	column string
}

// InsertModel builds an INSERT from the db-tagged exported fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel is InsertModel with ON CONFLICT (conflict...) DO UPDATE over
// every other model column. touch lists extra assignments such as
// "updated_at = NOW()".
func UpsertModel(table string, model any, conflict []string, touch ...string) (string, []any, error) {
	if len(conflict) == 0 {
		return "", nil, fmt.Errorf("upsert requires conflict columns")
	}
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	assignments := make([]string, 0, len(cols)+len(touch))
	for _, col := range cols {
		if slices.Contains(conflict, col) {
			continue
		}
		assignments = append(assignments, col+" = EXCLUDED."+col)
	}
	assignments = append(assignments, touch...)

	var suffix string
	if len(assignments) == 0 {
		suffix = "ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO NOTHING"
	} else {
		suffix = "ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO UPDATE SET " + strings.Join(assignments, ", ")
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	fields := fieldsOf(value.Type())
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	cols := make([]string, len(fields))
	vals := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.column
		vals[i] = value.Field(f.index).Interface()
	}
	return cols, vals, nil
}

func fieldsOf(typ reflect.Type) []modelField {
	if cached, ok := modelFields.Load(typ); ok {
		return cached.([]modelField)
	}

	fields := make([]modelField, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		fields = append(fields, modelField{index: i, column: col})
	}

	actual, _ := modelFields.LoadOrStore(typ, fields)
	return actual.([]modelField)
}
