// Package querybuilder renders the small set of Postgres statements the
// repositories issue. Values always travel as $n arguments.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("table is required")
	errNoColumns = errors.New("columns are required")
)

// stmt accumulates SQL text and its positional arguments.
type stmt struct {
	sql  strings.Builder
	args []any
}

func (s *stmt) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

// bind appends v and writes its $n placeholder.
func (s *stmt) bind(v any) {
	s.args = append(s.args, v)
	s.sql.WriteString("$")
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

// expr writes a fragment whose ? markers are bound to vals in order. Extra
// markers are written as-is.
func (s *stmt) expr(fragment string, vals []any) {
	if len(vals) == 0 {
		s.sql.WriteString(fragment)
		return
	}
	rest := fragment
	for _, v := range vals {
		i := strings.IndexByte(rest, '?')
		if i < 0 {
			break
		}
		s.sql.WriteString(rest[:i])
		s.bind(v)
		rest = rest[i+1:]
	}
	s.sql.WriteString(rest)
}

func (s *stmt) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

func (s *stmt) suffix(raw string) {
	if raw != "" {
		s.write(" ", raw)
	}
}

func (s *stmt) result() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

// Condition is one AND-ed term of a WHERE clause.
type Condition interface {
	render(s *stmt)
}

type condFunc func(s *stmt)

func (f condFunc) render(s *stmt) { f(s) }

func Eq(column string, value any) Condition {
	return condFunc(func(s *stmt) {
		s.write(column, " = ")
		s.bind(value)
	})
}

// In renders column IN (...). An empty set matches nothing.
func In(column string, values []any) Condition {
	return condFunc(func(s *stmt) {
		if len(values) == 0 {
			s.write("1=0")
			return
		}
		s.write(column, " IN (")
		for i, v := range values {
			if i > 0 {
				s.write(", ")
			}
			s.bind(v)
		}
		s.write(")")
	})
}

func IsNull(column string) Condition {
	return condFunc(func(s *stmt) { s.write(column, " IS NULL") })
}

// Expr is a raw predicate with ? markers, e.g. Expr("onboarding_step >= ?", 3).
func Expr(fragment string, args ...any) Condition {
	return condFunc(func(s *stmt) { s.expr(fragment, args) })
}

type SelectBuilder struct {
	table   string
	columns []string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select: %w", errNoColumns)
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select: %w", errNoTable)
	}

	var s stmt
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.where)
	if len(b.orderBy) > 0 {
		s.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		s.write(" OFFSET ", strconv.Itoa(b.offset))
	}
	return s.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	tail    string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

// Values adds one row. Call it repeatedly for multi-row inserts.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix appends raw SQL such as an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.tail = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert: %w", errNoTable)
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert: %w", errNoColumns)
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert into %s: no rows", b.table)
	}

	var s stmt
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for n, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert into %s: row %d has %d values for %d columns", b.table, n, len(row), len(b.columns))
		}
		if n > 0 {
			s.write(", ")
		}
		s.write("(")
		for i, v := range row {
			if i > 0 {
				s.write(", ")
			}
			s.bind(v)
		}
		s.write(")")
	}
	s.suffix(b.tail)
	return s.result()
}

type assignment struct {
	column   string
	value    any
	fragment string
	raw      bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
	tail  string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression, binding args to its ? markers.
func (b *UpdateBuilder) SetExpr(column, fragment string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, fragment: fragment, value: args, raw: true})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.tail = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update: %w", errNoTable)
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update %s: nothing to set", b.table)
	}

	var s stmt
	s.write("UPDATE ", b.table, " SET ")
	for i, a := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(a.column, " = ")
		if a.raw {
			args, _ := a.value.([]any)
			s.expr(a.fragment, args)
			continue
		}
		s.bind(a.value)
	}
	s.where(b.where)
	s.suffix(b.tail)
	return s.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
	tail  string
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *DeleteBuilder) Suffix(sql string) *DeleteBuilder {
	b.tail = strings.TrimSpace(sql)
	return b
}

// ToSQL refuses to render a DELETE without conditions.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete: %w", errNoTable)
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete from %s: conditions are required", b.table)
	}

	var s stmt
	s.write("DELETE FROM ", b.table)
	s.where(b.where)
	s.suffix(b.tail)
	return s.result()
}
