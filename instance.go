package sqlkit

import (
	"fmt"
	"strings"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Schema checks statements against the tables and columns of a DBML project.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> field -> column
}

// NewSchema indexes a DBML project.
func NewSchema(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.fields[table.Name][col.Name] = col
		}
	}

	return s, nil
}

// Project returns the underlying DBML project.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

// HasTable reports whether the schema defines table.
func (s *Schema) HasTable(table string) bool {
	_, ok := s.tables[table]
	return ok
}

// HasColumn reports whether table defines column.
func (s *Schema) HasColumn(table, column string) bool {
	_, ok := s.fields[table][column]
	return ok
}

// Validate checks every identifier stmt references: the FROM table, the
// projection, ORDER BY terms and identifiers inside WHERE predicates.
// Identifiers may be bare column names or table.column.
func (s *Schema) Validate(stmt *Select) error {
	if stmt == nil {
		return render.NewInvalidArgumentError("statement", "cannot be nil")
	}
	if stmt.Err() != nil {
		return stmt.Err()
	}
	if stmt.table != "" && !s.HasTable(stmt.table) {
		return render.NewInvalidArgumentError("table", "%q not found in schema", stmt.table)
	}

	for _, col := range stmt.columns {
		if err := s.validateColumn(stmt.table, col); err != nil {
			return err
		}
	}
	for _, o := range stmt.order {
		if err := s.validateColumn(stmt.table, o.Column); err != nil {
			return err
		}
	}
	for _, part := range stmt.where.ExpressionData() {
		if e, ok := part.(types.Expression); ok {
			if err := s.validateExpression(stmt.table, e, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Schema) validateExpression(table string, e types.Expression, depth int) error {
	if depth > maxNestingDepth {
		return fmt.Errorf("maximum expression nesting depth (%d) exceeded", maxNestingDepth)
	}
	for i, kind := range e.Kinds {
		switch kind {
		case types.KindIdentifier:
			if err := s.validateColumn(table, fmt.Sprint(e.Values[i])); err != nil {
				return err
			}
		case types.KindNested:
			if p, ok := e.Values[i].(types.ExpressionProvider); ok {
				if err := s.validateExpression(table, p.Expression(), depth+1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Schema) validateColumn(table, column string) error {
	if column == "*" {
		return nil
	}
	if dot := strings.LastIndex(column, "."); dot != -1 {
		table, column = column[:dot], column[dot+1:]
		if !s.HasTable(table) {
			return render.NewInvalidArgumentError("column", "table %q not found in schema", table)
		}
		if column == "*" {
			return nil
		}
	}
	if table == "" {
		for _, cols := range s.fields {
			if _, ok := cols[column]; ok {
				return nil
			}
		}
		return render.NewInvalidArgumentError("column", "%q not found in schema", column)
	}
	if !s.HasColumn(table, column) {
		return render.NewInvalidArgumentError("column", "%q not found in table %q", column, table)
	}
	return nil
}
