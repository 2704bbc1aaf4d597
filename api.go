// Package sqlkit models SQL statements and renders them for a target dialect.
//
// A Select is built once, independent of any dialect, then rendered through a
// Platform in one of two modes:
//
//	stmt := sqlkit.NewSelect("foo").
//		Where(predicate.Map{"age >= ?": 18}).
//		Limit(5).
//		Offset(10)
//
//	sql, params, err := sqlkit.RenderPrepared(mysql.NewSelectDecorator(stmt), mysql.New())
//	// sql: SELECT `foo`.* FROM `foo` WHERE `age` >= ? LIMIT ? OFFSET ?
//	// params: where1=18, limit=5, offset=10
//
//	sql, err = sqlkit.RenderLiteral(mysql.NewSelectDecorator(stmt), mysql.New())
//	// sql: SELECT `foo`.* FROM `foo` WHERE `age` >= 18 LIMIT 5 OFFSET 10
//
// # Dialects
//
// Each dialect package provides a Platform with its quoting and placeholder
// rules. Dialects whose pagination differs from plain LIMIT/OFFSET also
// provide a SELECT decorator that replaces only the LIMIT and OFFSET clauses:
//
//   - mysql: a sentinel LIMIT 18446744073709551615 when only OFFSET is set
//   - sqlite: a sentinel LIMIT -1 when only OFFSET is set
//   - mssql: OFFSET ... ROWS FETCH NEXT ... ROWS ONLY, which requires ORDER BY
//   - postgres: no decorator
//
// Decorate picks the decorator for a platform when there is one.
//
// # Schema validation
//
// NewSchema indexes a DBML project so statements can be checked against it
// before rendering.
package sqlkit

import (
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// Combinator joins predicates: AND or OR.
type Combinator = types.Combinator

// Re-export combinator constants for public API.
const (
	AND = types.AND
	OR  = types.OR
)

// ParamStyle selects a placeholder syntax.
type ParamStyle = render.ParamStyle

// Re-export placeholder styles for public API.
const (
	ParamQuestion = render.ParamQuestion
	ParamDollar   = render.ParamDollar
	ParamAtP      = render.ParamAtP
	ParamColon    = render.ParamColon
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities = render.Capabilities

// InvalidArgumentError indicates malformed input to a builder call.
type InvalidArgumentError = render.InvalidArgumentError

// UnsupportedClauseError indicates a clause a dialect cannot render.
type UnsupportedClauseError = render.UnsupportedClauseError
