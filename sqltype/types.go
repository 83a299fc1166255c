// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sqltype implements the type-coalescence engine: reconciling a
// logical Audlang type with a JDBC-family SQL column type when producing a
// query parameter (spec §4.2), and the AdlSqlType value that describes one
// such SQL-side type (spec §3).
package sqltype

import "fmt"

// Kind is the closed set of JDBC-family SQL types this core understands
// (spec §1: "the full JDBC family").
type Kind string

const (
	KindBit          Kind = "BIT"
	KindBoolean      Kind = "BOOLEAN"
	KindTinyInt      Kind = "TINYINT"
	KindSmallInt     Kind = "SMALLINT"
	KindInteger      Kind = "INTEGER"
	KindBigInt       Kind = "BIGINT"
	KindReal         Kind = "REAL"
	KindFloat        Kind = "FLOAT"
	KindDouble       Kind = "DOUBLE"
	KindNumeric      Kind = "NUMERIC"
	KindDecimal      Kind = "DECIMAL"
	KindChar         Kind = "CHAR"
	KindVarchar      Kind = "VARCHAR"
	KindNChar        Kind = "NCHAR"
	KindNVarchar     Kind = "NVARCHAR"
	KindLongVarchar  Kind = "LONGVARCHAR"
	KindLongNVarchar Kind = "LONGNVARCHAR"
	KindDate         Kind = "DATE"
	KindTimestamp    Kind = "TIMESTAMP"
)

// JDBC type codes, matching java.sql.Types (spec §3: "a JDBC type code").
const (
	jdbcBit          = -7
	jdbcTinyInt      = -6
	jdbcSmallInt     = 5
	jdbcInteger      = 4
	jdbcBigInt       = -5
	jdbcFloat        = 6
	jdbcReal         = 7
	jdbcDouble       = 8
	jdbcNumeric      = 2
	jdbcDecimal      = 3
	jdbcChar         = 1
	jdbcVarchar      = 12
	jdbcLongVarchar  = -1
	jdbcDate         = 91
	jdbcTimestamp    = 93
	jdbcBoolean      = 16
	jdbcNChar        = -15
	jdbcNVarchar     = -9
	jdbcLongNVarchar = -16
)

// AdlSqlType is the SQL-side type descriptor from spec §3. It is immutable;
// Decorate returns a copy with an overridden value formatter, the only
// documented decoration point (spec §3: "may be decorated (wrapper replacing
// formatter)").
type AdlSqlType struct {
	Name                        string
	Kind                        Kind
	JDBCCode                    int
	SupportsLessThanGreaterThan bool
	SupportsContains            bool

	// formatter renders a raw logical value into plain (unquoted,
	// unwrapped) SQL text specific to this type, e.g. "97834.775987" or
	// "2024-03-04". nil means "use the default rendering for Kind".
	formatter func(raw string) (string, error)
}

// Decorate returns a copy of t with its formatter replaced by fn. A nil fn
// restores the default.
func (t AdlSqlType) Decorate(fn func(raw string) (string, error)) AdlSqlType {
	t.formatter = fn
	return t
}

var registry = map[Kind]AdlSqlType{}

func register(t AdlSqlType) {
	if _, exists := registry[t.Kind]; exists {
		panic(fmt.Sprintf("sql type kind %q already registered", t.Kind))
	}
	registry[t.Kind] = t
}

func init() {
	register(AdlSqlType{Name: "BIT", Kind: KindBit, JDBCCode: jdbcBit})
	register(AdlSqlType{Name: "BOOLEAN", Kind: KindBoolean, JDBCCode: jdbcBoolean})
	register(AdlSqlType{Name: "TINYINT", Kind: KindTinyInt, JDBCCode: jdbcTinyInt, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "SMALLINT", Kind: KindSmallInt, JDBCCode: jdbcSmallInt, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "INTEGER", Kind: KindInteger, JDBCCode: jdbcInteger, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "BIGINT", Kind: KindBigInt, JDBCCode: jdbcBigInt, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "REAL", Kind: KindReal, JDBCCode: jdbcReal, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "FLOAT", Kind: KindFloat, JDBCCode: jdbcFloat, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "DOUBLE", Kind: KindDouble, JDBCCode: jdbcDouble, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "NUMERIC", Kind: KindNumeric, JDBCCode: jdbcNumeric, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "DECIMAL", Kind: KindDecimal, JDBCCode: jdbcDecimal, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "CHAR", Kind: KindChar, JDBCCode: jdbcChar, SupportsLessThanGreaterThan: true, SupportsContains: true})
	register(AdlSqlType{Name: "VARCHAR", Kind: KindVarchar, JDBCCode: jdbcVarchar, SupportsLessThanGreaterThan: true, SupportsContains: true})
	register(AdlSqlType{Name: "NCHAR", Kind: KindNChar, JDBCCode: jdbcNChar, SupportsLessThanGreaterThan: true, SupportsContains: true})
	register(AdlSqlType{Name: "NVARCHAR", Kind: KindNVarchar, JDBCCode: jdbcNVarchar, SupportsLessThanGreaterThan: true, SupportsContains: true})
	register(AdlSqlType{Name: "LONGVARCHAR", Kind: KindLongVarchar, JDBCCode: jdbcLongVarchar, SupportsContains: true})
	register(AdlSqlType{Name: "LONGNVARCHAR", Kind: KindLongNVarchar, JDBCCode: jdbcLongNVarchar, SupportsContains: true})
	register(AdlSqlType{Name: "DATE", Kind: KindDate, JDBCCode: jdbcDate, SupportsLessThanGreaterThan: true})
	register(AdlSqlType{Name: "TIMESTAMP", Kind: KindTimestamp, JDBCCode: jdbcTimestamp, SupportsLessThanGreaterThan: true})
}

// Lookup returns the default (non-decorated) AdlSqlType for kind.
func Lookup(kind Kind) (AdlSqlType, bool) {
	t, ok := registry[kind]
	return t, ok
}

// MustLookup is Lookup but panics on an unknown kind; used for the package's
// own constant-kind call sites where kind is always one of the Kind
// constants above.
func MustLookup(kind Kind) AdlSqlType {
	t, ok := Lookup(kind)
	if !ok {
		panic("sqltype: unknown kind " + string(kind))
	}
	return t
}

func isIntegerFamily(k Kind) bool {
	switch k {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt:
		return true
	}
	return false
}

func isDecimalFamily(k Kind) bool {
	switch k {
	case KindNumeric, KindDecimal, KindFloat, KindReal, KindDouble:
		return true
	}
	return false
}

func isCharFamily(k Kind) bool {
	switch k {
	case KindChar, KindVarchar, KindNChar, KindNVarchar, KindLongVarchar, KindLongNVarchar:
		return true
	}
	return false
}
