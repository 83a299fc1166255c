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

package sqltype

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/audlang/audsql-core/audlang"
)

// valueKind discriminates which typed field of a QueryParameter is live.
type valueKind int

const (
	valueNull valueKind = iota
	valueBit
	valueBool
	valueByte
	valueShort
	valueInt
	valueLong
	valueFloat
	valueDouble
	valueDecimal
	valueString
	valueDate
	valueTimestamp
)

// QueryParameter is a single typed value carrier (spec §3). Its literal form
// is computed once at creation time; ToString returns it directly (the
// debug-safe SQL literal) and Apply binds the coalesced value through the
// matching typed setter of a PreparedStatementBinder.
type QueryParameter struct {
	ID          string
	ArgMetaInfo audlang.ArgMetaInfo
	Value       string
	Operator    audlang.Operator
	SQLType     AdlSqlType

	kind    valueKind
	literal string

	boolVal   bool
	byteVal   int8
	shortVal  int16
	intVal    int32
	longVal   int64
	floatVal  float32
	doubleVal float64
	decVal    decimal.Decimal
	strVal    string
	timeVal   time.Time
}

// ToString returns the debug-safe SQL literal for this parameter. This
// output must never be executed against a live database (spec §6).
func (p *QueryParameter) ToString() string { return p.literal }

// String implements fmt.Stringer as an alias for ToString, matching the
// source's toString() naming from spec §3.
func (p *QueryParameter) String() string { return p.ToString() }

// IsNull reports whether this parameter coalesced to a SQL NULL.
func (p *QueryParameter) IsNull() bool { return p.kind == valueNull }

// PreparedStatementBinder models the JDBC PreparedStatement binding surface
// (spec §4.3) as a Go interface, so the core never depends on a concrete
// driver. A position is 1-based, matching JDBC convention.
type PreparedStatementBinder interface {
	SetBit(position int, v bool) error
	SetBoolean(position int, v bool) error
	SetByte(position int, v int8) error
	SetShort(position int, v int16) error
	SetInt(position int, v int32) error
	SetLong(position int, v int64) error
	SetFloat(position int, v float32) error
	SetDouble(position int, v float64) error
	SetBigDecimal(position int, v decimal.Decimal) error
	SetString(position int, v string) error
	SetDate(position int, v time.Time) error
	SetTimestamp(position int, v time.Time) error
	SetNull(position int) error
}

// Apply binds this parameter to the given 1-based position of binder,
// dispatching to the typed setter appropriate for the value that was
// coalesced at creation time (spec §4.3's "apply(ps, pos)").
func (p *QueryParameter) Apply(binder PreparedStatementBinder, position int) error {
	switch p.kind {
	case valueNull:
		return binder.SetNull(position)
	case valueBit:
		return binder.SetBit(position, p.boolVal)
	case valueBool:
		return binder.SetBoolean(position, p.boolVal)
	case valueByte:
		return binder.SetByte(position, p.byteVal)
	case valueShort:
		return binder.SetShort(position, p.shortVal)
	case valueInt:
		return binder.SetInt(position, p.intVal)
	case valueLong:
		return binder.SetLong(position, p.longVal)
	case valueFloat:
		return binder.SetFloat(position, p.floatVal)
	case valueDouble:
		return binder.SetDouble(position, p.doubleVal)
	case valueDecimal:
		return binder.SetBigDecimal(position, p.decVal)
	case valueString:
		return binder.SetString(position, p.strVal)
	case valueDate:
		return binder.SetDate(position, p.timeVal)
	case valueTimestamp:
		return binder.SetTimestamp(position, p.timeVal)
	default:
		return binder.SetNull(position)
	}
}
