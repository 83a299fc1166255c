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

// Package binding provides a reference sqltype.PreparedStatementBinder
// shaped for database/sql, without importing it. Driver selection and statement execution are
// external collaborators (spec §1); this is only a worked example of the
// adapter shape a caller's own driver-specific binder would take.
package binding

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/audlang/audsql-core/sqltype"
)

// StmtBinder collects values into a positional []any argument slice
// suitable for database/sql's Stmt.Exec/ExecContext or QueryContext. It
// never opens a connection or executes anything itself.
type StmtBinder struct {
	args []any
}

// NewStmtBinder returns a StmtBinder sized for n positional parameters.
func NewStmtBinder(n int) *StmtBinder {
	return &StmtBinder{args: make([]any, n)}
}

// Args returns the collected positional arguments, ready to splat into
// database/sql's variadic Exec/Query calls.
func (b *StmtBinder) Args() []any { return b.args }

func (b *StmtBinder) set(position int, v any) error {
	idx := position - 1
	if idx < 0 || idx >= len(b.args) {
		return &sqltypeRangeError{position: position, size: len(b.args)}
	}
	b.args[idx] = v
	return nil
}

type sqltypeRangeError struct {
	position int
	size     int
}

func (e *sqltypeRangeError) Error() string {
	return "binding: position out of range"
}

func (b *StmtBinder) SetBit(position int, v bool) error             { return b.set(position, v) }
func (b *StmtBinder) SetBoolean(position int, v bool) error         { return b.set(position, v) }
func (b *StmtBinder) SetByte(position int, v int8) error            { return b.set(position, v) }
func (b *StmtBinder) SetShort(position int, v int16) error          { return b.set(position, v) }
func (b *StmtBinder) SetInt(position int, v int32) error            { return b.set(position, v) }
func (b *StmtBinder) SetLong(position int, v int64) error           { return b.set(position, v) }
func (b *StmtBinder) SetFloat(position int, v float32) error        { return b.set(position, v) }
func (b *StmtBinder) SetDouble(position int, v float64) error       { return b.set(position, v) }
func (b *StmtBinder) SetBigDecimal(position int, v decimal.Decimal) error {
	return b.set(position, v.String())
}
func (b *StmtBinder) SetString(position int, v string) error     { return b.set(position, v) }
func (b *StmtBinder) SetDate(position int, v time.Time) error     { return b.set(position, v) }
func (b *StmtBinder) SetTimestamp(position int, v time.Time) error { return b.set(position, v) }
func (b *StmtBinder) SetNull(position int) error                  { return b.set(position, nil) }

var _ sqltype.PreparedStatementBinder = (*StmtBinder)(nil)
