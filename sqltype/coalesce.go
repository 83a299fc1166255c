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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/audlang/audsql-core/audlang"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// CreateParameter answers spec §4.2's question: given a logical value typed
// as argMeta.Type and a target SQL type, is there a canonical representation,
// and if so what? A nil rawValue always coalesces to SQL NULL, regardless of
// target (spec §4.2, "Null values skip the type matrix entirely").
//
// id, if empty, is assigned via NextParameterID.
func CreateParameter(id string, argMeta audlang.ArgMetaInfo, rawValue *string, operator audlang.Operator, target AdlSqlType) (*QueryParameter, error) {
	if id == "" {
		id = NextParameterID()
	}
	p := &QueryParameter{
		ID:          id,
		ArgMetaInfo: argMeta,
		Operator:    operator,
		SQLType:     target,
	}
	if rawValue == nil {
		p.kind = valueNull
		p.literal = "NULL"
		return p, nil
	}
	p.Value = *rawValue

	raw := *rawValue
	if target.formatter != nil {
		text, err := target.formatter(raw)
		if err != nil {
			return nil, err
		}
		p.kind = valueString
		p.strVal = text
		p.literal = text
		return p, nil
	}

	if err := coalesceInto(p, argMeta.Type, raw, target.Kind); err != nil {
		return nil, err
	}
	return p, nil
}

func coalesceInto(p *QueryParameter, logical audlang.LogicalType, raw string, target Kind) error {
	switch logical {
	case audlang.TypeBool:
		return coalesceBool(p, raw, target)
	case audlang.TypeInteger:
		return coalesceInteger(p, raw, target)
	case audlang.TypeDecimal:
		return coalesceDecimalLogical(p, raw, target)
	case audlang.TypeDate:
		return coalesceDate(p, raw, target)
	case audlang.TypeString:
		return coalesceString(p, raw, target)
	default:
		return &audlang.FormattingError{Msg: "unknown logical type: " + string(logical)}
	}
}

func errCombo(logical audlang.LogicalType, target Kind) error {
	return &audlang.FormattingError{Msg: fmt.Sprintf("logical type %s cannot coalesce to SQL type %s", logical, target)}
}

// --- BOOL row ---

func coalesceBool(p *QueryParameter, raw string, target Kind) error {
	b, err := parseCanonicalBool(raw)
	if err != nil {
		return err
	}
	switch {
	case target == KindBit:
		p.kind = valueBit
		p.boolVal = b
		p.literal = bitLiteral(b)
		return nil
	case target == KindBoolean:
		p.kind = valueBool
		p.boolVal = b
		p.literal = boolLiteral(b)
		return nil
	case isIntegerFamily(target):
		return setIntegerLiteral(p, target, boolToInt(b))
	case isDecimalFamily(target):
		return errCombo(audlang.TypeBool, target)
	case isCharFamily(target):
		p.kind = valueString
		p.strVal = boolLiteral(b)
		p.literal = quoteSQL(boolLiteral(b))
		return nil
	default: // DATE, TIMESTAMP
		return errCombo(audlang.TypeBool, target)
	}
}

// --- INTEGER row ---

func coalesceInteger(p *QueryParameter, raw string, target Kind) error {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return &audlang.FormattingError{Msg: "not a valid integer value: " + raw, Cause: err}
	}
	switch {
	case target == KindBit:
		if n != 0 && n != 1 {
			return &audlang.FormattingError{Msg: "BIT requires value 0 or 1, got " + raw}
		}
		p.kind = valueBit
		p.boolVal = n == 1
		p.literal = bitLiteral(p.boolVal)
		return nil
	case target == KindBoolean:
		if n != 0 && n != 1 {
			return &audlang.FormattingError{Msg: "BOOLEAN requires value 0 or 1, got " + raw}
		}
		p.kind = valueBool
		p.boolVal = n == 1
		p.literal = boolLiteral(p.boolVal)
		return nil
	case isIntegerFamily(target):
		return setIntegerLiteral(p, target, n)
	case isDecimalFamily(target):
		d := decimal.NewFromInt(n)
		return setDecimalLiteral(p, target, d, true)
	case isCharFamily(target):
		p.kind = valueString
		p.strVal = raw
		p.literal = quoteSQL(raw)
		return nil
	case target == KindDate:
		return setDateLiteralFromEpochMillis(p, n*1000)
	case target == KindTimestamp:
		return setTimestampLiteralFromEpochMillis(p, n*1000)
	}
	return errCombo(audlang.TypeInteger, target)
}

// --- DECIMAL row ---

func coalesceDecimalLogical(p *QueryParameter, raw string, target Kind) error {
	d, err := parseDecimal(raw)
	if err != nil {
		return err
	}
	switch {
	case target == KindBit, target == KindBoolean:
		return errCombo(audlang.TypeDecimal, target)
	case isIntegerFamily(target):
		truncated := d.Truncate(0)
		n := truncated.IntPart()
		return setIntegerLiteral(p, target, n)
	case isDecimalFamily(target):
		return setDecimalLiteral(p, target, d, false)
	case isCharFamily(target):
		text := d.String()
		p.kind = valueString
		p.strVal = text
		p.literal = quoteSQL(text)
		return nil
	case target == KindDate:
		ms := d.Round(0).IntPart() // epoch-ms (rounded) -> date, per spec DECIMAL row
		return setDateLiteralFromEpochMillis(p, ms)
	case target == KindTimestamp:
		ms := d.IntPart()
		return setTimestampLiteralFromEpochMillis(p, ms)
	}
	return errCombo(audlang.TypeDecimal, target)
}

// --- DATE row ---

func coalesceDate(p *QueryParameter, raw string, target Kind) error {
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return &audlang.FormattingError{Msg: "not a valid ISO date (YYYY-MM-DD): " + raw, Cause: err}
	}
	switch {
	case target == KindBit, target == KindBoolean:
		return errCombo(audlang.TypeDate, target)
	case isIntegerFamily(target):
		return setIntegerLiteral(p, target, t.Unix())
	case isDecimalFamily(target):
		d := decimal.NewFromInt(t.UnixMilli())
		return setDecimalLiteral(p, target, d, true)
	case isCharFamily(target):
		text := t.Format(dateLayout)
		p.kind = valueString
		p.strVal = text
		p.literal = quoteSQL(text)
		return nil
	case target == KindDate:
		p.kind = valueDate
		p.timeVal = t
		p.literal = "DATE '" + t.Format(dateLayout) + "'"
		return nil
	case target == KindTimestamp:
		p.kind = valueTimestamp
		p.timeVal = t
		p.literal = "TIMESTAMP '" + t.Format(timestampLayout) + "'"
		return nil
	}
	return errCombo(audlang.TypeDate, target)
}

// --- STRING row ---

func coalesceString(p *QueryParameter, raw string, target Kind) error {
	switch {
	case target == KindBit:
		b, err := parseCanonicalBool(raw)
		if err != nil {
			return err
		}
		p.kind = valueBit
		p.boolVal = b
		p.literal = bitLiteral(b)
		return nil
	case target == KindBoolean:
		b, err := parseCanonicalBool(raw)
		if err != nil {
			return err
		}
		p.kind = valueBool
		p.boolVal = b
		p.literal = boolLiteral(b)
		return nil
	case isIntegerFamily(target):
		if t, err := time.ParseInLocation(dateLayout, raw, time.UTC); err == nil {
			return setIntegerLiteral(p, target, t.Unix())
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return &audlang.FormattingError{Msg: "not a valid integer or ISO date: " + raw, Cause: err}
		}
		return setIntegerLiteral(p, target, n)
	case isDecimalFamily(target):
		d, err := parseDecimal(raw)
		if err != nil {
			return err
		}
		return setDecimalLiteral(p, target, d, false)
	case isCharFamily(target):
		p.kind = valueString
		p.strVal = raw
		p.literal = quoteSQL(raw)
		return nil
	case target == KindDate:
		t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return &audlang.FormattingError{Msg: "not a valid ISO date (YYYY-MM-DD): " + raw, Cause: err}
		}
		p.kind = valueDate
		p.timeVal = t
		p.literal = "DATE '" + t.Format(dateLayout) + "'"
		return nil
	case target == KindTimestamp:
		return coalesceStringToTimestamp(p, raw)
	}
	return errCombo(audlang.TypeString, target)
}

func coalesceStringToTimestamp(p *QueryParameter, raw string) error {
	trimmed := strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(timestampLayout, trimmed, time.UTC); err == nil {
		p.kind = valueTimestamp
		p.timeVal = t
		p.literal = "TIMESTAMP '" + t.Format(timestampLayout) + "'"
		return nil
	}
	if t, err := time.ParseInLocation(dateLayout, trimmed, time.UTC); err == nil {
		p.kind = valueTimestamp
		p.timeVal = t
		p.literal = "TIMESTAMP '" + t.Format(timestampLayout) + "'"
		return nil
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return setTimestampLiteralFromEpochMillis(p, n)
	}
	return &audlang.FormattingError{Msg: "not a valid timestamp (YYYY-MM-DD[ hh:mm:ss] or epoch millis): " + raw}
}

// --- shared helpers ---

func parseCanonicalBool(raw string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "1", "TRUE":
		return true, nil
	case "0", "FALSE":
		return false, nil
	default:
		return false, &audlang.FormattingError{Msg: "not a valid boolean value (expected 0/1/TRUE/FALSE): " + raw}
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func bitLiteral(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func boolLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func quoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func setIntegerLiteral(p *QueryParameter, target Kind, n int64) error {
	switch target {
	case KindTinyInt:
		if n < -128 || n > 127 {
			return &audlang.FormattingError{Msg: fmt.Sprintf("value %d out of TINYINT range [-128,127]", n)}
		}
		p.kind = valueByte
		p.byteVal = int8(n)
	case KindSmallInt:
		if n < -32768 || n > 32767 {
			return &audlang.FormattingError{Msg: fmt.Sprintf("value %d out of SMALLINT range [-32768,32767]", n)}
		}
		p.kind = valueShort
		p.shortVal = int16(n)
	case KindInteger:
		if n < -2147483648 || n > 2147483647 {
			return &audlang.FormattingError{Msg: fmt.Sprintf("value %d out of INTEGER range", n)}
		}
		p.kind = valueInt
		p.intVal = int32(n)
	case KindBigInt:
		p.kind = valueLong
		p.longVal = n
	default:
		return &audlang.FormattingError{Msg: "not an integer-family SQL type: " + string(target)}
	}
	p.literal = strconv.FormatInt(n, 10)
	return nil
}

// setDecimalLiteral renders d for a decimal-family target. When
// appendTrailingZero is true and d is integral (used for the INTEGER row's
// "value with .0" rule), a single trailing ".0" is appended verbatim rather
// than going through rounding, matching spec §4.2's literal example.
func setDecimalLiteral(p *QueryParameter, target Kind, d decimal.Decimal, appendTrailingZero bool) error {
	rounded := roundForKind(d, target)
	text := rounded.String()
	if appendTrailingZero && !strings.Contains(text, ".") {
		text += ".0"
	}
	switch target {
	case KindFloat:
		f, _ := rounded.Float64()
		p.kind = valueFloat
		p.floatVal = float32(f)
	case KindReal:
		f, _ := rounded.Float64()
		p.kind = valueFloat
		p.floatVal = float32(f)
	case KindDouble:
		f, _ := rounded.Float64()
		p.kind = valueDouble
		p.doubleVal = f
	case KindNumeric, KindDecimal:
		p.kind = valueDecimal
		p.decVal = rounded
	default:
		return &audlang.FormattingError{Msg: "not a decimal-family SQL type: " + string(target)}
	}
	p.literal = text
	return nil
}

func setDateLiteralFromEpochMillis(p *QueryParameter, ms int64) error {
	t := time.UnixMilli(ms).UTC()
	p.kind = valueDate
	p.timeVal = t
	p.literal = "DATE '" + t.Format(dateLayout) + "'"
	return nil
}

func setTimestampLiteralFromEpochMillis(p *QueryParameter, ms int64) error {
	t := time.UnixMilli(ms).UTC()
	p.kind = valueTimestamp
	p.timeVal = t
	p.literal = "TIMESTAMP '" + t.Format(timestampLayout) + "'"
	return nil
}
