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
	"testing"

	"github.com/audlang/audsql-core/audlang"
)

func strPtr(s string) *string { return &s }

func mustMeta(t *testing.T, name string, lt audlang.LogicalType) audlang.ArgMetaInfo {
	t.Helper()
	m, err := audlang.NewArgMetaInfo(name, lt, false, false)
	if err != nil {
		t.Fatalf("NewArgMetaInfo: %v", err)
	}
	return m
}

func TestCoalesce_NullAlwaysRendersNull(t *testing.T) {
	for _, target := range []Kind{KindBit, KindVarchar, KindDate, KindTimestamp, KindDecimal} {
		p, err := CreateParameter("P_1", mustMeta(t, "a", audlang.TypeString), nil, audlang.OpEquals, MustLookup(target))
		if err != nil {
			t.Fatalf("target %s: unexpected error: %v", target, err)
		}
		if !p.IsNull() || p.ToString() != "NULL" {
			t.Errorf("target %s: want NULL, got %q", target, p.ToString())
		}
	}
}

func TestCoalesce_TinyIntBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		want    string
	}{
		{name: "max in range", value: "127", want: "127"},
		{name: "min in range", value: "-128", want: "-128"},
		{name: "one over", value: "128", wantErr: true},
		{name: "one under", value: "-129", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := CreateParameter("P_1", mustMeta(t, "a", audlang.TypeInteger), strPtr(tc.value), audlang.OpEquals, MustLookup(KindTinyInt))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error for value %s", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ToString() != tc.want {
				t.Errorf("got %q, want %q", p.ToString(), tc.want)
			}
		})
	}
}

func TestCoalesce_DecimalRoundsToSixFractionalDigits(t *testing.T) {
	p, err := CreateParameter("P_1", mustMeta(t, "a", audlang.TypeDecimal), strPtr("97834.7759871"), audlang.OpEquals, MustLookup(KindDecimal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "97834.775987"
	if p.ToString() != want {
		t.Errorf("got %q, want %q", p.ToString(), want)
	}
}

func TestCoalesce_StringToIntegerFormattingError(t *testing.T) {
	_, err := CreateParameter("P_1", mustMeta(t, "a", audlang.TypeString), strPtr("foo"), audlang.OpEquals, MustLookup(KindInteger))
	if err == nil {
		t.Fatal("expected a formatting error")
	}
	var fe *audlang.FormattingError
	if !errorsAs(err, &fe) {
		t.Errorf("expected *audlang.FormattingError, got %T", err)
	}
}

func TestCoalesce_BoolToDateFormattingError(t *testing.T) {
	_, err := CreateParameter("P_1", mustMeta(t, "a", audlang.TypeBool), strPtr("1"), audlang.OpEquals, MustLookup(KindDate))
	if err == nil {
		t.Fatal("expected a formatting error")
	}
}

func TestCoalesce_AllTypesScenario(t *testing.T) {
	tests := []struct {
		name   string
		arg    audlang.LogicalType
		value  string
		target Kind
		want   string
	}{
		{name: "bool to bit", arg: audlang.TypeBool, value: "TRUE", target: KindBit, want: "1"},
		{name: "bool to boolean", arg: audlang.TypeBool, value: "0", target: KindBoolean, want: "FALSE"},
		{name: "date to date", arg: audlang.TypeDate, value: "2024-03-04", target: KindDate, want: "DATE '2024-03-04'"},
		{name: "date to timestamp", arg: audlang.TypeDate, value: "2024-03-04", target: KindTimestamp, want: "TIMESTAMP '2024-03-04 00:00:00'"},
		{name: "decimal to decimal", arg: audlang.TypeDecimal, value: "12.5", target: KindDecimal, want: "12.5"},
		{name: "decimal to float truncates precision", arg: audlang.TypeDecimal, value: "12.123456789", target: KindFloat, want: "12.123"},
		{name: "integer to char", arg: audlang.TypeInteger, value: "42", target: KindVarchar, want: "'42'"},
		{name: "string with quote is escaped", arg: audlang.TypeString, value: "o'brien", target: KindVarchar, want: "'o''brien'"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := CreateParameter("P_1", mustMeta(t, "a", tc.arg), strPtr(tc.value), audlang.OpEquals, MustLookup(tc.target))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ToString() != tc.want {
				t.Errorf("got %q, want %q", p.ToString(), tc.want)
			}
		})
	}
}

func TestNextParameterID_SequentialAfterReset(t *testing.T) {
	ResetIDSequence()
	first := NextParameterID()
	second := NextParameterID()
	if first != "P_1001" || second != "P_1002" {
		t.Errorf("got %q, %q, want P_1001, P_1002", first, second)
	}
}

// errorsAs is a tiny local shim so this file doesn't need to import errors
// just for As in the one place it's needed.
func errorsAs(err error, target **audlang.FormattingError) bool {
	for err != nil {
		if fe, ok := err.(*audlang.FormattingError); ok {
			*target = fe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
