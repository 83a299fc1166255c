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

package config

import (
	"strings"

	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/sqltype"
)

// DummyTableName is the fixed table name used by DummyTableConfig.
const DummyTableName = "DUMMY_TABLE"

// dummyColumnName derives a column name from an argument name by
// upper-casing it and replacing any run of non-identifier characters with a
// single underscore (spec §4.6: "uppercasing/underscore-replacing
// column-name derivation").
func dummyColumnName(argName string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToUpper(argName) {
		isIdentChar := r == '_' || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if isIdentChar {
			b.WriteRune(r)
			lastUnderscore = r == '_'
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// DummyAutoMappingPolicy treats every argument name it is asked about as a
// column of SQLType in DUMMY_TABLE, deriving the column name on demand via
// dummyColumnName rather than requiring columns to be pre-enumerated at
// construction time (spec §4.6: "an always-present default configuration
// that treats every queried arg... validates only that the argName is
// non-blank").
type DummyAutoMappingPolicy struct {
	SQLType sqltype.AdlSqlType
}

func (p DummyAutoMappingPolicy) IsApplicable(argName string) bool {
	return audlang.IsValidArgName(argName)
}

func (p DummyAutoMappingPolicy) Map(ctx *audlang.ProcessContext, argMeta audlang.ArgMetaInfo) (ArgColumnAssignment, error) {
	col, err := NewDataColumn(DummyTableName, dummyColumnName(argMeta.ArgName), p.SQLType, false, false)
	if err != nil {
		return ArgColumnAssignment{}, err
	}
	return NewArgColumnAssignment(argMeta, col, false, false), nil
}

// NewDummyTableConfig returns a single-table landscape named DUMMY_TABLE
// with id column idColumn, resolving any queried argument dynamically
// through a DummyAutoMappingPolicy bound to sqlType rather than a fixed set
// of columns chosen in advance (spec §4.6: "DummyTableConfig"). It is meant
// for ad-hoc debug rendering and tests that don't need a hand-authored
// landscape.
func NewDummyTableConfig(idColumn string, sqlType sqltype.AdlSqlType) (*SingleTableConfig, error) {
	return ForTable(DummyTableName).
		IDColumn(idColumn).
		Nature(TableNature{Primary: true}).
		AutoMapping(DummyAutoMappingPolicy{SQLType: sqlType}).
		Get()
}
