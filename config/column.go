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
	"fmt"

	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/sqltype"
)

// FilterColumn is a fixed condition applied to every query that touches its
// table, e.g. a tenant discriminator or a soft-delete flag (spec §3,
// "FilterColumn"). The value is rendered as a literal through the filter's
// own SQLType, never taken from caller-supplied data. TableName scopes the
// filter to the table it belongs to, whether it is a table-level filter or
// one carried by a specific DataColumn.
type FilterColumn struct {
	TableName  string
	ColumnName string
	SQLType    sqltype.AdlSqlType
	Value      string
}

// NewFilterColumn validates tableName and name against the identifier
// grammar before constructing the filter.
func NewFilterColumn(tableName, name string, sqlType sqltype.AdlSqlType, value string) (FilterColumn, error) {
	if err := ValidateTableIdentifier(tableName); err != nil {
		return FilterColumn{}, err
	}
	if err := ValidateColumnIdentifier(name); err != nil {
		return FilterColumn{}, err
	}
	return FilterColumn{TableName: tableName, ColumnName: name, SQLType: sqlType, Value: value}, nil
}

// Literal renders the filter's fixed value as a SQL literal using its own
// type-coalescence rules, with operator EQUALS since a filter is always an
// equality condition.
func (f FilterColumn) Literal() (string, error) {
	p, err := sqltype.CreateParameter("", audlang.ArgMetaInfo{ArgName: "*", Type: audlang.TypeString}, &f.Value, audlang.OpEquals, f.SQLType)
	if err != nil {
		return "", err
	}
	return p.ToString(), nil
}

// DataColumn is a column that may be assigned to hold one argument's values
// (spec §3, "DataColumn"). IsMultiRow marks a column whose values for one
// id may span several rows of its table, so the table cannot claim unique
// ids. IsAlwaysKnown marks a column the owning table
// guarantees a value for on every row. Filters is the ordered list of fixed
// conditions scoped to this column alone (distinct from the owning table's
// own Filters); every entry's TableName must equal this column's TableName,
// and no filter may reuse this column's own ColumnName.
type DataColumn struct {
	TableName     string
	ColumnName    string
	SQLType       sqltype.AdlSqlType
	IsMultiRow    bool
	IsAlwaysKnown bool
	Filters       []FilterColumn
}

// NewDataColumn validates tableName and name, then checks that every filter
// is scoped to the same table and does not collide with the column's own
// name (spec §3: "no filter may reference the same column as the data
// column itself... all filter tableNames equal the DataColumn's
// tableName"). The id-column collision, which depends on the owning table,
// is checked later by SingleTableConfig.Validate.
func NewDataColumn(tableName, name string, sqlType sqltype.AdlSqlType, isMultiRow, isAlwaysKnown bool, filters ...FilterColumn) (DataColumn, error) {
	if err := ValidateTableIdentifier(tableName); err != nil {
		return DataColumn{}, err
	}
	if err := ValidateColumnIdentifier(name); err != nil {
		return DataColumn{}, err
	}
	seen := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		if f.TableName != tableName {
			return DataColumn{}, &audlang.ConfigError{Msg: fmt.Sprintf("filter column %q belongs to table %q, want %q", f.ColumnName, f.TableName, tableName)}
		}
		if f.ColumnName == name {
			return DataColumn{}, &audlang.ConfigError{Msg: fmt.Sprintf("filter column %q collides with data column %q", f.ColumnName, name)}
		}
		if _, dup := seen[f.ColumnName]; dup {
			return DataColumn{}, &audlang.ConfigError{Msg: fmt.Sprintf("duplicate filter column %q on data column %q", f.ColumnName, name)}
		}
		seen[f.ColumnName] = struct{}{}
	}
	return DataColumn{
		TableName:     tableName,
		ColumnName:    name,
		SQLType:       sqlType,
		IsMultiRow:    isMultiRow,
		IsAlwaysKnown: isAlwaysKnown,
		Filters:       append([]FilterColumn{}, filters...),
	}, nil
}
