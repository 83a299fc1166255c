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
	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/sqltype"
)

// TableBuilder is the side-effect-free builder DSL for a SingleTableConfig
// (spec §2: "forTable(name).idColumn(id).dataColumn(col, type)....get()").
// Each call returns a new builder value; none of them mutate the receiver,
// so a partially-built chain can be safely reused or branched.
type TableBuilder struct {
	table SingleTableConfig
	err   error
}

// ForTable starts a new builder for a table named name.
func ForTable(name string) TableBuilder {
	return TableBuilder{table: SingleTableConfig{
		TableName:   name,
		Assignments: map[string]ArgColumnAssignment{},
	}}
}

func (b TableBuilder) withErr(err error) TableBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// IDColumn sets the table's id column.
func (b TableBuilder) IDColumn(name string) TableBuilder {
	if b.err != nil {
		return b
	}
	b.table.IDColumn = name
	return b
}

// Nature sets the table's nature.
func (b TableBuilder) Nature(n TableNature) TableBuilder {
	if b.err != nil {
		return b
	}
	b.table.Nature = n
	return b
}

// Filter appends a fixed table-level filter condition, scoped to this
// builder's own table.
func (b TableBuilder) Filter(columnName string, sqlType sqltype.AdlSqlType, value string) TableBuilder {
	if b.err != nil {
		return b
	}
	f, err := NewFilterColumn(b.table.TableName, columnName, sqlType, value)
	if err != nil {
		return b.withErr(err)
	}
	clone := b.cloneTable()
	clone.table.Filters = append(clone.table.Filters, f)
	return clone
}

// ColumnFilter builds a filter scoped to this builder's own table, for use
// as one of DataColumn's per-column filters.
func (b TableBuilder) ColumnFilter(columnName string, sqlType sqltype.AdlSqlType, value string) (FilterColumn, error) {
	return NewFilterColumn(b.table.TableName, columnName, sqlType, value)
}

// DataColumn assigns argument argName to a new data column within this
// table. meta carries the argument's own logical type and base metadata;
// alwaysKnown/collection widen it per NewArgColumnAssignment's union rule.
// alwaysKnown also becomes the column's own IsAlwaysKnown, since a column
// the table guarantees a value for is exactly what "always known" means at
// the column level (spec §3: "DataColumn... isAlwaysKnown"). filters are
// the column's own fixed conditions (spec §3: "ordered list of filters"),
// typically built via ColumnFilter.
func (b TableBuilder) DataColumn(columnName string, meta audlang.ArgMetaInfo, sqlType sqltype.AdlSqlType, isMultiRow, alwaysKnown, collection bool, filters ...FilterColumn) TableBuilder {
	if b.err != nil {
		return b
	}
	col, err := NewDataColumn(b.table.TableName, columnName, sqlType, isMultiRow, alwaysKnown, filters...)
	if err != nil {
		return b.withErr(err)
	}
	clone := b.cloneTable()
	clone.table.Assignments[meta.ArgName] = NewArgColumnAssignment(meta, col, col.IsAlwaysKnown, collection)
	return clone
}

// AutoMapping sets this table's fallback auto-mapping policy, consulted by
// LookupAssignment once a direct assignment lookup misses (spec §4.5).
func (b TableBuilder) AutoMapping(policy AutoMappingPolicy) TableBuilder {
	if b.err != nil {
		return b
	}
	b.table.AutoMappingPolicy = policy
	return b
}

// cloneTable returns a builder holding a deep-enough copy of the
// in-progress table so that Filter/DataColumn calls never mutate a shared
// slice or map backing another branch of the same chain.
func (b TableBuilder) cloneTable() TableBuilder {
	next := b.table
	next.Filters = append([]FilterColumn{}, b.table.Filters...)
	next.Assignments = make(map[string]ArgColumnAssignment, len(b.table.Assignments))
	for k, v := range b.table.Assignments {
		next.Assignments[k] = v
	}
	return TableBuilder{table: next, err: b.err}
}

// Get finalizes the builder, validating the accumulated SingleTableConfig.
func (b TableBuilder) Get() (*SingleTableConfig, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := b.table
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
