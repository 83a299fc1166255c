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
)

// SingleTableConfig describes one physical table in the landscape: its name,
// id column, nature, fixed filters, the argument-to-column assignments it
// carries, and its own auto-mapping fallback (spec §3, "SingleTableConfig";
// spec §4.5: "lookupAssignment... is defined on SingleTableConfig").
type SingleTableConfig struct {
	TableName         string
	IDColumn          string
	Nature            TableNature
	Filters           []FilterColumn
	Assignments       map[string]ArgColumnAssignment // argName -> assignment
	AutoMappingPolicy AutoMappingPolicy              // may be nil: no fallback for this table
}

// Validate checks the cross-cutting invariants from spec §3:
//
//   - the id column must not also appear as a filter or data column name
//   - filter and data column names must not collide with each other
//   - every assignment's DataColumn.TableName equals this table's name
//   - a DataColumn's own filters may not reference the id column of this
//     table (their table scope and collision with the column's own name
//     are checked by NewDataColumn, not here)
//   - UniqueIDs forbids any multi-row assigned column
//   - an assigned always-known column implies the table contains all ids
func (c *SingleTableConfig) Validate() error {
	if err := ValidateTableIdentifier(c.TableName); err != nil {
		return err
	}
	if err := ValidateColumnIdentifier(c.IDColumn); err != nil {
		return err
	}
	if err := c.Nature.Validate(); err != nil {
		return err
	}

	names := map[string]string{c.IDColumn: "id column"}
	checkCollision := func(name, role string) error {
		if existing, ok := names[name]; ok {
			return &audlang.ConfigError{Msg: fmt.Sprintf("column %q is used as both %s and %s in table %q", name, existing, role, c.TableName)}
		}
		names[name] = role
		return nil
	}

	for _, f := range c.Filters {
		if f.TableName != c.TableName {
			return &audlang.ConfigError{Msg: fmt.Sprintf("table filter %q belongs to table %q, want %q", f.ColumnName, f.TableName, c.TableName)}
		}
		if err := checkCollision(f.ColumnName, "filter column"); err != nil {
			return err
		}
	}

	hasAlwaysKnown := false
	for argName, a := range c.Assignments {
		if a.ArgName != argName {
			return &audlang.ConfigError{Msg: fmt.Sprintf("assignment map key %q does not match its ArgName %q", argName, a.ArgName)}
		}
		if a.Column.TableName != c.TableName {
			return &audlang.ConfigError{Msg: fmt.Sprintf("assignment for %q is bound to column in table %q, want %q", argName, a.Column.TableName, c.TableName)}
		}
		if a.Column.IsMultiRow && c.Nature.UniqueIDs {
			return &audlang.ConfigError{Msg: fmt.Sprintf("table %q claims unique ids but assigns multi-row column %q", c.TableName, a.Column.ColumnName)}
		}
		for _, f := range a.Column.Filters {
			if f.ColumnName == c.IDColumn {
				return &audlang.ConfigError{Msg: fmt.Sprintf("filter %q on data column %q collides with id column of table %q", f.ColumnName, a.Column.ColumnName, c.TableName)}
			}
		}
		if a.IsAlwaysKnown {
			hasAlwaysKnown = true
		}
	}
	if hasAlwaysKnown && !c.Nature.Primary && !c.Nature.ContainsAllIDs {
		return &audlang.ConfigError{Msg: fmt.Sprintf("table %q assigns an always-known column but its nature does not claim to contain all ids", c.TableName)}
	}

	// Data column names, checked after the always-known scan so every
	// assignment has already been validated structurally.
	for _, a := range c.Assignments {
		if err := checkCollision(a.Column.ColumnName, fmt.Sprintf("data column for argument %q", a.ArgName)); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the direct assignment for argName within this table, if
// any. It never consults this table's auto-mapping policy; callers that
// want the full §4.5 algorithm should use LookupAssignment instead.
func (c *SingleTableConfig) Lookup(argName string) (ArgColumnAssignment, bool) {
	a, ok := c.Assignments[argName]
	return a, ok
}

// LookupAssignment implements the §4.5 lookupAssignment algorithm for a
// single table: a direct entry in Assignments first, then this table's own
// AutoMappingPolicy if one is applicable to argMeta.ArgName, otherwise no
// match. Callers walking a MultiTableConfig try each table in declaration
// order until one of them reports ok.
func (c *SingleTableConfig) LookupAssignment(ctx *audlang.ProcessContext, argMeta audlang.ArgMetaInfo) (ArgColumnAssignment, bool, error) {
	if a, ok := c.Assignments[argMeta.ArgName]; ok {
		return a, true, nil
	}
	if c.AutoMappingPolicy != nil && c.AutoMappingPolicy.IsApplicable(argMeta.ArgName) {
		a, err := c.AutoMappingPolicy.Map(ctx, argMeta)
		if err != nil {
			return ArgColumnAssignment{}, false, err
		}
		return a, true, nil
	}
	return ArgColumnAssignment{}, false, nil
}
