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

// MultiTableConfig is the full table landscape: every table known to a
// DataBinding, in declaration order, with a derived global argName -> table
// index (spec §3, "MultiTableConfig": "non-empty ordered collection of
// SingleTableConfigs"). Declaration order matters: §4.5's lookupAssignment
// algorithm tries each table in turn until one resolves an argument.
type MultiTableConfig struct {
	Tables      []*SingleTableConfig
	byName      map[string]*SingleTableConfig
	argToTable  map[string]string
	primaryName string
}

// NewMultiTableConfig validates and assembles tables into a landscape, in
// the order given: table names must be unique, at most one table may be
// Primary, and no argument name may be assigned in more than one table
// (spec §3: "globally unique argName -> table mapping").
func NewMultiTableConfig(tables ...*SingleTableConfig) (*MultiTableConfig, error) {
	if len(tables) == 0 {
		return nil, &audlang.ConfigError{Msg: "a table landscape requires at least one table"}
	}
	m := &MultiTableConfig{
		Tables:     make([]*SingleTableConfig, 0, len(tables)),
		byName:     make(map[string]*SingleTableConfig, len(tables)),
		argToTable: make(map[string]string),
	}
	for _, t := range tables {
		if t == nil {
			return nil, &audlang.ConfigError{Msg: "nil table in landscape"}
		}
		if _, exists := m.byName[t.TableName]; exists {
			return nil, &audlang.ConfigError{Msg: "duplicate table name: " + t.TableName}
		}
		if t.Nature.Primary {
			if m.primaryName != "" {
				return nil, &audlang.ConfigError{Msg: fmt.Sprintf("more than one primary table: %q and %q", m.primaryName, t.TableName)}
			}
			m.primaryName = t.TableName
		}
		for argName := range t.Assignments {
			if existing, ok := m.argToTable[argName]; ok {
				return nil, &audlang.ConfigError{Msg: fmt.Sprintf("argument %q is assigned in both table %q and table %q", argName, existing, t.TableName)}
			}
			m.argToTable[argName] = t.TableName
		}
		m.byName[t.TableName] = t
		m.Tables = append(m.Tables, t)
	}
	return m, nil
}

// PrimaryTable returns the landscape's primary table, if one was declared.
func (m *MultiTableConfig) PrimaryTable() (*SingleTableConfig, bool) {
	if m.primaryName == "" {
		return nil, false
	}
	return m.byName[m.primaryName], true
}

// TableFor returns the table argName is directly assigned in, if any. It
// does not consult auto-mapping; callers needing that fall back should use
// DataBinding.Lookup instead.
func (m *MultiTableConfig) TableFor(argName string) (*SingleTableConfig, bool) {
	name, ok := m.argToTable[argName]
	if !ok {
		return nil, false
	}
	return m.byName[name], true
}
