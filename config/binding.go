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
	"github.com/audlang/audsql-core/contains"
)

// DataBinding is the top-level entry point for resolving an argument to the
// table and column that should answer a match against it: a table
// landscape and the contains policy to use for substring matches (spec §3,
// "DataBinding": "a configuration... plus a contains policy"). Auto-mapping
// is not a DataBinding concern: each table in the landscape carries its own
// fallback policy (spec §4.5).
type DataBinding struct {
	Landscape      *MultiTableConfig
	ContainsPolicy contains.SqlContainsPolicy
}

// NewDataBinding validates that landscape is non-nil and a contains policy
// was supplied.
func NewDataBinding(landscape *MultiTableConfig, containsPolicy contains.SqlContainsPolicy) (*DataBinding, error) {
	if landscape == nil {
		return nil, &audlang.ConfigError{Msg: "DataBinding requires a non-nil table landscape"}
	}
	if containsPolicy.Creator == nil {
		return nil, &audlang.ConfigError{Msg: "DataBinding requires a contains policy with a creator"}
	}
	return &DataBinding{Landscape: landscape, ContainsPolicy: containsPolicy}, nil
}

// Resolution is what Lookup returns: the table and assignment an argument
// was ultimately bound to.
type Resolution struct {
	Table      *SingleTableConfig
	Assignment ArgColumnAssignment
}

// Lookup resolves argMeta to its table+column assignment by trying each
// table in the landscape in declaration order and delegating to its own
// LookupAssignment, which tries a direct entry before that table's
// auto-mapping policy (spec §4.5: "For MultiTableConfig, try each member in
// declaration order"). The first table to resolve it wins; if none does,
// Lookup raises a LookupError.
func (b *DataBinding) Lookup(ctx *audlang.ProcessContext, argMeta audlang.ArgMetaInfo) (Resolution, error) {
	for _, table := range b.Landscape.Tables {
		assignment, ok, err := table.LookupAssignment(ctx, argMeta)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			return Resolution{Table: table, Assignment: assignment}, nil
		}
	}
	return Resolution{}, &audlang.LookupError{ArgName: argMeta.ArgName, Msg: "no direct assignment and no table auto-mapping policy resolved it"}
}
