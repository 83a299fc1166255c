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

import "github.com/audlang/audsql-core/audlang"

// TableNature combines the four orthogonal facts about how a table relates
// to the overall id space (spec §2, "table natures"):
//
//   - whether it is the PRIMARY table (holds every id the landscape knows
//     about, by definition, without needing ContainsAllIDs)
//   - whether a non-primary table nonetheless contains all ids
//     (ContainsAllIDs)
//   - whether an id may legitimately be absent from the table (Sparse)
//   - whether each id appears in at most one row (UniqueIDs); a multi-row
//     table can never claim UniqueIDs
type TableNature struct {
	Primary        bool
	ContainsAllIDs bool
	Sparse         bool
	UniqueIDs      bool
}

// Combination names in spec §2's enumeration.
const (
	NaturePrimary         = "PRIMARY"
	NaturePrimarySparse   = "PRIMARY_SPARSE"
	NaturePrimaryUnique   = "PRIMARY_UNIQUE"
	NatureIDSubset        = "ID_SUBSET"
	NatureIDSubsetSparse  = "ID_SUBSET_SPARSE"
	NatureIDSubsetUnique  = "ID_SUBSET_UNIQUE"
	NatureAllIDs          = "ALL_IDS"
	NatureAllIDsSparse    = "ALL_IDS_SPARSE"
)

// Combination returns this nature's named combination (spec §2).
func (n TableNature) Combination() string {
	switch {
	case n.Primary && n.UniqueIDs:
		return NaturePrimaryUnique
	case n.Primary && n.Sparse:
		return NaturePrimarySparse
	case n.Primary:
		return NaturePrimary
	case n.ContainsAllIDs && n.UniqueIDs:
		return NatureAllIDs // unique + all-ids collapses to ALL_IDS
	case n.ContainsAllIDs && n.Sparse:
		return NatureAllIDsSparse
	case n.ContainsAllIDs:
		return NatureAllIDs
	case n.UniqueIDs:
		return NatureIDSubsetUnique
	case n.Sparse:
		return NatureIDSubsetSparse
	default:
		return NatureIDSubset
	}
}

// Validate checks the cross-field invariants from spec §2:
//
//   - UniqueIDs forbids a multi-row table (checked by the caller, which
//     knows about the table's columns; see SingleTableConfig.Validate)
//   - a table that is Primary is, by definition, considered to contain all
//     ids; ContainsAllIDs is only meaningful (and only needs to be set) for
//     non-primary tables
func (n TableNature) Validate() error {
	if n.Primary && n.Sparse && n.UniqueIDs {
		return &audlang.ConfigError{Msg: "a table nature cannot be PRIMARY, sparse and unique-ids all at once"}
	}
	return nil
}
