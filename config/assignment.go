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

// ArgColumnAssignment binds one argument name to the DataColumn that holds
// its values within a single table (spec §2, "argument-to-column
// assignment"). IsAlwaysKnown and IsCollection default from the argument's
// own ArgMetaInfo but may be widened per assignment: an argument that is
// only sometimes known globally may still be always-known within a table
// that enforces a NOT NULL constraint on that column, and the reverse is
// never allowed (an assignment cannot narrow metadata the lookup already
// promised).
type ArgColumnAssignment struct {
	ArgName       string
	Column        DataColumn
	IsAlwaysKnown bool
	IsCollection  bool
}

// NewArgColumnAssignment unions the per-assignment flags with the argument's
// own metadata: the union is always at least as permissive as meta (spec §2:
// "always-known/collection union semantics").
func NewArgColumnAssignment(meta audlang.ArgMetaInfo, column DataColumn, assignmentAlwaysKnown, assignmentCollection bool) ArgColumnAssignment {
	return ArgColumnAssignment{
		ArgName:       meta.ArgName,
		Column:        column,
		IsAlwaysKnown: meta.IsAlwaysKnown || assignmentAlwaysKnown,
		IsCollection:  meta.IsCollection || assignmentCollection,
	}
}
