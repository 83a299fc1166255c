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

// Package contains implements the pluggable SQL "contains" (substring
// match) policy: how CONTAINS operator matches compile to a dialect's
// substring predicate (spec §4.4). The Audlang expression walker that
// decides when to invoke a contains policy is an external collaborator.
package contains

import (
	"strings"

	"github.com/audlang/audsql-core/audlang"
)

// PreparatorFunc sanitizes a raw substring-match value before it is bound as
// a parameter, e.g. stripping characters the target LIKE dialect treats as
// wildcards.
type PreparatorFunc func(raw string) string

// CreatorFunc renders the SQL predicate fragment for a contains match against
// columnExpr, given a placeholder (or literal) for the already-prepared
// value.
type CreatorFunc func(columnExpr, valuePlaceholder string) (string, error)

// SqlContainsPolicy pairs a value preparator with a predicate creator (spec
// §4.4: "preparator + creator functions").
type SqlContainsPolicy struct {
	Name       string
	Preparator PreparatorFunc
	Creator    CreatorFunc
}

// Prepare sanitizes raw for this policy.
func (p SqlContainsPolicy) Prepare(raw string) string {
	if p.Preparator == nil {
		return raw
	}
	return p.Preparator(raw)
}

// Create renders the predicate fragment for this policy.
func (p SqlContainsPolicy) Create(columnExpr, valuePlaceholder string) (string, error) {
	if p.Creator == nil {
		return "", &audlang.ConfigError{Msg: "contains policy " + p.Name + " has no creator"}
	}
	return p.Creator(columnExpr, valuePlaceholder)
}

// WithPreparator returns a copy of p decorated with fn, named
// "<Name>+preparator" unless name is given explicitly.
func (p SqlContainsPolicy) WithPreparator(fn PreparatorFunc, name ...string) SqlContainsPolicy {
	p.Preparator = fn
	p.Name = decoratedName(p.Name, "preparator", name)
	return p
}

// WithCreator returns a copy of p decorated with fn, named
// "<Name>+creator" unless name is given explicitly.
func (p SqlContainsPolicy) WithCreator(fn CreatorFunc, name ...string) SqlContainsPolicy {
	p.Creator = fn
	p.Name = decoratedName(p.Name, "creator", name)
	return p
}

func decoratedName(base, suffix string, explicit []string) string {
	if len(explicit) > 0 && explicit[0] != "" {
		return explicit[0]
	}
	return base + "+" + suffix
}

func stripWildcards(raw string) string {
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "_", "")
	return raw
}

// MySQL renders a MySQL-dialect LIKE CONCAT substring match, stripping the
// LIKE wildcard characters from the raw value first (spec §4.4).
var MySQL = SqlContainsPolicy{
	Name:       "MYSQL",
	Preparator: stripWildcards,
	Creator: func(columnExpr, valuePlaceholder string) (string, error) {
		return columnExpr + " LIKE CONCAT('%', " + valuePlaceholder + ", '%')", nil
	},
}

// SQL92 renders an ANSI SQL-92 LIKE with string concatenation via ||.
var SQL92 = SqlContainsPolicy{
	Name:       "SQL92",
	Preparator: stripWildcards,
	Creator: func(columnExpr, valuePlaceholder string) (string, error) {
		return columnExpr + " LIKE '%' || " + valuePlaceholder + " || '%'", nil
	},
}

// SQLServer renders a T-SQL LIKE using + concatenation.
var SQLServer = SqlContainsPolicy{
	Name:       "SQL_SERVER",
	Preparator: stripWildcards,
	Creator: func(columnExpr, valuePlaceholder string) (string, error) {
		return columnExpr + " LIKE '%' + " + valuePlaceholder + " + '%'", nil
	},
}

// SQLServer2 renders a T-SQL CHARINDEX-based substring match. Unlike the
// LIKE-based policies it has no wildcard characters to strip, so its
// preparator is the identity function.
var SQLServer2 = SqlContainsPolicy{
	Name:       "SQL_SERVER2",
	Preparator: func(raw string) string { return raw },
	Creator: func(columnExpr, valuePlaceholder string) (string, error) {
		return "CHARINDEX(" + valuePlaceholder + ", " + columnExpr + ", 0) > 0", nil
	},
}

// Unsupported is the policy for dialects with no substring-match operator at
// all: its creator always fails (spec §4.4: "contains-not-supported error").
var Unsupported = SqlContainsPolicy{
	Name:       "UNSUPPORTED",
	Preparator: func(raw string) string { return raw },
	Creator: func(columnExpr, valuePlaceholder string) (string, error) {
		return "", &audlang.ConfigError{Msg: "this SQL dialect does not support the CONTAINS operator"}
	},
}
