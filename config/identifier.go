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
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/audlang/audsql-core/audlang"
)

// unquotedIdentifier matches the bare grammar in spec §4.1: a leading
// letter/underscore/dollar, followed by any number of letters, digits,
// underscore or dollar.
var unquotedIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ValidateColumnIdentifier checks a column (or id-column) name against the
// quoting rules in spec §4.1: either the unquoted grammar, or a
// backtick-quoted form containing anything except a backtick.
func ValidateColumnIdentifier(name string) error {
	if isBacktickQuoted(name) {
		inner := name[1 : len(name)-1]
		if inner == "" {
			return &audlang.ConfigError{Msg: "backtick-quoted identifier must not be empty: " + name}
		}
		return nil
	}
	if !unquotedIdentifier.MatchString(name) {
		return &audlang.ConfigError{Msg: "invalid identifier: " + name}
	}
	return nil
}

// ValidateTableIdentifier additionally allows a single dot-separated schema
// qualifier on the unquoted form (spec §4.1: "optional single dot separator
// for schemas (tables only)").
func ValidateTableIdentifier(name string) error {
	if isBacktickQuoted(name) {
		return ValidateColumnIdentifier(name)
	}
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		if !unquotedIdentifier.MatchString(parts[0]) || !unquotedIdentifier.MatchString(parts[1]) {
			return &audlang.ConfigError{Msg: "invalid qualified table identifier: " + name}
		}
		return nil
	}
	return ValidateColumnIdentifier(name)
}

func isBacktickQuoted(name string) bool {
	return len(name) >= 2 && strings.HasPrefix(name, "`") && strings.HasSuffix(name, "`")
}

// QuoteIdentifier renders a validated identifier as safely quoted SQL text.
// Backtick-quoted identifiers pass through verbatim (the quotes are already
// part of the name, per spec §4.1); unquoted identifiers are rendered via
// pgx.Identifier so that dotted schema-qualified names are quoted part by
// part rather than as one opaque string.
func QuoteIdentifier(name string) string {
	if isBacktickQuoted(name) {
		return name
	}
	parts := strings.SplitN(name, ".", 2)
	return pgx.Identifier(parts).Sanitize()
}
