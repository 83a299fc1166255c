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

// Package template parses and resolves "${name}" placeholder query
// templates into either a positional prepared-statement template plus an
// ordered parameter list, or a fully-inlined debug SQL string (spec §4.3).
// The SQL itself, and the decision of which parameters apply where, are
// supplied by the caller; this package only understands the placeholder
// syntax and the positional-binding bookkeeping around it.
package template

import (
	"regexp"
	"strings"

	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/sqltype"
)

// placeholderPattern matches "${ name }" with optional interior whitespace,
// where name is a plain identifier (spec §4.3: "[A-Za-z_][A-Za-z0-9_]*").
var placeholderPattern = regexp.MustCompile(`\$\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}`)

// Placeholder describes one occurrence of "${name}" found in a template.
type Placeholder struct {
	Name                 string
	Source               string
	BeginIndexInclusive  int
	EndIndexExclusive    int
}

// Listener is invoked once per placeholder found in left-to-right order, in
// addition to Parse's own return value; useful for callers that want to
// stream occurrences rather than collect them.
type Listener func(Placeholder)

// Parse scans text for "${name}" placeholders and returns them in order.
// An unclosed "${" with no matching "}" up to the next "${" or end of
// string is a PreparationError; so is an empty or blank name inside braces.
func Parse(text string, listener Listener) ([]Placeholder, error) {
	var out []Placeholder
	i := 0
	for i < len(text) {
		start := strings.Index(text[i:], "${")
		if start == -1 {
			break
		}
		start += i
		end := strings.Index(text[start:], "}")
		if end == -1 {
			return nil, &audlang.PreparationError{Msg: "unclosed placeholder starting at index " + itoa(start)}
		}
		end += start
		if next := strings.Index(text[start+2:end], "${"); next != -1 {
			return nil, &audlang.PreparationError{Msg: "unclosed placeholder starting at index " + itoa(start)}
		}
		inner := strings.TrimSpace(text[start+2 : end])
		if inner == "" {
			return nil, &audlang.PreparationError{Msg: "empty placeholder at index " + itoa(start)}
		}
		if !placeholderPattern.MatchString(text[start : end+1]) {
			return nil, &audlang.PreparationError{Msg: "invalid placeholder name " + quoteStr(inner) + " at index " + itoa(start)}
		}
		p := Placeholder{
			Name:                inner,
			Source:              text[start : end+1],
			BeginIndexInclusive: start,
			EndIndexExclusive:   end + 1,
		}
		out = append(out, p)
		if listener != nil {
			listener(p)
		}
		i = end + 1
	}
	return out, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

func quoteStr(s string) string { return "\"" + s + "\"" }

// Resolved is the output of resolving a "${name}" template against a
// parameter source: a positional template with "?" placeholders in
// strictly increasing order, the parameter bound to each position, and the
// character offset of each "?" within PositionalTemplate (spec §3, §6:
// "character positions of each ?"). Positions and Parameters always have
// equal length and Positions is strictly increasing.
type Resolved struct {
	PositionalTemplate string
	Parameters         []*sqltype.QueryParameter
	Positions          []int
}

// ParameterSource looks up every parameter bound to argument name. A single
// name may be referenced by more than one placeholder in the same template;
// every occurrence shares the same already-resolved parameter (spec §4.3:
// "duplicate-placeholder-shares-parameter semantics").
type ParameterSource func(name string) (*sqltype.QueryParameter, error)

// Resolve replaces every "${name}" placeholder in text with "?" in strictly
// increasing positional order and returns the parameter bound to each
// position, in the same order. A template with no placeholders is returned
// unchanged with a nil parameter list (idempotent on an already-positional
// template). Each referenced name must resolve to exactly one parameter; if
// the same name appears twice, both occurrences bind to that one
// parameter instance, appearing twice in Parameters.
func Resolve(text string, source ParameterSource) (Resolved, error) {
	placeholders, err := Parse(text, nil)
	if err != nil {
		return Resolved{}, err
	}
	if len(placeholders) == 0 {
		return Resolved{PositionalTemplate: text}, nil
	}

	var b strings.Builder
	params := make([]*sqltype.QueryParameter, 0, len(placeholders))
	positions := make([]int, 0, len(placeholders))
	cursor := 0
	for _, ph := range placeholders {
		b.WriteString(text[cursor:ph.BeginIndexInclusive])
		positions = append(positions, b.Len())
		b.WriteString("?")
		cursor = ph.EndIndexExclusive

		p, err := source(ph.Name)
		if err != nil {
			return Resolved{}, &audlang.PreparationError{Msg: "no parameter bound for placeholder " + quoteStr(ph.Name), Cause: err}
		}
		if p == nil {
			return Resolved{}, &audlang.PreparationError{Msg: "no parameter bound for placeholder " + quoteStr(ph.Name)}
		}
		params = append(params, p)
	}
	b.WriteString(text[cursor:])
	return Resolved{PositionalTemplate: b.String(), Parameters: params, Positions: positions}, nil
}

// RenderDebug inlines every placeholder's parameter literal directly into
// the template text, producing SQL fit only for logging or manual
// inspection (spec §6: "must never be executed against a live database").
func RenderDebug(text string, source ParameterSource) (string, error) {
	placeholders, err := Parse(text, nil)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	cursor := 0
	for _, ph := range placeholders {
		b.WriteString(text[cursor:ph.BeginIndexInclusive])
		p, err := source(ph.Name)
		if err != nil {
			return "", &audlang.PreparationError{Msg: "no parameter bound for placeholder " + quoteStr(ph.Name), Cause: err}
		}
		b.WriteString(p.ToString())
		cursor = ph.EndIndexExclusive
	}
	b.WriteString(text[cursor:])
	return b.String(), nil
}

// Apply binds every parameter in r.Parameters to its 1-based position in
// the order they appear in r.PositionalTemplate (spec §4.3: "apply(preparedStatement)").
func (r Resolved) Apply(binder sqltype.PreparedStatementBinder) error {
	for i, p := range r.Parameters {
		if err := p.Apply(binder, i+1); err != nil {
			return &audlang.PreparationError{Msg: "failed binding parameter at position " + itoa(i+1), Cause: err}
		}
	}
	return nil
}
