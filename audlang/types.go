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

// Package audlang holds the fundamental, cross-cutting types of the mapping
// and generation core: the logical type system, argument metadata, match
// operators, and the process context threaded through every resolution call.
//
// The Audlang parser and its intermediate representation are external
// collaborators; this package only models the pieces of that representation
// the core needs to consume (argument names, operators, logical types).
package audlang

import "strings"

// LogicalType is the Audlang logical type of an argument value.
type LogicalType string

const (
	TypeString  LogicalType = "STRING"
	TypeInteger LogicalType = "INTEGER"
	TypeDecimal LogicalType = "DECIMAL"
	TypeDate    LogicalType = "DATE"
	TypeBool    LogicalType = "BOOL"
)

// Valid reports whether t is one of the five known logical types.
func (t LogicalType) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeDecimal, TypeDate, TypeBool:
		return true
	default:
		return false
	}
}

// Operator is an Audlang atomic match operator. Only the operator's identity
// matters to this core; operator semantics (how it combines with negation,
// how it groups into AND/OR) belong to the upstream compiler.
type Operator string

const (
	OpEquals     Operator = "EQUALS"
	OpLessThan   Operator = "LESS_THAN"
	OpGreaterThan Operator = "GREATER_THAN"
	OpContains   Operator = "CONTAINS"
	OpBetween    Operator = "BETWEEN"
	OpIsUnknown  Operator = "IS_UNKNOWN"
)

// ArgMetaInfo is the logical-argument descriptor produced by the upstream
// ArgMetaInfoLookup. It is immutable and consumed read-only by the core.
type ArgMetaInfo struct {
	ArgName       string
	Type          LogicalType
	IsAlwaysKnown bool
	IsCollection  bool
}

// NewArgMetaInfo validates and constructs an ArgMetaInfo.
func NewArgMetaInfo(argName string, t LogicalType, isAlwaysKnown, isCollection bool) (ArgMetaInfo, error) {
	if !IsValidArgName(argName) {
		return ArgMetaInfo{}, &ArgumentInvalidError{Msg: "argument name must be non-empty and not all whitespace: " + quote(argName)}
	}
	if !t.Valid() {
		return ArgMetaInfo{}, &ArgumentInvalidError{Msg: "unknown logical type: " + quote(string(t))}
	}
	return ArgMetaInfo{ArgName: argName, Type: t, IsAlwaysKnown: isAlwaysKnown, IsCollection: isCollection}, nil
}

// IsValidArgName reports whether name is a legal Audlang argument name: any
// non-empty, non-whitespace-only text. The wildcard "*" is explicitly
// permitted.
func IsValidArgName(name string) bool {
	if name == "*" {
		return true
	}
	return strings.TrimSpace(name) != ""
}

func quote(s string) string {
	return "\"" + s + "\""
}

// ProcessContext is a key/value map of global variables plus a set of global
// flags, threaded through each resolution call. The caller owns its
// lifecycle; auto-mapping policies may write into GlobalVariables (see the
// config package's AutoMappingPolicy).
type ProcessContext struct {
	GlobalVariables map[string]any
	GlobalFlags     map[string]struct{}
}

// NewProcessContext returns a fresh, mutable ProcessContext.
func NewProcessContext() *ProcessContext {
	return &ProcessContext{
		GlobalVariables: make(map[string]any),
		GlobalFlags:     make(map[string]struct{}),
	}
}

// HasFlag reports whether the named global flag is set.
func (c *ProcessContext) HasFlag(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.GlobalFlags[name]
	return ok
}

// SetFlag sets the named global flag.
func (c *ProcessContext) SetFlag(name string) {
	if c.GlobalFlags == nil {
		c.GlobalFlags = make(map[string]struct{})
	}
	c.GlobalFlags[name] = struct{}{}
}

// emptyProcessContext is a read-only empty singleton, per §6.
var emptyProcessContext = &ProcessContext{
	GlobalVariables: map[string]any{},
	GlobalFlags:     map[string]struct{}{},
}

// EmptyProcessContext returns the shared read-only empty ProcessContext.
// Callers must not mutate it; NewProcessContext returns a private, mutable
// instance instead.
func EmptyProcessContext() *ProcessContext {
	return emptyProcessContext
}

// ArgMetaInfoLookup resolves an argument name to its logical metadata.
type ArgMetaInfoLookup interface {
	Get(argName string) (ArgMetaInfo, error)
}

// ArgValueFormatter renders a logical value into its canonical textual
// representation for the given logical type.
type ArgValueFormatter interface {
	Format(argName string, value string, t LogicalType) (string, error)
}

// ArgMetaInfoLookupFunc adapts a plain function to ArgMetaInfoLookup.
type ArgMetaInfoLookupFunc func(argName string) (ArgMetaInfo, error)

func (f ArgMetaInfoLookupFunc) Get(argName string) (ArgMetaInfo, error) { return f(argName) }

// ArgValueFormatterFunc adapts a plain function to ArgValueFormatter.
type ArgValueFormatterFunc func(argName string, value string, t LogicalType) (string, error)

func (f ArgValueFormatterFunc) Format(argName string, value string, t LogicalType) (string, error) {
	return f(argName, value, t)
}
