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

// AutoMappingPolicy derives an assignment for an argument that has no
// direct entry in its owning table (spec §4.5: "An AutoMappingPolicy has
// isApplicable(argName): bool and map(argName, ctx): ArgColumnAssignment").
// It lives on a SingleTableConfig, not on the landscape as a whole: a
// policy instance is bound to one table's columns and is only ever
// consulted by that table's own LookupAssignment.
type AutoMappingPolicy interface {
	// IsApplicable reports whether this policy has an opinion about argName.
	IsApplicable(argName string) bool
	// Map derives the assignment for argMeta. Callers must only invoke Map
	// after IsApplicable(argMeta.ArgName) returned true. It may record a
	// transient decision in ctx.GlobalVariables under "<argName>.local" so
	// a later pass in the same resolution (e.g. contains-policy selection)
	// can see it without re-deriving it (spec §9: "auto-mapping side
	// effect").
	Map(ctx *audlang.ProcessContext, argMeta audlang.ArgMetaInfo) (ArgColumnAssignment, error)
}

// DefaultAutoMappingPolicy binds every applicable argument to one
// pre-chosen DataColumn, carried by Template (spec §4.5: "a template
// assignment bound to one DataColumn, selected via an isApplicable
// predicate"). Applicable gates which argument names this policy claims; a
// nil Applicable claims every argument. Translate derives the "local"
// column-facing name recorded into the process context (e.g. stripping a
// ".int" suffix); a nil Translate falls back to DefaultColumnNameTranslation.
// Map never reuses the template's own ArgName: it rebuilds the assignment
// for the argument actually being looked up, via NewArgColumnAssignment,
// whose flags are that argument's own flags unioned with the template's
// IsAlwaysKnown and IsCollection.
type DefaultAutoMappingPolicy struct {
	Template   ArgColumnAssignment
	Applicable func(argName string) bool
	Translate  func(argName string) string
}

func (p DefaultAutoMappingPolicy) IsApplicable(argName string) bool {
	if p.Applicable != nil {
		return p.Applicable(argName)
	}
	return true
}

func (p DefaultAutoMappingPolicy) Map(ctx *audlang.ProcessContext, argMeta audlang.ArgMetaInfo) (ArgColumnAssignment, error) {
	translate := p.Translate
	if translate == nil {
		translate = DefaultColumnNameTranslation
	}
	localName := translate(argMeta.ArgName)
	if ctx != nil && ctx.GlobalVariables != nil {
		ctx.GlobalVariables[argMeta.ArgName+".local"] = localName
	}
	return NewArgColumnAssignment(argMeta, p.Template.Column, p.Template.IsAlwaysKnown, p.Template.IsCollection), nil
}

// CompositeAutoMappingPolicy tries each child policy in order, short-
// circuiting on the first one applicable to the argument (spec §4.5:
// "short-circuit composition"). If no child is applicable, Map raises a
// configuration error.
type CompositeAutoMappingPolicy struct {
	Policies []AutoMappingPolicy
}

func (p CompositeAutoMappingPolicy) IsApplicable(argName string) bool {
	for _, child := range p.Policies {
		if child.IsApplicable(argName) {
			return true
		}
	}
	return false
}

func (p CompositeAutoMappingPolicy) Map(ctx *audlang.ProcessContext, argMeta audlang.ArgMetaInfo) (ArgColumnAssignment, error) {
	for _, child := range p.Policies {
		if child.IsApplicable(argMeta.ArgName) {
			return child.Map(ctx, argMeta)
		}
	}
	return ArgColumnAssignment{}, &audlang.ConfigError{Msg: "no auto-mapping policy is applicable to argument " + argMeta.ArgName}
}

// DefaultColumnNameTranslation is the stock argName -> column name
// translation: upper-case with spaces/dots replaced by underscores, matching
// DummyTableConfig's own naming scheme (spec §4.6).
func DefaultColumnNameTranslation(argName string) string {
	return dummyColumnName(argName)
}
