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
	"strings"
	"testing"

	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/contains"
	"github.com/audlang/audsql-core/sqltype"
)

func mustContainsPolicyForTest() contains.SqlContainsPolicy {
	return contains.SQL92
}

func mustArgMeta(t *testing.T, name string, lt audlang.LogicalType) audlang.ArgMetaInfo {
	t.Helper()
	m, err := audlang.NewArgMetaInfo(name, lt, false, false)
	if err != nil {
		t.Fatalf("NewArgMetaInfo: %v", err)
	}
	return m
}

func TestTableBuilder_BuildsValidTable(t *testing.T) {
	meta := mustArgMeta(t, "age", audlang.TypeInteger)
	table, err := ForTable("users").
		IDColumn("id").
		Nature(TableNature{Primary: true}).
		Filter("tenant_id", sqltype.MustLookup(sqltype.KindInteger), "1").
		DataColumn("age_col", meta, sqltype.MustLookup(sqltype.KindInteger), false, false, false).
		Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.TableName != "users" || table.IDColumn != "id" {
		t.Errorf("unexpected table shape: %+v", table)
	}
	if _, ok := table.Lookup("age"); !ok {
		t.Errorf("expected assignment for 'age'")
	}
}

func TestTableBuilder_RejectsColumnNameCollision(t *testing.T) {
	meta := mustArgMeta(t, "age", audlang.TypeInteger)
	_, err := ForTable("users").
		IDColumn("id").
		DataColumn("id", meta, sqltype.MustLookup(sqltype.KindInteger), false, false, false).
		Get()
	if err == nil {
		t.Fatal("expected a collision error between id column and data column")
	}
}

func TestTableBuilder_UniqueIDsForbidsMultiRowColumn(t *testing.T) {
	meta := mustArgMeta(t, "tag", audlang.TypeString)
	_, err := ForTable("tags").
		IDColumn("id").
		Nature(TableNature{UniqueIDs: true}).
		DataColumn("tag_col", meta, sqltype.MustLookup(sqltype.KindVarchar), true, false, false).
		Get()
	if err == nil {
		t.Fatal("expected an error: unique-ids table cannot assign a multi-row column")
	}
}

func TestTableBuilder_AlwaysKnownRequiresContainsAllIDs(t *testing.T) {
	meta := mustArgMeta(t, "age", audlang.TypeInteger)
	_, err := ForTable("users").
		IDColumn("id").
		DataColumn("age_col", meta, sqltype.MustLookup(sqltype.KindInteger), false, true, false).
		Get()
	if err == nil {
		t.Fatal("expected an error: always-known assignment requires a table that contains all ids")
	}
}

func TestMultiTableConfig_RejectsSecondPrimary(t *testing.T) {
	t1, err := ForTable("a").IDColumn("id").Nature(TableNature{Primary: true}).Get()
	if err != nil {
		t.Fatal(err)
	}
	t2, err := ForTable("b").IDColumn("id").Nature(TableNature{Primary: true}).Get()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewMultiTableConfig(t1, t2); err == nil {
		t.Fatal("expected an error: more than one primary table")
	}
}

func TestMultiTableConfig_RejectsDuplicateArgAssignment(t *testing.T) {
	meta := mustArgMeta(t, "age", audlang.TypeInteger)
	t1, err := ForTable("a").IDColumn("id").DataColumn("age_col", meta, sqltype.MustLookup(sqltype.KindInteger), false, false, false).Get()
	if err != nil {
		t.Fatal(err)
	}
	t2, err := ForTable("b").IDColumn("id").DataColumn("age_col2", meta, sqltype.MustLookup(sqltype.KindInteger), false, false, false).Get()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewMultiTableConfig(t1, t2); err == nil {
		t.Fatal("expected an error: argument assigned in two tables")
	}
}

func TestDataBinding_LookupFallsBackToAutoMapping(t *testing.T) {
	meta := mustArgMeta(t, "AGE", audlang.TypeInteger)
	templateMeta := mustArgMeta(t, "placeholder", audlang.TypeString)
	templateCol, err := NewDataColumn("users", "AGE_COL", sqltype.MustLookup(sqltype.KindInteger), false, false)
	if err != nil {
		t.Fatal(err)
	}
	template := NewArgColumnAssignment(templateMeta, templateCol, false, false)
	policy := DefaultAutoMappingPolicy{
		Template:  template,
		Translate: func(argName string) string { return argName },
	}

	primary, err := ForTable("users").
		IDColumn("id").
		Nature(TableNature{Primary: true}).
		AutoMapping(policy).
		Get()
	if err != nil {
		t.Fatal(err)
	}
	landscape, err := NewMultiTableConfig(primary)
	if err != nil {
		t.Fatal(err)
	}

	binding, err := NewDataBinding(landscape, mustContainsPolicyForTest())
	if err != nil {
		t.Fatal(err)
	}

	ctx := audlang.NewProcessContext()
	res, err := binding.Lookup(ctx, meta)
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if res.Table.TableName != "users" {
		t.Errorf("got table %q, want users", res.Table.TableName)
	}
	if res.Assignment.ArgName != "AGE" {
		t.Errorf("expected the resolved assignment to carry the looked-up argument name AGE, got %q", res.Assignment.ArgName)
	}
	if res.Assignment.Column.SQLType.Kind != sqltype.KindInteger {
		t.Errorf("expected the resolved assignment to keep the template's column type, got %v", res.Assignment.Column.SQLType.Kind)
	}
	if ctx.GlobalVariables["AGE.local"] != "AGE" {
		t.Errorf("expected auto-mapping to record AGE.local, got %+v", ctx.GlobalVariables)
	}
}

func TestDataBinding_LookupFailsWithNoAssignment(t *testing.T) {
	primary, err := ForTable("users").IDColumn("id").Nature(TableNature{Primary: true}).Get()
	if err != nil {
		t.Fatal(err)
	}
	landscape, err := NewMultiTableConfig(primary)
	if err != nil {
		t.Fatal(err)
	}
	binding, err := NewDataBinding(landscape, mustContainsPolicyForTest())
	if err != nil {
		t.Fatal(err)
	}
	_, err = binding.Lookup(audlang.NewProcessContext(), mustArgMeta(t, "unknown", audlang.TypeString))
	if err == nil {
		t.Fatal("expected a LookupError")
	}
	if _, ok := err.(*audlang.LookupError); !ok {
		t.Errorf("expected *audlang.LookupError, got %T", err)
	}
}

func TestDefaultAutoMappingPolicy_ScenarioFromSpec(t *testing.T) {
	// A data column d5:INTEGER auto-mapped via a predicate matching any
	// argument ending in ".int", translated by stripping that suffix.
	col, err := NewDataColumn("metrics", "d5", sqltype.MustLookup(sqltype.KindInteger), false, false)
	if err != nil {
		t.Fatal(err)
	}
	templateMeta := mustArgMeta(t, "placeholder", audlang.TypeInteger)
	policy := DefaultAutoMappingPolicy{
		Template: NewArgColumnAssignment(templateMeta, col, false, false),
		Applicable: func(argName string) bool {
			return strings.HasSuffix(argName, ".int")
		},
		Translate: func(argName string) string {
			return strings.TrimSuffix(argName, ".int")
		},
	}
	table, err := ForTable("metrics").IDColumn("id").Nature(TableNature{Primary: true}).AutoMapping(policy).Get()
	if err != nil {
		t.Fatal(err)
	}

	argMeta := mustArgMeta(t, "foo.int", audlang.TypeInteger)
	ctx := audlang.NewProcessContext()
	assignment, ok, err := table.LookupAssignment(ctx, argMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected the predicate to apply to foo.int")
	}
	if assignment.Column.ColumnName != "d5" {
		t.Errorf("got column %q, want d5", assignment.Column.ColumnName)
	}
	if assignment.ArgName != "foo.int" {
		t.Errorf("got ArgName %q, want foo.int", assignment.ArgName)
	}
	if ctx.GlobalVariables["foo.int.local"] != "foo" {
		t.Errorf("expected foo.int.local to be recorded as foo, got %+v", ctx.GlobalVariables)
	}

	if _, ok, err := table.LookupAssignment(ctx, mustArgMeta(t, "bar.string", audlang.TypeString)); err != nil || ok {
		t.Errorf("expected the predicate to reject bar.string, got ok=%v err=%v", ok, err)
	}
}
