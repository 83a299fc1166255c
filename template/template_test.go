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

package template

import (
	"testing"

	"github.com/audlang/audsql-core/audlang"
	"github.com/audlang/audsql-core/sqltype"
)

func TestParse_FindsPlaceholdersInOrder(t *testing.T) {
	got, err := Parse("SELECT * FROM t WHERE a = ${argA} AND b = ${ argB }", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "argA" || got[1].Name != "argB" {
		t.Fatalf("unexpected placeholders: %+v", got)
	}
}

func TestParse_UnclosedPlaceholderIsPreparationError(t *testing.T) {
	_, err := Parse("SELECT * FROM t WHERE a = ${argA", nil)
	if err == nil {
		t.Fatal("expected a preparation error")
	}
	if _, ok := err.(*audlang.PreparationError); !ok {
		t.Errorf("expected *audlang.PreparationError, got %T", err)
	}
}

func TestParse_EmptyPlaceholderIsPreparationError(t *testing.T) {
	_, err := Parse("SELECT * FROM t WHERE a = ${}", nil)
	if err == nil {
		t.Fatal("expected a preparation error")
	}
}

func newTestParameter(t *testing.T, value string) *sqltype.QueryParameter {
	t.Helper()
	meta, err := audlang.NewArgMetaInfo("argA", audlang.TypeString, false, false)
	if err != nil {
		t.Fatal(err)
	}
	p, err := sqltype.CreateParameter("P_1", meta, &value, audlang.OpEquals, sqltype.MustLookup(sqltype.KindVarchar))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestResolve_ProducesPositionalTemplateInOrder(t *testing.T) {
	pA := newTestParameter(t, "x")
	pB := newTestParameter(t, "y")
	source := func(name string) (*sqltype.QueryParameter, error) {
		if name == "argA" {
			return pA, nil
		}
		return pB, nil
	}
	r, err := Resolve("a = ${argA} AND b = ${argB}", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PositionalTemplate != "a = ? AND b = ?" {
		t.Errorf("got %q", r.PositionalTemplate)
	}
	if len(r.Parameters) != 2 || r.Parameters[0] != pA || r.Parameters[1] != pB {
		t.Errorf("unexpected parameters: %+v", r.Parameters)
	}
	if len(r.Positions) != len(r.Parameters) {
		t.Fatalf("positions/parameters length mismatch: %d vs %d", len(r.Positions), len(r.Parameters))
	}
	wantPositions := []int{4, 14}
	for i, pos := range r.Positions {
		if pos != wantPositions[i] {
			t.Errorf("position %d: got %d, want %d", i, pos, wantPositions[i])
		}
		if r.PositionalTemplate[pos] != '?' {
			t.Errorf("position %d does not index a '?' in %q", pos, r.PositionalTemplate)
		}
		if i > 0 && r.Positions[i-1] >= pos {
			t.Errorf("positions not strictly increasing: %v", r.Positions)
		}
	}
}

func TestResolve_DuplicatePlaceholderSharesParameter(t *testing.T) {
	p := newTestParameter(t, "x")
	source := func(name string) (*sqltype.QueryParameter, error) { return p, nil }
	r, err := Resolve("a = ${argA} OR b = ${argA}", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Parameters) != 2 || r.Parameters[0] != p || r.Parameters[1] != p {
		t.Errorf("expected both occurrences to share the same parameter instance")
	}
}

func TestResolve_IdempotentOnPositionalTemplate(t *testing.T) {
	r, err := Resolve("a = ? AND b = ?", func(string) (*sqltype.QueryParameter, error) { return nil, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PositionalTemplate != "a = ? AND b = ?" || r.Parameters != nil || r.Positions != nil {
		t.Errorf("expected template to pass through unchanged with no parameters or positions, got %+v", r)
	}
}

func TestRenderDebug_InlinesLiterals(t *testing.T) {
	p := newTestParameter(t, "x")
	got, err := RenderDebug("a = ${argA}", func(string) (*sqltype.QueryParameter, error) { return p, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a = 'x'" {
		t.Errorf("got %q, want a = 'x'", got)
	}
}
