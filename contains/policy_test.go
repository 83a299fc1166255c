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

package contains

import "testing"

func TestPolicies_CreatePredicate(t *testing.T) {
	tests := []struct {
		name   string
		policy SqlContainsPolicy
		want   string
	}{
		{name: "mysql", policy: MySQL, want: "name LIKE CONCAT('%', ?, '%')"},
		{name: "sql92", policy: SQL92, want: "name LIKE '%' || ? || '%'"},
		{name: "sql server", policy: SQLServer, want: "name LIKE '%' + ? + '%'"},
		{name: "sql server charindex", policy: SQLServer2, want: "CHARINDEX(?, name, 0) > 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.policy.Create("name", "?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPolicies_PrepareStripsWildcards(t *testing.T) {
	got := MySQL.Prepare("50%_off")
	want := "50off"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSQLServer2_PreparatorIsIdentity(t *testing.T) {
	got := SQLServer2.Prepare("50%_off")
	want := "50%_off"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnsupported_CreateFails(t *testing.T) {
	if _, err := Unsupported.Create("name", "?"); err == nil {
		t.Fatal("expected an error from the unsupported policy")
	}
}

func TestWithCreator_DerivesName(t *testing.T) {
	decorated := MySQL.WithCreator(func(col, v string) (string, error) { return col, nil })
	if decorated.Name != "MYSQL+creator" {
		t.Errorf("got name %q, want MYSQL+creator", decorated.Name)
	}
}
