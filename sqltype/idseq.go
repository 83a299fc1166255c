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

package sqltype

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// defaultSeq is the process-wide monotonic counter backing the default
// "P_<seq>" parameter id scheme (spec §5). It starts at 1000 so the first
// generated id is "P_1001", matching the spec's own example ids.
var defaultSeq atomic.Int64

func init() {
	defaultSeq.Store(1000)
}

// NextParameterID returns the next "P_<seq>" id and advances the shared
// sequence. Tests that rely on stable ids must call ResetIDSequence first.
func NextParameterID() string {
	n := defaultSeq.Add(1)
	return fmt.Sprintf("P_%d", n)
}

// ResetIDSequence resets the shared sequence back to its starting point, for
// test determinism (spec §5).
func ResetIDSequence() {
	defaultSeq.Store(1000)
}

// NewRandomParameterID returns a random (non-sequential) parameter id, an
// alternative scheme for callers who want globally-unique ids without
// depending on process-wide shared state (SPEC_FULL.md §2 ambient stack).
func NewRandomParameterID() string {
	return "P_" + uuid.NewString()
}
