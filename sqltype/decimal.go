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
	"github.com/shopspring/decimal"

	"github.com/audlang/audsql-core/audlang"
)

// decimalPrecision returns the number of fractional digits a decimal-family
// kind preserves: 6 for NUMERIC/DECIMAL/DOUBLE/REAL, 3 for the narrower
// FLOAT kind. 97834.7759871 rounds to 97834.775987 at this precision.
func decimalPrecision(k Kind) int32 {
	if k == KindFloat {
		return 3
	}
	return 6
}

// parseDecimal parses raw as an arbitrary-precision decimal, wrapping
// failures as a FormattingError.
func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &audlang.FormattingError{Msg: "not a valid decimal value: " + raw, Cause: err}
	}
	return d, nil
}

// roundForKind rounds d half-up to the fractional precision appropriate for
// the target decimal-family kind.
func roundForKind(d decimal.Decimal, k Kind) decimal.Decimal {
	return d.Round(decimalPrecision(k))
}
