// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package trace

// ColumnKind identifies the role a column plays within the witness table.
type ColumnKind struct {
	kind uint8
}

// NUMBER_OF_KINDS is the number of distinct column kinds.
const NUMBER_OF_KINDS = 5

var (
	// ADVICE_COLUMN signals a column holding private witness values, assigned
	// during synthesis.
	ADVICE_COLUMN = ColumnKind{uint8(0)}
	// FIXED_COLUMN signals a column holding circuit-defined constants.
	FIXED_COLUMN = ColumnKind{uint8(1)}
	// INSTANCE_COLUMN signals a column holding public inputs.
	INSTANCE_COLUMN = ColumnKind{uint8(2)}
	// SELECTOR_COLUMN signals a boolean column used to switch gates on or off.
	SELECTOR_COLUMN = ColumnKind{uint8(3)}
	// TABLE_COLUMN signals a column holding a precomputed lookup table.
	TABLE_COLUMN = ColumnKind{uint8(4)}
)

// ColumnKinds returns every column kind, in index order.
func ColumnKinds() []ColumnKind {
	return []ColumnKind{ADVICE_COLUMN, FIXED_COLUMN, INSTANCE_COLUMN, SELECTOR_COLUMN, TABLE_COLUMN}
}

// Index returns a unique index for this kind, in the range 0 upto
// NUMBER_OF_KINDS.
func (p ColumnKind) Index() uint {
	return uint(p.kind)
}

// HoldsValues determines whether columns of this kind hold arbitrary field
// elements (as opposed to selector bits).
func (p ColumnKind) HoldsValues() bool {
	return p != SELECTOR_COLUMN
}

func (p ColumnKind) String() string {
	switch p {
	case ADVICE_COLUMN:
		return "advice"
	case FIXED_COLUMN:
		return "fixed"
	case INSTANCE_COLUMN:
		return "instance"
	case SELECTOR_COLUMN:
		return "selector"
	case TABLE_COLUMN:
		return "table"
	default:
		return "unknown"
	}
}

// Widths records the number of columns of each kind.
type Widths [NUMBER_OF_KINDS]uint

// Of returns the number of columns of the given kind.
func (p Widths) Of(kind ColumnKind) uint {
	return p[kind.Index()]
}

// Total returns the number of columns of all kinds.
func (p Widths) Total() uint {
	var n uint
	//
	for _, w := range p {
		n += w
	}
	//
	return n
}
