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

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// MAX_K is the largest domain size exponent supported.
const MAX_K = 28

// Table is the concrete two-dimensional grid of cells (column × row) produced
// by synthesis.  Every column has exactly 2^k rows.  A cell is either
// unassigned, or holds a value.  Cells which have been claimed during a run
// without witnesses are considered assigned, but hold no known value.
// Selector columns hold only bits.
type Table[F field.Element[F]] struct {
	k       uint
	rows    uint
	columns [NUMBER_OF_KINDS][]*column[F]
}

type column[F field.Element[F]] struct {
	// Values held in each row (zero when unknown)
	values []F
	// Marks rows which have been written (with or without a known value)
	assigned *bitset.BitSet
	// Marks rows whose value is known (or, for selectors, enabled)
	known *bitset.BitSet
}

// NewTable constructs an empty table with 2^k rows and the given number of
// columns of each kind.
func NewTable[F field.Element[F]](k uint, widths Widths) *Table[F] {
	var columns [NUMBER_OF_KINDS][]*column[F]
	//
	if k > MAX_K {
		panic(fmt.Sprintf("domain size 2^%d too large", k))
	}
	//
	rows := uint(1) << k
	//
	for _, kind := range ColumnKinds() {
		cols := make([]*column[F], widths.Of(kind))
		//
		for i := range cols {
			cols[i] = &column[F]{nil, bitset.New(rows), bitset.New(rows)}
			// Selectors do not need storage for values.
			if kind.HoldsValues() {
				cols[i].values = make([]F, rows)
			}
		}
		//
		columns[kind.Index()] = cols
	}
	//
	return &Table[F]{k, rows, columns}
}

// K returns the domain size exponent of this table.
func (p *Table[F]) K() uint {
	return p.k
}

// Rows returns the number of rows in this table (i.e. the domain size 2^k).
func (p *Table[F]) Rows() uint {
	return p.rows
}

// Widths returns the number of columns of each kind in this table.
func (p *Table[F]) Widths() Widths {
	var widths Widths
	//
	for i, cols := range p.columns {
		widths[i] = uint(len(cols))
	}
	//
	return widths
}

// Get returns the value of a given cell, along with a flag indicating whether
// the cell holds a known value.  For a selector column, the value is one when
// enabled, and zero otherwise.
func (p *Table[F]) Get(ref ColumnRef, row uint) (F, bool) {
	var (
		zero F
		col  = p.column(ref)
	)
	//
	if row >= p.rows || !col.known.Test(row) {
		return zero, false
	} else if ref.kind == SELECTOR_COLUMN {
		return zero.SetUint64(1), true
	}
	//
	return col.values[row], true
}

// IsAssigned checks whether a given cell has been assigned (with or without a
// known value).
func (p *Table[F]) IsAssigned(ref ColumnRef, row uint) bool {
	return row < p.rows && p.column(ref).assigned.Test(row)
}

// Set assigns a known value to a given cell.  A cell can be assigned at most
// once, and attempting to reassign it results in an error.
func (p *Table[F]) Set(ref ColumnRef, row uint, value F) error {
	col, err := p.claim(ref, row)
	//
	if err != nil {
		return err
	}
	//
	col.values[row] = value
	col.known.Set(row)
	//
	return nil
}

// Claim marks a given cell as assigned without giving it a known value.  This
// arises when synthesizing a circuit without witnesses, where the layout is
// determined but the values are not.
func (p *Table[F]) Claim(ref ColumnRef, row uint) error {
	_, err := p.claim(ref, row)
	return err
}

// Enable sets a given selector to one on a given row.  Enabling a selector is
// idempotent.
func (p *Table[F]) Enable(ref ColumnRef, row uint) error {
	if ref.kind != SELECTOR_COLUMN {
		panic(fmt.Sprintf("cannot enable non-selector column %s", ref))
	} else if row >= p.rows {
		return p.overflow(ref, row)
	}
	//
	col := p.column(ref)
	col.assigned.Set(row)
	col.known.Set(row)
	//
	return nil
}

// Selected determines whether a given selector is enabled on a given row.
func (p *Table[F]) Selected(ref ColumnRef, row uint) bool {
	return row < p.rows && p.column(ref).known.Test(row)
}

// Value returns the value of a given cell, treating unassigned (or unknown)
// cells as zero.
func (p *Table[F]) Value(ref ColumnRef, row uint) F {
	val, _ := p.Get(ref, row)
	return val
}

// Fill assigns the given value to every unassigned row from a given row
// onwards.  This is used for padding lookup tables out to the full domain.
func (p *Table[F]) Fill(ref ColumnRef, from uint, value F) {
	col := p.column(ref)
	//
	for row := from; row < p.rows; row++ {
		if !col.assigned.Test(row) {
			col.values[row] = value
			col.assigned.Set(row)
			col.known.Set(row)
		}
	}
}

// Assigned returns the number of assigned cells in a given column.
func (p *Table[F]) Assigned(ref ColumnRef) uint {
	return p.column(ref).assigned.Count()
}

func (p *Table[F]) claim(ref ColumnRef, row uint) (*column[F], error) {
	col := p.column(ref)
	//
	if !ref.kind.HoldsValues() {
		panic(fmt.Sprintf("cannot assign value to selector %s", ref))
	} else if row >= p.rows {
		return nil, p.overflow(ref, row)
	} else if col.assigned.Test(row) {
		return nil, fmt.Errorf("%w: cell %s", ErrAssignmentCollision, NewCellRef(ref, row))
	}
	//
	col.assigned.Set(row)
	//
	return col, nil
}

func (p *Table[F]) overflow(ref ColumnRef, row uint) error {
	return fmt.Errorf("%w: cell %s outside domain of %d rows (k=%d)", ErrLayoutOverflow,
		NewCellRef(ref, row), p.rows, p.k)
}

func (p *Table[F]) column(ref ColumnRef) *column[F] {
	cols := p.columns[ref.kind.Index()]
	//
	if ref.index >= uint(len(cols)) {
		panic(fmt.Sprintf("unknown column %s", ref))
	}
	//
	return cols[ref.index]
}
