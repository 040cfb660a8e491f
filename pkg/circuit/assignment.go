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
package circuit

import (
	"fmt"

	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/collection/set"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Mode determines how unknown values are handled during synthesis.
type Mode uint8

const (
	// SYNTHESIS expects every assigned value to be known, and signals an
	// error otherwise.
	SYNTHESIS Mode = iota
	// SETUP permits unknown values, which arises when synthesizing a circuit
	// without witnesses to determine its layout.
	SETUP
)

func (m Mode) String() string {
	if m == SETUP {
		return "setup"
	}
	//
	return "synthesis"
}

// Copy records a copy constraint between two cells.
type Copy struct {
	Left  trace.CellRef
	Right trace.CellRef
}

// RegionInfo records the outcome of laying out a region, such as where it was
// placed and which cells it assigned.
type RegionInfo struct {
	// Name of the region
	Name string
	// First row of the region
	Start uint
	// Number of rows spanned by the region
	Rows uint
	// Cells assigned within the region (excluding selectors)
	Cells *set.SortedSet[trace.CellRef]
	// Selectors enabled within the region
	Enabled *set.SortedSet[trace.CellRef]
}

// Contains checks whether a given row falls within this region.
func (p *RegionInfo) Contains(row uint) bool {
	return row >= p.Start && row < p.Start+p.Rows
}

// Assignment is the target of synthesis.  It holds the witness table being
// filled, along with the copy constraints and region metadata recorded along
// the way.
type Assignment[F field.Element[F]] struct {
	system *plonk.ConstraintSystem[F]
	table  *trace.Table[F]
	mode   Mode
	// Copy constraints in order of construction
	copies []Copy
	// Regions in order of assignment
	regions []*RegionInfo
	// Lookup table columns already loaded
	loaded []bool
}

// NewAssignment constructs an empty assignment for a given constraint system
// over a domain of 2^k rows.
func NewAssignment[F field.Element[F]](system *plonk.ConstraintSystem[F], k uint, mode Mode) *Assignment[F] {
	var (
		table  = trace.NewTable[F](k, system.Widths())
		loaded = make([]bool, system.Count(trace.TABLE_COLUMN))
	)
	//
	return &Assignment[F]{system, table, mode, nil, nil, loaded}
}

// System returns the constraint system being assigned.
func (p *Assignment[F]) System() *plonk.ConstraintSystem[F] {
	return p.system
}

// Table returns the witness table being filled.
func (p *Assignment[F]) Table() *trace.Table[F] {
	return p.table
}

// Mode returns the synthesis mode of this assignment.
func (p *Assignment[F]) Mode() Mode {
	return p.mode
}

// Copies returns the copy constraints recorded, in order of construction.
func (p *Assignment[F]) Copies() []Copy {
	return p.copies
}

// Regions returns the regions laid out, in order of assignment.
func (p *Assignment[F]) Regions() []*RegionInfo {
	return p.regions
}

// SetInstance assigns the public inputs of a given instance column, starting
// from the first row.
func (p *Assignment[F]) SetInstance(col plonk.Instance, values []F) error {
	if !p.system.Owns(col) {
		return fmt.Errorf("%w: %s", plonk.ErrUnknownColumn, col)
	}
	//
	for row, val := range values {
		if err := p.table.Set(col.Ref(), uint(row), val); err != nil {
			return err
		}
	}
	//
	return nil
}

// Check every table column targeted by a lookup has been loaded.  Otherwise,
// the column reads as zero throughout and any input evaluating to zero would
// be accepted.
func (p *Assignment[F]) checkTables() error {
	for _, l := range p.system.Lookups() {
		for _, col := range l.Tables() {
			if !p.loaded[col.Index()] {
				return fmt.Errorf("%w: lookup \"%s\" targets column %s", ErrTableNotLoaded, l.Name(), col)
			}
		}
	}
	//
	return nil
}

// Assign a value to a given cell, respecting the mode of this assignment.
func (p *Assignment[F]) assign(col plonk.Column, row uint, value Value[F]) error {
	if !p.system.Owns(col) {
		return plonk.ErrUnknownColumn
	} else if value.IsKnown() {
		return p.table.Set(col.Ref(), row, value.Unwrap())
	} else if p.mode == SETUP {
		return p.table.Claim(col.Ref(), row)
	}
	//
	return fmt.Errorf("%w: unknown value", ErrSynthesis)
}

// Copy records a copy constraint between two cells, both of which must be in
// equality-enabled columns.
func (p *Assignment[F]) copy(left Cell, right Cell) error {
	for _, c := range []Cell{left, right} {
		if !p.system.Owns(c.Column) {
			return fmt.Errorf("%w: %s", plonk.ErrUnknownColumn, c.Column)
		} else if !p.system.IsEqualityEnabled(c.Column) {
			return fmt.Errorf("%w: %s", ErrEqualityDisabled, c.Column)
		} else if c.Row >= p.table.Rows() {
			return fmt.Errorf("%w: cell %s outside domain of %d rows", trace.ErrLayoutOverflow, c, p.table.Rows())
		}
	}
	//
	p.copies = append(p.copies, Copy{left.Ref(), right.Ref()})
	//
	return nil
}
