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
package mock

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/collection/set"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// FailureKind identifies the kind of a failure.  Failures on the same row are
// ordered by kind.
type FailureKind struct {
	kind uint8
}

var (
	// GATE_FAILURE signals a gate constraint which does not evaluate to zero.
	GATE_FAILURE = FailureKind{uint8(0)}
	// LOOKUP_FAILURE signals a lookup input tuple missing from its table.
	LOOKUP_FAILURE = FailureKind{uint8(1)}
	// CELL_NOT_ASSIGNED signals an active gate querying an unassigned cell.
	CELL_NOT_ASSIGNED = FailureKind{uint8(2)}
	// EQUALITY_FAILURE signals a copy constraint between differing cells.
	EQUALITY_FAILURE = FailureKind{uint8(3)}
)

func (p FailureKind) String() string {
	switch p {
	case GATE_FAILURE:
		return "gate"
	case LOOKUP_FAILURE:
		return "lookup"
	case CELL_NOT_ASSIGNED:
		return "unassigned cell"
	case EQUALITY_FAILURE:
		return "equality"
	default:
		return "unknown"
	}
}

// Failure describes a violation reported by the checker.  Failures are data,
// rather than errors, and every failure identifies the row at which it arose.
type Failure interface {
	fmt.Stringer
	// Kind returns the kind of this failure.
	Kind() FailureKind
	// Location returns the row on which this failure arose.
	Location() uint
	// Message provides a suitable error message
	Message() string
	// RequiredCells identifies the cells relevant to this failure, for a
	// domain of n rows.
	RequiredCells(n uint) *set.SortedSet[trace.CellRef]
	// Registration order of the failing item (e.g. gate and constraint
	// index), used to order failures of the same kind on the same row.
	order() (uint, uint)
}

// ============================================================================
// Gate Failure
// ============================================================================

// GateFailure provides structural information about a gate constraint which
// does not hold on a given row.
type GateFailure[F field.Element[F]] struct {
	// Failing gate
	Gate *plonk.Gate[F]
	// Index of the failing gate
	GateIndex uint
	// Index of the failing constraint within the gate
	ConstraintIndex uint
	// Region enclosing the failing row (if any)
	Region string
	// Row on which the constraint failed
	Row uint
	// Value the constraint evaluated to
	Value F
}

// Constraint returns the failing constraint.
func (p *GateFailure[F]) Constraint() plonk.Constraint[F] {
	return p.Gate.Constraints()[p.ConstraintIndex]
}

// Kind implementation for Failure interface.
func (p *GateFailure[F]) Kind() FailureKind {
	return GATE_FAILURE
}

// Location implementation for Failure interface.
func (p *GateFailure[F]) Location() uint {
	return p.Row
}

// Message provides a suitable error message
func (p *GateFailure[F]) Message() string {
	return fmt.Sprintf("constraint \"%s\" of gate \"%s\" does not hold (row %d%s)", p.Constraint().Name,
		p.Gate.Name(), p.Row, inRegion(p.Region))
}

// RequiredCells implementation for Failure interface.
func (p *GateFailure[F]) RequiredCells(n uint) *set.SortedSet[trace.CellRef] {
	return requiredCells(p.Constraint().Poly, p.Row, n)
}

func (p *GateFailure[F]) order() (uint, uint) {
	return p.GateIndex, p.ConstraintIndex
}

func (p *GateFailure[F]) String() string {
	return p.Message()
}

// ============================================================================
// Lookup Failure
// ============================================================================

// LookupFailure provides structural information about a lookup whose input
// tuple on a given row is not present in its table.
type LookupFailure[F field.Element[F]] struct {
	// Failing lookup
	Lookup *plonk.Lookup[F]
	// Index of the failing lookup
	LookupIndex uint
	// Region enclosing the failing row (if any)
	Region string
	// Row on which the lookup failed
	Row uint
	// Input tuple which was not found
	Inputs []F
}

// Kind implementation for Failure interface.
func (p *LookupFailure[F]) Kind() FailureKind {
	return LOOKUP_FAILURE
}

// Location implementation for Failure interface.
func (p *LookupFailure[F]) Location() uint {
	return p.Row
}

// Message provides a suitable error message
func (p *LookupFailure[F]) Message() string {
	return fmt.Sprintf("lookup \"%s\" does not hold (row %d%s)", p.Lookup.Name(), p.Row, inRegion(p.Region))
}

// RequiredCells implementation for Failure interface.
func (p *LookupFailure[F]) RequiredCells(n uint) *set.SortedSet[trace.CellRef] {
	var cells = set.NewSortedSet[trace.CellRef]()
	//
	for _, input := range p.Lookup.Inputs() {
		for _, c := range requiredCells(input, p.Row, n).ToArray() {
			cells.Insert(c)
		}
	}
	//
	return cells
}

func (p *LookupFailure[F]) order() (uint, uint) {
	return p.LookupIndex, 0
}

func (p *LookupFailure[F]) String() string {
	return p.Message()
}

// ============================================================================
// Cell Not Assigned
// ============================================================================

// CellNotAssigned signals that a gate, whose selector is enabled within some
// region, queries a cell which was not assigned by that region.
type CellNotAssigned struct {
	// Name of the gate making the query
	Gate string
	// Index of the gate making the query
	GateIndex uint
	// Index of the query within the gate
	QueryIndex uint
	// Region in which the gate was enabled
	Region string
	// Row on which the gate was enabled
	GateRow uint
	// Unassigned cell
	Cell trace.CellRef
}

// Kind implementation for Failure interface.
func (p *CellNotAssigned) Kind() FailureKind {
	return CELL_NOT_ASSIGNED
}

// Location implementation for Failure interface.
func (p *CellNotAssigned) Location() uint {
	return p.GateRow
}

// Message provides a suitable error message
func (p *CellNotAssigned) Message() string {
	return fmt.Sprintf("cell %s queried by gate \"%s\" is not assigned (row %d%s)", p.Cell, p.Gate,
		p.GateRow, inRegion(p.Region))
}

// RequiredCells implementation for Failure interface.
func (p *CellNotAssigned) RequiredCells(n uint) *set.SortedSet[trace.CellRef] {
	return set.NewSortedSet(p.Cell)
}

func (p *CellNotAssigned) order() (uint, uint) {
	return p.GateIndex, p.QueryIndex
}

func (p *CellNotAssigned) String() string {
	return p.Message()
}

// ============================================================================
// Equality Failure
// ============================================================================

// EqualityFailure signals a copy constraint between two cells holding
// different values.
type EqualityFailure[F field.Element[F]] struct {
	// Index of the copy constraint
	Index uint
	// Cells being constrained
	Left, Right trace.CellRef
	// Values held in those cells
	LeftValue, RightValue F
}

// Kind implementation for Failure interface.
func (p *EqualityFailure[F]) Kind() FailureKind {
	return EQUALITY_FAILURE
}

// Location implementation for Failure interface.
func (p *EqualityFailure[F]) Location() uint {
	return min(p.Left.Row, p.Right.Row)
}

// Message provides a suitable error message
func (p *EqualityFailure[F]) Message() string {
	return fmt.Sprintf("copy constraint %s == %s does not hold (%s != %s)", p.Left, p.Right, p.LeftValue,
		p.RightValue)
}

// RequiredCells implementation for Failure interface.
func (p *EqualityFailure[F]) RequiredCells(n uint) *set.SortedSet[trace.CellRef] {
	return set.NewSortedSet(p.Left, p.Right)
}

func (p *EqualityFailure[F]) order() (uint, uint) {
	return p.Index, 0
}

func (p *EqualityFailure[F]) String() string {
	return p.Message()
}

// ============================================================================
// Helpers
// ============================================================================

// SortFailures orders failures by row, then by kind, then by registration
// order.
func SortFailures(failures []Failure) {
	slices.SortStableFunc(failures, compareFailures)
}

func compareFailures(lhs Failure, rhs Failure) int {
	if c := cmp.Compare(lhs.Location(), rhs.Location()); c != 0 {
		return c
	} else if c := cmp.Compare(lhs.Kind().kind, rhs.Kind().kind); c != 0 {
		return c
	}
	//
	l1, l2 := lhs.order()
	r1, r2 := rhs.order()
	//
	if c := cmp.Compare(l1, r1); c != 0 {
		return c
	}
	//
	return cmp.Compare(l2, r2)
}

// Determine the cells (including selectors) read when evaluating a given
// expression on a given row.
func requiredCells[F field.Element[F]](expr plonk.Expression[F], row uint, n uint) *set.SortedSet[trace.CellRef] {
	var cells = set.NewSortedSet[trace.CellRef]()
	//
	for _, q := range plonk.Queries(expr) {
		col, r := q.Resolve(row, n)
		cells.Insert(trace.NewCellRef(col.Ref(), r))
	}
	//
	for _, s := range plonk.Selectors(expr) {
		cells.Insert(trace.NewCellRef(s.Ref(), row))
	}
	//
	return cells
}

func inRegion(region string) string {
	if region == "" {
		return ""
	}
	//
	return fmt.Sprintf(", region \"%s\"", region)
}
