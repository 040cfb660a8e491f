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
package plonk

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Used to give each constraint system a unique identifier.
var systems atomic.Uint64

// ConstraintSystem is the registry of columns, gates, lookups and
// equality-enabled columns which make up a circuit's configuration.  Columns
// are allocated in order of declaration, and gates and lookups retain their
// order of registration.
type ConstraintSystem[F field.Element[F]] struct {
	id     uint64
	widths trace.Widths
	// Complex flag for each selector
	complex []bool
	// Gates in order of registration
	gates []*Gate[F]
	// Lookups in order of registration
	lookups []*Lookup[F]
	// Columns permitted in copy constraints
	equality []Column
}

// NewConstraintSystem constructs an empty constraint system.
func NewConstraintSystem[F field.Element[F]]() *ConstraintSystem[F] {
	return &ConstraintSystem[F]{id: systems.Add(1)}
}

// AdviceColumn allocates a new advice column.
func (p *ConstraintSystem[F]) AdviceColumn() Advice {
	return Advice{p.allocate(trace.ADVICE_COLUMN)}
}

// FixedColumn allocates a new fixed column.
func (p *ConstraintSystem[F]) FixedColumn() Fixed {
	return Fixed{p.allocate(trace.FIXED_COLUMN)}
}

// InstanceColumn allocates a new instance column.
func (p *ConstraintSystem[F]) InstanceColumn() Instance {
	return Instance{p.allocate(trace.INSTANCE_COLUMN)}
}

// Selector allocates a new simple selector.
func (p *ConstraintSystem[F]) Selector() Selector {
	p.complex = append(p.complex, false)
	return Selector{p.allocate(trace.SELECTOR_COLUMN)}
}

// ComplexSelector allocates a new complex selector.
func (p *ConstraintSystem[F]) ComplexSelector() Selector {
	var sel = Selector{p.allocate(trace.SELECTOR_COLUMN)}
	//
	sel.complex = true
	p.complex = append(p.complex, true)
	//
	return sel
}

// LookupTableColumn allocates a new lookup table column.
func (p *ConstraintSystem[F]) LookupTableColumn() TableColumn {
	return TableColumn{p.allocate(trace.TABLE_COLUMN)}
}

// EnableEquality permits a given column to participate in copy constraints.
// Only advice, fixed and instance columns can be enabled.  Enabling a column
// more than once has no effect.
func (p *ConstraintSystem[F]) EnableEquality(col AnyColumn) error {
	var column = col.Unwrap()
	//
	if !p.Owns(column) {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	} else if kind := column.Kind(); kind == trace.SELECTOR_COLUMN || kind == trace.TABLE_COLUMN {
		return fmt.Errorf("cannot enable equality on %s column %s", kind, column)
	} else if !p.IsEqualityEnabled(column) {
		p.equality = append(p.equality, column)
	}
	//
	return nil
}

// IsEqualityEnabled checks whether a given column can participate in copy
// constraints.
func (p *ConstraintSystem[F]) IsEqualityEnabled(col AnyColumn) bool {
	var column = col.Unwrap()
	//
	for _, c := range p.equality {
		if c.system == column.system && c.ref == column.ref {
			return true
		}
	}
	//
	return false
}

// CreateGate registers a new named gate.  The given closure is passed a
// VirtualCells through which it queries columns, and returns the constraints
// making up the gate.  Registration fails if any queried column does not
// belong to this system, or if the gate is malformed.
func (p *ConstraintSystem[F]) CreateGate(name string, builder func(*VirtualCells[F]) []Constraint[F]) error {
	var (
		cells       = &VirtualCells[F]{owner: p.id}
		constraints = builder(cells)
	)
	//
	if len(cells.errors) > 0 {
		return &ConstructionError{"gate", name, errors.Join(cells.errors...)}
	}
	//
	gate, err := newGate(name, constraints)
	//
	if err != nil {
		return &ConstructionError{"gate", name, err}
	}
	//
	p.gates = append(p.gates, gate)
	//
	return nil
}

// Lookup registers a new named lookup argument.  The given closure is passed a
// VirtualCells through which it queries columns, and returns the list of
// (input, table column) pairs making up the lookup.
func (p *ConstraintSystem[F]) Lookup(name string, builder func(*VirtualCells[F]) []LookupInput[F]) error {
	var (
		cells = &VirtualCells[F]{owner: p.id}
		pairs = builder(cells)
	)
	//
	if len(cells.errors) > 0 {
		return &ConstructionError{"lookup", name, errors.Join(cells.errors...)}
	}
	//
	lookup, err := newLookup(p.id, name, pairs)
	//
	if err != nil {
		return &ConstructionError{"lookup", name, err}
	}
	//
	p.lookups = append(p.lookups, lookup)
	//
	return nil
}

// Owns checks whether a given column was allocated by this system.
func (p *ConstraintSystem[F]) Owns(col AnyColumn) bool {
	var column = col.Unwrap()
	//
	return column.system == p.id && column.Index() < p.widths.Of(column.Kind())
}

// Gates returns the registered gates, in order of registration.
func (p *ConstraintSystem[F]) Gates() []*Gate[F] {
	return p.gates
}

// Lookups returns the registered lookups, in order of registration.
func (p *ConstraintSystem[F]) Lookups() []*Lookup[F] {
	return p.lookups
}

// EqualityColumns returns the columns enabled for copy constraints, in order
// of enabling.
func (p *ConstraintSystem[F]) EqualityColumns() []Column {
	return p.equality
}

// Widths returns the number of columns allocated of each kind.
func (p *ConstraintSystem[F]) Widths() trace.Widths {
	return p.widths
}

// Count returns the number of columns allocated of a given kind.
func (p *ConstraintSystem[F]) Count(kind trace.ColumnKind) uint {
	return p.widths.Of(kind)
}

// Columns returns the columns allocated of a given kind, in order of
// allocation.
func (p *ConstraintSystem[F]) Columns(kind trace.ColumnKind) []Column {
	var columns = make([]Column, p.widths.Of(kind))
	//
	for i := range columns {
		columns[i] = Column{trace.NewColumnRef(kind, uint(i)), p.id, false}
		//
		if kind == trace.SELECTOR_COLUMN {
			columns[i].complex = p.complex[i]
		}
	}
	//
	return columns
}

// Degree returns the maximum degree of any gate constraint or lookup input in
// this system.
func (p *ConstraintSystem[F]) Degree() uint {
	var degree uint
	//
	for _, g := range p.gates {
		degree = max(degree, g.Degree())
	}
	//
	for _, l := range p.lookups {
		degree = max(degree, l.Degree())
	}
	//
	return degree
}

func (p *ConstraintSystem[F]) allocate(kind trace.ColumnKind) Column {
	var index = p.widths[kind.Index()]
	//
	p.widths[kind.Index()]++
	//
	return Column{trace.NewColumnRef(kind, index), p.id, false}
}
