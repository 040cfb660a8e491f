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
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/collection/set"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Region is a contiguous block of rows in which cells are assigned using
// offsets relative to the start of the region.  The layouter determines where
// a region is placed, and its height is determined by the largest offset
// assigned.
type Region[F field.Element[F]] struct {
	index      uint
	info       *RegionInfo
	assignment *Assignment[F]
}

func newRegion[F field.Element[F]](index uint, name string, start uint, assignment *Assignment[F]) *Region[F] {
	var info = &RegionInfo{
		Name:    name,
		Start:   start,
		Cells:   set.NewSortedSet[trace.CellRef](),
		Enabled: set.NewSortedSet[trace.CellRef](),
	}
	//
	return &Region[F]{index, info, assignment}
}

// Name returns the name of this region.
func (p *Region[F]) Name() string {
	return p.info.Name
}

// Start returns the first row of this region.
func (p *Region[F]) Start() uint {
	return p.info.Start
}

// AssignAdvice assigns a value to an advice cell at a given offset within this
// region.
func (p *Region[F]) AssignAdvice(annotation string, col plonk.Advice, offset uint,
	value Value[F]) (AssignedCell[F], error) {
	return p.assign(annotation, col.Column, offset, value)
}

// AssignFixed assigns a value to a fixed cell at a given offset within this
// region.
func (p *Region[F]) AssignFixed(annotation string, col plonk.Fixed, offset uint,
	value Value[F]) (AssignedCell[F], error) {
	return p.assign(annotation, col.Column, offset, value)
}

// AssignAdviceFromInstance copies a public input into an advice cell at a
// given offset within this region, and constrains the two to be equal.
func (p *Region[F]) AssignAdviceFromInstance(annotation string, instance plonk.Instance, row uint, col plonk.Advice,
	offset uint) (AssignedCell[F], error) {
	var (
		value = Unknown[F]()
		src   = Cell{p.index, instance.Column, row}
	)
	//
	if val, ok := p.assignment.table.Get(instance.Ref(), row); ok {
		value = Known(val)
	}
	//
	cell, err := p.AssignAdvice(annotation, col, offset, value)
	//
	if err != nil {
		return cell, err
	}
	//
	return cell, p.ConstrainEqual(src, cell.cell)
}

// EnableSelector enables a selector at a given offset within this region.
func (p *Region[F]) EnableSelector(annotation string, sel plonk.Selector, offset uint) error {
	var (
		row = p.info.Start + offset
		ref = trace.NewCellRef(sel.Ref(), row)
	)
	//
	if !p.assignment.system.Owns(sel) {
		return p.fail(annotation, offset, ref, plonk.ErrUnknownColumn)
	} else if err := p.assignment.table.Enable(sel.Ref(), row); err != nil {
		return p.fail(annotation, offset, ref, err)
	}
	//
	p.info.Enabled.Insert(ref)
	p.info.Rows = max(p.info.Rows, offset+1)
	//
	return nil
}

// ConstrainEqual constrains two assigned cells to hold the same value.  Both
// cells must be in equality-enabled columns.
func (p *Region[F]) ConstrainEqual(left Cell, right Cell) error {
	if err := p.assignment.copy(left, right); err != nil {
		return &RegionError{p.info.Name, "copy", right.Row - min(right.Row, p.info.Start), right.Ref(), err}
	}
	//
	return nil
}

func (p *Region[F]) assign(annotation string, col plonk.Column, offset uint,
	value Value[F]) (AssignedCell[F], error) {
	var (
		row  = p.info.Start + offset
		cell = Cell{p.index, col, row}
	)
	//
	if err := p.assignment.assign(col, row, value); err != nil {
		return AssignedCell[F]{cell, value}, p.fail(annotation, offset, cell.Ref(), err)
	}
	//
	p.info.Cells.Insert(cell.Ref())
	p.info.Rows = max(p.info.Rows, offset+1)
	//
	return AssignedCell[F]{cell, value}, nil
}

func (p *Region[F]) fail(annotation string, offset uint, ref trace.CellRef, err error) error {
	return &RegionError{p.info.Name, annotation, offset, ref, err}
}
