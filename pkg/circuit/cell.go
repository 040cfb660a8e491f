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
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Cell identifies a cell which has been assigned within a given region.
type Cell struct {
	// Index of the region in which this cell was assigned
	Region uint
	// Column of this cell
	Column plonk.Column
	// Absolute row of this cell
	Row uint
}

// Ref returns the table cell identified by this cell.
func (p Cell) Ref() trace.CellRef {
	return trace.NewCellRef(p.Column.Ref(), p.Row)
}

func (p Cell) String() string {
	return p.Ref().String()
}

// AssignedCell is a cell which has been assigned a (possibly unknown) value.
// Assigned cells are returned from regions, such that they can be referred to
// in copy constraints.
type AssignedCell[F field.Element[F]] struct {
	cell  Cell
	value Value[F]
}

// Cell returns the cell which was assigned.
func (p AssignedCell[F]) Cell() Cell {
	return p.cell
}

// Value returns the value which was assigned.
func (p AssignedCell[F]) Value() Value[F] {
	return p.value
}

// CopyAdvice assigns the value of this cell to an advice cell in a given
// region, and constrains the two cells to be equal.
func (p AssignedCell[F]) CopyAdvice(annotation string, region *Region[F], col plonk.Advice,
	offset uint) (AssignedCell[F], error) {
	//
	cell, err := region.AssignAdvice(annotation, col, offset, p.value)
	//
	if err != nil {
		return cell, err
	}
	//
	return cell, region.ConstrainEqual(p.cell, cell.cell)
}
