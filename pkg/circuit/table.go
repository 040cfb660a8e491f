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
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Table is used to load the contents of one or more lookup table columns.
// Columns are assigned from the first row, and each column can be loaded
// exactly once.  Once loading is complete, every column loaded must have the
// same length, and the remaining rows of the domain are padded with the values
// of the first row.  Thus, padding never introduces a tuple which was not
// already present in the table.
type Table[F field.Element[F]] struct {
	name       string
	assignment *Assignment[F]
	// Columns loaded, in order of first assignment
	columns []plonk.TableColumn
	// Number of rows assigned in each column
	lengths []uint
}

// Name returns the name of this table.
func (p *Table[F]) Name() string {
	return p.name
}

// AssignCell assigns a value to a given row of a lookup table column.
func (p *Table[F]) AssignCell(annotation string, col plonk.TableColumn, offset uint, value Value[F]) error {
	var (
		assignment = p.assignment
		ref        = trace.NewCellRef(col.Ref(), offset)
		index      = p.indexOf(col)
	)
	//
	if !assignment.system.Owns(col) {
		return p.fail(annotation, offset, ref, plonk.ErrUnknownColumn)
	} else if col.Kind() != trace.TABLE_COLUMN {
		return p.fail(annotation, offset, ref, plonk.ErrUndeclaredTable)
	} else if index < 0 && assignment.loaded[col.Index()] {
		return p.fail(annotation, offset, ref, fmt.Errorf("%w: column %s already loaded", ErrMalformedTable, col))
	} else if index < 0 {
		assignment.loaded[col.Index()] = true
		index = len(p.columns)
		p.columns = append(p.columns, col)
		p.lengths = append(p.lengths, 0)
	}
	//
	if err := assignment.assign(col.Column, offset, value); err != nil {
		return p.fail(annotation, offset, ref, err)
	}
	//
	p.lengths[index] = max(p.lengths[index], offset+1)
	//
	return nil
}

// Checks every column has been fully assigned to the same length,
// and then pads the remaining rows of each column.
func (p *Table[F]) complete() error {
	var tbl = p.assignment.table
	//
	if len(p.columns) == 0 {
		return fmt.Errorf("%w: table \"%s\" loads no columns", ErrMalformedTable, p.name)
	}
	//
	for i, col := range p.columns {
		if p.lengths[i] != p.lengths[0] {
			return fmt.Errorf("%w: table \"%s\" has columns of differing lengths (%s has %d rows, %s has %d rows)",
				ErrMalformedTable, p.name, p.columns[0], p.lengths[0], col, p.lengths[i])
		} else if n := tbl.Assigned(col.Ref()); n != p.lengths[i] {
			return fmt.Errorf("%w: table \"%s\" column %s has %d unassigned rows", ErrMalformedTable, p.name, col,
				p.lengths[i]-n)
		}
	}
	// Pad out with the first row
	for _, col := range p.columns {
		tbl.Fill(col.Ref(), p.lengths[0], tbl.Value(col.Ref(), 0))
	}
	//
	return nil
}

func (p *Table[F]) indexOf(col plonk.TableColumn) int {
	for i, c := range p.columns {
		if c.Ref() == col.Ref() {
			return i
		}
	}
	//
	return -1
}

func (p *Table[F]) fail(annotation string, offset uint, ref trace.CellRef, err error) error {
	return &RegionError{p.name, annotation, offset, ref, err}
}
