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
	"fmt"
	"slices"

	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/collection/set"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Window is a view onto those parts of the witness table relevant to a given
// failure.  It includes every column read by the failing item, and every row
// on which those columns were read, plus some amount of padding either side
// for context.
type Window struct {
	// Absolute rows shown, in ascending order
	rows []uint
	// Columns shown, in ascending order
	columns []trace.ColumnRef
	// Contents of each cell, indexed by column then row
	cells [][]string
	// Cells read by the failing item
	highlighted *set.SortedSet[trace.CellRef]
}

// NewWindow constructs a window onto the witness table of a given prover for a
// given failure, including the given number of rows of padding around each
// row of interest.
func NewWindow[F field.Element[F]](prover *Prover[F], failure Failure, padding uint) *Window {
	var (
		tbl     = prover.Assignment().Table()
		n       = tbl.Rows()
		cells   = failure.RequiredCells(n)
		rows    []uint
		columns []trace.ColumnRef
	)
	//
	for _, c := range cells.ToArray() {
		if !slices.Contains(columns, c.Column) {
			columns = append(columns, c.Column)
		}
		//
		for r := c.Row - min(c.Row, padding); r <= min(n-1, c.Row+padding); r++ {
			if !slices.Contains(rows, r) {
				rows = append(rows, r)
			}
		}
	}
	//
	slices.Sort(rows)
	slices.SortFunc(columns, func(l, r trace.ColumnRef) int { return l.Cmp(r) })
	// Extract cell contents
	contents := make([][]string, len(columns))
	//
	for i, col := range columns {
		contents[i] = make([]string, len(rows))
		//
		for j, row := range rows {
			contents[i][j] = cellText(tbl, col, row)
		}
	}
	//
	return &Window{rows, columns, contents, cells}
}

// Height returns the number of rows in this window.
func (p *Window) Height() uint {
	return uint(len(p.rows))
}

// Width returns the number of columns in this window.
func (p *Window) Width() uint {
	return uint(len(p.columns))
}

// Row returns the title of a given row.
func (p *Window) Row(row uint) string {
	return fmt.Sprintf("%d", p.rows[row])
}

// Column returns the title of a given column.
func (p *Window) Column(col uint) string {
	return p.columns[col].String()
}

// CellAt returns the contents of a given cell in this window.
func (p *Window) CellAt(col uint, row uint) string {
	return p.cells[col][row]
}

// Highlighted determines whether a given cell was read by the failing item.
func (p *Window) Highlighted(col uint, row uint) bool {
	return p.highlighted.Contains(trace.NewCellRef(p.columns[col], p.rows[row]))
}

func cellText[F field.Element[F]](tbl *trace.Table[F], col trace.ColumnRef, row uint) string {
	if col.Kind() == trace.SELECTOR_COLUMN {
		if tbl.Selected(col, row) {
			return "1"
		}
		//
		return "0"
	} else if val, ok := tbl.Get(col, row); ok {
		return fmt.Sprintf("0x%s", val.Text(16))
	} else if tbl.IsAssigned(col, row) {
		return "?"
	}
	//
	return "-"
}
