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
	"cmp"
	"fmt"
)

// ColumnRef abstracts a complete (i.e. global) column identifier.
type ColumnRef struct {
	// Kind of column
	kind ColumnKind
	// Column index within that kind
	index uint
}

// NewColumnRef constructs a new column reference from the given kind and
// index.
func NewColumnRef(kind ColumnKind, index uint) ColumnRef {
	return ColumnRef{kind, index}
}

// Kind returns the kind of column referred to.
func (p ColumnRef) Kind() ColumnKind {
	return p.kind
}

// Index returns the index of the column referred to, amongst columns of the
// same kind.
func (p ColumnRef) Index() uint {
	return p.index
}

// Cmp implementation for ordering column references.  Columns are ordered
// first by kind, and then by index.
func (p ColumnRef) Cmp(q ColumnRef) int {
	var c = cmp.Compare(p.kind.kind, q.kind.kind)
	//
	if c == 0 {
		c = cmp.Compare(p.index, q.index)
	}
	//
	return c
}

func (p ColumnRef) String() string {
	return fmt.Sprintf("%s[%d]", p.kind, p.index)
}

// ============================================================================

// CellRef identifies a unique cell within a given table.
type CellRef struct {
	// Column index for the cell
	Column ColumnRef
	// Row index for the cell
	Row uint
}

// NewCellRef constructs a new cell reference.
func NewCellRef(column ColumnRef, row uint) CellRef {
	return CellRef{column, row}
}

// Cmp implementation for ordering cell references.
func (p CellRef) Cmp(q CellRef) int {
	var c = p.Column.Cmp(q.Column)
	//
	if c == 0 {
		c = cmp.Compare(p.Row, q.Row)
	}
	//
	return c
}

func (p CellRef) String() string {
	return fmt.Sprintf("%s@%d", p.Column, p.Row)
}
