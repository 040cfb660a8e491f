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
	"fmt"

	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Rotation is a signed row offset applied when querying a column.  Rotations
// are resolved cyclically over the domain, so querying rotation +1 on the last
// row reads the first row.
type Rotation int

const (
	// PREV queries the previous row.
	PREV Rotation = -1
	// CUR queries the current row.
	CUR Rotation = 0
	// NEXT queries the next row.
	NEXT Rotation = 1
)

// Apply resolves this rotation relative to a given row in a domain of n rows.
func (r Rotation) Apply(row uint, n uint) uint {
	m := (int64(row) + int64(r)) % int64(n)
	//
	if m < 0 {
		m += int64(n)
	}
	//
	return uint(m)
}

func (r Rotation) String() string {
	switch {
	case r == CUR:
		return "cur"
	case r > 0:
		return fmt.Sprintf("+%d", int(r))
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Query identifies a cell relative to the row on which an expression is being
// evaluated.
type Query struct {
	Column   Column
	Rotation Rotation
}

// Resolve determines the absolute cell this query reads when evaluated on a
// given row of a domain with n rows.
func (p Query) Resolve(row uint, n uint) (Column, uint) {
	return p.Column, p.Rotation.Apply(row, n)
}

// Resolver provides read access to the cells of a witness table, as required
// for evaluating expressions.  This is implemented by trace.Table.
type Resolver[F field.Element[F]] interface {
	// Rows returns the number of rows in the domain.
	Rows() uint
	// Value returns the value held in a given cell, where unassigned cells
	// are treated as zero.
	Value(col trace.ColumnRef, row uint) F
	// Selected determines whether a selector is enabled on a given row.
	Selected(sel trace.ColumnRef, row uint) bool
}
