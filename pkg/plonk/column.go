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
	"github.com/consensys/go-plonkish/pkg/trace"
)

// AnyColumn captures any kind of column handle, whether typed (e.g. Advice)
// or untyped.
type AnyColumn interface {
	// Unwrap returns the untyped column underlying this handle.
	Unwrap() Column
}

// Column is an untyped handle for a column allocated within a given
// constraint system.  Columns are identified by their kind and index, and
// remember which system allocated them so that handles from one system cannot
// be used to construct constraints in another.
type Column struct {
	ref trace.ColumnRef
	// Identifies the system which allocated this column.
	system uint64
	// Indicates a complex selector.  This is only meaningful for selector
	// columns.
	complex bool
}

// Unwrap implementation for the AnyColumn interface.
func (p Column) Unwrap() Column {
	return p
}

// Ref returns the table column this handle refers to.
func (p Column) Ref() trace.ColumnRef {
	return p.ref
}

// Kind returns the kind of this column.
func (p Column) Kind() trace.ColumnKind {
	return p.ref.Kind()
}

// Index returns the index of this column amongst those of the same kind.
func (p Column) Index() uint {
	return p.ref.Index()
}

func (p Column) String() string {
	return p.ref.String()
}

// Advice is a column holding private witness values.
type Advice struct{ Column }

// Fixed is a column holding circuit constants.
type Fixed struct{ Column }

// Instance is a column holding public inputs.
type Instance struct{ Column }

// TableColumn is a column of a precomputed lookup table.
type TableColumn struct{ Column }

// Selector is a boolean column used to switch gates on and off.  A simple
// selector may only appear as a multiplicative factor of an entire gate
// constraint, whilst a complex selector may appear anywhere (including within
// lookup inputs).
type Selector struct{ Column }

// IsSimple determines whether or not this is a simple selector.
func (p Selector) IsSimple() bool {
	return !p.complex
}
