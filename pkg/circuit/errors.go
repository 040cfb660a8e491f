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
	"errors"
	"fmt"

	"github.com/consensys/go-plonkish/pkg/trace"
)

var (
	// ErrSynthesis signals an unknown value being assigned during a synthesis
	// run where all witness values are expected to be known.
	ErrSynthesis = errors.New("synthesis failure")
	// ErrEqualityDisabled signals a copy constraint involving a column which
	// was not enabled for equality.
	ErrEqualityDisabled = errors.New("equality not enabled")
	// ErrMalformedTable signals a lookup table which could not be loaded, for
	// example because its columns have different lengths.
	ErrMalformedTable = errors.New("malformed table")
	// ErrTableNotLoaded signals a lookup targeting a table column which was
	// never loaded during synthesis.
	ErrTableNotLoaded = errors.New("table not loaded")
	// ErrNestedRegion signals a region (or table) being laid out whilst
	// another is still being assigned.
	ErrNestedRegion = errors.New("nested region")
)

// RegionError describes a failed cell assignment within a named region (or
// lookup table).  The underlying cause is accessible via errors.Is, such that
// (for example) assignment collisions can be identified.
type RegionError struct {
	// Name of enclosing region (or table)
	Region string
	// Annotation of cell being assigned
	Annotation string
	// Offset of cell within region
	Offset uint
	// Absolute cell being assigned
	Cell trace.CellRef
	// Underlying cause
	Err error
}

func (p *RegionError) Error() string {
	return fmt.Sprintf("region \"%s\", cell \"%s\" at %s (offset %d): %s", p.Region, p.Annotation, p.Cell,
		p.Offset, p.Err)
}

func (p *RegionError) Unwrap() error {
	return p.Err
}
