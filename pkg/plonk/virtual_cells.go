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

// VirtualCells is passed to the closures used when creating gates and lookups,
// and provides the means for querying columns.  Every query made is recorded,
// along with any errors arising from queries of unknown columns.
type VirtualCells[F field.Element[F]] struct {
	owner  uint64
	errors []error
}

// QueryAdvice queries an advice column at a given rotation.
func (p *VirtualCells[F]) QueryAdvice(col Advice, rotation Rotation) Expression[F] {
	return p.QueryAny(col, rotation)
}

// QueryFixed queries a fixed column at a given rotation.
func (p *VirtualCells[F]) QueryFixed(col Fixed, rotation Rotation) Expression[F] {
	return p.QueryAny(col, rotation)
}

// QueryInstance queries an instance column at a given rotation.
func (p *VirtualCells[F]) QueryInstance(col Instance, rotation Rotation) Expression[F] {
	return p.QueryAny(col, rotation)
}

// QuerySelector queries a selector on the current row.
func (p *VirtualCells[F]) QuerySelector(sel Selector) Expression[F] {
	return p.QueryAny(sel, CUR)
}

// QueryAny queries an arbitrary column at a given rotation.  Selectors can
// only be queried on the current row, and lookup table columns cannot be
// queried at all.
func (p *VirtualCells[F]) QueryAny(col AnyColumn, rotation Rotation) Expression[F] {
	var column = col.Unwrap()
	//
	if column.system != p.owner {
		p.errors = append(p.errors, fmt.Errorf("%w: %s", ErrUnknownColumn, column))
	}
	//
	switch column.Kind() {
	case trace.SELECTOR_COLUMN:
		if rotation != CUR {
			p.errors = append(p.errors, fmt.Errorf("selector %s queried at rotation %s", column, rotation))
		}
		//
		return &SelectorQuery[F]{Selector{column}}
	case trace.TABLE_COLUMN:
		p.errors = append(p.errors, fmt.Errorf("table column %s cannot be queried", column))
	}
	//
	return &ColumnQuery[F]{Query{column, rotation}}
}
