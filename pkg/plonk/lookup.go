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
	"strings"

	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// LookupInput pairs an input expression with the lookup table column it must
// be found in.
type LookupInput[F field.Element[F]] struct {
	Input Expression[F]
	Table TableColumn
}

// NewLookupInput constructs a new lookup input.
func NewLookupInput[F field.Element[F]](input Expression[F], table TableColumn) LookupInput[F] {
	return LookupInput[F]{input, table}
}

// Lookup is a named lookup argument, requiring that the tuple of input
// expressions evaluated on every row of the domain matches some row of the
// tuple of table columns.  Since lookups are checked on every row, the usual
// idiom is for inputs to be gated by a complex selector, as in
// q*a + (1-q)*d where d is a default value present in the table.
type Lookup[F field.Element[F]] struct {
	name   string
	inputs []Expression[F]
	tables []TableColumn
}

// Name returns the name of this lookup.
func (p *Lookup[F]) Name() string {
	return p.name
}

// Inputs returns the input expressions of this lookup.
func (p *Lookup[F]) Inputs() []Expression[F] {
	return p.inputs
}

// Tables returns the table columns targeted by this lookup.
func (p *Lookup[F]) Tables() []TableColumn {
	return p.tables
}

// Width returns the number of input / table column pairs in this lookup.
func (p *Lookup[F]) Width() uint {
	return uint(len(p.inputs))
}

// Degree returns the maximum degree of any input expression in this lookup.
func (p *Lookup[F]) Degree() uint {
	var degree uint
	//
	for _, input := range p.inputs {
		degree = max(degree, input.Degree())
	}
	//
	return degree
}

func (p *Lookup[F]) String() string {
	var (
		inputs = make([]string, len(p.inputs))
		tables = make([]string, len(p.tables))
	)
	//
	for i := range p.inputs {
		inputs[i] = p.inputs[i].String()
		tables[i] = p.tables[i].String()
	}
	//
	return fmt.Sprintf("(%s) in (%s)", strings.Join(inputs, ", "), strings.Join(tables, ", "))
}

func newLookup[F field.Element[F]](owner uint64, name string, pairs []LookupInput[F]) (*Lookup[F], error) {
	var lookup = &Lookup[F]{name: name}
	//
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no inputs", ErrMalformedLookup)
	}
	//
	for i, pair := range pairs {
		var table = pair.Table.Unwrap()
		//
		if table.Kind() != trace.TABLE_COLUMN {
			return nil, fmt.Errorf("%w: %s", ErrUndeclaredTable, table)
		} else if table.system != owner {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, table)
		} else if sel, ok := findSimpleSelector(pair.Input); ok {
			return nil, fmt.Errorf("%w: input %d uses simple selector %s", ErrMalformedLookup, i, sel)
		}
		//
		for _, t := range lookup.tables {
			if t.ref == table.ref {
				return nil, fmt.Errorf("%w: table column %s used twice", ErrMalformedLookup, table)
			}
		}
		//
		lookup.inputs = append(lookup.inputs, pair.Input)
		lookup.tables = append(lookup.tables, TableColumn{table})
	}
	//
	return lookup, nil
}
