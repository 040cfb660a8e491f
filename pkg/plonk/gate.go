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

	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Constraint is a single named polynomial identity within a gate, which must
// evaluate to zero on every row.
type Constraint[F field.Element[F]] struct {
	Name string
	Poly Expression[F]
}

// NewConstraint constructs a named constraint.
func NewConstraint[F field.Element[F]](name string, poly Expression[F]) Constraint[F] {
	return Constraint[F]{name, poly}
}

// Gate is a named group of polynomial constraints.
type Gate[F field.Element[F]] struct {
	name        string
	constraints []Constraint[F]
	// Selectors used by this gate
	selectors []Selector
	// Cells queried by this gate (excluding selectors)
	queries []Query
}

// Name returns the name of this gate.
func (p *Gate[F]) Name() string {
	return p.name
}

// Constraints returns the constraints making up this gate, in order of
// construction.
func (p *Gate[F]) Constraints() []Constraint[F] {
	return p.constraints
}

// Selectors returns the selectors queried by this gate.
func (p *Gate[F]) Selectors() []Selector {
	return p.selectors
}

// Queries returns the cells queried by this gate (excluding selectors).
func (p *Gate[F]) Queries() []Query {
	return p.queries
}

// Degree returns the maximum degree of any constraint in this gate.
func (p *Gate[F]) Degree() uint {
	var degree uint
	//
	for _, c := range p.constraints {
		degree = max(degree, c.Poly.Degree())
	}
	//
	return degree
}

func newGate[F field.Element[F]](name string, constraints []Constraint[F]) (*Gate[F], error) {
	var gate = &Gate[F]{name: name, constraints: constraints}
	//
	if len(constraints) == 0 {
		return nil, fmt.Errorf("%w: no constraints", ErrMalformedGate)
	}
	//
	for _, c := range constraints {
		if err := checkSimpleSelectors(c.Poly); err != nil {
			return nil, fmt.Errorf("%w: constraint \"%s\" %s", ErrMalformedGate, c.Name, err)
		}
		//
		for _, s := range Selectors(c.Poly) {
			if !containsSelector(gate.selectors, s) {
				gate.selectors = append(gate.selectors, s)
			}
		}
		//
		for _, q := range Queries(c.Poly) {
			if !containsQuery(gate.queries, q) {
				gate.queries = append(gate.queries, q)
			}
		}
	}
	//
	return gate, nil
}

// checkSimpleSelectors ensures simple selectors appear only as factors of the
// outermost product of a constraint.  Hence, q * (a - 1) is permitted, but
// q * a + b and (q * a) + (q * b) are not.
func checkSimpleSelectors[F field.Element[F]](expr Expression[F]) error {
	for _, factor := range factors(expr) {
		if _, ok := factor.(*SelectorQuery[F]); ok {
			continue
		} else if sel, ok := findSimpleSelector(factor); ok {
			return fmt.Errorf("uses simple selector %s other than as a multiplicative factor", sel)
		}
	}
	//
	return nil
}

// factors returns the multiplicative factors of an expression.  Negation and
// scaling do not affect which terms are factors.
func factors[F field.Element[F]](expr Expression[F]) []Expression[F] {
	switch e := expr.(type) {
	case *Negated[F]:
		return factors(e.Arg)
	case *Scaled[F]:
		return factors(e.Arg)
	case *Product[F]:
		var fs []Expression[F]
		//
		for _, arg := range e.Args {
			fs = append(fs, factors(arg)...)
		}
		//
		return fs
	default:
		return []Expression[F]{expr}
	}
}

func findSimpleSelector[F field.Element[F]](expr Expression[F]) (Selector, bool) {
	for _, sel := range Selectors(expr) {
		if sel.IsSimple() {
			return sel, true
		}
	}
	//
	return Selector{}, false
}
