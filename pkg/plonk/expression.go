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

	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Expression represents a multivariate polynomial over column queries.  An
// expression is evaluated relative to a given row, with each query resolved
// by applying its rotation (modulo the domain size) to that row.
type Expression[F field.Element[F]] interface {
	fmt.Stringer
	// EvalAt evaluates this expression on a given row of a witness table.
	// Unassigned cells are read as zero.
	EvalAt(row uint, tbl Resolver[F]) F
	// Degree returns the polynomial degree of this expression, where every
	// column query (including selectors) has degree one.
	Degree() uint
}

// Const constructs an expression representing a constant field element.
func Const[F field.Element[F]](value F) Expression[F] {
	return &Constant[F]{value}
}

// Const64 constructs an expression representing a given unsigned integer
// constant.
func Const64[F field.Element[F]](value uint64) Expression[F] {
	return &Constant[F]{field.Uint64[F](value)}
}

// Add sums zero or more expressions together.  Nested sums are flattened.
func Add[F field.Element[F]](terms ...Expression[F]) Expression[F] {
	terms = flatten(terms, func(e Expression[F]) []Expression[F] {
		if s, ok := e.(*Sum[F]); ok {
			return s.Args
		}
		//
		return nil
	})
	//
	switch len(terms) {
	case 0:
		return Const64[F](0)
	case 1:
		return terms[0]
	default:
		return &Sum[F]{terms}
	}
}

// Sub subtracts zero or more expressions from a given expression.
func Sub[F field.Element[F]](lhs Expression[F], terms ...Expression[F]) Expression[F] {
	var args = []Expression[F]{lhs}
	//
	for _, t := range terms {
		args = append(args, Neg(t))
	}
	//
	return Add(args...)
}

// Mul multiplies zero or more expressions together.  Nested products are
// flattened.
func Mul[F field.Element[F]](terms ...Expression[F]) Expression[F] {
	terms = flatten(terms, func(e Expression[F]) []Expression[F] {
		if s, ok := e.(*Product[F]); ok {
			return s.Args
		}
		//
		return nil
	})
	//
	switch len(terms) {
	case 0:
		return Const64[F](1)
	case 1:
		return terms[0]
	default:
		return &Product[F]{terms}
	}
}

// Neg negates a given expression.
func Neg[F field.Element[F]](arg Expression[F]) Expression[F] {
	return &Negated[F]{arg}
}

// Scale multiplies a given expression by a constant factor.
func Scale[F field.Element[F]](arg Expression[F], factor F) Expression[F] {
	return &Scaled[F]{arg, factor}
}

// ============================================================================
// Constant
// ============================================================================

// Constant represents a constant field element.
type Constant[F field.Element[F]] struct{ Value F }

// EvalAt implementation for Expression interface.
func (p *Constant[F]) EvalAt(row uint, tbl Resolver[F]) F {
	return p.Value
}

// Degree implementation for Expression interface.
func (p *Constant[F]) Degree() uint {
	return 0
}

func (p *Constant[F]) String() string {
	return p.Value.String()
}

// ============================================================================
// Column Query
// ============================================================================

// ColumnQuery represents a query of an advice, fixed or instance column at a
// given rotation.
type ColumnQuery[F field.Element[F]] struct{ Query Query }

// EvalAt implementation for Expression interface.
func (p *ColumnQuery[F]) EvalAt(row uint, tbl Resolver[F]) F {
	col, r := p.Query.Resolve(row, tbl.Rows())
	//
	return tbl.Value(col.Ref(), r)
}

// Degree implementation for Expression interface.
func (p *ColumnQuery[F]) Degree() uint {
	return 1
}

func (p *ColumnQuery[F]) String() string {
	if p.Query.Rotation == CUR {
		return p.Query.Column.String()
	}
	//
	return fmt.Sprintf("%s(%s)", p.Query.Column, p.Query.Rotation)
}

// ============================================================================
// Selector Query
// ============================================================================

// SelectorQuery represents a query of a selector on the current row.  This
// evaluates to one where the selector is enabled, and zero otherwise.
type SelectorQuery[F field.Element[F]] struct{ Selector Selector }

// EvalAt implementation for Expression interface.
func (p *SelectorQuery[F]) EvalAt(row uint, tbl Resolver[F]) F {
	var val F
	//
	if tbl.Selected(p.Selector.Ref(), row) {
		return val.SetUint64(1)
	}
	//
	return val
}

// Degree implementation for Expression interface.
func (p *SelectorQuery[F]) Degree() uint {
	return 1
}

func (p *SelectorQuery[F]) String() string {
	return p.Selector.String()
}

// ============================================================================
// Negation
// ============================================================================

// Negated represents the negation of an expression.
type Negated[F field.Element[F]] struct{ Arg Expression[F] }

// EvalAt implementation for Expression interface.
func (p *Negated[F]) EvalAt(row uint, tbl Resolver[F]) F {
	return field.Neg(p.Arg.EvalAt(row, tbl))
}

// Degree implementation for Expression interface.
func (p *Negated[F]) Degree() uint {
	return p.Arg.Degree()
}

func (p *Negated[F]) String() string {
	return fmt.Sprintf("-%s", bracket(p.Arg))
}

// ============================================================================
// Sum
// ============================================================================

// Sum represents the addition of two or more expressions.
type Sum[F field.Element[F]] struct{ Args []Expression[F] }

// EvalAt implementation for Expression interface.
func (p *Sum[F]) EvalAt(row uint, tbl Resolver[F]) F {
	var val F
	//
	for _, arg := range p.Args {
		val = val.Add(arg.EvalAt(row, tbl))
	}
	//
	return val
}

// Degree implementation for Expression interface.
func (p *Sum[F]) Degree() uint {
	var degree uint
	//
	for _, arg := range p.Args {
		degree = max(degree, arg.Degree())
	}
	//
	return degree
}

func (p *Sum[F]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, arg := range p.Args {
		if neg, ok := arg.(*Negated[F]); ok && i != 0 {
			builder.WriteString(" - ")
			builder.WriteString(bracket(neg.Arg))
		} else {
			if i != 0 {
				builder.WriteString(" + ")
			}
			//
			builder.WriteString(arg.String())
		}
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Product
// ============================================================================

// Product represents the multiplication of two or more expressions.  An empty
// product evaluates to one.
type Product[F field.Element[F]] struct{ Args []Expression[F] }

// EvalAt implementation for Expression interface.
func (p *Product[F]) EvalAt(row uint, tbl Resolver[F]) F {
	if len(p.Args) == 0 {
		return field.One[F]()
	}
	//
	var val = p.Args[0].EvalAt(row, tbl)
	//
	for i := 1; i < len(p.Args); i++ {
		// Short circuit when possible
		if val.IsZero() {
			return val
		}
		//
		val = val.Mul(p.Args[i].EvalAt(row, tbl))
	}
	//
	return val
}

// Degree implementation for Expression interface.
func (p *Product[F]) Degree() uint {
	var degree uint
	//
	for _, arg := range p.Args {
		degree += arg.Degree()
	}
	//
	return degree
}

func (p *Product[F]) String() string {
	if len(p.Args) == 0 {
		return "1"
	}
	//
	var args = make([]string, len(p.Args))
	//
	for i, arg := range p.Args {
		args[i] = bracket(arg)
	}
	//
	return strings.Join(args, " * ")
}

// ============================================================================
// Scaled
// ============================================================================

// Scaled represents an expression multiplied by a constant factor.
type Scaled[F field.Element[F]] struct {
	Arg    Expression[F]
	Factor F
}

// EvalAt implementation for Expression interface.
func (p *Scaled[F]) EvalAt(row uint, tbl Resolver[F]) F {
	return p.Arg.EvalAt(row, tbl).Mul(p.Factor)
}

// Degree implementation for Expression interface.
func (p *Scaled[F]) Degree() uint {
	return p.Arg.Degree()
}

func (p *Scaled[F]) String() string {
	return fmt.Sprintf("%s * %s", bracket(p.Arg), p.Factor)
}

// ============================================================================
// Helpers
// ============================================================================

// Queries returns the column queries (excluding selectors) made by a given
// expression, in order of first occurrence and without duplicates.
func Queries[F field.Element[F]](expr Expression[F]) []Query {
	var queries []Query
	//
	walk(expr, func(e Expression[F]) {
		if q, ok := e.(*ColumnQuery[F]); ok && !containsQuery(queries, q.Query) {
			queries = append(queries, q.Query)
		}
	})
	//
	return queries
}

// Selectors returns the selectors queried by a given expression, in order of
// first occurrence and without duplicates.
func Selectors[F field.Element[F]](expr Expression[F]) []Selector {
	var selectors []Selector
	//
	walk(expr, func(e Expression[F]) {
		if q, ok := e.(*SelectorQuery[F]); ok && !containsSelector(selectors, q.Selector) {
			selectors = append(selectors, q.Selector)
		}
	})
	//
	return selectors
}

// walk visits every node of an expression in depth-first order.
func walk[F field.Element[F]](expr Expression[F], visit func(Expression[F])) {
	visit(expr)
	//
	switch e := expr.(type) {
	case *Negated[F]:
		walk(e.Arg, visit)
	case *Scaled[F]:
		walk(e.Arg, visit)
	case *Sum[F]:
		for _, arg := range e.Args {
			walk(arg, visit)
		}
	case *Product[F]:
		for _, arg := range e.Args {
			walk(arg, visit)
		}
	}
}

func flatten[F field.Element[F]](terms []Expression[F], nested func(Expression[F]) []Expression[F],
) []Expression[F] {
	var flat []Expression[F]
	//
	for _, t := range terms {
		if args := nested(t); args != nil {
			flat = append(flat, args...)
		} else {
			flat = append(flat, t)
		}
	}
	//
	return flat
}

func bracket[F field.Element[F]](expr Expression[F]) string {
	switch expr.(type) {
	case *Product[F], *Scaled[F]:
		return fmt.Sprintf("(%s)", expr)
	default:
		return expr.String()
	}
}

func containsQuery(queries []Query, query Query) bool {
	for _, q := range queries {
		if q.Column.ref == query.Column.ref && q.Rotation == query.Rotation {
			return true
		}
	}
	//
	return false
}

func containsSelector(selectors []Selector, sel Selector) bool {
	for _, s := range selectors {
		if s.ref == sel.ref {
			return true
		}
	}
	//
	return false
}
