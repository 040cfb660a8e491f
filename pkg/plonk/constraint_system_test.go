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
package plonk_test

import (
	"errors"
	"testing"

	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field/bn254"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type F = bn254.Element

func Test_Rotation_01(t *testing.T) {
	assert.Equal(t, uint(3), plonk.CUR.Apply(3, 8))
	assert.Equal(t, uint(4), plonk.NEXT.Apply(3, 8))
	assert.Equal(t, uint(2), plonk.PREV.Apply(3, 8))
}

func Test_Rotation_02(t *testing.T) {
	assert.Equal(t, uint(0), plonk.NEXT.Apply(7, 8))
	assert.Equal(t, uint(7), plonk.PREV.Apply(0, 8))
	assert.Equal(t, uint(1), plonk.Rotation(17).Apply(0, 8))
	assert.Equal(t, uint(6), plonk.Rotation(-10).Apply(0, 8))
}

func Test_Columns_01(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		b  = cs.AdviceColumn()
		f  = cs.FixedColumn()
		i  = cs.InstanceColumn()
		q  = cs.Selector()
		s  = cs.ComplexSelector()
		tc = cs.LookupTableColumn()
	)
	//
	assert.Equal(t, uint(2), cs.Count(trace.ADVICE_COLUMN))
	assert.Equal(t, uint(1), cs.Count(trace.FIXED_COLUMN))
	assert.Equal(t, uint(1), cs.Count(trace.INSTANCE_COLUMN))
	assert.Equal(t, uint(2), cs.Count(trace.SELECTOR_COLUMN))
	assert.Equal(t, uint(1), cs.Count(trace.TABLE_COLUMN))
	assert.Equal(t, uint(7), cs.Widths().Total())
	//
	assert.Equal(t, uint(0), a.Index())
	assert.Equal(t, uint(1), b.Index())
	assert.Equal(t, "advice[1]", b.String())
	assert.Equal(t, trace.FIXED_COLUMN, f.Kind())
	assert.Equal(t, trace.INSTANCE_COLUMN, i.Kind())
	assert.Equal(t, trace.TABLE_COLUMN, tc.Kind())
	assert.True(t, q.IsSimple())
	assert.False(t, s.IsSimple())
	// Selector flags are preserved
	sels := cs.Columns(trace.SELECTOR_COLUMN)
	assert.Equal(t, []plonk.Column{q.Column, s.Column}, sels)
	//
	assert.True(t, cs.Owns(a))
	assert.False(t, plonk.NewConstraintSystem[F]().Owns(a))
}

func Test_Equality_01(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		i  = cs.InstanceColumn()
		q  = cs.Selector()
	)
	//
	require.NoError(t, cs.EnableEquality(a))
	require.NoError(t, cs.EnableEquality(i))
	require.NoError(t, cs.EnableEquality(a))
	assert.Len(t, cs.EqualityColumns(), 2)
	assert.True(t, cs.IsEqualityEnabled(a))
	assert.Error(t, cs.EnableEquality(q))
	//
	other := plonk.NewConstraintSystem[F]().AdviceColumn()
	assert.ErrorIs(t, cs.EnableEquality(other), plonk.ErrUnknownColumn)
}

func Test_Expression_01(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		q  = cs.Selector()
	)
	//
	err := cs.CreateGate("a is one", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		e := plonk.Mul(vc.QuerySelector(q), plonk.Sub(vc.QueryAdvice(a, plonk.CUR), plonk.Const64[F](1)))
		return []plonk.Constraint[F]{plonk.NewConstraint("check a", e)}
	})
	//
	require.NoError(t, err)
	require.Len(t, cs.Gates(), 1)
	//
	gate := cs.Gates()[0]
	poly := gate.Constraints()[0].Poly
	//
	assert.Equal(t, "a is one", gate.Name())
	assert.Equal(t, "selector[0] * (advice[0] - 1)", poly.String())
	assert.Equal(t, uint(2), poly.Degree())
	assert.Equal(t, uint(2), cs.Degree())
	assert.Equal(t, []plonk.Selector{q}, gate.Selectors())
	assert.Equal(t, []plonk.Query{{Column: a.Column, Rotation: plonk.CUR}}, gate.Queries())
	// Evaluate against a table
	tbl := trace.NewTable[F](3, cs.Widths())
	require.NoError(t, tbl.Set(a.Ref(), 0, bn254.New(1)))
	require.NoError(t, tbl.Set(a.Ref(), 1, bn254.New(2)))
	require.NoError(t, tbl.Enable(q.Ref(), 0))
	require.NoError(t, tbl.Enable(q.Ref(), 1))
	//
	assert.True(t, poly.EvalAt(0, tbl).IsZero())
	assert.True(t, poly.EvalAt(1, tbl).IsOne())
	// Selector disabled
	assert.True(t, poly.EvalAt(2, tbl).IsZero())
}

func Test_Expression_02(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		e  plonk.Expression[F]
	)
	//
	err := cs.CreateGate("next", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		e = plonk.Sub(vc.QueryAdvice(a, plonk.NEXT), vc.QueryAdvice(a, plonk.CUR))
		return []plonk.Constraint[F]{plonk.NewConstraint("next", e)}
	})
	require.NoError(t, err)
	//
	tbl := trace.NewTable[F](2, cs.Widths())
	//
	for row := uint(0); row < 4; row++ {
		require.NoError(t, tbl.Set(a.Ref(), row, bn254.New(uint64(10+row))))
	}
	//
	assert.True(t, e.EvalAt(0, tbl).IsOne())
	// Last row wraps around to read row 0: 10 - 13
	assert.Equal(t, bn254.New(0).Sub(bn254.New(3)), e.EvalAt(3, tbl))
	assert.Equal(t, "(advice[0](+1) - advice[0])", e.String())
}

func Test_Expression_03(t *testing.T) {
	var (
		two   = bn254.New(2)
		three = plonk.Const64[F](3)
		tbl   = trace.NewTable[F](1, trace.Widths{})
	)
	//
	assert.Equal(t, bn254.New(6), plonk.Scale(three, two).EvalAt(0, tbl))
	assert.Equal(t, bn254.New(0).Sub(bn254.New(3)), plonk.Neg(three).EvalAt(0, tbl))
	assert.Equal(t, bn254.New(9), plonk.Mul(three, three).EvalAt(0, tbl))
	assert.Equal(t, bn254.New(0), plonk.Add[F]().EvalAt(0, tbl))
	assert.Equal(t, bn254.New(1), plonk.Mul[F]().EvalAt(0, tbl))
	assert.Equal(t, uint(0), plonk.Mul(three, three).Degree())
}

func Test_Expression_04(t *testing.T) {
	var (
		empty = &plonk.Product[F]{}
		tbl   = trace.NewTable[F](1, trace.Widths{})
	)
	// Products constructed directly may be empty
	assert.Equal(t, bn254.New(1), empty.EvalAt(0, tbl))
	assert.Equal(t, uint(0), empty.Degree())
	assert.Equal(t, "1", empty.String())
}

func Test_Gate_Invalid_01(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		b  = cs.AdviceColumn()
		q  = cs.Selector()
	)
	// Simple selector appears within a sum
	err := cs.CreateGate("bad", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		e := plonk.Add(plonk.Mul(vc.QuerySelector(q), vc.QueryAdvice(a, plonk.CUR)), vc.QueryAdvice(b, plonk.CUR))
		return []plonk.Constraint[F]{plonk.NewConstraint("bad", e)}
	})
	//
	assert.ErrorIs(t, err, plonk.ErrMalformedGate)
	assert.Empty(t, cs.Gates())
}

func Test_Gate_Invalid_02(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		q  = cs.ComplexSelector()
	)
	// Complex selectors can appear anywhere
	err := cs.CreateGate("ok", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		e := plonk.Add(vc.QuerySelector(q), vc.QueryAdvice(a, plonk.CUR))
		return []plonk.Constraint[F]{plonk.NewConstraint("ok", e)}
	})
	assert.NoError(t, err)
	// But gates need constraints
	err = cs.CreateGate("empty", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		return nil
	})
	assert.ErrorIs(t, err, plonk.ErrMalformedGate)
}

func Test_Gate_Invalid_03(t *testing.T) {
	var (
		cs    = plonk.NewConstraintSystem[F]()
		other = plonk.NewConstraintSystem[F]().AdviceColumn()
		q     = cs.Selector()
	)
	//
	err := cs.CreateGate("foreign", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		e := plonk.Mul(vc.QuerySelector(q), vc.QueryAdvice(other, plonk.CUR))
		return []plonk.Constraint[F]{plonk.NewConstraint("foreign", e)}
	})
	//
	assert.ErrorIs(t, err, plonk.ErrUnknownColumn)
	//
	var cerr *plonk.ConstructionError
	//
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "gate", cerr.Kind)
	assert.Equal(t, "foreign", cerr.Name)
}

func Test_Lookup_01(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		q  = cs.ComplexSelector()
		tc = cs.LookupTableColumn()
	)
	//
	err := cs.Lookup("range", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
		return []plonk.LookupInput[F]{
			plonk.NewLookupInput(plonk.Mul(vc.QuerySelector(q), vc.QueryAdvice(a, plonk.CUR)), tc),
		}
	})
	//
	require.NoError(t, err)
	require.Len(t, cs.Lookups(), 1)
	assert.Equal(t, uint(1), cs.Lookups()[0].Width())
	assert.Equal(t, "(selector[0] * advice[0]) in (table[0])", cs.Lookups()[0].String())
}

func Test_Lookup_Invalid_01(t *testing.T) {
	var (
		cs = plonk.NewConstraintSystem[F]()
		a  = cs.AdviceColumn()
		q  = cs.Selector()
		tc = cs.LookupTableColumn()
	)
	// Simple selectors are not permitted in lookups
	err := cs.Lookup("simple", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
		return []plonk.LookupInput[F]{
			plonk.NewLookupInput(plonk.Mul(vc.QuerySelector(q), vc.QueryAdvice(a, plonk.CUR)), tc),
		}
	})
	assert.ErrorIs(t, err, plonk.ErrMalformedLookup)
	// Target must be a table column
	err = cs.Lookup("advice", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
		return []plonk.LookupInput[F]{
			plonk.NewLookupInput(vc.QueryAdvice(a, plonk.CUR), plonk.TableColumn{Column: a.Column}),
		}
	})
	assert.ErrorIs(t, err, plonk.ErrUndeclaredTable)
	// Target must belong to this system
	err = cs.Lookup("foreign", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
		return []plonk.LookupInput[F]{
			plonk.NewLookupInput(vc.QueryAdvice(a, plonk.CUR), plonk.NewConstraintSystem[F]().LookupTableColumn()),
		}
	})
	assert.ErrorIs(t, err, plonk.ErrUnknownColumn)
	//
	assert.Empty(t, cs.Lookups())
}
