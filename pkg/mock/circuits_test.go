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
package mock_test

import (
	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/util/field/bn254"
)

type F = bn254.Element

// testCircuit is a circuit built from closures, which makes it easy to
// construct small circuits for testing.
type testCircuit[C any] struct {
	configure  func(cs *plonk.ConstraintSystem[F]) (C, error)
	synthesize func(config C, layouter circuit.Layouter[F]) error
}

func (p *testCircuit[C]) WithoutWitnesses() circuit.Circuit[F, C] {
	return p
}

func (p *testCircuit[C]) Configure(cs *plonk.ConstraintSystem[F]) (C, error) {
	return p.configure(cs)
}

func (p *testCircuit[C]) Synthesize(config C, layouter circuit.Layouter[F]) error {
	return p.synthesize(config, layouter)
}

// ============================================================================
// Is One
// ============================================================================

type oneConfig struct {
	a plonk.Advice
	q plonk.Selector
}

// oneCircuit assigns a sequence of values to a single advice column, each of
// which is constrained to be one.
type oneCircuit struct {
	values []circuit.Value[F]
}

func newOneCircuit(values ...uint64) *oneCircuit {
	var vals = make([]circuit.Value[F], len(values))
	//
	for i, v := range values {
		vals[i] = circuit.Known(bn254.New(v))
	}
	//
	return &oneCircuit{vals}
}

func (p *oneCircuit) WithoutWitnesses() circuit.Circuit[F, oneConfig] {
	return &oneCircuit{make([]circuit.Value[F], len(p.values))}
}

func (p *oneCircuit) Configure(cs *plonk.ConstraintSystem[F]) (oneConfig, error) {
	var config = oneConfig{cs.AdviceColumn(), cs.Selector()}
	//
	err := cs.CreateGate("a is one", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		var (
			q = vc.QuerySelector(config.q)
			a = vc.QueryAdvice(config.a, plonk.CUR)
		)
		//
		return []plonk.Constraint[F]{
			plonk.NewConstraint("check a", plonk.Mul(q, plonk.Sub(a, plonk.Const64[F](1)))),
		}
	})
	//
	return config, err
}

func (p *oneCircuit) Synthesize(config oneConfig, layouter circuit.Layouter[F]) error {
	return layouter.AssignRegion("assign a", func(region *circuit.Region[F]) error {
		for i, v := range p.values {
			if err := region.EnableSelector("q", config.q, uint(i)); err != nil {
				return err
			} else if _, err := region.AssignAdvice("a", config.a, uint(i), v); err != nil {
				return err
			}
		}
		//
		return nil
	})
}

// ============================================================================
// Range lookup
// ============================================================================

type rangeConfig struct {
	a plonk.Advice
	q plonk.Selector
	t plonk.TableColumn
}

// rangeCircuit checks a sequence of values are within [0,16) using a lookup.
// Values are only checked on rows where the selector is enabled.
type rangeCircuit struct {
	values  []uint64
	enabled []bool
}

func (p *rangeCircuit) WithoutWitnesses() circuit.Circuit[F, rangeConfig] {
	return p
}

func (p *rangeCircuit) Configure(cs *plonk.ConstraintSystem[F]) (rangeConfig, error) {
	var config = rangeConfig{cs.AdviceColumn(), cs.ComplexSelector(), cs.LookupTableColumn()}
	//
	err := cs.Lookup("range", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
		var (
			q = vc.QuerySelector(config.q)
			a = vc.QueryAdvice(config.a, plonk.CUR)
		)
		//
		return []plonk.LookupInput[F]{plonk.NewLookupInput(plonk.Mul(q, a), config.t)}
	})
	//
	return config, err
}

func (p *rangeCircuit) Synthesize(config rangeConfig, layouter circuit.Layouter[F]) error {
	err := layouter.AssignTable("range table", func(table *circuit.Table[F]) error {
		for i := uint64(0); i < 16; i++ {
			if err := table.AssignCell("t", config.t, uint(i), circuit.Known(bn254.New(i))); err != nil {
				return err
			}
		}
		//
		return nil
	})
	//
	if err != nil {
		return err
	}
	//
	return layouter.AssignRegion("values", func(region *circuit.Region[F]) error {
		for i, v := range p.values {
			if p.enabled[i] {
				if err := region.EnableSelector("q", config.q, uint(i)); err != nil {
					return err
				}
			}
			//
			if _, err := region.AssignAdvice("a", config.a, uint(i), circuit.Known(bn254.New(v))); err != nil {
				return err
			}
		}
		//
		return nil
	})
}
