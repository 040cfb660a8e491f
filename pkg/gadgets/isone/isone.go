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
package isone

import (
	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// MIN_K is the smallest domain size exponent for which this circuit can be
// laid out.
const MIN_K = 1

// Config holds the columns of the "a is one" gate, which requires an advice
// value to equal one wherever its selector is enabled.
type Config[F field.Element[F]] struct {
	Enable plonk.Selector
	A      plonk.Advice
}

// Configure registers the "a is one" gate over the given columns.
func Configure[F field.Element[F]](cs *plonk.ConstraintSystem[F], enable plonk.Selector,
	a plonk.Advice) (Config[F], error) {
	//
	err := cs.CreateGate("a is one", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
		var (
			q   = vc.QuerySelector(enable)
			val = vc.QueryAdvice(a, plonk.CUR)
			one = plonk.Const(field.One[F]())
		)
		//
		return []plonk.Constraint[F]{plonk.NewConstraint("check a", plonk.Mul(q, plonk.Sub(val, one)))}
	})
	//
	return Config[F]{enable, a}, err
}

// Assign a value at a given offset within a region, enabling the gate on that
// row.
func (p Config[F]) Assign(region *circuit.Region[F], offset uint, a circuit.Value[F]) error {
	if err := region.EnableSelector("q_enable", p.Enable, offset); err != nil {
		return err
	}
	//
	_, err := region.AssignAdvice("a", p.A, offset, a)
	//
	return err
}

// Circuit assigns a single (private) value which must be one.
type Circuit[F field.Element[F]] struct {
	A circuit.Value[F]
}

// New constructs a circuit with a known witness.
func New[F field.Element[F]](a F) *Circuit[F] {
	return &Circuit[F]{circuit.Known(a)}
}

// WithoutWitnesses implementation for circuit.Circuit interface.
func (p *Circuit[F]) WithoutWitnesses() circuit.Circuit[F, Config[F]] {
	return &Circuit[F]{circuit.Unknown[F]()}
}

// Configure implementation for circuit.Circuit interface.
func (p *Circuit[F]) Configure(cs *plonk.ConstraintSystem[F]) (Config[F], error) {
	var (
		a        = cs.AdviceColumn()
		qEnabled = cs.Selector()
	)
	//
	return Configure(cs, qEnabled, a)
}

// Synthesize implementation for circuit.Circuit interface.
func (p *Circuit[F]) Synthesize(config Config[F], layouter circuit.Layouter[F]) error {
	return layouter.AssignRegion("assign a", func(region *circuit.Region[F]) error {
		return config.Assign(region, 0, p.A)
	})
}
