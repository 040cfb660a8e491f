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
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// Circuit describes a PLONKish circuit, parameterised by the field F over
// which it operates and its configuration type C.  Configuring a circuit
// declares its columns, gates and lookups, whilst synthesizing a circuit
// assigns its witness through a layouter.  Configuration must not depend on
// witness values.
type Circuit[F field.Element[F], C any] interface {
	// WithoutWitnesses returns a copy of this circuit where all witness
	// values are unknown.
	WithoutWitnesses() Circuit[F, C]
	// Configure declares the columns, gates and lookups of this circuit
	// within a given constraint system.
	Configure(cs *plonk.ConstraintSystem[F]) (C, error)
	// Synthesize assigns the witness of this circuit, using a given
	// configuration.
	Synthesize(config C, layouter Layouter[F]) error
}

// Synthesize configures a given circuit, and then synthesizes it into a fresh
// assignment over a domain of 2^k rows.  Instance columns are assigned from the
// given public inputs before synthesis begins.
func Synthesize[F field.Element[F], C any](circuit Circuit[F, C], k uint, mode Mode,
	instances ...[]F) (*Assignment[F], error) {
	var cs = plonk.NewConstraintSystem[F]()
	//
	config, err := circuit.Configure(cs)
	//
	if err != nil {
		return nil, err
	}
	//
	assignment := NewAssignment(cs, k, mode)
	//
	for i, col := range cs.Columns(trace.INSTANCE_COLUMN) {
		if i < len(instances) {
			if err := assignment.SetInstance(plonk.Instance{Column: col}, instances[i]); err != nil {
				return nil, err
			}
		}
	}
	//
	if err := circuit.Synthesize(config, NewSimpleLayouter(assignment)); err != nil {
		return nil, err
	} else if err := assignment.checkTables(); err != nil {
		return nil, err
	}
	//
	return assignment, nil
}
