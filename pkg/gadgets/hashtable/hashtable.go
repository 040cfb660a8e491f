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
package hashtable

import (
	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// TABLE_SIZE is the number of preimages held in the hash table.
const TABLE_SIZE = 16

// MIN_K is the smallest domain size exponent for which this circuit can be
// laid out, as determined by the size of the table.
const MIN_K = 4

// Hasher is a black-box hash function over field elements.
type Hasher[F field.Element[F]] func(inputs ...F) F

// TableConfig holds the columns of a precomputed table of hashes, where each
// row holds a preimage a in [0,TABLE_SIZE) and its digest hash(a).
type TableConfig[F field.Element[F]] struct {
	A      plonk.TableColumn
	Digest plonk.TableColumn
	hasher Hasher[F]
}

// Load the contents of the hash table.
func (p TableConfig[F]) Load(layouter circuit.Layouter[F]) error {
	return layouter.AssignTable("hash table", func(table *circuit.Table[F]) error {
		for offset, a := range field.Range[F](TABLE_SIZE) {
			var (
				preimage = circuit.Known(a)
				digest   = circuit.MapValue(preimage, func(x F) F { return p.hasher(x) })
			)
			//
			if err := table.AssignCell("a", p.A, uint(offset), preimage); err != nil {
				return err
			} else if err := table.AssignCell("digest", p.Digest, uint(offset), digest); err != nil {
				return err
			}
		}
		//
		return nil
	})
}

// Config holds the columns of a circuit which checks that an advice pair
// (a, digest) holds digest = hash(a), by looking it up in a precomputed table.
// On rows where the selector is disabled, the lookup input collapses to the
// default tuple (0, hash(0)) which is always present in the table.
type Config[F field.Element[F]] struct {
	Enable plonk.Selector
	A      plonk.Advice
	Digest plonk.Advice
	Table  TableConfig[F]
}

// Configure allocates the columns and registers the hash lookup.
func Configure[F field.Element[F]](cs *plonk.ConstraintSystem[F], hasher Hasher[F]) (Config[F], error) {
	var config = Config[F]{
		Enable: cs.ComplexSelector(),
		A:      cs.AdviceColumn(),
		Digest: cs.AdviceColumn(),
		Table: TableConfig[F]{
			A:      cs.LookupTableColumn(),
			Digest: cs.LookupTableColumn(),
			hasher: hasher,
		},
	}
	//
	err := cs.Lookup("hash", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
		var (
			q             = vc.QuerySelector(config.Enable)
			a             = vc.QueryAdvice(config.A, plonk.CUR)
			digest        = vc.QueryAdvice(config.Digest, plonk.CUR)
			notQ          = plonk.Sub(plonk.Const(field.One[F]()), q)
			defaultA      = plonk.Const(field.Zero[F]())
			defaultDigest = plonk.Const(hasher(field.Zero[F]()))
			gatedA        = plonk.Add(plonk.Mul(q, a), plonk.Mul(notQ, defaultA))
			gatedDigest   = plonk.Add(plonk.Mul(q, digest), plonk.Mul(notQ, defaultDigest))
		)
		//
		return []plonk.LookupInput[F]{
			plonk.NewLookupInput(gatedA, config.Table.A),
			plonk.NewLookupInput(gatedDigest, config.Table.Digest),
		}
	})
	//
	return config, err
}

// Assign a preimage, and its digest, at a given offset within a region,
// enabling the lookup on that row.
func (p Config[F]) Assign(region *circuit.Region[F], offset uint, a circuit.Value[F]) error {
	var digest = circuit.MapValue(a, func(x F) F { return p.Table.hasher(x) })
	//
	return p.AssignPair(region, offset, a, digest)
}

// AssignPair assigns an arbitrary (preimage, digest) pair at a given offset
// within a region, enabling the lookup on that row.
func (p Config[F]) AssignPair(region *circuit.Region[F], offset uint, a circuit.Value[F],
	digest circuit.Value[F]) error {
	//
	if err := region.EnableSelector("q_enable", p.Enable, offset); err != nil {
		return err
	} else if _, err := region.AssignAdvice("a", p.A, offset, a); err != nil {
		return err
	}
	//
	_, err := region.AssignAdvice("digest", p.Digest, offset, digest)
	//
	return err
}

// Circuit checks the digest of a single (private) preimage via the hash table.
type Circuit[F field.Element[F]] struct {
	A      circuit.Value[F]
	Hasher Hasher[F]
}

// New constructs a circuit with a known witness.
func New[F field.Element[F]](a F, hasher Hasher[F]) *Circuit[F] {
	return &Circuit[F]{circuit.Known(a), hasher}
}

// WithoutWitnesses implementation for circuit.Circuit interface.
func (p *Circuit[F]) WithoutWitnesses() circuit.Circuit[F, Config[F]] {
	return &Circuit[F]{circuit.Unknown[F](), p.Hasher}
}

// Configure implementation for circuit.Circuit interface.
func (p *Circuit[F]) Configure(cs *plonk.ConstraintSystem[F]) (Config[F], error) {
	return Configure(cs, p.Hasher)
}

// Synthesize implementation for circuit.Circuit interface.
func (p *Circuit[F]) Synthesize(config Config[F], layouter circuit.Layouter[F]) error {
	if err := config.Table.Load(layouter); err != nil {
		return err
	}
	//
	return layouter.AssignRegion("assign a", func(region *circuit.Region[F]) error {
		return config.Assign(region, 0, p.A)
	})
}
