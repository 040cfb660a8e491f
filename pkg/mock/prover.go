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
package mock

import (
	"errors"
	"fmt"

	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util"
	"github.com/consensys/go-plonkish/pkg/util/collection/hash"
	"github.com/consensys/go-plonkish/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrInstanceTooLarge signals public inputs for an instance column which
	// do not fit within the domain.
	ErrInstanceTooLarge = errors.New("instance column too large")
	// ErrInstanceMismatch signals public inputs supplied for a different
	// number of instance columns than the circuit declares.
	ErrInstanceMismatch = errors.New("instance column mismatch")
)

// Config determines how constraints are checked.
type Config struct {
	// Parallel enables checking of rows across multiple goroutines.
	Parallel bool
	// Workers determines the number of goroutines used when checking in
	// parallel.  Zero means one per available CPU.
	Workers uint
}

// DefaultConfig returns the default (sequential) checking configuration.
func DefaultConfig() Config {
	return Config{Parallel: false, Workers: 0}
}

// Prover checks a synthesized circuit against its constraint system, without
// generating a proof.  Every gate and lookup is evaluated on every row of the
// domain, and every violation is reported along with its location.
type Prover[F field.Element[F]] struct {
	k          uint
	assignment *circuit.Assignment[F]
	// Table tuples for each lookup (in order of registration)
	tables []*hash.Set[hash.BytesKey]
	// Config determines how constraints are checked.
	Config Config
}

// Run configures and synthesizes a given circuit over a domain of 2^k rows,
// binding the given public inputs to its instance columns (in order of
// allocation).  The result is a prover ready to check the circuit.
// Construction and synthesis errors are returned immediately.
func Run[F field.Element[F], C any](k uint, c circuit.Circuit[F, C], instances [][]F) (*Prover[F], error) {
	var (
		stats = util.NewPerfStats()
		n     = uint(1) << k
	)
	//
	if k > trace.MAX_K {
		return nil, fmt.Errorf("%w: domain size 2^%d exceeds 2^%d", trace.ErrLayoutOverflow, k, trace.MAX_K)
	}
	//
	for i, values := range instances {
		if uint(len(values)) > n {
			return nil, fmt.Errorf("%w: column %d has %d values, but domain has %d rows", ErrInstanceTooLarge, i,
				len(values), n)
		}
	}
	//
	assignment, err := circuit.Synthesize(c, k, circuit.SYNTHESIS, instances...)
	//
	if err != nil {
		return nil, err
	} else if m := assignment.System().Count(trace.INSTANCE_COLUMN); m != uint(len(instances)) {
		return nil, fmt.Errorf("%w: circuit has %d instance columns, but %d supplied", ErrInstanceMismatch, m,
			len(instances))
	}
	//
	stats.Log("Circuit synthesis")
	//
	prover := &Prover[F]{k, assignment, nil, DefaultConfig()}
	prover.tables = prover.buildTables()
	//
	return prover, nil
}

// Setup configures and synthesizes a given circuit without witnesses in setup
// mode, such that the layout (including fixed columns and selectors) is
// determined but witness values are not.
func Setup[F field.Element[F], C any](k uint, c circuit.Circuit[F, C]) (*circuit.Assignment[F], error) {
	if k > trace.MAX_K {
		return nil, fmt.Errorf("%w: domain size 2^%d exceeds 2^%d", trace.ErrLayoutOverflow, k, trace.MAX_K)
	}
	//
	return circuit.Synthesize(c.WithoutWitnesses(), k, circuit.SETUP)
}

// K returns the domain size exponent.
func (p *Prover[F]) K() uint {
	return p.k
}

// Rows returns the domain size.
func (p *Prover[F]) Rows() uint {
	return p.assignment.Table().Rows()
}

// System returns the constraint system being checked.
func (p *Prover[F]) System() *plonk.ConstraintSystem[F] {
	return p.assignment.System()
}

// Assignment returns the synthesized assignment being checked.
func (p *Prover[F]) Assignment() *circuit.Assignment[F] {
	return p.assignment
}

// Verify checks every constraint, returning the (possibly empty) list of
// failures found ordered by row, then by kind, then by registration.  Checking
// has no side effects, hence verifying more than once yields identical
// results.
func (p *Prover[F]) Verify() []Failure {
	var (
		failures []Failure
		// Start timer
		stats = util.NewPerfStats()
	)
	//
	if p.Config.Parallel {
		failures = p.ParallelVerify(p.Config.Workers)
	} else {
		failures = p.SequentialVerify()
	}
	// Log stats
	stats.Log("Constraint checking")
	//
	if len(failures) > 0 {
		log.Debugf("found %d failure(s)", len(failures))
	}
	//
	return failures
}

// Satisfied checks whether every constraint holds.
func (p *Prover[F]) Satisfied() bool {
	return len(p.Verify()) == 0
}

// Construct the set of table tuples for each lookup.  Every row of the domain
// contributes, including padding rows.
func (p *Prover[F]) buildTables() []*hash.Set[hash.BytesKey] {
	var (
		stats   = util.NewPerfStats()
		lookups = p.System().Lookups()
		tables  = make([]*hash.Set[hash.BytesKey], len(lookups))
		tbl     = p.assignment.Table()
	)
	//
	for i, l := range lookups {
		var (
			columns = l.Tables()
			tuple   = make([]F, len(columns))
			set     = hash.NewSet[hash.BytesKey](tbl.Rows())
		)
		//
		for row := uint(0); row < tbl.Rows(); row++ {
			for j, col := range columns {
				tuple[j] = tbl.Value(col.Ref(), row)
			}
			//
			set.Insert(tupleKey(tuple))
		}
		//
		log.Debugf("lookup \"%s\" has %d distinct table tuples", l.Name(), set.Size())
		//
		tables[i] = set
	}
	//
	stats.Log("Lookup table construction")
	//
	return tables
}

// Construct a key from a tuple of values by concatenating their canonical
// encodings (which have fixed length).
func tupleKey[F field.Element[F]](tuple []F) hash.BytesKey {
	var bytes []byte
	//
	for _, v := range tuple {
		bytes = append(bytes, v.Bytes()...)
	}
	//
	return hash.NewBytesKey(bytes)
}
