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
	"runtime"
	"slices"
	"sort"

	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/collection/hash"
)

// SequentialVerify checks every constraint on a single goroutine.
func (p *Prover[F]) SequentialVerify() []Failure {
	var failures = p.checkRows(0, p.Rows())
	//
	failures = append(failures, p.checkRegions()...)
	failures = append(failures, p.checkCopies()...)
	//
	SortFailures(failures)
	//
	return failures
}

// ParallelVerify checks every constraint by splitting the domain into chunks
// of rows, and checking each chunk on its own goroutine.  Checking only reads
// from the witness table and the constraint system, hence chunks can be
// checked independently.  The results are identical to those of sequential
// checking.
func (p *Prover[F]) ParallelVerify(workers uint) []Failure {
	var (
		failures []Failure
		n        = p.Rows()
	)
	//
	if workers == 0 {
		workers = uint(runtime.NumCPU())
	}
	//
	var (
		chunk = max(1, (n+workers-1)/workers)
		// Construct a communication channel for failures.
		c = make(chan []Failure, workers)
		// Number of chunks to check
		ntodo = uint(0)
	)
	//
	for start := uint(0); start < n; start += chunk {
		go func(start, end uint) {
			// Send outcome back
			c <- p.checkRows(start, end)
		}(start, min(n, start+chunk))
		//
		ntodo++
	}
	// Region and copy checks run alongside
	failures = append(failures, p.checkRegions()...)
	failures = append(failures, p.checkCopies()...)
	// Collect up all the results
	for i := uint(0); i < ntodo; i++ {
		failures = append(failures, <-c...)
	}
	//
	SortFailures(failures)
	//
	return failures
}

// Check every gate and lookup on every row in a given range.
func (p *Prover[F]) checkRows(start, end uint) []Failure {
	var (
		failures []Failure
		system   = p.System()
		tbl      = p.assignment.Table()
	)
	//
	for row := start; row < end; row++ {
		for gi, gate := range system.Gates() {
			for ci, c := range gate.Constraints() {
				if val := c.Poly.EvalAt(row, tbl); !val.IsZero() {
					failures = append(failures, &GateFailure[F]{gate, uint(gi), uint(ci), p.regionOf(row), row, val})
				}
			}
		}
		//
		for li, lookup := range system.Lookups() {
			if inputs, ok := p.checkLookup(lookup, p.tables[li], row); !ok {
				failures = append(failures, &LookupFailure[F]{lookup, uint(li), p.regionOf(row), row, inputs})
			}
		}
	}
	//
	return failures
}

// Evaluate the inputs of a lookup on a given row and check the resulting
// tuple is present in its table.
func (p *Prover[F]) checkLookup(lookup *plonk.Lookup[F], table *hash.Set[hash.BytesKey], row uint) ([]F, bool) {
	var (
		tbl    = p.assignment.Table()
		inputs = make([]F, lookup.Width())
	)
	//
	for i, input := range lookup.Inputs() {
		inputs[i] = input.EvalAt(row, tbl)
	}
	//
	return inputs, table.Contains(tupleKey(inputs))
}

// Check that, for every selector enabled within a region, every advice cell
// queried by a gate using that selector was assigned within the region.
func (p *Prover[F]) checkRegions() []Failure {
	var (
		failures []Failure
		n        = p.Rows()
		gates    = p.System().Gates()
	)
	//
	for _, region := range p.assignment.Regions() {
		for _, enabled := range region.Enabled.ToArray() {
			for gi, gate := range gates {
				if !usesSelector(gate.Selectors(), enabled.Column) {
					continue
				}
				//
				for qi, q := range gate.Queries() {
					if q.Column.Kind() != trace.ADVICE_COLUMN {
						continue
					}
					//
					col, row := q.Resolve(enabled.Row, n)
					cell := trace.NewCellRef(col.Ref(), row)
					//
					if !region.Cells.Contains(cell) {
						failures = append(failures, &CellNotAssigned{gate.Name(), uint(gi), uint(qi), region.Name,
							enabled.Row, cell})
					}
				}
			}
		}
	}
	//
	return failures
}

// Check every copy constraint holds.
func (p *Prover[F]) checkCopies() []Failure {
	var (
		failures []Failure
		tbl      = p.assignment.Table()
	)
	//
	for i, c := range p.assignment.Copies() {
		var (
			lhs = tbl.Value(c.Left.Column, c.Left.Row)
			rhs = tbl.Value(c.Right.Column, c.Right.Row)
		)
		//
		if lhs.Cmp(rhs) != 0 {
			failures = append(failures, &EqualityFailure[F]{uint(i), c.Left, c.Right, lhs, rhs})
		}
	}
	//
	return failures
}

// Determine the name of the region enclosing a given row, or the empty string
// if no region encloses it.  Regions are placed in order, hence can be
// searched by their starting row.
func (p *Prover[F]) regionOf(row uint) string {
	var (
		regions = p.assignment.Regions()
		// Find first region ending after this row
		i = sort.Search(len(regions), func(i int) bool {
			return regions[i].Start+regions[i].Rows > row
		})
	)
	//
	if i < len(regions) && regions[i].Contains(row) {
		return regions[i].Name
	}
	//
	return ""
}

func usesSelector(selectors []plonk.Selector, ref trace.ColumnRef) bool {
	return slices.ContainsFunc(selectors, func(s plonk.Selector) bool {
		return s.Ref() == ref
	})
}
