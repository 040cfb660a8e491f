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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/mock"
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field/bn254"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_IsOne_01(t *testing.T) {
	for k := uint(1); k <= 8; k++ {
		prover, err := mock.Run(k, newOneCircuit(1), nil)
		//
		require.NoError(t, err)
		assert.Empty(t, prover.Verify())
		assert.True(t, prover.Satisfied())
	}
}

func Test_IsOne_02(t *testing.T) {
	prover, err := mock.Run(3, newOneCircuit(1, 2, 1), nil)
	//
	require.NoError(t, err)
	//
	failures := prover.Verify()
	//
	require.Len(t, failures, 1)
	assert.Equal(t, mock.GATE_FAILURE, failures[0].Kind())
	assert.Equal(t, uint(1), failures[0].Location())
	//
	gf := failures[0].(*mock.GateFailure[F])
	assert.Equal(t, "a is one", gf.Gate.Name())
	assert.Equal(t, "check a", gf.Constraint().Name)
	assert.Equal(t, "assign a", gf.Region)
	assert.Equal(t, bn254.New(1), gf.Value)
	assert.Equal(t, "constraint \"check a\" of gate \"a is one\" does not hold (row 1, region \"assign a\")",
		gf.Message())
}

func Test_IsOne_03(t *testing.T) {
	// Domain too small for region
	_, err := mock.Run(1, newOneCircuit(1, 1, 1), nil)
	assert.ErrorIs(t, err, trace.ErrLayoutOverflow)
	// Unknown witness in full run
	_, err = mock.Run(3, newOneCircuit(1).WithoutWitnesses(), nil)
	assert.ErrorIs(t, err, circuit.ErrSynthesis)
	// But fine during setup
	assignment, err := mock.Setup(3, newOneCircuit(1, 1))
	require.NoError(t, err)
	assert.True(t, assignment.Table().Selected(trace.NewColumnRef(trace.SELECTOR_COLUMN, 0), 1))
	assert.Equal(t, uint(2), assignment.Table().Assigned(trace.NewColumnRef(trace.ADVICE_COLUMN, 0)))
}

func Test_Idempotent_01(t *testing.T) {
	prover, err := mock.Run(3, newOneCircuit(0, 1, 2, 3), nil)
	//
	require.NoError(t, err)
	//
	first := prover.Verify()
	second := prover.Verify()
	//
	assert.Len(t, first, 3)
	assert.Equal(t, first, second)
}

func Test_Collision_01(t *testing.T) {
	circ := &testCircuit[plonk.Advice]{
		configure: func(cs *plonk.ConstraintSystem[F]) (plonk.Advice, error) {
			return cs.AdviceColumn(), nil
		},
		synthesize: func(a plonk.Advice, layouter circuit.Layouter[F]) error {
			err := layouter.AssignRegion("first", func(r *circuit.Region[F]) error {
				_, err := r.AssignAdvice("a", a, 0, circuit.Known(bn254.New(1)))
				return err
			})
			//
			if err != nil {
				return err
			}
			// Regions never share rows, so collide within a region.
			return layouter.AssignRegion("second", func(r *circuit.Region[F]) error {
				if _, err := r.AssignAdvice("a", a, 0, circuit.Known(bn254.New(1))); err != nil {
					return err
				}
				//
				_, err := r.AssignAdvice("a again", a, 0, circuit.Known(bn254.New(2)))
				//
				return err
			})
		},
	}
	//
	prover, err := mock.Run(3, circ, nil)
	//
	assert.Nil(t, prover)
	assert.ErrorIs(t, err, trace.ErrAssignmentCollision)
	//
	var rerr *circuit.RegionError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "second", rerr.Region)
	assert.Equal(t, uint(1), rerr.Cell.Row)
}

func Test_Rotation_01(t *testing.T) {
	type config struct {
		a plonk.Advice
		q plonk.Selector
	}
	// Gate requires next row to hold zero, and is enabled on last row only.
	build := func(first uint64) *testCircuit[config] {
		return &testCircuit[config]{
			configure: func(cs *plonk.ConstraintSystem[F]) (config, error) {
				cfg := config{cs.AdviceColumn(), cs.ComplexSelector()}
				//
				return cfg, cs.CreateGate("wrap", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
					e := plonk.Mul(vc.QuerySelector(cfg.q), vc.QueryAdvice(cfg.a, plonk.NEXT))
					return []plonk.Constraint[F]{plonk.NewConstraint("next is zero", e)}
				})
			},
			synthesize: func(cfg config, layouter circuit.Layouter[F]) error {
				return layouter.AssignRegion("all", func(r *circuit.Region[F]) error {
					for i := uint64(0); i < 8; i++ {
						var val = bn254.New(i)
						//
						if i == 0 {
							val = bn254.New(first)
						}
						//
						if _, err := r.AssignAdvice("a", cfg.a, uint(i), circuit.Known(val)); err != nil {
							return err
						}
					}
					//
					return r.EnableSelector("q", cfg.q, 7)
				})
			},
		}
	}
	// Last row reads first row
	prover, err := mock.Run(3, build(0), nil)
	require.NoError(t, err)
	assert.Empty(t, prover.Verify())
	//
	prover, err = mock.Run(3, build(5), nil)
	require.NoError(t, err)
	//
	failures := prover.Verify()
	require.Len(t, failures, 1)
	assert.Equal(t, uint(7), failures[0].Location())
	// Failure reads cell on row 0
	cells := failures[0].RequiredCells(prover.Rows())
	assert.True(t, cells.Contains(trace.NewCellRef(trace.NewColumnRef(trace.ADVICE_COLUMN, 0), 0)))
}

func Test_Lookup_01(t *testing.T) {
	for a := uint64(0); a < 16; a++ {
		prover, err := mock.Run(4, &rangeCircuit{[]uint64{a}, []bool{true}}, nil)
		//
		require.NoError(t, err)
		assert.Empty(t, prover.Verify())
	}
}

func Test_Lookup_02(t *testing.T) {
	prover, err := mock.Run(5, &rangeCircuit{[]uint64{3, 16, 4, 100}, []bool{true, true, true, false}}, nil)
	//
	require.NoError(t, err)
	//
	failures := prover.Verify()
	//
	require.Len(t, failures, 1)
	assert.Equal(t, mock.LOOKUP_FAILURE, failures[0].Kind())
	assert.Equal(t, uint(1), failures[0].Location())
	//
	lf := failures[0].(*mock.LookupFailure[F])
	assert.Equal(t, "range", lf.Lookup.Name())
	assert.Equal(t, "values", lf.Region)
	assert.Equal(t, []F{bn254.New(16)}, lf.Inputs)
}

func Test_Lookup_03(t *testing.T) {
	// All rows disabled
	prover, err := mock.Run(5, &rangeCircuit{[]uint64{99, 98, 97}, []bool{false, false, false}}, nil)
	//
	require.NoError(t, err)
	assert.True(t, prover.Satisfied())
}

func Test_Lookup_Property_01(t *testing.T) {
	properties := gopter.NewProperties(nil)
	//
	properties.Property("values in table satisfy lookup", prop.ForAll(
		func(a uint64) bool {
			prover, err := mock.Run(4, &rangeCircuit{[]uint64{a}, []bool{true}}, nil)
			return err == nil && prover.Satisfied()
		},
		gen.UInt64Range(0, 15),
	))
	//
	properties.Property("values outside table fail lookup once", prop.ForAll(
		func(a uint64) bool {
			prover, err := mock.Run(4, &rangeCircuit{[]uint64{1, a}, []bool{true, true}}, nil)
			if err != nil {
				return false
			}
			//
			failures := prover.Verify()
			//
			return len(failures) == 1 && failures[0].Kind() == mock.LOOKUP_FAILURE && failures[0].Location() == 1
		},
		gen.UInt64Range(16, 1<<40),
	))
	//
	properties.TestingRun(t)
}

func Test_Parallel_Property_01(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)
	//
	properties.Property("parallel matches sequential", prop.ForAll(
		func(values []uint64, workers uint) bool {
			prover, err := mock.Run(4, newOneCircuit(values...), nil)
			if err != nil {
				return false
			}
			//
			sequential := prover.Verify()
			prover.Config = mock.Config{Parallel: true, Workers: workers}
			parallel := prover.Verify()
			//
			return messages(sequential) == messages(parallel)
		},
		gen.SliceOfN(16, gen.UInt64Range(0, 2)),
		gen.UIntRange(0, 7),
	))
	//
	properties.TestingRun(t)
}

func Test_CellNotAssigned_01(t *testing.T) {
	type config struct {
		a plonk.Advice
		q plonk.Selector
	}
	//
	circ := &testCircuit[config]{
		configure: func(cs *plonk.ConstraintSystem[F]) (config, error) {
			cfg := config{cs.AdviceColumn(), cs.Selector()}
			//
			return cfg, cs.CreateGate("sum", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
				var (
					cur  = vc.QueryAdvice(cfg.a, plonk.CUR)
					next = vc.QueryAdvice(cfg.a, plonk.NEXT)
				)
				//
				return []plonk.Constraint[F]{
					plonk.NewConstraint("same", plonk.Mul(vc.QuerySelector(cfg.q), plonk.Sub(next, cur))),
				}
			})
		},
		synthesize: func(cfg config, layouter circuit.Layouter[F]) error {
			return layouter.AssignRegion("partial", func(r *circuit.Region[F]) error {
				if err := r.EnableSelector("q", cfg.q, 0); err != nil {
					return err
				}
				//
				_, err := r.AssignAdvice("a", cfg.a, 0, circuit.Known(bn254.New(0)))
				//
				return err
			})
		},
	}
	//
	prover, err := mock.Run(3, circ, nil)
	require.NoError(t, err)
	//
	failures := prover.Verify()
	require.Len(t, failures, 1)
	//
	cf := failures[0].(*mock.CellNotAssigned)
	assert.Equal(t, "sum", cf.Gate)
	assert.Equal(t, "partial", cf.Region)
	assert.Equal(t, uint(0), cf.GateRow)
	assert.Equal(t, trace.NewCellRef(trace.NewColumnRef(trace.ADVICE_COLUMN, 0), 1), cf.Cell)
}

type mixedConfig struct {
	a, b plonk.Advice
	i    plonk.Instance
	q    plonk.Selector
	s    plonk.Selector
	t    plonk.TableColumn
}

// A circuit in which every kind of failure arises on the first row.
func newMixedCircuit(a, b uint64) *testCircuit[mixedConfig] {
	return &testCircuit[mixedConfig]{
		configure: func(cs *plonk.ConstraintSystem[F]) (mixedConfig, error) {
			cfg := mixedConfig{cs.AdviceColumn(), cs.AdviceColumn(), cs.InstanceColumn(), cs.Selector(),
				cs.ComplexSelector(), cs.LookupTableColumn()}
			//
			if err := cs.EnableEquality(cfg.a); err != nil {
				return cfg, err
			} else if err := cs.EnableEquality(cfg.i); err != nil {
				return cfg, err
			}
			// Register lookup before gates to check kinds are ordered first.
			err := cs.Lookup("small", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
				e := plonk.Mul(vc.QuerySelector(cfg.s), vc.QueryAdvice(cfg.b, plonk.CUR))
				return []plonk.LookupInput[F]{plonk.NewLookupInput(e, cfg.t)}
			})
			//
			if err != nil {
				return cfg, err
			}
			//
			err = cs.CreateGate("a is one", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
				e := plonk.Mul(vc.QuerySelector(cfg.q), plonk.Sub(vc.QueryAdvice(cfg.a, plonk.CUR), plonk.Const64[F](1)))
				return []plonk.Constraint[F]{plonk.NewConstraint("check a", e)}
			})
			//
			if err != nil {
				return cfg, err
			}
			//
			return cfg, cs.CreateGate("b follows", func(vc *plonk.VirtualCells[F]) []plonk.Constraint[F] {
				e := plonk.Mul(vc.QuerySelector(cfg.q), vc.QueryAdvice(cfg.b, plonk.NEXT))
				return []plonk.Constraint[F]{plonk.NewConstraint("next b is zero", e)}
			})
		},
		synthesize: func(cfg mixedConfig, layouter circuit.Layouter[F]) error {
			err := layouter.AssignTable("small", func(tbl *circuit.Table[F]) error {
				for i := uint64(0); i < 4; i++ {
					if err := tbl.AssignCell("t", cfg.t, uint(i), circuit.Known(bn254.New(i))); err != nil {
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
			cell, err := circuit.AssignRegion(layouter, "row", func(r *circuit.Region[F]) (circuit.AssignedCell[F], error) {
				if err := r.EnableSelector("q", cfg.q, 0); err != nil {
					return circuit.AssignedCell[F]{}, err
				} else if err := r.EnableSelector("s", cfg.s, 0); err != nil {
					return circuit.AssignedCell[F]{}, err
				} else if _, err := r.AssignAdvice("b", cfg.b, 0, circuit.Known(bn254.New(b))); err != nil {
					return circuit.AssignedCell[F]{}, err
				}
				//
				return r.AssignAdvice("a", cfg.a, 0, circuit.Known(bn254.New(a)))
			})
			//
			if err != nil {
				return err
			}
			//
			return layouter.ConstrainInstance(cell.Cell(), cfg.i, 0)
		},
	}
}

func Test_Ordering_01(t *testing.T) {
	prover, err := mock.Run(3, newMixedCircuit(2, 9), [][]F{{bn254.New(7)}})
	//
	require.NoError(t, err)
	//
	failures := prover.Verify()
	//
	require.Len(t, failures, 4)
	//
	for i, kind := range []mock.FailureKind{mock.GATE_FAILURE, mock.LOOKUP_FAILURE, mock.CELL_NOT_ASSIGNED,
		mock.EQUALITY_FAILURE} {
		assert.Equal(t, kind, failures[i].Kind())
		assert.Equal(t, uint(0), failures[i].Location())
	}
	//
	ef := failures[3].(*mock.EqualityFailure[F])
	assert.Equal(t, bn254.New(2), ef.LeftValue)
	assert.Equal(t, bn254.New(7), ef.RightValue)
	// Parallel agrees
	prover.Config = mock.Config{Parallel: true, Workers: 3}
	assert.Equal(t, messages(failures), messages(prover.Verify()))
}

func Test_Ordering_02(t *testing.T) {
	// Only the unassigned cell remains
	prover, err := mock.Run(3, newMixedCircuit(1, 3), [][]F{{bn254.New(1)}})
	//
	require.NoError(t, err)
	//
	failures := prover.Verify()
	//
	require.Len(t, failures, 1)
	assert.Equal(t, mock.CELL_NOT_ASSIGNED, failures[0].Kind())
}

func Test_Instance_01(t *testing.T) {
	// Too many public inputs
	_, err := mock.Run(1, newMixedCircuit(1, 3), [][]F{{bn254.New(1), bn254.New(1), bn254.New(1)}})
	assert.ErrorIs(t, err, mock.ErrInstanceTooLarge)
	// Wrong number of instance columns
	_, err = mock.Run(3, newMixedCircuit(1, 3), nil)
	assert.ErrorIs(t, err, mock.ErrInstanceMismatch)
	//
	_, err = mock.Run(3, newOneCircuit(1), [][]F{{bn254.New(1)}})
	assert.ErrorIs(t, err, mock.ErrInstanceMismatch)
}

func Test_Window_01(t *testing.T) {
	var buf bytes.Buffer
	//
	prover, err := mock.Run(3, newOneCircuit(1, 2, 1), nil)
	require.NoError(t, err)
	//
	failures := prover.Verify()
	require.Len(t, failures, 1)
	//
	window := mock.NewWindow(prover, failures[0], 1)
	// Rows 0..2, columns advice[0] and selector[0]
	assert.Equal(t, uint(3), window.Height())
	assert.Equal(t, uint(2), window.Width())
	assert.Equal(t, "advice[0]", window.Column(0))
	assert.Equal(t, "selector[0]", window.Column(1))
	assert.Equal(t, "0x2", window.CellAt(0, 1))
	assert.True(t, window.Highlighted(0, 1))
	assert.False(t, window.Highlighted(0, 0))
	//
	mock.NewPrinter().AnsiEscapes(false).Print(&buf, window)
	//
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "*0x2")
	assert.Contains(t, lines[2], "*1")
}

func messages(failures []mock.Failure) string {
	var builder strings.Builder
	//
	for _, f := range failures {
		builder.WriteString(f.Message())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

type unloadedConfig struct {
	a plonk.Advice
	s plonk.Selector
	t plonk.TableColumn
}

func Test_Lookup_04(t *testing.T) {
	// A lookup of zero into a table which is never loaded must not be accepted
	c := &testCircuit[unloadedConfig]{
		configure: func(cs *plonk.ConstraintSystem[F]) (unloadedConfig, error) {
			cfg := unloadedConfig{cs.AdviceColumn(), cs.ComplexSelector(), cs.LookupTableColumn()}
			//
			return cfg, cs.Lookup("unloaded", func(vc *plonk.VirtualCells[F]) []plonk.LookupInput[F] {
				e := plonk.Mul(vc.QuerySelector(cfg.s), vc.QueryAdvice(cfg.a, plonk.CUR))
				return []plonk.LookupInput[F]{plonk.NewLookupInput(e, cfg.t)}
			})
		},
		synthesize: func(cfg unloadedConfig, layouter circuit.Layouter[F]) error {
			return layouter.AssignRegion("row", func(r *circuit.Region[F]) error {
				if err := r.EnableSelector("s", cfg.s, 0); err != nil {
					return err
				}
				//
				_, err := r.AssignAdvice("a", cfg.a, 0, circuit.Known(bn254.New(0)))
				//
				return err
			})
		},
	}
	//
	prover, err := mock.Run(2, c, nil)
	//
	assert.Nil(t, prover)
	assert.ErrorIs(t, err, circuit.ErrTableNotLoaded)
	//
	_, err = mock.Setup(2, c)
	assert.ErrorIs(t, err, circuit.ErrTableNotLoaded)
}
