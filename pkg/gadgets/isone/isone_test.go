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
package isone_test

import (
	"testing"

	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/gadgets/isone"
	"github.com/consensys/go-plonkish/pkg/mock"
	"github.com/consensys/go-plonkish/pkg/util/field/bls12_377"
	"github.com/consensys/go-plonkish/pkg/util/field/bn254"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_IsOne_Satisfied(t *testing.T) {
	for k := uint(isone.MIN_K); k <= 10; k++ {
		prover, err := mock.Run(k, isone.New(bn254.New(1)), nil)
		//
		require.NoError(t, err)
		assert.True(t, prover.Satisfied())
	}
}

func Test_IsOne_OtherField(t *testing.T) {
	prover, err := mock.Run(3, isone.New(bls12_377.New(1)), nil)
	//
	require.NoError(t, err)
	assert.True(t, prover.Satisfied())
	//
	prover, err = mock.Run(3, isone.New(bls12_377.New(0)), nil)
	//
	require.NoError(t, err)
	assert.Len(t, prover.Verify(), 1)
}

func Test_IsOne_Violated(t *testing.T) {
	properties := gopter.NewProperties(nil)
	//
	properties.Property("non-one values fail exactly once on row 0", prop.ForAll(
		func(a uint64) bool {
			if a == 1 {
				return true
			}
			//
			prover, err := mock.Run(3, isone.New(bn254.New(a)), nil)
			if err != nil {
				return false
			}
			//
			failures := prover.Verify()
			//
			return len(failures) == 1 && failures[0].Kind() == mock.GATE_FAILURE && failures[0].Location() == 0
		},
		gen.UInt64(),
	))
	//
	properties.TestingRun(t)
}

func Test_IsOne_Message(t *testing.T) {
	prover, err := mock.Run(3, isone.New(bn254.New(2)), nil)
	//
	require.NoError(t, err)
	//
	failures := prover.Verify()
	//
	require.Len(t, failures, 1)
	assert.Equal(t, "constraint \"check a\" of gate \"a is one\" does not hold (row 0, region \"assign a\")",
		failures[0].Message())
}

func Test_IsOne_WithoutWitnesses(t *testing.T) {
	var c = isone.New(bn254.New(1))
	// Setup succeeds with no witness
	assignment, err := mock.Setup(3, c)
	require.NoError(t, err)
	assert.Len(t, assignment.Regions(), 1)
	assert.Equal(t, uint(1), assignment.Regions()[0].Rows)
	// But a full run demands the witness
	_, err = mock.Run(3, c.WithoutWitnesses(), nil)
	assert.ErrorIs(t, err, circuit.ErrSynthesis)
}
