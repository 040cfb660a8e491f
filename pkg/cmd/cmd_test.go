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
package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCheckConfig(value uint64) checkConfig {
	return checkConfig{field: "bn254", value: value, reportPadding: 1, maxCellWidth: 16}
}

func Test_Check_IsOne_Satisfied(t *testing.T) {
	for _, fieldName := range FIELDS {
		var (
			out bytes.Buffer
			cfg = defaultCheckConfig(1)
		)
		//
		cfg.field = fieldName
		ok, err := checkNamedCircuit("isone", cfg, &out)
		//
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, out.String())
	}
}

func Test_Check_IsOne_Failure(t *testing.T) {
	var (
		out bytes.Buffer
		cfg = defaultCheckConfig(2)
	)
	//
	ok, err := checkNamedCircuit("isone", cfg, &out)
	//
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "constraint \"check a\" of gate \"a is one\" does not hold (row 0, region \"assign a\")\n",
		out.String())
}

func Test_Check_IsOne_Report(t *testing.T) {
	var (
		out bytes.Buffer
		cfg = defaultCheckConfig(2)
	)
	//
	cfg.report = true
	ok, err := checkNamedCircuit("isone", cfg, &out)
	//
	require.NoError(t, err)
	assert.False(t, ok)
	// Failing cells are marked in the absence of ANSI escapes
	assert.Contains(t, out.String(), "advice[0]")
	assert.Contains(t, out.String(), "*0x2")
}

func Test_Check_HashTable_Parallel(t *testing.T) {
	for value := uint64(0); value < 20; value++ {
		var (
			out bytes.Buffer
			cfg = defaultCheckConfig(value)
		)
		//
		cfg.parallel = true
		cfg.workers = 3
		ok, err := checkNamedCircuit("hashtable", cfg, &out)
		//
		require.NoError(t, err)
		assert.Equal(t, value < 16, ok)
		//
		if value >= 16 {
			assert.True(t, strings.HasPrefix(out.String(), "lookup \"hash\" does not hold (row 0"))
		}
	}
}

func Test_Check_Errors(t *testing.T) {
	var out bytes.Buffer
	//
	_, err := checkNamedCircuit("unknown", defaultCheckConfig(1), &out)
	assert.ErrorContains(t, err, "unknown circuit")
	// Bad field
	cfg := defaultCheckConfig(1)
	cfg.field = "goldilocks"
	_, err = checkNamedCircuit("isone", cfg, &out)
	assert.ErrorContains(t, err, "unknown field")
	// Domain too small
	cfg = defaultCheckConfig(1)
	cfg.k = 2
	_, err = checkNamedCircuit("hashtable", cfg, &out)
	assert.ErrorContains(t, err, "circuit requires k >= 4")
}

func Test_Info_IsOne(t *testing.T) {
	var out bytes.Buffer
	//
	err := describeNamedCircuit("isone", "bn254", &out)
	//
	require.NoError(t, err)
	assert.Contains(t, out.String(), "columns: advice=1 fixed=0 instance=0 selector=1 table=0\n")
	assert.Contains(t, out.String(), "degree: 2\n")
	assert.Contains(t, out.String(), "a is one")
	assert.Contains(t, out.String(), "check a")
}

func Test_Info_HashTable(t *testing.T) {
	var out bytes.Buffer
	//
	err := describeNamedCircuit("hashtable", "bls12_377", &out)
	//
	require.NoError(t, err)
	assert.Contains(t, out.String(), "columns: advice=2 fixed=0 instance=0 selector=1 table=2\n")
	assert.Contains(t, out.String(), "minimum k: 4\n")
	assert.Contains(t, out.String(), "hash")
}
