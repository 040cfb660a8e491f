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
	"fmt"

	"github.com/consensys/go-plonkish/pkg/gadgets/hashtable"
	"github.com/consensys/go-plonkish/pkg/gadgets/isone"
	"github.com/consensys/go-plonkish/pkg/util/field"
)

// CIRCUITS lists the names of the example circuits available from the command
// line.
var CIRCUITS = []string{"isone", "hashtable"}

// FIELDS lists the names of the prime fields available from the command line.
var FIELDS = []string{"bn254", "bls12_377"}

// circuitVisitor is applied to the example circuit selected from the command
// line, instantiated over the selected field.  Since methods cannot be generic,
// a visitor provides one case per example circuit.
type circuitVisitor[F field.Element[F]] struct {
	isone     func(c *isone.Circuit[F], minK uint) error
	hashtable func(c *hashtable.Circuit[F], minK uint) error
}

// Construct the named example circuit over a given field with a given witness
// value, and apply the visitor to it.
func visitCircuit[F field.Element[F]](name string, value uint64, hasher hashtable.Hasher[F],
	visitor circuitVisitor[F]) error {
	//
	var a = field.Uint64[F](value)
	//
	switch name {
	case "isone":
		return visitor.isone(isone.New(a), isone.MIN_K)
	case "hashtable":
		return visitor.hashtable(hashtable.New(a, hasher), hashtable.MIN_K)
	default:
		return fmt.Errorf("unknown circuit \"%s\" (expected one of %v)", name, CIRCUITS)
	}
}

// Report an unknown field name.
func unknownField(name string) error {
	return fmt.Errorf("unknown field \"%s\" (expected one of %v)", name, FIELDS)
}

// Determine the domain size exponent to use, given the (optional) user
// supplied value and the minimum required by the circuit.
func domainSize(k uint, minK uint) (uint, error) {
	if k == 0 {
		return minK, nil
	} else if k < minK {
		return 0, fmt.Errorf("circuit requires k >= %d (was %d)", minK, k)
	}
	//
	return k, nil
}
