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
package bls12_377

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/mimc"
)

// MiMC hashes zero or more elements using the MiMC permutation (in
// Miyaguchi-Preneel mode) from gnark-crypto.  This serves as the black-box
// hash function used to populate hash lookup tables.
func MiMC(inputs ...Element) Element {
	var (
		hasher = mimc.NewMiMC()
		digest Element
	)
	//
	for _, input := range inputs {
		// Canonical encodings are always below the modulus, so the hasher
		// cannot reject them.
		if _, err := hasher.Write(input.Marshal()); err != nil {
			panic(err)
		}
	}
	//
	digest.Element.SetBytes(hasher.Sum(nil))
	//
	return digest
}
