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
package plonk

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn signals a column which was not allocated by the system
	// in question.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrMalformedGate signals a gate which is structurally invalid, such as
	// one using a simple selector other than as a multiplicative factor of an
	// entire constraint.
	ErrMalformedGate = errors.New("malformed gate")
	// ErrMalformedLookup signals a lookup which is structurally invalid, such
	// as one using a simple selector in an input expression.
	ErrMalformedLookup = errors.New("malformed lookup")
	// ErrUndeclaredTable signals a lookup which targets a column that is not a
	// lookup table column.
	ErrUndeclaredTable = errors.New("undeclared lookup table")
)

// ConstructionError describes a failure arising whilst configuring a
// constraint system.
type ConstructionError struct {
	// Kind of item being constructed (e.g. "gate" or "lookup")
	Kind string
	// Name of item being constructed
	Name string
	// Underlying cause
	Err error
}

func (p *ConstructionError) Error() string {
	return fmt.Sprintf("%s \"%s\": %s", p.Kind, p.Name, p.Err)
}

func (p *ConstructionError) Unwrap() error {
	return p.Err
}
