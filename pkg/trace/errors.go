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
package trace

import "errors"

// ErrAssignmentCollision signals an attempt to assign the same cell twice
// during a single synthesis run.
var ErrAssignmentCollision = errors.New("assignment collision")

// ErrLayoutOverflow signals an attempt to write beyond the last row of the
// domain.  This typically arises when k is too small for the circuit.
var ErrLayoutOverflow = errors.New("layout overflow")
