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
package circuit

// Value represents a witness value which may or may not be known.  Values are
// unknown when synthesizing a circuit without witnesses (e.g. to determine its
// layout), and known otherwise.
type Value[T any] struct {
	known bool
	value T
}

// Known constructs a value which is known.
func Known[T any](val T) Value[T] {
	return Value[T]{true, val}
}

// Unknown constructs a value which is not known.
func Unknown[T any]() Value[T] {
	var empty T
	return Value[T]{false, empty}
}

// IsKnown indicates whether or not this value is known.
func (v Value[T]) IsKnown() bool {
	return v.known
}

// IsUnknown indicates whether or not this value is unknown.
func (v Value[T]) IsUnknown() bool {
	return !v.known
}

// Unwrap returns the value contained, or panics if this value is unknown.
func (v Value[T]) Unwrap() T {
	if v.known {
		return v.value
	}
	//
	panic("cannot unwrap an unknown value")
}

// UnwrapOr returns the value contained, or a given default if this value is
// unknown.
func (v Value[T]) UnwrapOr(def T) T {
	if v.known {
		return v.value
	}
	//
	return def
}

// MapValue applies a function to a value, if it is known.  Otherwise, the
// result is unknown.
func MapValue[S any, T any](v Value[S], fn func(S) T) Value[T] {
	if v.known {
		return Known(fn(v.value))
	}
	//
	return Unknown[T]()
}

// ZipValues combines two values using a given function, producing a known
// value only if both are known.
func ZipValues[S any, T any, U any](lhs Value[S], rhs Value[T], fn func(S, T) U) Value[U] {
	if lhs.known && rhs.known {
		return Known(fn(lhs.value, rhs.value))
	}
	//
	return Unknown[U]()
}
