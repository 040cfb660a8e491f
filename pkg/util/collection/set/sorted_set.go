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
package set

import (
	"slices"
)

// Comparable provides an interface which types used in a SortedSet must
// implement.
type Comparable[T any] interface {
	// Cmp returns < 0 if this is less than other, or 0 if they are equal, or >
	// 0 if this is greater than other.
	Cmp(other T) int
}

// SortedSet is an array of unique sorted values (i.e. no duplicates).
type SortedSet[T Comparable[T]] []T

// NewSortedSet creates a sorted set from a given array by first cloning that
// array, and then sorting it appropriately.  The given array is not mutated by
// this function, or any subsequent calls on the resulting set.
func NewSortedSet[T Comparable[T]](items ...T) *SortedSet[T] {
	var nitems SortedSet[T] = slices.Clone(items)
	// Sort incoming data
	slices.SortFunc(nitems, func(a, b T) int {
		return a.Cmp(b)
	})
	// Remove duplicates
	nitems = slices.CompactFunc(nitems, func(a, b T) bool {
		return a.Cmp(b) == 0
	})
	//
	return &nitems
}

// ToArray extracts the underlying array from this sorted set.
func (p *SortedSet[T]) ToArray() []T {
	return *p
}

// Len returns the number of elements in this set.
func (p *SortedSet[T]) Len() uint {
	return uint(len(*p))
}

// Contains returns true if a given element is in the set.
func (p *SortedSet[T]) Contains(element T) bool {
	_, found := p.search(element)
	return found
}

// Insert an element into this sorted set, returning true if it was not already
// present.
func (p *SortedSet[T]) Insert(element T) bool {
	i, found := p.search(element)
	//
	if !found {
		*p = slices.Insert(*p, i, element)
	}
	//
	return !found
}

// Find index where element either does occur, or should occur.
func (p *SortedSet[T]) search(element T) (int, bool) {
	return slices.BinarySearchFunc(*p, element, func(ith T, target T) int {
		return ith.Cmp(target)
	})
}
