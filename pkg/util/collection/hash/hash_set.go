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
package hash

import (
	"bytes"
	"hash/fnv"
)

// A reasonably simple hashset implementation which permits collisions.  Lookup
// tables are keyed on the encoded tuple of a row, and two distinct tuples may
// well share a 64-bit hashcode.  Therefore, equality is always checked within a
// bucket, rather than assuming the hash identifies the item.

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashset.  This additionally includes equality.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

// Set defines a generic set implementation backed by a map.  This is a true
// hashtable in that collisions are handle gracefully using buckets, rather than
// simply discarding them.
type Set[T Hasher[T]] struct {
	// items maps hashcodes to *buckets* of items.
	items map[uint64]bucket[T]
	// number of unique items
	size uint
}

// NewSet creates a new HashSet with a given underlying capacity.
func NewSet[T Hasher[T]](capacity uint) *Set[T] {
	items := make(map[uint64]bucket[T], capacity)
	return &Set[T]{items, 0}
}

// Size returns the number of unique items stored in this HashSet.
func (p *Set[T]) Size() uint {
	return p.size
}

// Insert a new item into this set, returning true if it was already contained
// and false otherwise.
func (p *Set[T]) Insert(item T) bool {
	// Compute item's hashcode
	hash := item.Hash()
	// Lookup existing bucket
	b := p.items[hash]
	//
	if b.contains(item) {
		return true
	}
	// Insert new item
	b.items = append(b.items, item)
	p.items[hash] = b
	p.size++
	//
	return false
}

// Contains checks whether the given item is contained within this set, or not.
func (p *Set[T]) Contains(item T) bool {
	if b, ok := p.items[item.Hash()]; ok {
		return b.contains(item)
	}
	//
	return false
}

// ============================================================================
// Bucket
// ============================================================================

type bucket[T Hasher[T]] struct {
	items []T
}

// Check whether this bucket contains a given item, or not.
func (b *bucket[T]) contains(item T) bool {
	for _, i := range b.items {
		if item.Equals(i) {
			return true
		}
	}
	//
	return false
}

// ============================================================================
// BytesKey
// ============================================================================

var _ Hasher[BytesKey] = BytesKey{}

// BytesKey wraps a bytes array as something which can be safely placed into a
// HashSet.
type BytesKey struct {
	bytes []byte
}

// NewBytesKey constructs a new bytes key.  The key takes ownership of the
// given array, which must not be modified afterwards.
func NewBytesKey(bytes []byte) BytesKey {
	return BytesKey{bytes}
}

// Equals compares two BytesKeys to check whether they represent the same
// underlying byte array (or not).
func (p BytesKey) Equals(other BytesKey) bool {
	return bytes.Equal(p.bytes, other.bytes)
}

// Hash generates a 64-bit hashcode from the underlying bytes array.
func (p BytesKey) Hash() uint64 {
	hash := fnv.New64a()
	hash.Write(p.bytes)
	// Done
	return hash.Sum64()
}
