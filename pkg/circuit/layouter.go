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

import (
	"errors"
	"fmt"

	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// Layouter is responsible for placing regions and tables within the witness
// table during synthesis.
type Layouter[F field.Element[F]] interface {
	// AssignRegion lays out a named region, using a closure to assign its
	// cells.  Any error returned by the closure aborts synthesis.
	AssignRegion(name string, assignment func(*Region[F]) error) error
	// AssignTable loads the contents of one or more lookup table columns,
	// using a closure to assign their cells.
	AssignTable(name string, assignment func(*Table[F]) error) error
	// ConstrainInstance constrains an assigned cell to equal a given row of a
	// given instance column.
	ConstrainInstance(cell Cell, instance plonk.Instance, row uint) error
}

// AssignRegion lays out a named region using a closure which returns a value
// (e.g. the cells it assigned), as needed for later copy constraints.
func AssignRegion[F field.Element[F], T any](layouter Layouter[F], name string,
	assignment func(*Region[F]) (T, error)) (T, error) {
	var result T
	//
	err := layouter.AssignRegion(name, func(region *Region[F]) error {
		var err error
		//
		result, err = assignment(region)
		//
		return err
	})
	//
	return result, err
}

// SimpleLayouter places regions one after another, starting from the first
// row.  Each region begins immediately after the last row of the previous
// region.
type SimpleLayouter[F field.Element[F]] struct {
	assignment *Assignment[F]
	// Next available row
	cursor uint
	// Name of region (or table) currently being assigned, if any
	open string
	busy bool
}

// NewSimpleLayouter constructs a layouter for a given assignment.
func NewSimpleLayouter[F field.Element[F]](assignment *Assignment[F]) *SimpleLayouter[F] {
	return &SimpleLayouter[F]{assignment, 0, "", false}
}

// Cursor returns the first row which will be used by the next region.
func (p *SimpleLayouter[F]) Cursor() uint {
	return p.cursor
}

// AssignRegion implementation for Layouter interface.
func (p *SimpleLayouter[F]) AssignRegion(name string, assignment func(*Region[F]) error) error {
	var (
		index  = uint(len(p.assignment.regions))
		region = newRegion(index, name, p.cursor, p.assignment)
	)
	//
	if err := p.enter(name); err != nil {
		return err
	}
	//
	defer p.exit()
	//
	if err := assignment(region); err != nil {
		return wrapRegionError(name, err)
	}
	//
	log.Debugf("assigned region \"%s\" on rows %d..%d (%d cells)", name, region.info.Start,
		region.info.Start+region.info.Rows, region.info.Cells.Len())
	//
	p.cursor += region.info.Rows
	p.assignment.regions = append(p.assignment.regions, region.info)
	//
	return nil
}

// AssignTable implementation for Layouter interface.
func (p *SimpleLayouter[F]) AssignTable(name string, assignment func(*Table[F]) error) error {
	var table = &Table[F]{name: name, assignment: p.assignment}
	//
	if err := p.enter(name); err != nil {
		return err
	}
	//
	defer p.exit()
	//
	if err := assignment(table); err != nil {
		return wrapRegionError(name, err)
	} else if err := table.complete(); err != nil {
		return err
	}
	//
	log.Debugf("loaded table \"%s\" with %d rows across %d columns", name, table.lengths[0], len(table.columns))
	//
	return nil
}

// ConstrainInstance implementation for Layouter interface.
func (p *SimpleLayouter[F]) ConstrainInstance(cell Cell, instance plonk.Instance, row uint) error {
	var target = Cell{cell.Region, instance.Column, row}
	//
	if err := p.assignment.copy(cell, target); err != nil {
		return fmt.Errorf("constraining %s to instance %s: %w", cell, trace.NewCellRef(instance.Ref(), row), err)
	}
	//
	return nil
}

// Regions are placed at the cursor, which only advances once a region is
// complete.  Hence, a region opened inside another would overlap it.
func (p *SimpleLayouter[F]) enter(name string) error {
	if p.busy {
		return fmt.Errorf("%w: \"%s\" opened within \"%s\"", ErrNestedRegion, name, p.open)
	}
	//
	p.open, p.busy = name, true
	//
	return nil
}

func (p *SimpleLayouter[F]) exit() {
	p.open, p.busy = "", false
}

// Errors arising from the region itself are returned as is, whilst errors
// from the enclosing closure are attributed to the region.
func wrapRegionError(name string, err error) error {
	var rerr *RegionError
	//
	if errors.As(err, &rerr) {
		return err
	}
	//
	return fmt.Errorf("region \"%s\": %w", name, err)
}
