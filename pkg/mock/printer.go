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
package mock

import (
	"fmt"
	"io"
	"math"

	"github.com/consensys/go-plonkish/pkg/util/termio"
)

// Printer encapsulates various configuration options useful for printing out
// failure windows in human-readable forms.
type Printer struct {
	// Determine maximum width to print
	maxCellWidth uint
	// Enable ANSI
	ansiEscapes bool
}

// NewPrinter constructs a default printer
func NewPrinter() *Printer {
	return &Printer{math.MaxUint, true}
}

// AnsiEscapes can be used to enable or disable the use of ANSI escape sequences
// (e.g. for showing colour in a terminal, etc)
func (p *Printer) AnsiEscapes(enable bool) *Printer {
	p.ansiEscapes = enable
	return p
}

// MaxCellWidth sets the maximum width to use for the cell data.
func (p *Printer) MaxCellWidth(width uint) *Printer {
	p.maxCellWidth = width
	return p
}

// Print a given window using the configured printer.  Columns of the window
// are printed as rows, such that wide values do not overflow the terminal.
func (p *Printer) Print(out io.Writer, window *Window) {
	var (
		width  = window.Width()
		height = window.Height()
		tp     = termio.NewTablePrinter(1+height, 1+width)
		// Construct suitable escapes
		titleEscape     = termio.NewAnsiEscape().FgColour(termio.TERM_WHITE)
		highlightEscape = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	)
	// Initialise row titles
	for j := uint(0); j < height; j++ {
		tp.Set(1+j, 0, window.Row(j))
		tp.SetEscape(1+j, 0, titleEscape)
	}
	// Fill table
	for col := uint(0); col < width; col++ {
		tp.Set(0, col+1, window.Column(col))
		tp.SetEscape(0, col+1, titleEscape)
		//
		for row := uint(0); row < height; row++ {
			var (
				contents  = window.CellAt(col, row)
				highlight = window.Highlighted(col, row)
			)
			//
			if highlight && !p.ansiEscapes {
				// In a non-ANSI environment, use a marker "*" to identify which
				// cells were depended upon.
				contents = fmt.Sprintf("*%s", contents)
			} else if highlight {
				tp.SetEscape(1+row, col+1, highlightEscape)
			}
			//
			tp.Set(1+row, col+1, contents)
		}
	}
	// Cap cell widths
	for j := uint(0); j < height; j++ {
		tp.SetMaxWidth(1+j, p.maxCellWidth)
	}
	//
	tp.AnsiEscapes(p.ansiEscapes)
	tp.Print(out)
}
