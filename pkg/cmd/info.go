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
	"io"
	"os"
	"strings"

	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/gadgets/hashtable"
	"github.com/consensys/go-plonkish/pkg/gadgets/isone"
	"github.com/consensys/go-plonkish/pkg/plonk"
	"github.com/consensys/go-plonkish/pkg/trace"
	"github.com/consensys/go-plonkish/pkg/util/field"
	"github.com/consensys/go-plonkish/pkg/util/field/bls12_377"
	"github.com/consensys/go-plonkish/pkg/util/field/bn254"
	"github.com/consensys/go-plonkish/pkg/util/termio"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [flags] circuit",
	Short: "Summarise the constraint system of an example circuit.",
	Long: `Summarise the constraint system of an example circuit.
	This reports the number of columns of each kind, along with every gate
	and lookup registered by the circuit and their degrees.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		err := describeNamedCircuit(args[0], GetString(cmd, "field"), os.Stdout)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// Describe the constraint system of a named example circuit over a given field.
func describeNamedCircuit(name string, fieldName string, out io.Writer) error {
	switch fieldName {
	case "bn254":
		return describeWithField[bn254.Element](name, bn254.MiMC, out)
	case "bls12_377":
		return describeWithField[bls12_377.Element](name, bls12_377.MiMC, out)
	default:
		return unknownField(fieldName)
	}
}

func describeWithField[F field.Element[F]](name string, hasher hashtable.Hasher[F], out io.Writer) error {
	visitor := circuitVisitor[F]{
		isone: func(c *isone.Circuit[F], minK uint) error {
			return describeCircuit[F, isone.Config[F]](c, minK, out)
		},
		hashtable: func(c *hashtable.Circuit[F], minK uint) error {
			return describeCircuit[F, hashtable.Config[F]](c, minK, out)
		},
	}
	// Witness values are irrelevant here
	return visitCircuit(name, 0, hasher, visitor)
}

func describeCircuit[F field.Element[F], C any](c circuit.Circuit[F, C], minK uint, out io.Writer) error {
	var (
		cs     = plonk.NewConstraintSystem[F]()
		widths []string
	)
	//
	if _, err := c.WithoutWitnesses().Configure(cs); err != nil {
		return err
	}
	//
	for _, kind := range trace.ColumnKinds() {
		widths = append(widths, fmt.Sprintf("%s=%d", kind, cs.Count(kind)))
	}
	//
	fmt.Fprintf(out, "columns: %s\n", strings.Join(widths, " "))
	fmt.Fprintf(out, "equality: %d column(s)\n", len(cs.EqualityColumns()))
	fmt.Fprintf(out, "degree: %d\n", cs.Degree())
	fmt.Fprintf(out, "minimum k: %d\n", minK)
	//
	describeConstraints(cs, out)
	//
	return nil
}

// Print one row per gate constraint and one row per lookup.
func describeConstraints[F field.Element[F]](cs *plonk.ConstraintSystem[F], out io.Writer) {
	var (
		height uint = 1
		row    uint = 1
	)
	//
	for _, gate := range cs.Gates() {
		height += uint(len(gate.Constraints()))
	}
	//
	height += uint(len(cs.Lookups()))
	//
	tp := termio.NewTablePrinter(4, height)
	tp.Set(0, 0, "gate/lookup")
	tp.Set(1, 0, "constraint")
	tp.Set(2, 0, "degree")
	tp.Set(3, 0, "expression")
	//
	for _, gate := range cs.Gates() {
		for _, c := range gate.Constraints() {
			tp.Set(0, row, gate.Name())
			tp.Set(1, row, c.Name)
			tp.Set(2, row, fmt.Sprintf("%d", c.Poly.Degree()))
			tp.Set(3, row, c.Poly.String())
			row++
		}
	}
	//
	for _, lookup := range cs.Lookups() {
		tp.Set(0, row, lookup.Name())
		tp.Set(1, row, "-")
		tp.Set(2, row, fmt.Sprintf("%d", lookup.Degree()))
		tp.Set(3, row, lookup.String())
		row++
	}
	//
	tp.AnsiEscapes(false)
	tp.Print(out)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
