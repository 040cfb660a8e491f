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

	"github.com/consensys/go-plonkish/pkg/circuit"
	"github.com/consensys/go-plonkish/pkg/gadgets/hashtable"
	"github.com/consensys/go-plonkish/pkg/gadgets/isone"
	"github.com/consensys/go-plonkish/pkg/mock"
	"github.com/consensys/go-plonkish/pkg/util/field"
	"github.com/consensys/go-plonkish/pkg/util/field/bls12_377"
	"github.com/consensys/go-plonkish/pkg/util/field/bn254"
	"github.com/consensys/go-plonkish/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] circuit",
	Short: "Check an example circuit using the mock prover.",
	Long: `Check an example circuit using the mock prover.
	The circuit is configured and synthesized with the given witness value,
	after which every gate, lookup and copy constraint is checked on every row.
	Failures are reported in order of row.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg checkConfig
		//
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg.field = GetString(cmd, "field")
		cfg.k = GetUint(cmd, "k")
		cfg.value = GetUint64(cmd, "value")
		cfg.parallel = GetFlag(cmd, "parallel")
		cfg.workers = GetUint(cmd, "workers")
		cfg.report = GetFlag(cmd, "report")
		cfg.reportPadding = GetUint(cmd, "report-context")
		cfg.ansiEscapes = GetFlag(cmd, "ansi-escapes") && termio.IsTerminal()
		cfg.maxCellWidth = GetUint(cmd, "max-width")
		// Go!
		ok, err := checkNamedCircuit(args[0], cfg, os.Stdout)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		} else if !ok {
			os.Exit(1)
		}
	},
}

// checkConfig encapsulates certain parameters to be used when checking
// circuits.
type checkConfig struct {
	// Name of the prime field to use.
	field string
	// Domain size exponent, where zero indicates the minimum required by the
	// circuit.
	k uint
	// Witness value assigned by the circuit.
	value uint64
	// Check rows across multiple goroutines.
	parallel bool
	// Number of goroutines to use when checking in parallel.
	workers uint
	// Specifies whether or not to report details of each failure (e.g. for
	// debugging purposes).
	report bool
	// Number of rows either side of a failure to show when reporting.
	reportPadding uint
	// Enable ANSI escapes when reporting.
	ansiEscapes bool
	// Maximum width of a cell when reporting.
	maxCellWidth uint
}

// Check a named example circuit over the configured field, writing any failures
// to the given output.  This returns true if every constraint holds, and an
// error if the circuit could not be constructed.
func checkNamedCircuit(name string, cfg checkConfig, out io.Writer) (bool, error) {
	switch cfg.field {
	case "bn254":
		return checkWithField[bn254.Element](name, bn254.MiMC, cfg, out)
	case "bls12_377":
		return checkWithField[bls12_377.Element](name, bls12_377.MiMC, cfg, out)
	default:
		return false, unknownField(cfg.field)
	}
}

func checkWithField[F field.Element[F]](name string, hasher hashtable.Hasher[F], cfg checkConfig,
	out io.Writer) (bool, error) {
	//
	var ok bool
	//
	visitor := circuitVisitor[F]{
		isone: func(c *isone.Circuit[F], minK uint) (err error) {
			ok, err = checkCircuit[F, isone.Config[F]](c, minK, cfg, out)
			return err
		},
		hashtable: func(c *hashtable.Circuit[F], minK uint) (err error) {
			ok, err = checkCircuit[F, hashtable.Config[F]](c, minK, cfg, out)
			return err
		},
	}
	//
	err := visitCircuit(name, cfg.value, hasher, visitor)
	//
	return ok, err
}

func checkCircuit[F field.Element[F], C any](c circuit.Circuit[F, C], minK uint, cfg checkConfig,
	out io.Writer) (bool, error) {
	//
	k, err := domainSize(cfg.k, minK)
	if err != nil {
		return false, err
	}
	//
	prover, err := mock.Run(k, c, nil)
	if err != nil {
		return false, err
	}
	//
	prover.Config = mock.Config{Parallel: cfg.parallel, Workers: cfg.workers}
	failures := prover.Verify()
	//
	for _, failure := range failures {
		reportFailure(prover, failure, cfg, out)
	}
	//
	if len(failures) == 0 {
		log.Debugf("circuit satisfied over %d rows", prover.Rows())
	}
	//
	return len(failures) == 0, nil
}

func reportFailure[F field.Element[F]](prover *mock.Prover[F], failure mock.Failure, cfg checkConfig,
	out io.Writer) {
	//
	fmt.Fprintln(out, failure.String())
	//
	if cfg.report {
		var (
			window = mock.NewWindow(prover, failure, cfg.reportPadding)
			width  = cfg.maxCellWidth
		)
		// Fit rows of the window within the terminal
		if width == 0 {
			width = max(8, termio.Width()/(window.Height()+1))
		}
		//
		printer := mock.NewPrinter().AnsiEscapes(cfg.ansiEscapes).MaxCellWidth(width)
		printer.Print(out, window)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Uint("k", 0, "domain size exponent (where 0 indicates the circuit minimum)")
	checkCmd.Flags().Uint64("value", 1, "witness value assigned by the circuit")
	checkCmd.Flags().Bool("parallel", false, "check rows in parallel")
	checkCmd.Flags().Uint("workers", 0, "number of goroutines when checking in parallel (0 means one per cpu)")
	checkCmd.Flags().Bool("report", false, "report details of failure for debugging")
	checkCmd.Flags().Uint("report-context", 2, "specify number of rows to show either side of a failure")
	checkCmd.Flags().Bool("ansi-escapes", true, "specify whether to allow ANSI escapes or not (e.g. for colour)")
	checkCmd.Flags().Uint("max-width", 0, "specify maximum width of a reported cell (0 means fit to terminal)")
}
