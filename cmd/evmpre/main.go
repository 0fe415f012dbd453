// Copyright 2026 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// evmpre runs a single precompiled contract from the command line, for
// poking at gas costs and outputs without an EVM around it.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/erigontech/evm-precompiles/common"
	"github.com/erigontech/evm-precompiles/precompiles"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

var contractNames = [precompiles.NumContracts]string{
	"ecrec", "sha256", "rip160", "id", "expmod", "bn_add", "bn_mul", "snarkv", "blake2_f",
}

var (
	contractFlag = cli.StringFlag{
		Name:    "contract",
		Aliases: []string{"c"},
		Usage:   "Contract to run, by name (ecrec, sha256, ...) or table index 0..8",
		Value:   "id",
	}
	inputFlag = cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Hex-encoded input, with or without 0x prefix",
		Value:   "",
	}
	revisionFlag = cli.IntFlag{
		Name:    "revision",
		Aliases: []string{"r"},
		Usage:   "Protocol revision on the EVMC scale (Istanbul = 7, Berlin = 8)",
		Value:   int(precompiles.Berlin),
	}
)

var runCommand = cli.Command{
	Action:    runContract,
	Name:      "run",
	Usage:     "Run one precompiled contract and print its gas cost and output",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&contractFlag,
		&inputFlag,
		&revisionFlag,
	},
}

var listCommand = cli.Command{
	Action: listContracts,
	Name:   "list",
	Usage:  "List the dispatch table with the empty-input gas per contract",
	Flags: []cli.Flag{
		&revisionFlag,
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "evmpre"
	app.Usage = "EVM precompiled contract runner"
	app.Commands = []*cli.Command{
		&runCommand,
		&listCommand,
	}
	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func resolveContract(s string) (int, error) {
	for i, name := range contractNames {
		if s == name {
			return i, nil
		}
	}
	var idx int
	if _, err := fmt.Sscanf(s, "%d", &idx); err != nil || idx < 0 || idx >= precompiles.NumContracts {
		return 0, fmt.Errorf("unknown contract %q", s)
	}
	return idx, nil
}

func runContract(ctx *cli.Context) error {
	idx, err := resolveContract(ctx.String(contractFlag.Name))
	if err != nil {
		return err
	}
	rev := precompiles.Revision(ctx.Int(revisionFlag.Name))
	if idx >= precompiles.CountForRevision(rev) {
		logger.Warn().Str("contract", contractNames[idx]).Int32("revision", int32(rev)).
			Msg("contract is not active under this revision; running it anyway")
	}

	input := common.FromHex(ctx.String(inputFlag.Name))
	c := precompiles.Contracts[idx]

	gas := c.Gas(input, rev)
	output, err := c.Run(input)
	if err != nil {
		return fmt.Errorf("%s failed: %w", contractNames[idx], err)
	}

	fmt.Printf("gas:    %d\n", gas)
	fmt.Printf("output: 0x%s\n", common.Bytes2Hex(output))
	return nil
}

func listContracts(ctx *cli.Context) error {
	rev := precompiles.Revision(ctx.Int(revisionFlag.Name))
	active := precompiles.CountForRevision(rev)
	for i, name := range contractNames {
		gas := precompiles.Contracts[i].Gas(nil, rev)
		status := "active"
		if i >= active {
			status = "inactive"
		}
		fmt.Printf("%d  %-8s  empty-input gas %-6d  %s\n", i, name, gas, status)
	}
	return nil
}
