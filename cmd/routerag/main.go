// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Settings may come from a .env file next to the binary's working directory.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	app := newApp(os.Stdout, os.Stderr, buildEngine)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer, engines engineFactory) *cli.App {
	cmds := &commands{stdout: stdout, stderr: stderr, engines: engines}

	return &cli.App{
		Name:      "routerag",
		Usage:     "Answer queries with routed context and document retrieval",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"ROUTERAG_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to a rotated file instead of stderr",
				EnvVars: []string{"ROUTERAG_LOG_FILE"},
			},
		},
		Before: func(c *cli.Context) error {
			return setupLogger(c, stderr)
		},
		After: closeLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a single query for a user",
				ArgsUsage: "QUERY...",
				Action:    cmds.ask,
				Flags: append(engineFlags(),
					userFlag(),
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "Print each pipeline step to stderr",
					},
				),
			},
			{
				Name:   "batch",
				Usage:  "Answer every query of a YAML file, concurrently across users",
				Action: cmds.batch,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "YAML list of {user, query} entries",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "pool-size",
						Usage:   "Number of concurrent workers (0 = half the CPUs)",
						EnvVars: []string{"ROUTERAG_POOL_SIZE"},
					},
				),
			},
			{
				Name:   "history",
				Usage:  "List the stored context of a user",
				Action: cmds.history,
				Flags:  append(engineFlags(), userFlag()),
			},
			{
				Name:      "classify",
				Usage:     "Classify a query and show its route",
				ArgsUsage: "QUERY...",
				Action:    cmds.classify,
				Flags:     engineFlags(),
			},
		},
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "User identifier owning the context",
		EnvVars:  []string{"ROUTERAG_USER"},
		Required: true,
	}
}
