// Copyright 2025 Policy Query System Authors
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	policyquery "github.com/AnushkaBhatnagar/Policy-Query-System"
)

func main() {
	app := &cli.App{
		Name:  "policyquery",
		Usage: "Search graduate policy documents and surface rule conflicts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "documents",
				Aliases: []string{"d"},
				Usage:   "Directory of policy document .txt files",
				Value:   "policy_documents",
			},
			&cli.StringFlag{
				Name:    "conflicts",
				Aliases: []string{"c"},
				Usage:   "Path to the conflict registry JSON file",
				Value:   "conflicts.json",
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: "Optional compiled index snapshot to start from",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Score policy rules against a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "department",
						Usage: "Restrict results to rule ids with this prefix (e.g. GSAS)",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of results",
						Value: 5,
					},
				},
			},
			{
				Name:      "rule",
				Usage:     "Retrieve one rule by id with its registered conflicts",
				ArgsUsage: "<rule-id>",
				Action:    ruleCommand,
			},
			{
				Name:      "conflicts",
				Usage:     "List registered conflicts involving the given rule ids",
				ArgsUsage: "<rule-id> [rule-id ...]",
				Action:    conflictsCommand,
			},
			{
				Name:   "precedence",
				Usage:  "Print the precedence framework from the conflict registry",
				Action: precedenceCommand,
			},
			{
				Name:      "compile",
				Usage:     "Compile the parsed index into a snapshot file",
				ArgsUsage: "<output-path>",
				Action:    compileCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print index and registry sizes",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*policyquery.Engine, error) {
	var opts []policyquery.EngineOption
	if snapshot := c.String("snapshot"); snapshot != "" {
		opts = append(opts, policyquery.WithSnapshotFile(snapshot))
	}
	return policyquery.NewEngine(c.String("documents"), c.String("conflicts"), opts...)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load policy engine: %w", err)
	}
	defer engine.Close()

	resp := engine.Search(query, c.String("department"), c.Int("max-results"))
	return printJSON(resp)
}

func ruleCommand(c *cli.Context) error {
	ruleID := c.Args().First()
	if ruleID == "" {
		return fmt.Errorf("a rule id is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load policy engine: %w", err)
	}
	defer engine.Close()

	rule, conflicts, err := engine.GetRule(ruleID)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"rule":      rule,
		"conflicts": conflicts,
	})
}

func conflictsCommand(c *cli.Context) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one rule id is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load policy engine: %w", err)
	}
	defer engine.Close()

	return printJSON(engine.CheckConflicts(ids))
}

func precedenceCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load policy engine: %w", err)
	}
	defer engine.Close()

	return printJSON(engine.PrecedenceFramework())
}

func compileCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("an output path is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load policy engine: %w", err)
	}
	defer engine.Close()

	if err := engine.Compile(path); err != nil {
		return fmt.Errorf("failed to compile snapshot: %w", err)
	}

	stats := engine.Stats()
	fmt.Fprintf(os.Stderr, "Compiled %d rules from %d documents to %s\n",
		stats.Rules, stats.Documents, path)
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to load policy engine: %w", err)
	}
	defer engine.Close()

	return printJSON(engine.Stats())
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
