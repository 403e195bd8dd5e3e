package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/pipeline"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

type commands struct {
	stdout  io.Writer
	stderr  io.Writer
	engines engineFactory
}

func queryFromArgs(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", errors.New("query is required")
	}
	return query, nil
}

func (cmds *commands) ask(c *cli.Context) error {
	query, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	engine, err := cmds.engines(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []pipeline.Option
	if c.Bool("trace") {
		opts = append(opts, pipeline.WithMonitor(newTraceMonitor(cmds.stderr)))
	}
	orch, err := engine.NewOrchestrator(opts...)
	if err != nil {
		return err
	}
	defer orch.Release()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	result, err := orch.Run(ctx, c.String("user"), query)
	if result != nil {
		fmt.Fprintln(cmds.stdout, result.Answer)
		if result.Degraded() {
			warn := color.New(color.FgYellow)
			for _, d := range result.Degradations {
				warn.Fprintf(cmds.stderr, "note: answered without %s: %v\n", d.Input, d.Err)
			}
		}
	}
	return err
}

// batchEntry is one query of a batch file.
type batchEntry struct {
	User  string `yaml:"user"`
	Query string `yaml:"query"`
}

// batchOutput is one answered query as written to stdout.
type batchOutput struct {
	User     string   `yaml:"user"`
	Query    string   `yaml:"query"`
	Category string   `yaml:"category,omitempty"`
	Answer   string   `yaml:"answer,omitempty"`
	Degraded []string `yaml:"degraded,omitempty"`
	Error    string   `yaml:"error,omitempty"`
}

func readBatchFile(path string) ([]pipeline.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var entries []batchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	queries := make([]pipeline.Query, len(entries))
	for i, e := range entries {
		queries[i] = pipeline.Query{UserID: e.User, Text: e.Query}
	}
	return queries, nil
}

func (cmds *commands) batch(c *cli.Context) error {
	queries, err := readBatchFile(c.String("file"))
	if err != nil {
		return err
	}

	engine, err := cmds.engines(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []pipeline.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, pipeline.WithPoolSize(size))
	}
	orch, err := engine.NewOrchestrator(opts...)
	if err != nil {
		return err
	}
	defer orch.Release()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	results := orch.RunBatch(ctx, queries)

	failed := 0
	outputs := make([]batchOutput, len(results))
	for i, r := range results {
		out := batchOutput{User: r.Query.UserID, Query: r.Query.Text}
		if r.Result != nil {
			out.Category = r.Result.Category.String()
			out.Answer = r.Result.Answer
			for _, d := range r.Result.Degradations {
				out.Degraded = append(out.Degraded, d.Error())
			}
		}
		if r.Err != nil {
			failed++
			out.Error = r.Err.Error()
		}
		outputs[i] = out
	}

	enc := yaml.NewEncoder(cmds.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(outputs); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(results))
	}
	return nil
}

func (cmds *commands) history(c *cli.Context) error {
	engine, err := cmds.engines(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	entries, err := engine.ContextStore().History(c.Context, c.String("user"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(cmds.stdout, "%d\t%s\t%s\n", e.Seq, e.InsertedAt.Format(time.RFC3339), e.Contents)
	}
	return nil
}

func (cmds *commands) classify(c *cli.Context) error {
	query, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	engine, err := cmds.engines(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	category, err := engine.Provider().Classifier().Classify(c.Context, query)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}
	route := core.RouteFor(category)
	fmt.Fprintf(cmds.stdout, "%s (%s)\tcontext=%t documents=%t\n", category, category.Name(), route.Context, route.Documents)
	return nil
}
