package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/playall/internal/formatter"
	"github.com/desertthunder/playall/internal/models"
	"github.com/desertthunder/playall/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Batch resolves one input per line from --file (or stdin) and writes all results in the chosen format.
//
// Failed inputs are reported in the output rather than aborting the run.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	format := r.config.Batch.Format
	if cmd.IsSet("format") {
		format = cmd.String("format")
	}
	if _, err := formatter.Format(nil, format); err != nil {
		return err
	}

	opts := tasks.BatchOpts{Rate: r.config.Batch.Rate, Burst: r.config.Batch.Burst}
	if cmd.IsSet("rate") {
		opts.Rate = cmd.Float("rate")
	}
	if cmd.IsSet("burst") {
		opts.Burst = int(cmd.Int("burst"))
	}

	inputs, err := r.readInputs(cmd.String("file"))
	if err != nil {
		return err
	}
	r.logger.Info("starting batch", "inputs", len(inputs), "rate", opts.Rate, "format", format)

	progress := make(chan tasks.ProgressUpdate, 16)
	logged := make(chan struct{})
	go func() {
		defer close(logged)
		for update := range progress {
			r.logger.Info(update.Message, "step", update.Step, "total", update.Total)
		}
	}()

	results, batchErr := r.engine.Batch(ctx, inputs, opts, progress)
	close(progress)
	<-logged

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteResultsFile(output, results, format); err != nil {
			return err
		}
		r.logger.Info("results saved", "path", output)
	} else if err := formatter.WriteResults(r.output, results, format); err != nil {
		return err
	}

	ok := countResolved(results)
	r.logger.Info("batch complete", "resolved", ok, "failed", len(results)-ok)
	return batchErr
}

// readInputs reads lines from path, or from the runner's input when path is "-" or empty.
func (r *Runner) readInputs(path string) ([]string, error) {
	var src io.Reader = r.input
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		src = f
	}

	var lines []string
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return lines, nil
}

func countResolved(results []models.Result) int {
	n := 0
	for _, res := range results {
		if res.OK() {
			n++
		}
	}
	return n
}
