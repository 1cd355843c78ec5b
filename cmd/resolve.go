package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playall/internal/channel"
	"github.com/desertthunder/playall/internal/models"
	"github.com/desertthunder/playall/internal/shared"
	"github.com/desertthunder/playall/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Resolve generates the uploads playlist URL for a single input.
//
// The URL goes to the output writer so it can be piped; progress and the success message go to the logger.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("input")
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: %w", shared.ErrMissingArgument, shared.ErrEmptyInput)
	}
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	logged := make(chan struct{})
	go func() {
		defer close(logged)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	res := r.engine.Run(ctx, input, progress)
	close(progress)
	<-logged

	if cmd.Bool("json") {
		if err := r.writeJSON(res, true); err != nil {
			return err
		}
		if !res.OK() {
			return errors.New(res.Error)
		}
	} else {
		if !res.OK() {
			return errors.New(res.Error)
		}
		r.logger.Info(tasks.SuccessMessage(res.Method), "channel_id", res.ChannelID)
		if err := r.writePlainln(res.PlaylistURL); err != nil {
			return err
		}
	}

	if cmd.Bool("open") {
		if err := r.openURL(res.PlaylistURL); err != nil {
			return fmt.Errorf("failed to open playlist: %w", err)
		}
	}
	return nil
}

// classification is the JSON shape printed by the classify command.
type classification struct {
	Input       string           `json:"input"`
	Kind        models.InputKind `json:"kind"`
	Value       string           `json:"value"`
	ChannelID   models.ChannelID `json:"channel_id,omitempty"`
	PlaylistURL string           `json:"playlist_url,omitempty"`
}

// Classify reports the kind of an input without touching the network.
//
// Bare channel IDs also get their playlist URL since no lookup is needed.
func (r *Runner) Classify(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("strategies") {
		r.writePlainHeader("Extraction strategies")
		for i, name := range channel.Strategies() {
			r.writePlain("%d. %s\n", i+1, name)
		}
		return nil
	}

	input := strings.TrimSpace(cmd.StringArg("input"))
	if input == "" {
		return fmt.Errorf("%w: %w", shared.ErrMissingArgument, shared.ErrEmptyInput)
	}

	in, ok := channel.Classify(input)
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrUnrecognizedInput, input)
	}

	c := classification{Input: input, Kind: in.Kind, Value: in.Value}
	if in.Kind == models.KindChannelID {
		playlistURL, err := channel.PlaylistURL(in.Value)
		if err != nil {
			return err
		}
		c.ChannelID = models.ChannelID(in.Value)
		c.PlaylistURL = playlistURL
	}

	if cmd.Bool("json") {
		return r.writeJSON(c, true)
	}

	r.writePlain("kind:  %s\n", c.Kind)
	r.writePlain("value: %s\n", c.Value)
	if c.PlaylistURL != "" {
		r.writePlain("playlist: %s\n", c.PlaylistURL)
	}
	return nil
}

// Relays lists the relays used for page fetches and the @handle shortcuts.
func (r *Runner) Relays(ctx context.Context, cmd *cli.Command) error {
	relays := r.fetcher.Relays()
	handle := r.config.Handle

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"relays":       relays,
			"direct_relay": handle.DirectRelay,
			"feed_relay":   handle.FeedRelay,
		}, true)
	}

	r.writePlainHeader("Page relays")
	for i, relay := range relays {
		r.writePlain("%d. %-14s [%s] %s\n", i+1, relay.Name, relay.Format, relay.Template)
	}
	r.writePlainln("")
	r.writePlainHeader("Handle shortcuts")
	r.writePlain("direct: %-14s [%s] %s\n", handle.DirectRelay.Name, handle.DirectRelay.Format, handle.DirectRelay.Template)
	r.writePlain("feed:   %-14s [%s] %s\n", handle.FeedRelay.Name, handle.FeedRelay.Format, handle.FeedRelay.Template)
	return nil
}
