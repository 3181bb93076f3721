package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/rrapi/internal/client"
	"github.com/mcncl/rrapi/internal/config"
	"github.com/mcncl/rrapi/internal/errors"
	"github.com/mcncl/rrapi/internal/flatten"
	"github.com/mcncl/rrapi/internal/formatter"
	"github.com/mcncl/rrapi/internal/logger"
	"github.com/mcncl/rrapi/internal/parser"
	"github.com/mcncl/rrapi/internal/query"
)

// CLI defines the command-line interface
var CLI struct {
	ReportNumber string `arg:"" optional:"" help:"Report number to look up. Defaults to the configured report number."`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *logger.Logger
	Out    io.Writer
}

func main() {
	parser := kong.Must(&CLI,
		kong.Name("rrapi"),
		kong.Description("Look up a report through the report results GraphQL API and print the flattened response."),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.Errorf("%s", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx := &Context{
		Config: cfg,
		Logger: logger.NewLogger(cfg.LogLevel),
		Out:    os.Stdout,
	}

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// run looks up one report and prints the payload, the raw response and the
// flattened results.
func run(ctx *Context) error {
	cfg := ctx.Config
	log := ctx.Logger
	out := formatter.NewFormatter(ctx.Out)

	// 1. Load the query
	text, err := query.Load(cfg.QueryFile)
	if err != nil {
		if errors.IsFatal(err) {
			return err
		}
		// Unreadable query files do not stop the lookup; the API will
		// reject the empty query.
		log.Error().Err(err).Str("query_file", cfg.QueryFile).Msg("continuing with an empty query")
		text = ""
	} else {
		inspectQuery(log, text)
	}

	// 2. Build the payload
	reportNumber := CLI.ReportNumber
	if reportNumber == "" {
		reportNumber = cfg.DefaultReportNumber
	}
	out.Lookup(reportNumber)

	payload, err := query.Encode(query.NewRequest(text, reportNumber))
	if err != nil {
		return err
	}
	out.Section(formatter.PayloadTitle, payload)

	// 3. POST it
	api := client.New(client.Config{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
		Logger:   log,
	})
	reqCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	resp, err := api.Post(reqCtx, payload)
	if resp != nil {
		out.Section(formatter.ResponseTitle, resp.Body)
		log.Info().
			Str("request_id", resp.RequestID).
			Int("status", resp.StatusCode).
			Msgf("Returned in %0.3f seconds", resp.Elapsed.Seconds())
	}
	if err != nil {
		return err
	}

	// 4. Flatten the response
	root, err := parser.ParseString(resp.Body)
	if err != nil {
		return err
	}
	results := flatten.Flatten(root)

	if msg, ok := flatten.ErrorMessage(results); ok {
		out.Warning(msg)
	}
	out.Results(results)

	if err := out.Err(); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// inspectQuery logs problems with the query document. None of them stop the
// request from being sent.
func inspectQuery(log *logger.Logger, text string) {
	summary, err := query.Inspect(text)
	if err != nil {
		log.Warn().Err(err).Msg("query document does not parse")
		return
	}
	for _, op := range summary.Operations {
		log.Debug().Str("type", op.Type).Str("name", op.Name).Strs("variables", op.Variables).Msg("query operation")
	}
	if !summary.HasVariable(query.ReportNumberVariable) {
		log.Warn().Msgf("query does not declare $%s", query.ReportNumberVariable)
	}
}
