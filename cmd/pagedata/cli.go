package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/config"
	"github.com/fwojciec/pagedata/harvest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Config     *config.Config
	Source     pagedata.PageSource
	Aggregator *pagedata.Aggregator
	Harvester  *harvest.Harvester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Engine      string        `help:"Page engine: goja (embedded JavaScript) or browser (headless Chrome)"`
	Timeout     time.Duration `help:"Per-page capture timeout"`
	Concurrency int           `short:"c" help:"Concurrent capture limit"`
	Config      string        `type:"path" help:"YAML configuration file"`
	Verbose     bool          `short:"v" help:"Log debug output to stderr"`

	Hydration HydrationCmd `cmd:"" help:"Print the hydration data of a page as JSON"`
	Dump      DumpCmd      `cmd:"" help:"Print the aggregated structured data of pages as JSON"`
	Search    SearchCmd    `cmd:"" help:"Search the structured data of pages for a string"`
	Watch     WatchCmd     `cmd:"" help:"Re-run a search whenever local files change"`
}

// HydrationCmd is the "hydration" subcommand.
type HydrationCmd struct {
	Target string `arg:"" help:"URL or local HTML file"`
}

// DumpCmd is the "dump" subcommand.
type DumpCmd struct {
	Targets []string `arg:"" help:"URLs, local HTML files or globs"`
	Out     string   `short:"o" type:"path" help:"Write the document to FILE instead of stdout (single target)"`
	OutDir  string   `type:"path" help:"Write one document per target under DIR"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query         string   `arg:"" help:"Substring to look for"`
	Targets       []string `arg:"" optional:"" help:"URLs, local HTML files or globs"`
	CaseSensitive bool     `short:"s" help:"Match case exactly"`
	JSON          bool     `name:"json" help:"Print matches as JSON"`
	Doc           string   `type:"path" help:"Search a JSON document instead of capturing targets"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Query         string   `arg:"" help:"Substring to look for"`
	Files         []string `arg:"" help:"Local HTML files or globs"`
	CaseSensitive bool     `short:"s" help:"Match case exactly"`
	JSON          bool     `name:"json" help:"Print matches as JSON"`
}
