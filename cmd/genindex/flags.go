package main

import (
	"fmt"

	"github.com/jamesainslie/genindex/pkg/genindex/config"
	"github.com/jamesainslie/genindex/pkg/genindex/filter"
	"github.com/jamesainslie/genindex/pkg/genindex/indexer"
	"github.com/jamesainslie/genindex/pkg/genindex/manifest"
	"github.com/spf13/viper"
)

// buildFilter creates a filter.Filter from the effective configuration.
// Malformed patterns are reported as an InvalidFilterPattern IndexError.
func buildFilter(cfg *config.Config) (*filter.Filter, error) {
	sortField, err := filter.ParseSortField(cfg.Sort)
	if err != nil {
		return nil, fmt.Errorf("invalid sort field %q: %w", cfg.Sort, err)
	}

	f, err := filter.New(
		filter.WithGlob(cfg.Filter),
		filter.WithExcludeRegex(cfg.ExcludeRegex),
		filter.WithIncludeHidden(cfg.IncludeHidden),
		filter.WithOutputFile(cfg.OutputFile),
		filter.WithSortBy(sortField),
		filter.WithSortDescending(cfg.Reverse),
	)
	if err != nil {
		return nil, indexer.NewInvalidPattern(err)
	}
	return f, nil
}

// buildOptions creates indexer options from the effective configuration
// and the run-only flags.
func buildOptions(cfg *config.Config) indexer.Options {
	opts := indexer.DefaultOptions()
	opts.Recursive = cfg.Recursive
	opts.DirSizes = cfg.DirSizes
	opts.Readme = cfg.Readme
	opts.ReadmeName = cfg.ReadmeName
	opts.Verbose = getVerbose()
	opts.DryRun = viper.GetBool("dry_run")
	return opts
}

// runSettings records the options of a run for the history.
func runSettings(cfg *config.Config) manifest.Settings {
	return manifest.Settings{
		Filter:        cfg.Filter,
		ExcludeRegex:  cfg.ExcludeRegex,
		OutputFile:    cfg.OutputFile,
		IncludeHidden: cfg.IncludeHidden,
		Recursive:     cfg.Recursive,
		Sort:          cfg.Sort,
		Reverse:       cfg.Reverse,
	}
}
