// Package slog provides log/slog decorators for anydocs services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/anydocs"
)

// Ensure decorators implement their interfaces.
var (
	_ anydocs.IndexService = (*LoggingIndexService)(nil)
	_ anydocs.IndexBuilder = (*LoggingIndexBuilder)(nil)
)

// LoggingIndexBuilder wraps an IndexBuilder with build logging.
type LoggingIndexBuilder struct {
	next   anydocs.IndexBuilder
	logger *slog.Logger
}

// NewLoggingIndexBuilder creates a new LoggingIndexBuilder.
func NewLoggingIndexBuilder(next anydocs.IndexBuilder, logger *slog.Logger) *LoggingIndexBuilder {
	return &LoggingIndexBuilder{next: next, logger: logger}
}

// BuildIndex delegates to the wrapped builder and logs the outcome.
func (b *LoggingIndexBuilder) BuildIndex(ctx context.Context, dir, name string) (idx *anydocs.Index, err error) {
	defer func(begin time.Time) {
		if err != nil {
			b.logger.Error("index build",
				"name", name,
				"dir", dir,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		stats := idx.Stats()
		b.logger.Info("index build",
			"name", name,
			"dir", dir,
			"files", stats.Files,
			"sections", stats.Sections,
			"terms", stats.Terms,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return b.next.BuildIndex(ctx, dir, name)
}

// LoggingIndexService wraps an IndexService with debug logging of queries.
type LoggingIndexService struct {
	next   anydocs.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next anydocs.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query.
func (s *LoggingIndexService) Search(query string, opts anydocs.SearchOptions) (results []*anydocs.Section) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"searchIn", opts.SearchIn,
			"fileFilter", opts.FileFilter,
			"count", len(results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Search(query, opts)
}

// Overview delegates to the wrapped service.
func (s *LoggingIndexService) Overview() string {
	return s.next.Overview()
}

// Files delegates to the wrapped service.
func (s *LoggingIndexService) Files() []string {
	return s.next.Files()
}

// FileTOC delegates to the wrapped service and logs misses.
func (s *LoggingIndexService) FileTOC(file string) (string, bool) {
	toc, ok := s.next.FileTOC(file)
	if !ok {
		s.logger.Debug("file not found", "file", file)
	}
	return toc, ok
}

// Section delegates to the wrapped service and logs misses.
func (s *LoggingIndexService) Section(id string) (*anydocs.Section, bool) {
	section, ok := s.next.Section(id)
	if !ok {
		s.logger.Debug("section not found", "id", id)
	}
	return section, ok
}

// SectionsByTitle delegates to the wrapped service and logs the lookup.
func (s *LoggingIndexService) SectionsByTitle(title, file string) (sections []*anydocs.Section) {
	defer func(begin time.Time) {
		s.logger.Debug("find sections",
			"title", title,
			"file", file,
			"count", len(sections),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.SectionsByTitle(title, file)
}

// Stats delegates to the wrapped service.
func (s *LoggingIndexService) Stats() anydocs.IndexStats {
	return s.next.Stats()
}
