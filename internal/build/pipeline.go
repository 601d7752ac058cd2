// Package build runs one parse and generate cycle and records its outcome.
package build

import (
	"context"
	"fmt"
	"sync"
	"time"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/generator"
	"github.com/conneroisu/mvcgen/internal/logging"
	"github.com/conneroisu/mvcgen/internal/parser"
	"github.com/conneroisu/mvcgen/internal/types"
)

// Pipeline parses the source directories and regenerates the code derived
// from them.
type Pipeline struct {
	dirs      parser.Dirs
	parser    *parser.Parser
	cache     *parser.Cache
	generator *generator.Generator
	logger    logging.Logger
	metrics   *BuildMetrics
	callbacks []BuildCallback
	mu        sync.Mutex
}

// BuildResult represents the result of a build operation
type BuildResult struct {
	App       *types.Application
	Generated *generator.Result
	Error     error
	Duration  time.Duration
	// CacheHits and CacheMisses count parse cache lookups made by this build.
	CacheHits   int64
	CacheMisses int64
}

// Summary describes a successful build in one line.
func (r BuildResult) Summary() string {
	actions := 0
	for _, c := range r.App.Controllers {
		actions += len(c.Actions)
	}
	return fmt.Sprintf("%d controllers, %d actions, %d views: %d files generated, %d written, %d removed in %s",
		len(r.App.Controllers), actions, len(r.App.Views),
		len(r.Generated.Files), r.Generated.Written, len(r.Generated.Removed),
		r.Duration.Round(time.Millisecond))
}

// BuildCallback is called when a build completes
type BuildCallback func(result BuildResult)

// NewPipeline creates a pipeline. cache may be nil.
func NewPipeline(dirs parser.Dirs, target generator.Target, cache *parser.Cache, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Pipeline{
		dirs:      dirs,
		parser:    parser.New(logger, cache),
		cache:     cache,
		generator: generator.New(target, logger),
		logger:    logger.WithComponent("build"),
		metrics:   NewBuildMetrics(),
	}
}

// AddCallback adds a callback to be called when builds complete
func (p *Pipeline) AddCallback(callback BuildCallback) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks = append(p.callbacks, callback)
}

// Build runs one cycle. Builds are serialized; a concurrent call waits for
// the running one.
func (p *Pipeline) Build(ctx context.Context) BuildResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	perf := logging.StartOperation(p.logger, "build")
	start := time.Now()
	hits, misses := p.cache.Stats()

	result := BuildResult{}
	result.App, result.Error = p.parser.Parse(ctx, p.dirs)
	if result.Error == nil {
		result.Generated, result.Error = p.generator.Generate(ctx, result.App)
	}
	result.Duration = time.Since(start)

	afterHits, afterMisses := p.cache.Stats()
	result.CacheHits = afterHits - hits
	result.CacheMisses = afterMisses - misses

	if result.Error != nil {
		perf.EndWithError(ctx, result.Error)
		mvcerrors.Report(ctx, p.logger, result.Error)
	} else {
		perf.End(ctx,
			"controllers", len(result.App.Controllers),
			"views", len(result.App.Views),
			"written", result.Generated.Written)
	}

	p.metrics.RecordBuild(result)
	for _, callback := range p.callbacks {
		callback(result)
	}
	return result
}

// Forget drops cached parse results for path.
func (p *Pipeline) Forget(path string) {
	p.cache.Remove(path)
}

// Metrics returns the pipeline's build metrics.
func (p *Pipeline) Metrics() *BuildMetrics {
	return p.metrics
}
