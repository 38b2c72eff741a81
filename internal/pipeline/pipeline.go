// Package pipeline runs one CLI invocation as a fixed-order chain of
// stages. Each stage receives the Invocation, mutates it, and may abort the
// chain by returning an error: resolve credentials, load input files, invoke
// the remote service, emit output.
package pipeline

import (
	"context"
	"io"

	"github.com/mikey/mailsift/internal/core"
	"go.uber.org/zap"
)

// Command names recognized by the pipeline.
const (
	CommandEnrich  = "enrich"
	CommandAnalyze = "analyze"
)

// Invocation carries the state of one command run through the stage chain
type Invocation struct {
	Command        string
	InputPath      string
	DetectionsPath string
	OutputPath     string
	Format         string

	// APIKeyFlag is the raw -k/--api-key value; APIKey is set by the
	// credentials stage.
	APIKeyFlag string
	APIKey     string

	// Loaded input state.
	RawMessage string
	DataModel  string
	Detections []core.Detection

	// Result of the remote call.
	Result core.Result

	Stdout io.Writer
}

// Stage is one step of an invocation
type Stage func(ctx context.Context, inv *Invocation) error

// Pipeline applies stages in order, stopping at the first error
type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

// New creates a pipeline from the given stages
func New(logger *zap.Logger, stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages, logger: logger}
}

// Run threads the invocation through every stage
func (p *Pipeline) Run(ctx context.Context, inv *Invocation) error {
	for _, stage := range p.stages {
		if err := stage(ctx, inv); err != nil {
			return err
		}
	}
	p.logger.Debug("Invocation completed", zap.String("command", inv.Command))
	return nil
}
