// Package pipeline chains the generation stages together: prompt the
// model for an abstract circuit, interpret the response and push
// corrections back until it decodes, then build the detailed system,
// save it and render its simulation script. Every provider run lands
// in the history store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/abstract"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/builder"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/history"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/interpreter"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/prompt"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/request"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/simscape"
)

// defaultMaxCorrections bounds the correction rounds after an invalid
// model before the run is abandoned.
const defaultMaxCorrections = 3

// Options configures a Pipeline. Empty directories disable the
// corresponding output; nil Artifacts and History disable
// persistence.
type Options struct {
	// Provider is recorded on history rows.
	Provider string

	// ModelName names generated systems. Empty picks the system
	// default.
	ModelName string

	// MaxCorrections bounds the correction rounds. Zero selects the
	// default, negative disables corrections.
	MaxCorrections int

	// Summarize condenses the description before modeling.
	Summarize bool

	// Solver and StopTime override the simulation defaults of built
	// systems when set.
	Solver   string
	StopTime int

	SystemJSONDir string
	ScriptDir     string

	Artifacts *prompt.Artifacts
	History   *history.Store
	Logger    *zap.Logger
}

// Pipeline drives description-to-script generation runs.
type Pipeline struct {
	client    request.Client
	prompts   *prompt.Generator
	interp    *interpreter.Interpreter
	builder   *builder.Builder
	artifacts *prompt.Artifacts
	history   *history.Store
	log       *zap.Logger

	provider       string
	modelName      string
	maxCorrections int
	summarize      bool
	solver         string
	stopTime       int
	systemJSONDir  string
	scriptDir      string
}

// Report summarizes one generation run. Token and cost figures sum
// over every request of the run, corrections included.
type Report struct {
	ID          string
	Description string
	Model       string
	Corrections int

	InputTokens  int
	OutputTokens int
	Cost         float64
	Duration     time.Duration

	Abstract *abstract.System
	System   *model.System

	SystemPath string
	ScriptPath string
}

// New creates a pipeline around a model client.
func New(client request.Client, opts Options) (*Pipeline, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	interp, err := interpreter.New(log)
	if err != nil {
		return nil, err
	}

	maxCorrections := opts.MaxCorrections
	if maxCorrections == 0 {
		maxCorrections = defaultMaxCorrections
	}
	if maxCorrections < 0 {
		maxCorrections = 0
	}

	return &Pipeline{
		client:         client,
		prompts:        prompt.NewGenerator(),
		interp:         interp,
		builder:        builder.New(log),
		artifacts:      opts.Artifacts,
		history:        opts.History,
		log:            log,
		provider:       opts.Provider,
		modelName:      opts.ModelName,
		maxCorrections: maxCorrections,
		summarize:      opts.Summarize,
		solver:         opts.Solver,
		stopTime:       opts.StopTime,
		systemJSONDir:  opts.SystemJSONDir,
		scriptDir:      opts.ScriptDir,
	}, nil
}

// Generate turns a natural language description into a built system
// and its simulation script. Responses whose circuit references
// unknown components or connections are sent back for correction up
// to the configured limit; responses that are not valid circuit JSON
// at all abort the run.
func (p *Pipeline) Generate(ctx context.Context, description string) (*Report, error) {
	start := time.Now()
	report := &Report{ID: uuid.NewString(), Description: description}

	specification := description
	if p.summarize {
		resp, _, err := p.send(ctx, report, p.prompts.Summary(description))
		if err != nil {
			return nil, p.fail(report, start, "", "", err)
		}
		specification = resp.Text
		p.log.Debug("description summarized",
			zap.String("run", report.ID),
			zap.Int("summary_len", len(specification)))
	}

	promptText := p.prompts.CreateAbstractModel(specification)
	resp, dir, err := p.send(ctx, report, promptText)
	if err != nil {
		return nil, p.fail(report, start, promptText, "", err)
	}

	raw := resp.Text
	var abs *abstract.System
	for {
		doc, sys, ierr := p.interp.Interpret(raw)
		p.saveDocument(dir, doc)
		if ierr == nil {
			abs = sys
			break
		}

		var compErr *abstract.ComponentError
		var connErr *abstract.ConnectionError
		if !errors.As(ierr, &compErr) && !errors.As(ierr, &connErr) {
			return nil, p.fail(report, start, promptText, raw, ierr)
		}

		if report.Corrections >= p.maxCorrections {
			return nil, p.fail(report, start, promptText, raw,
				fmt.Errorf("correction limit reached (%d): %w", p.maxCorrections, ierr))
		}

		correction, perr := p.prompts.Autocorrect(raw, ierr)
		if perr != nil {
			return nil, p.fail(report, start, promptText, raw, perr)
		}
		p.log.Info("requesting correction",
			zap.String("run", report.ID),
			zap.Int("round", report.Corrections+1),
			zap.String("cause", ierr.Error()))

		resp, dir, err = p.send(ctx, report, correction)
		if err != nil {
			return nil, p.fail(report, start, correction, raw, err)
		}
		promptText = correction
		raw = resp.Text
		report.Corrections++
	}
	report.Abstract = abs

	if err := p.finishBuild(report, abs, p.modelName); err != nil {
		return nil, p.fail(report, start, promptText, raw, err)
	}

	report.Duration = time.Since(start)
	p.record(&history.Entry{
		ID:           report.ID,
		Provider:     p.provider,
		Model:        report.Model,
		Description:  description,
		Prompt:       promptText,
		Response:     raw,
		InputTokens:  report.InputTokens,
		OutputTokens: report.OutputTokens,
		Cost:         report.Cost,
		Duration:     report.Duration,
		Status:       history.StatusCompleted,
	})
	p.log.Info("generation completed",
		zap.String("run", report.ID),
		zap.String("model", report.Model),
		zap.Int("components", len(abs.Components)),
		zap.Int("corrections", report.Corrections),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// BuildDocument builds the detailed system and its simulation script
// from an abstract circuit document, without calling the model.
func (p *Pipeline) BuildDocument(doc []byte, name string) (*Report, error) {
	start := time.Now()

	_, abs, err := p.interp.Interpret(string(doc))
	if err != nil {
		return nil, err
	}

	report := &Report{ID: uuid.NewString(), Abstract: abs}
	if err := p.finishBuild(report, abs, name); err != nil {
		return nil, err
	}
	report.Duration = time.Since(start)
	return report, nil
}

// send performs one model request, persists the exchange and folds
// the usage into the report. The returned directory is where the
// artifact store filed the exchange, empty when persistence is off.
func (p *Pipeline) send(ctx context.Context, report *Report, promptText string) (request.ResponseData, string, error) {
	resp, err := p.client.Complete(ctx, promptText)
	if err != nil {
		return request.ResponseData{}, "", err
	}

	report.Model = resp.Model
	report.InputTokens += resp.InputTokens
	report.OutputTokens += resp.OutputTokens
	if cost, err := resp.Cost(); err == nil {
		report.Cost += cost
	}

	dir := ""
	if p.artifacts != nil {
		dir, err = p.artifacts.SaveExchange(promptText, resp.Text)
		if err != nil {
			p.log.Warn("failed to save exchange", zap.Error(err))
			dir = ""
		}
	}
	return resp, dir, nil
}

func (p *Pipeline) saveDocument(dir string, doc []byte) {
	if p.artifacts == nil || dir == "" || doc == nil {
		return
	}
	if err := p.artifacts.SaveDocument(dir, doc); err != nil {
		p.log.Warn("failed to save document", zap.Error(err))
	}
}

// finishBuild turns the abstract circuit into the detailed system,
// applies the simulation settings and writes the configured outputs.
func (p *Pipeline) finishBuild(report *Report, abs *abstract.System, name string) error {
	sys, err := p.builder.Build(abs, name)
	if err != nil {
		return err
	}
	if p.solver != "" {
		sys.Solver = p.solver
	}
	if p.stopTime > 0 {
		sys.StopTime = p.stopTime
	}
	report.System = sys

	if p.systemJSONDir != "" {
		path, err := sys.SaveJSON(p.systemJSONDir)
		if err != nil {
			return err
		}
		report.SystemPath = path
	}

	if p.scriptDir != "" {
		script, err := simscape.Script(sys, sys.Name())
		if err != nil {
			return err
		}
		if err := os.MkdirAll(p.scriptDir, 0755); err != nil {
			return fmt.Errorf("failed to create script directory: %w", err)
		}
		path := filepath.Join(p.scriptDir, simscape.ScriptFileName(sys.Name(), time.Now()))
		if err := os.WriteFile(path, []byte(script), 0644); err != nil {
			return fmt.Errorf("failed to write script: %w", err)
		}
		report.ScriptPath = path
	}
	return nil
}

// fail records the abandoned run and passes the cause through.
func (p *Pipeline) fail(report *Report, start time.Time, promptText, responseText string, cause error) error {
	report.Duration = time.Since(start)
	p.record(&history.Entry{
		ID:           report.ID,
		Provider:     p.provider,
		Model:        report.Model,
		Description:  report.Description,
		Prompt:       promptText,
		Response:     responseText,
		InputTokens:  report.InputTokens,
		OutputTokens: report.OutputTokens,
		Cost:         report.Cost,
		Duration:     report.Duration,
		Status:       history.StatusFailed,
		Error:        cause.Error(),
	})
	p.log.Warn("generation failed",
		zap.String("run", report.ID),
		zap.Error(cause))
	return cause
}

func (p *Pipeline) record(e *history.Entry) {
	if p.history == nil {
		return
	}
	if err := p.history.Record(e); err != nil {
		p.log.Warn("failed to record run", zap.Error(err))
	}
}
