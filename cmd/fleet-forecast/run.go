package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/fleet-forecast/internal/config"
	"github.com/iwvelando/fleet-forecast/internal/forecast"
	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/iwvelando/fleet-forecast/pkg/output"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
	"go.uber.org/zap"
)

type sweepFlags struct {
	steps     int
	span      float64
	variables []string
}

// session is a loaded configuration with its logger and output format.
type session struct {
	conf   *config.Configuration
	logger *zap.Logger
	format string
}

// setup loads the configuration, builds the logger and resolves the output
// format. Callers must Sync the logger.
func setup(opts *options) (*session, error) {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", opts.configPath, err)
		return nil, err
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return nil, err
	}

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(), zap.String("op", "main"))
		_ = logger.Sync()
		return nil, err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	return &session{conf: conf, logger: logger, format: outputFormat}, nil
}

func runForecast(w io.Writer, opts *options) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.logger.Sync()
	}()

	results, err := forecast.GetForecast(s.logger, *s.conf)
	if err != nil {
		s.logger.Error("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	switch s.format {
	case constants.OutputFormatPretty:
		output.WritePretty(w, results)
	case constants.OutputFormatCSV:
		_, err = io.WriteString(w, output.CsvString(results))
	case constants.OutputFormatJSON:
		err = output.WriteJSON(w, results)
	}
	return err
}

func runStation(w io.Writer, opts *options) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.logger.Sync()
	}()

	estimates, err := forecast.EstimateStations(s.logger, *s.conf)
	if err != nil {
		s.logger.Error("failed to estimate stations",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	if s.format == constants.OutputFormatJSON {
		return output.WriteJSON(w, estimates)
	}
	output.WriteStations(w, estimates)
	return nil
}

func runSensitivity(w io.Writer, opts *options, sweep sweepFlags) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.logger.Sync()
	}()

	applySweepFlags(s.conf, sweep)

	results, err := forecast.GetForecast(s.logger, *s.conf)
	if err != nil {
		s.logger.Error("failed to run sensitivity analysis",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	if s.format == constants.OutputFormatJSON {
		return output.WriteJSON(w, results)
	}
	output.WriteSensitivity(w, results)
	return nil
}

// applySweepFlags enables sweeps on every scenario and applies the flag
// overrides on top of the configured settings.
func applySweepFlags(conf *config.Configuration, sweep sweepFlags) {
	apply := func(s *config.Sensitivity) {
		s.Enabled = true
		if sweep.steps != 0 {
			s.Steps = sweep.steps
		}
		if sweep.span != 0 {
			s.Span = sweep.span
		}
		if len(sweep.variables) > 0 {
			s.Variables = sweep.variables
		}
	}

	apply(&conf.Common.Sensitivity)
	for i := range conf.Scenarios {
		if conf.Scenarios[i].Sensitivity != nil {
			apply(conf.Scenarios[i].Sensitivity)
		}
	}
}

func runConfig(w io.Writer, opts *options) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.logger.Sync()
	}()

	return s.conf.ExportYAML(w)
}
