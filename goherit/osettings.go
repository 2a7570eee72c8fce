package main

import (
	"errors"
	"fmt"
	"io"

	"bitbucket.org/Davydov/goherit/optimize"
	"bitbucket.org/Davydov/goherit/pmodel"
)

// errNotInRange is returned for starting parameters outside the
// boundaries.
var errNotInRange = errors.New("initial parameters are not in the range")

// optimizerSettings stores settings for creation of a new optimizer.
type optimizerSettings struct {
	method string
	model  *pmodel.Model

	iterations int
	report     int

	trajF io.Writer
}

// newOptimizerSettings creates a new optimizerSettings from the
// command line parameters (global variables).
func newOptimizerSettings(model *pmodel.Model) *optimizerSettings {
	return &optimizerSettings{
		method: *method,
		model:  model,

		iterations: *iterations,
		report:     *report,

		trajF: trajF,
	}
}

// create creates and initializes a new optimizer from
// optimizerSettings.
func (o *optimizerSettings) create() (optimize.Optimizer, error) {
	opt, err := o.getOptimizer()
	if err != nil {
		return nil, err
	}
	log.Infof("Using %s optimization.", o.method)

	opt.SetTrajectoryOutput(o.trajF)
	opt.SetOptimizable(o.model)
	opt.SetReportPeriod(o.report)

	return opt, nil
}

// getOptimizer returns an optimizer from settings.
func (o *optimizerSettings) getOptimizer() (optimize.Optimizer, error) {
	switch o.method {
	case "lbfgsb":
		return optimize.NewLBFGSB(), nil
	case "none":
		return optimize.NewNone(), nil
	}
	return nil, fmt.Errorf("unknown optimization method: %s", o.method)
}
