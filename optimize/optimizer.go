// Package optimize provides likelihood maximization for models with
// box-constrained float parameters.
package optimize

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("optimize")

// Optimizable is a model with a likelihood function of float
// parameters.
type Optimizable interface {
	// GetFloatParameters returns the model parameters.
	GetFloatParameters() FloatParameters
	// Copy returns a copy of the model.
	Copy() Optimizable
	// Likelihood returns the log likelihood of the model given
	// the current parameter values.
	Likelihood() float64
}

// Optimizer is a maximizer of an Optimizable likelihood.
type Optimizer interface {
	// SetOptimizable sets the model to optimize.
	SetOptimizable(Optimizable)
	// SetTrajectoryOutput sets a writer for the optimization
	// trajectory, nil disables trajectory output.
	SetTrajectoryOutput(io.Writer)
	// SetReportPeriod sets the number of iterations between
	// trajectory lines.
	SetReportPeriod(int)
	// WatchSignals installs signal handlers terminating the
	// optimization.
	WatchSignals(...os.Signal)
	// Run performs at most iterations iterations of the
	// optimization.
	Run(iterations int)
	// GetMaxLikelihood returns the maximum likelihood found.
	GetMaxLikelihood() float64
	// GetMaxLikelihoodParameters returns parameter values for
	// the maximum likelihood found.
	GetMaxLikelihoodParameters() map[string]float64
	// PrintResults logs the best parameter values.
	PrintResults()
	// Summary returns the optimization summary for reporting.
	Summary() Summary
}

// Summary provides access to optimization results.
type Summary interface {
	// GetMaxLikelihood returns the maximum likelihood found.
	GetMaxLikelihood() float64
	// GetMaxLikelihoodParameters returns parameter values for
	// the maximum likelihood found.
	GetMaxLikelihoodParameters() map[string]float64
}

// baseSummary stores summary information common to all optimizers.
type baseSummary struct {
	// Method is the optimization method name.
	Method string `json:"method"`
	// MaxLnL is the maximum log likelihood found.
	MaxLnL float64 `json:"maxLnL"`
	// MaxLParameters are the parameter values for MaxLnL.
	MaxLParameters map[string]float64 `json:"maxLParameters"`
	// NIterations is the number of iterations performed.
	NIterations int `json:"nIterations"`
	// NCalls is the number of likelihood function calls.
	NCalls int `json:"nLikelihoodCalls"`
}

func (s *baseSummary) GetMaxLikelihood() float64 {
	return s.MaxLnL
}

func (s *baseSummary) GetMaxLikelihoodParameters() map[string]float64 {
	return s.MaxLParameters
}

// BaseOptimizer provides the common functionality of optimizers.
type BaseOptimizer struct {
	Optimizable
	parameters FloatParameters

	i       int
	l       float64
	maxL    float64
	maxLPar []float64
	calls   int

	repPeriod int
	output    io.Writer
	sig       chan os.Signal

	// Quiet disables trajectory and result output.
	Quiet bool
}

// SetOptimizable sets the model to optimize.
func (o *BaseOptimizer) SetOptimizable(opt Optimizable) {
	o.Optimizable = opt
	o.parameters = opt.GetFloatParameters()
}

// SetTrajectoryOutput sets a writer for the optimization trajectory.
func (o *BaseOptimizer) SetTrajectoryOutput(w io.Writer) {
	o.output = w
}

// SetReportPeriod sets the number of iterations between trajectory
// lines.
func (o *BaseOptimizer) SetReportPeriod(period int) {
	o.repPeriod = period
}

// WatchSignals installs signal handlers terminating the optimization.
func (o *BaseOptimizer) WatchSignals(sigs ...os.Signal) {
	o.sig = make(chan os.Signal, 1)
	signal.Notify(o.sig, sigs...)
}

// saveMaxL remembers the parameter values if the likelihood improved.
func (o *BaseOptimizer) saveMaxL(l float64) {
	if l > o.maxL || o.maxLPar == nil {
		o.maxL = l
		o.maxLPar = o.parameters.Values(o.maxLPar)
	}
}

// PrintHeader prints the trajectory header.
func (o *BaseOptimizer) PrintHeader() {
	if o.Quiet || o.output == nil {
		return
	}
	fmt.Fprintf(o.output, "iteration\tlikelihood\t%s\n", o.parameters.NamesString())
}

// PrintLine prints a single trajectory line.
func (o *BaseOptimizer) PrintLine(l float64) {
	if o.Quiet || o.output == nil {
		return
	}
	fmt.Fprintf(o.output, "%d\t%f\t%s\n", o.i, l, o.parameters.ValuesString())
}

// PrintResults logs the best parameter values.
func (o *BaseOptimizer) PrintResults() {
	if o.Quiet {
		return
	}
	for name, value := range o.GetMaxLikelihoodParameters() {
		log.Noticef("%s=%v", name, value)
	}
	log.Noticef("Maximum likelihood: %v", o.maxL)
}

// GetMaxLikelihood returns the maximum likelihood found.
func (o *BaseOptimizer) GetMaxLikelihood() float64 {
	return o.maxL
}

// GetMaxLikelihoodParameters returns parameter values for the maximum
// likelihood found.
func (o *BaseOptimizer) GetMaxLikelihoodParameters() map[string]float64 {
	res := make(map[string]float64, len(o.parameters))
	for i, par := range o.parameters {
		if o.maxLPar != nil {
			res[par.Name()] = o.maxLPar[i]
		} else {
			res[par.Name()] = par.Get()
		}
	}
	return res
}

// summary returns the common summary part.
func (o *BaseOptimizer) summary(method string) *baseSummary {
	return &baseSummary{
		Method:         method,
		MaxLnL:         o.maxL,
		MaxLParameters: o.GetMaxLikelihoodParameters(),
		NIterations:    o.i,
		NCalls:         o.calls,
	}
}
