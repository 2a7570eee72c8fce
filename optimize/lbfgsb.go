package optimize

import (
	"math"

	lbfgsb "github.com/idavydov/go-lbfgsb"
)

// LBFGSB is a limited-memory Broyden-Fletcher-Goldfarb-Shanno
// optimizer with bounding constraints. Gradients are estimated with
// central differences on model copies.
type LBFGSB struct {
	BaseOptimizer
	dH         float64
	grad       []float64
	exitStatus string
}

// NewLBFGSB creates a new LBFGSB optimizer.
func NewLBFGSB() *LBFGSB {
	return &LBFGSB{
		BaseOptimizer: BaseOptimizer{
			repPeriod: 10,
		},
		dH: 1e-6,
	}
}

// Logger is called by the lbfgsb library on every iteration.
func (l *LBFGSB) Logger(info *lbfgsb.OptimizationIterationInformation) {
	l.i = info.Iteration
	l.parameters.SetValues(info.X)
	if l.repPeriod > 0 && info.Iteration%l.repPeriod == 0 {
		l.PrintLine(-info.F)
	}
	select {
	case s := <-l.sig:
		log.Fatal("Received signal, exiting:", s)
	default:
	}
}

// EvaluateFunction returns the negative log likelihood for the
// minimizer.
func (l *LBFGSB) EvaluateFunction(x []float64) float64 {
	if !l.parameters.ValuesInRange(x) {
		return math.Inf(+1)
	}

	l.parameters.SetValues(x)

	L := l.Likelihood()
	l.calls++
	l.saveMaxL(L)
	return -L
}

// EvaluateGradient estimates the gradient of the negative log
// likelihood with central differences.
func (l *LBFGSB) EvaluateGradient(x []float64) (grad []float64) {
	if l.grad == nil {
		l.grad = make([]float64, len(x))
	}
	grad = l.grad

	for i := range x {
		no1 := l.Optimizable.Copy()
		par1 := no1.GetFloatParameters()
		par1.SetValues(x)
		par1[i].Set(x[i] - l.dH)
		l1 := -no1.Likelihood()
		l.calls++

		no2 := no1.Copy()
		par2 := no2.GetFloatParameters()
		par2[i].Set(x[i] + l.dH)
		l2 := -no2.Likelihood()
		l.calls++

		grad[i] = (l2 - l1) / 2 / l.dH
	}

	select {
	case s := <-l.sig:
		log.Fatal("Received signal, exiting:", s)
	default:
	}
	return
}

// Run starts the optimization.
func (l *LBFGSB) Run(iterations int) {
	l.maxL = math.Inf(-1)
	l.PrintHeader()

	bounds := make([][2]float64, len(l.parameters))
	for i, par := range l.parameters {
		bounds[i][0] = par.GetMin() + 1e-5
		bounds[i][1] = par.GetMax() - 1e-5
	}

	opt := new(lbfgsb.Lbfgsb)
	opt.SetApproximationSize(10)
	opt.SetFTolerance(1e-9)
	opt.SetGTolerance(1e-9)

	opt.SetBounds(bounds)
	opt.SetLogger(l.Logger)

	_, exitStatus := opt.Minimize(l, l.parameters.Values(nil))
	l.exitStatus = exitStatus.String()
	log.Info("Exit status: ", exitStatus)

	// set the model to the best parameters found
	if l.maxLPar != nil {
		l.parameters.SetValues(l.maxLPar)
	}

	if !l.Quiet {
		log.Infof("Likelihood function calls: %v", l.calls)
	}
}

// lbfgsbSummary stores LBFGSB summary information.
type lbfgsbSummary struct {
	*baseSummary
	// ExitStatus is the optimizer exit status message.
	ExitStatus string `json:"exitStatus,omitempty"`
}

// Summary returns the optimization summary.
func (l *LBFGSB) Summary() Summary {
	return &lbfgsbSummary{
		baseSummary: l.summary("lbfgsb"),
		ExitStatus:  l.exitStatus,
	}
}
