package main

import (
	"os"

	"bitbucket.org/Davydov/goherit/dist"
	"bitbucket.org/Davydov/goherit/pmodel"
)

// testDf is the degrees of freedom of the association test: H1 has
// three free penetrances where H0 has one shared.
const testDf = 2

// runTest performs the likelihood-ratio test of association between
// the gene and the trait. H0 shares a single penetrance across gene
// counts, H1 fits the three penetrances freely.
func runTest() (summary *TestSummary) {
	// transfer options from the test command
	method = testMethod
	iterations = testIter
	report = testReport

	data, err := pmodel.NewData(*testPedF)
	if err != nil {
		log.Fatal(err)
	}

	if *testOutF != "" {
		f, err := os.Create(*testOutF)
		if err != nil {
			log.Fatal("Error creating trajectory file:", err)
		}
		defer f.Close()
		trajF = f
	}

	summary = &TestSummary{Df: testDf}

	m0 := pmodel.NewModel(data, true)
	log.Notice("Running H0")
	res0 := fitModel(m0, newOptimizerSettings(m0), nil)
	res0.Hypothesis = "H0"
	summary.H0 = res0
	summary.Runs = append(summary.Runs, res0)

	m1 := pmodel.NewModel(data, false)
	log.Notice("Running H1")
	res1 := fitModel(m1, newOptimizerSettings(m1), nil)
	res1.Hypothesis = "H1"
	summary.H1 = res1
	summary.Runs = append(summary.Runs, res1)

	l0 := res0.Optimizer.GetMaxLikelihood()
	l1 := res1.Optimizer.GetMaxLikelihood()

	// The models are nested, so the likelihood ratio cannot be
	// negative. If the H1 optimization got stuck, rerun it from
	// the H0 optimum.
	if lrt := 2 * (l1 - l0); lrt < 0 {
		log.Noticef("Rerunning H1 because of negative LR (D=%g)", lrt)

		start := h1StartFromH0(res0.Optimizer.GetMaxLikelihoodParameters())
		m1 = pmodel.NewModel(data, false)
		res1 = fitModel(m1, newOptimizerSettings(m1), start)
		res1.Hypothesis = "H1"
		summary.Runs = append(summary.Runs, res1)

		if res1.Optimizer.GetMaxLikelihood() > l1 {
			summary.H1 = res1
			l1 = res1.Optimizer.GetMaxLikelihood()
		}
		if 2*(l1-l0) < 0 {
			log.Warning("Warning: couldn't get rid of negative LR")
		}
	}

	summary.D = 2 * (l1 - l0)
	summary.PValue = dist.PValueChi2(summary.D, testDf)

	log.Noticef("lnL0=%g, lnL1=%g", l0, l1)
	log.Noticef("D=%g, df=%d, p-value=%g", summary.D, testDf, summary.PValue)

	return
}

// h1StartFromH0 converts an H0 optimum into an H1 starting point by
// expanding the shared penetrance.
func h1StartFromH0(h0par map[string]float64) map[string]float64 {
	start := map[string]float64{
		"mu": h0par["mu"],
	}
	for _, name := range []string{"pen0", "pen1", "pen2"} {
		start[name] = h0par["pen"]
	}
	return start
}
