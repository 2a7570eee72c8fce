package main

import (
	"fmt"
	"os"

	"bitbucket.org/Davydov/goherit/pmodel"
)

// fitModel runs one likelihood optimization for the model and
// returns its summary. The start map, if not empty, overrides the
// starting parameter values.
func fitModel(m *pmodel.Model, o *optimizerSettings, start map[string]float64) *FitSummary {
	if len(start) > 0 {
		par := m.GetFloatParameters()
		if err := par.SetFromMap(start); err != nil {
			log.Fatal(err)
		}
	}

	opt, err := o.create()
	if err != nil {
		log.Fatal(err)
	}

	opt.Run(o.iterations)
	opt.PrintResults()

	// leave the model at the maximum likelihood parameters
	if err := m.GetFloatParameters().SetFromMap(opt.GetMaxLikelihoodParameters()); err != nil {
		log.Fatal(err)
	}

	return &FitSummary{
		Optimizer: opt.Summary(),
		Model:     m.Summary(),
	}
}

// runFit estimates model parameters by maximum likelihood.
func runFit() *FitSummary {
	data, err := pmodel.NewData(*fitPedF)
	if err != nil {
		log.Fatal(err)
	}

	if *outF != "" {
		f, err := os.Create(*outF)
		if err != nil {
			log.Fatal("Error creating trajectory file:", err)
		}
		defer f.Close()
		trajF = f
	}

	ms := newModelSettings(data)
	m, err := ms.createInitalized()
	if err != nil {
		log.Fatal(err)
	}

	o := newOptimizerSettings(m)
	summary := fitModel(m, o, nil)
	summary.Pedigree = data.Pedigree.String()

	if !*noFinal {
		res, err := m.Infer()
		if err != nil {
			log.Fatal(err)
		}
		log.Notice("Posterior distributions under the fitted parameters:")
		fmt.Print(res)
		summary.Posterior = res
	}

	return summary
}
