package main

import (
	"bitbucket.org/Davydov/goherit/optimize"
	"bitbucket.org/Davydov/goherit/pmodel"
)

// CallSummary stores goherit run summary information.
type CallSummary struct {
	// Version stores goherit version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all
	// command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation
	// initialization.
	Seed int64 `json:"seed"`
	// TotalTime is the computations time in seconds.
	TotalTime float64 `json:"time"`
	// Infer is the infer command payload.
	Infer *InferSummary `json:"infer,omitempty"`
	// Fit is the fit command payload.
	Fit *FitSummary `json:"fit,omitempty"`
	// Test is the test command payload.
	Test *TestSummary `json:"test,omitempty"`
}

// InferSummary stores the results of posterior inference.
type InferSummary struct {
	// Pedigree is a short description of the input pedigree.
	Pedigree string `json:"pedigree"`
	// Model is the model summary.
	Model interface{} `json:"model,omitempty"`
	// Result are the normalized posterior distributions.
	Result *pmodel.Result `json:"result"`
}

// FitSummary stores the results of one likelihood optimization.
type FitSummary struct {
	// Pedigree is a short description of the input pedigree.
	Pedigree string `json:"pedigree"`
	// Optimizer is the optimizer summary.
	Optimizer optimize.Summary `json:"optimizer"`
	// Model is the model summary at the optimum.
	Model interface{} `json:"model,omitempty"`
	// Posterior are posterior distributions under the fitted
	// parameters (unless disabled).
	Posterior *pmodel.Result `json:"posterior,omitempty"`
	// Hypothesis is H0 or H1 for the test command.
	Hypothesis string `json:"hypothesis,omitempty"`
}

// TestSummary stores summary information for the likelihood-ratio
// test.
type TestSummary struct {
	// H0 is the result of the shared-penetrance fit.
	H0 *FitSummary `json:"h0"`
	// H1 is the result of the free-penetrance fit.
	H1 *FitSummary `json:"h1"`
	// Runs stores all optimizations including reruns.
	Runs []*FitSummary `json:"runs"`
	// D is the likelihood-ratio statistic 2*(lnL1-lnL0).
	D float64 `json:"D"`
	// Df is the degrees of freedom of the test.
	Df float64 `json:"df"`
	// PValue is the chi-squared p-value of D.
	PValue float64 `json:"pvalue"`
}
