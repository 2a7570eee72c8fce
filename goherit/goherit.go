/*

Goherit performs exact Bayesian inference of a single-gene trait over
a family pedigree. For every person it computes the posterior
distribution of the number of gene copies (0, 1 or 2) and of
exhibiting the trait, given partial trait observations.

The basic usage of goherit looks like this:

	goherit infer family.csv

, this will print posterior distributions for every person.

The model parameters (mutation rate and penetrances) can be estimated
by maximum likelihood:

	goherit fit family.csv

, and a likelihood-ratio test of association between the gene and the
trait is available as:

	goherit test family.csv

To see all the options run:

	goherit --help

*/
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/op/go-logging"
	"gopkg.in/alecthomas/kingpin.v2"
)

// These variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("goherit")
var formatter = logging.MustStringFormatter(`%{message}`)

// lastLine returns the last line of a file content.
func lastLine(fn string) (line string, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return line, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line = scanner.Text()
	}
	err = scanner.Err()
	return line, err
}

// command-line options
var (
	// application
	app = kingpin.New("goherit", "exact Bayesian inference of trait inheritance over pedigrees").Version(version)

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()
	seed  = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()

	// infer command
	inferCmd     = app.Command("infer", "compute posterior distributions under the default model parameters")
	inferPedF    = inferCmd.Arg("pedigree", "pedigree file (csv or PLINK .fam)").Required().ExistingFile()
	checkpointF  = inferCmd.Flag("checkpoint", "checkpoint file for resumable runs").String()
	checkpointDT = inferCmd.Flag("cpseconds", "checkpoint save interval in seconds").Default("30").Float64()

	// fit command
	fitCmd  = app.Command("fit", "estimate model parameters by maximum likelihood")
	fitPedF = fitCmd.Arg("pedigree", "pedigree file (csv or PLINK .fam)").Required().ExistingFile()
	method  = fitCmd.Flag("method", "optimization method to use "+
		"(lbfgsb: limited-memory Broyden-Fletcher-Goldfarb-Shanno with bounding constraints, "+
		"none: just compute likelihood, no optimization"+
		")").Default("lbfgsb").String()
	iterations = fitCmd.Flag("iter", "number of iterations").Default("10000").Int()
	report     = fitCmd.Flag("report", "report every N iterations").Default("10").Int()
	fixPen     = fitCmd.Flag("fixpen", "use a single shared penetrance for all gene counts").Bool()
	randomize  = fitCmd.Flag("randomize", "use uniformly distributed random starting point").Bool()
	startF     = fitCmd.Flag("start", "read starting parameters from a trajectory or JSON file").ExistingFile()
	outF       = fitCmd.Flag("out", "write optimization trajectory to a file").String()
	noFinal    = fitCmd.Flag("nofinal", "don't compute posterior distributions under the fitted parameters").Bool()

	// test command
	testCmd    = app.Command("test", "likelihood-ratio test of association between the gene and the trait")
	testPedF   = testCmd.Arg("pedigree", "pedigree file (csv or PLINK .fam)").Required().ExistingFile()
	testMethod = testCmd.Flag("method", "optimization method to use (lbfgsb or none)").Default("lbfgsb").String()
	testIter   = testCmd.Flag("iter", "number of iterations").Default("10000").Int()
	testReport = testCmd.Flag("report", "report every N iterations").Default("10").Int()
	testOutF   = testCmd.Flag("out", "write optimization trajectories to a file").String()
)

// trajF is the trajectory output file (stdout by default).
var trajF = os.Stdout

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, pkg := range []string{"goherit", "pmodel", "pedigree", "optimize", "checkpoint"} {
		logging.SetLevel(level, pkg)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)
	rand.Seed(*seed)

	startTime := time.Now()

	summary := &CallSummary{
		Version:     version,
		CommandLine: os.Args,
		Seed:        *seed,
	}

	switch cmd {
	case inferCmd.FullCommand():
		summary.Infer = runInfer()
	case fitCmd.FullCommand():
		summary.Fit = runFit()
	case testCmd.FullCommand():
		summary.Test = runTest()
	}

	deltaT := time.Since(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.TotalTime = deltaT.Seconds()

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
