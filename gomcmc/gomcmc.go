/*

Gomcmc samples posterior distributions with the Metropolis-Hastings
algorithm. It implements two targets: a biased random walk over a
discrete integer interval and a Bayesian model of inbreeding at a
single biallelic locus.

Sample the inbreeding model posterior given genotype counts:

	gomcmc inbreed 30 10 10

, this will run the joint sampler for 10000 sweeps and print the
trajectory to the standard output.

You can switch to componentwise updates or to a posterior mode
search:

	gomcmc inbreed -method componentwise 30 10 10
	gomcmc inbreed -method lbfgsb 30 10 10

Run the discrete random walk with a biased target:

	gomcmc walk -weights 1,2,3,4 -left 1 -right 4

To see all the options run:

	gomcmc help inbreed

*/
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("gomcmc")
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
	app = kingpin.New("gomcmc", "Metropolis-Hastings samplers for discrete and continuous targets").Version(version)

	// technical
	seed       = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()
	cpuProfile = app.Flag("cpuprofile", "write cpu profile to file").String()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	outF     = app.Flag("out", "write the trajectory to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()

	// walk is a Metropolis random walk over an integer interval
	cmdWalk     = app.Command("walk", "sample a discrete target with a Metropolis random walk")
	walkInit    = cmdWalk.Flag("init", "initial state").Default("1").Int()
	walkSteps   = cmdWalk.Flag("steps", "number of steps").Default("10000").Int()
	walkLeft    = cmdWalk.Flag("left", "left bound of the state space").Default("1").Int()
	walkRight   = cmdWalk.Flag("right", "right bound of the state space").Default("20").Int()
	walkWeights = cmdWalk.Flag("weights", "comma-separated target weights, one per state (uniform by default)").String()
	walkExact   = cmdWalk.Flag("exact", "compare the visit frequencies with the exact stationary distribution").Bool()

	// inbreed samples the posterior of the inbreeding model
	cmdInbreed = app.Command("inbreed", "sample the posterior of the inbreeding model")
	nAA        = cmdInbreed.Arg("nAA", "observed number of AA homozygotes").Required().Int()
	nAa        = cmdInbreed.Arg("nAa", "observed number of Aa heterozygotes").Required().Int()
	naa        = cmdInbreed.Arg("naa", "observed number of aa homozygotes").Required().Int()

	// sampler parameters
	method = cmdInbreed.Flag("method", "sampling method to use "+
		"(joint: Metropolis-Hastings updating f and p together, "+
		"componentwise: Metropolis-Hastings updating f and p in turn, "+
		"lbfgsb: posterior mode search with limited-memory Broyden–Fletcher–Goldfarb–Shanno with bounding constraints, "+
		"simplex: posterior mode search with downhill simplex, "+
		"none: just compute the posterior density"+
		")").Default("joint").String()
	sweeps = cmdInbreed.Flag("sweeps", "number of sweeps (iterations for the mode search)").Default("10000").Int()
	report = cmdInbreed.Flag("report", "report every N sweeps").Default("10").Int()

	// model parameters
	f0  = cmdInbreed.Flag("f0", "initial inbreeding coefficient").Default("0.5").Float64()
	p0  = cmdInbreed.Flag("p0", "initial A allele frequency").Default("0.5").Float64()
	fSD = cmdInbreed.Flag("fsd", "standard deviation of the f proposal").Default("0.07").Float64()
	pSD = cmdInbreed.Flag("psd", "standard deviation of the p proposal").Default("0.07").Float64()

	// prior parameters
	alphaF = cmdInbreed.Flag("alphaf", "alpha of the beta prior on f").Default("1").Float64()
	betaF  = cmdInbreed.Flag("betaf", "beta of the beta prior on f").Default("1").Float64()
	alphaP = cmdInbreed.Flag("alphap", "alpha of the beta prior on p").Default("1").Float64()
	betaP  = cmdInbreed.Flag("betap", "beta of the beta prior on p").Default("1").Float64()

	// mcmc parameters
	accept = cmdInbreed.Flag("accept", "report acceptance rate every N sweeps").Default("200").Int()

	// adaptive mcmc parameters
	adaptive = cmdInbreed.Flag("adaptive", "use adaptive MCMC").Bool()
	skip     = cmdInbreed.Flag("skip", "number of sweeps to skip for adaptive mcmc (5% by default)").Default("-1").Int()
	maxAdapt = cmdInbreed.Flag("maxadapt", "stop adapting after sweep (20% by default)").Default("-1").Int()

	// starting point
	randomize = cmdInbreed.Flag("randomize", "use a random starting point drawn from the priors").Bool()
	startF    = cmdInbreed.Flag("start", "read start position from the trajectory or JSON file").ExistingFile()

	// checkpoints
	checkpointF   = cmdInbreed.Flag("checkpoint", "checkpoint database file, resume from it if the run was interrupted").String()
	checkpointSec = cmdInbreed.Flag("chkpt-period", "checkpoint period in seconds").Default("30").Float64()
)

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
	logging.SetLevel(level, "gomcmc")
	logging.SetLevel(level, "mcmc")
	logging.SetLevel(level, "inbreed")
	logging.SetLevel(level, "checkpoint")

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	var summary *RunSummary
	switch cmd {
	case cmdWalk.FullCommand():
		summary = runWalk()
	case cmdInbreed.FullCommand():
		summary = runInbreed()
	}

	summary.Version = version
	summary.CommandLine = os.Args
	summary.Seed = *seed
	summary.Command = cmd

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
