package main

// RunSummary stores the gomcmc run summary information.
type RunSummary struct {
	// Version stores gomcmc version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// Command is the subcommand which was run.
	Command string `json:"command"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
	// Sampler is the sampler or optimizer summary.
	Sampler interface{} `json:"sampler,omitempty"`
	// Model is the model summary.
	Model interface{} `json:"model,omitempty"`
	// Walk is the random walk summary.
	Walk interface{} `json:"walk,omitempty"`
}
