package mcmc

// None is a sampler which computes the log-posterior at the starting
// point and exits.
type None struct {
	BaseSampler
}

// NewNone creates a sampler which computes the starting log-posterior
// only.
func NewNone() *None {
	return &None{newBaseSampler()}
}

// Run computes the starting log-posterior; the iterations argument is
// ignored.
func (n *None) Run(iterations int) {
	n.SaveStart(0)
	n.PrintHeader(n.parameters)
	n.PrintLine(n.parameters, n.lp, 1)
	n.saveDeltaT()
}
