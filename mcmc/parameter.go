package mcmc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"math"
	"math/rand"
	"strconv"
)

// FloatParameter is a single model parameter together with its prior,
// its proposal and its allowed range.
type FloatParameter interface {
	Name() string
	Prior() float64
	Propose(*rand.Rand)
	Accept(int)
	Reject()
	String() string
	SetMin(float64)
	SetMax(float64)
	GetMin() float64
	GetMax() float64
	SetOnChange(func())
	SetProposalFunc(func(*rand.Rand, float64) float64)
	SetPriorFunc(func(float64) float64)
	Get() float64
	Set(float64)
	InRange() bool
	ValueInRange(float64) bool
}

// FloatParameterGenerator creates a parameter from a value pointer
// and a name.
type FloatParameterGenerator func(*float64, string) FloatParameter

// FloatParameters is a slice of parameters.
type FloatParameters []FloatParameter

// Append adds a parameter.
func (p *FloatParameters) Append(par FloatParameter) {
	*p = append(*p, par)
}

// Names returns the parameter names, reusing the slice if provided.
func (p *FloatParameters) Names(is []string) (s []string) {
	if is == nil {
		s = make([]string, len(*p))
	} else {
		s = is
	}
	for i, par := range *p {
		s[i] = par.Name()
	}
	return
}

// Values returns the parameter values, reusing the slice if provided.
func (p *FloatParameters) Values(iv []float64) (v []float64) {
	if iv == nil {
		v = make([]float64, len(*p))
	} else {
		v = iv
	}
	for i, par := range *p {
		v[i] = par.Get()
	}
	return
}

// ValuesMap returns a map from parameter names to values.
func (p *FloatParameters) ValuesMap() map[string]float64 {
	m := make(map[string]float64, len(*p))
	for _, par := range *p {
		m[par.Name()] = par.Get()
	}
	return m
}

// ValuesInRange checks that all the values are inside the parameter
// ranges.
func (p *FloatParameters) ValuesInRange(vals []float64) bool {
	if len(vals) != len(*p) {
		panic("Incorrect number of parameters")
	}
	for i, par := range *p {
		if !par.ValueInRange(vals[i]) {
			return false
		}
	}
	return true
}

// SetValues sets all the parameter values.
func (p *FloatParameters) SetValues(v []float64) error {
	if len(v) != len(*p) {
		return errors.New("Incorrect number of parameters")
	}
	for i, par := range *p {
		par.Set(v[i])
	}
	return nil
}

// SetFromMap sets parameter values from a map. Parameters missing
// from the map keep their values; an unknown name is an error.
func (p *FloatParameters) SetFromMap(m map[string]float64) error {
	byName := make(map[string]FloatParameter, len(*p))
	for _, par := range *p {
		byName[par.Name()] = par
	}
	for name, v := range m {
		par, ok := byName[name]
		if !ok {
			return fmt.Errorf("Unknown parameter name: %s", name)
		}
		par.Set(v)
	}
	return nil
}

// ReadLine sets parameter values from a trajectory line; the sweep
// number and the log-posterior columns are skipped.
func (par *FloatParameters) ReadLine(l string) error {
	v, err := ReadFloats(l)
	if err != nil {
		return err
	}
	if len(v) < 2 {
		return errors.New("Incorrect number of values in the line")
	}
	return par.SetValues(v[2:])
}

// ReadFromJSON sets parameter values from a JSON file.
func (par *FloatParameters) ReadFromJSON(fn string) error {
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, par)
}

// LogPrior returns the sum of the parameter log-priors for the
// current values.
func (p *FloatParameters) LogPrior() (lp float64) {
	for _, par := range *p {
		lp += par.Prior()
	}
	return
}

// InRange checks that all the values are inside the parameter ranges.
func (p *FloatParameters) InRange() bool {
	for _, par := range *p {
		if !par.InRange() {
			return false
		}
	}
	return true
}

// NamesString returns tab-separated parameter names.
func (p *FloatParameters) NamesString() (s string) {
	for i, par := range *p {
		if i != 0 {
			s += "\t"
		}
		s += par.Name()
	}
	return
}

// ValuesString returns tab-separated parameter values.
func (p *FloatParameters) ValuesString() (s string) {
	for i, par := range *p {
		if i != 0 {
			s += "\t"
		}
		s += par.String()
	}
	return
}

// MarshalJSON creates a JSON object preserving the parameter order.
func (p FloatParameters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, par := range p {
		if i != 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(par.Name())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(par.Get())
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON sets parameter values from a JSON object.
func (p *FloatParameters) UnmarshalJSON(data []byte) error {
	m := map[string]float64{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return p.SetFromMap(m)
}

// BasicFloatParameter is a non-adaptive implementation of
// FloatParameter. The parameter stores a pointer to the model value,
// so proposing and rejecting update the model directly.
type BasicFloatParameter struct {
	*float64
	old          float64
	name         string
	priorFunc    func(float64) float64
	proposalFunc func(*rand.Rand, float64) float64
	min          float64
	max          float64
	onChange     func()
}

// NewBasicFloatParameter creates a new parameter with a flat prior
// and a unit normal proposal.
func NewBasicFloatParameter(par *float64, name string) *BasicFloatParameter {
	return &BasicFloatParameter{
		float64:      par,
		name:         name,
		priorFunc:    FlatPrior(),
		proposalFunc: NormalProposal(1),
		min:          math.Inf(-1),
		max:          math.Inf(+1),
	}
}

// BasicFloatParameterGenerator creates a new BasicFloatParameter.
func BasicFloatParameterGenerator(par *float64, name string) FloatParameter {
	return NewBasicFloatParameter(par, name)
}

// SetMin sets the lower bound of the parameter range.
func (p *BasicFloatParameter) SetMin(min float64) {
	p.min = min
}

// SetMax sets the upper bound of the parameter range.
func (p *BasicFloatParameter) SetMax(max float64) {
	p.max = max
}

// SetPriorFunc sets the prior.
func (p *BasicFloatParameter) SetPriorFunc(f func(float64) float64) {
	p.priorFunc = f
}

// SetProposalFunc sets the proposal.
func (p *BasicFloatParameter) SetProposalFunc(f func(*rand.Rand, float64) float64) {
	p.proposalFunc = f
}

// SetOnChange sets a callback which is called when the value changes.
func (p *BasicFloatParameter) SetOnChange(f func()) {
	p.onChange = f
}

// Get returns the parameter value.
func (p *BasicFloatParameter) Get() float64 {
	return *p.float64
}

// Set sets the parameter value.
func (p *BasicFloatParameter) Set(v float64) {
	if *p.float64 == v {
		// do nothing if value has not changed
		return
	}
	*p.float64 = v
	if p.onChange != nil {
		p.onChange()
	}
}

// GetMin returns the lower bound of the parameter range.
func (p *BasicFloatParameter) GetMin() float64 {
	return p.min
}

// GetMax returns the upper bound of the parameter range.
func (p *BasicFloatParameter) GetMax() float64 {
	return p.max
}

// ValueInRange checks that a value is inside the parameter range.
func (p *BasicFloatParameter) ValueInRange(v float64) bool {
	if v < p.min || v > p.max {
		return false
	}
	return true
}

// InRange checks that the value is inside the parameter range.
func (p *BasicFloatParameter) InRange() bool {
	if *p.float64 < p.min || *p.float64 > p.max {
		return false
	}
	return true
}

// Name returns the parameter name.
func (p *BasicFloatParameter) Name() string {
	return p.name
}

// Prior returns the log-prior for the current value.
func (p *BasicFloatParameter) Prior() float64 {
	return p.priorFunc(*p.float64)
}

// Propose replaces the value with a proposed one, saving the old
// value. A proposal outside of the range is not reflected back; such
// proposals are rejected through the priors or the density domain.
func (p *BasicFloatParameter) Propose(rng *rand.Rand) {
	p.old, *p.float64 = *p.float64, p.proposalFunc(rng, *p.float64)
	if p.onChange != nil {
		p.onChange()
	}
}

// Reject restores the old value.
func (p *BasicFloatParameter) Reject() {
	*p.float64, p.old = p.old, *p.float64
	if p.onChange != nil {
		p.onChange()
	}
}

// Accept accepts the proposed value.
func (p *BasicFloatParameter) Accept(iter int) {
}

// String returns the value as a string.
func (p *BasicFloatParameter) String() string {
	return strconv.FormatFloat(*p.float64, 'f', 6, 64)
}
