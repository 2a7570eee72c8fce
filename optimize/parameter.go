package optimize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// Randomization boundaries for parameters with infinite range.
const (
	// MIN is the lower randomization boundary.
	MIN = -10
	// MAX is the upper randomization boundary.
	MAX = +10
)

// FloatParameter is a single model parameter with a box constraint.
type FloatParameter interface {
	// Name returns the parameter name.
	Name() string
	// Get returns the parameter value.
	Get() float64
	// Set sets the parameter value.
	Set(float64)
	// SetMin sets the lower boundary.
	SetMin(float64)
	// SetMax sets the upper boundary.
	SetMax(float64)
	// GetMin returns the lower boundary.
	GetMin() float64
	// GetMax returns the upper boundary.
	GetMax() float64
	// SetOnChange sets a callback called on every value change.
	SetOnChange(func())
	// InRange returns true if the value is within boundaries.
	InRange() bool
	// ValueInRange returns true if a value is within boundaries.
	ValueInRange(float64) bool
	// String returns a string representation of the value.
	String() string
}

// FloatParameterGenerator creates a FloatParameter given a value
// pointer and a name.
type FloatParameterGenerator func(*float64, string) FloatParameter

// FloatParameters is a collection of model parameters.
type FloatParameters []FloatParameter

// Append adds a parameter to the collection.
func (p *FloatParameters) Append(par FloatParameter) {
	*p = append(*p, par)
}

// Values returns parameter values, reusing the slice if provided.
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

// SetValues sets all parameter values.
func (p *FloatParameters) SetValues(v []float64) error {
	if len(v) != len(*p) {
		return fmt.Errorf("expected %d parameter values, got %d", len(*p), len(v))
	}
	for i, par := range *p {
		par.Set(v[i])
	}
	return nil
}

// ValuesInRange returns true if all values are within boundaries.
func (p *FloatParameters) ValuesInRange(vals []float64) bool {
	if len(vals) != len(*p) {
		panic("incorrect number of parameters")
	}
	for i, par := range *p {
		if !par.ValueInRange(vals[i]) {
			return false
		}
	}
	return true
}

// InRange returns true if all parameters are within boundaries.
func (p *FloatParameters) InRange() bool {
	for _, par := range *p {
		if !par.InRange() {
			return false
		}
	}
	return true
}

// Randomize sets all parameters to uniform random values within
// boundaries.
func (p *FloatParameters) Randomize() {
	for _, par := range *p {
		min := math.Max(MIN, par.GetMin())
		max := math.Min(MAX, par.GetMax())
		par.Set(min + rand.Float64()*(max-min))
	}
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

// ReadLine sets parameter values from a trajectory line (iteration
// and likelihood columns are skipped).
func (p *FloatParameters) ReadLine(l string) error {
	v, err := ReadFloats(l)
	if err != nil {
		return err
	}
	if len(v) < 2 {
		return fmt.Errorf("trajectory line too short")
	}
	return p.SetValues(v[2:])
}

// SetFromMap sets parameter values from a name to value map. Unknown
// names are an error.
func (p *FloatParameters) SetFromMap(m map[string]float64) error {
	byName := make(map[string]FloatParameter, len(*p))
	for _, par := range *p {
		byName[par.Name()] = par
	}
	for name, value := range m {
		par, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown parameter '%s'", name)
		}
		par.Set(value)
	}
	return nil
}

// ReadFromJSON sets parameter values from a JSON file with a name to
// value object.
func (p *FloatParameters) ReadFromJSON(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	m := make(map[string]float64)
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return err
	}
	return p.SetFromMap(m)
}

// MarshalJSON returns a JSON object of parameter names and values
// preserving the parameter order.
func (p FloatParameters) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, par := range p {
		if i != 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(par.Name())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(par.Get())
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON sets parameter values from a JSON object of names and
// values.
func (p *FloatParameters) UnmarshalJSON(data []byte) error {
	m := make(map[string]float64)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return p.SetFromMap(m)
}

// BasicFloatParameter is the default FloatParameter implementation.
type BasicFloatParameter struct {
	*float64
	name     string
	min      float64
	max      float64
	onChange func()
}

// NewBasicFloatParameter creates a new BasicFloatParameter with
// infinite boundaries.
func NewBasicFloatParameter(par *float64, name string) *BasicFloatParameter {
	return &BasicFloatParameter{
		float64: par,
		name:    name,
		min:     math.Inf(-1),
		max:     math.Inf(+1),
	}
}

// BasicFloatParameterGenerator is a FloatParameterGenerator creating
// BasicFloatParameters.
func BasicFloatParameterGenerator(par *float64, name string) FloatParameter {
	return NewBasicFloatParameter(par, name)
}

// Name returns the parameter name.
func (p *BasicFloatParameter) Name() string {
	return p.name
}

// Get returns the parameter value.
func (p *BasicFloatParameter) Get() float64 {
	return *p.float64
}

// Set sets the parameter value calling the onChange callback.
func (p *BasicFloatParameter) Set(v float64) {
	if *p.float64 == v {
		return
	}
	*p.float64 = v
	if p.onChange != nil {
		p.onChange()
	}
}

// SetMin sets the lower boundary.
func (p *BasicFloatParameter) SetMin(min float64) {
	p.min = min
}

// SetMax sets the upper boundary.
func (p *BasicFloatParameter) SetMax(max float64) {
	p.max = max
}

// GetMin returns the lower boundary.
func (p *BasicFloatParameter) GetMin() float64 {
	return p.min
}

// GetMax returns the upper boundary.
func (p *BasicFloatParameter) GetMax() float64 {
	return p.max
}

// SetOnChange sets a callback called on every value change.
func (p *BasicFloatParameter) SetOnChange(f func()) {
	p.onChange = f
}

// ValueInRange returns true if a value is within boundaries.
func (p *BasicFloatParameter) ValueInRange(v float64) bool {
	return v >= p.min && v <= p.max
}

// InRange returns true if the value is within boundaries.
func (p *BasicFloatParameter) InRange() bool {
	return p.ValueInRange(*p.float64)
}

// String returns a string representation of the value.
func (p *BasicFloatParameter) String() string {
	return strconv.FormatFloat(*p.float64, 'f', 6, 64)
}
