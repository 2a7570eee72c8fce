package optimize

import (
	"encoding/json"
	"testing"
)

const (
	json1 = "{\"a\":7.2,\"b\":1.17e-22,\"c\":0,\"d \\\"!\":0.999999}"
)

func TestMarshalParameters(tst *testing.T) {
	var pars FloatParameters
	a := 7.2
	b := 1.17e-22
	c := 0.0
	d := 0.999999
	pars.Append(NewBasicFloatParameter(&a, "a"))
	pars.Append(NewBasicFloatParameter(&b, "b"))
	pars.Append(NewBasicFloatParameter(&c, "c"))
	pars.Append(NewBasicFloatParameter(&d, "d \"!"))
	j, err := json.Marshal(pars)
	if err != nil {
		tst.Error("Error: ", err)
	}
	if string(j) != json1 {
		tst.Errorf("Incorrect encoded json value. Expected:\n'%v'\n got\n'%v'", json1, string(j))
	}
}

func TestUnmarshalParameters(tst *testing.T) {
	var pars FloatParameters
	a := 1.0
	b := 1.0
	c := 1.0
	d := 1.0
	pars.Append(NewBasicFloatParameter(&a, "a"))
	pars.Append(NewBasicFloatParameter(&b, "b"))
	pars.Append(NewBasicFloatParameter(&c, "c"))
	pars.Append(NewBasicFloatParameter(&d, "d \"!"))
	err := json.Unmarshal([]byte(json1), &pars)
	if err != nil {
		tst.Error("Error: ", err)
	}
	j, err := json.Marshal(pars)
	if err != nil {
		tst.Error("Error: ", err)
	}
	if string(j) != json1 {
		tst.Errorf("Incorrect encoded json value. Expected:\n'%v'\n got\n'%v'", json1, string(j))
	}
}

func TestSetFromMap(tst *testing.T) {
	var pars FloatParameters
	a := 1.0
	b := 1.0
	pars.Append(NewBasicFloatParameter(&a, "a"))
	pars.Append(NewBasicFloatParameter(&b, "b"))

	err := pars.SetFromMap(map[string]float64{"a": 2, "b": 3})
	if err != nil {
		tst.Error("Error: ", err)
	}
	if a != 2 || b != 3 {
		tst.Error("Wrong values after SetFromMap:", a, b)
	}

	if err := pars.SetFromMap(map[string]float64{"x": 1}); err == nil {
		tst.Error("Expected error for unknown parameter")
	}
}

func TestReadLine(tst *testing.T) {
	var pars FloatParameters
	a := 0.0
	b := 0.0
	pars.Append(NewBasicFloatParameter(&a, "a"))
	pars.Append(NewBasicFloatParameter(&b, "b"))

	// iteration and likelihood columns are skipped
	err := pars.ReadLine("120\t-1234.5\t0.01\t0.56")
	if err != nil {
		tst.Error("Error: ", err)
	}
	if a != 0.01 || b != 0.56 {
		tst.Error("Wrong values after ReadLine:", a, b)
	}

	if err := pars.ReadLine("1 -2 0.5"); err == nil {
		tst.Error("Expected error for wrong number of values")
	}
	if err := pars.ReadLine("1"); err == nil {
		tst.Error("Expected error for short line")
	}
	if err := pars.ReadLine("1 -2 0.5 xyz"); err == nil {
		tst.Error("Expected error for non-numeric value")
	}
}

func TestReadFloats(tst *testing.T) {
	v, err := ReadFloats("1 2.5\t-3e-2")
	if err != nil {
		tst.Error("Error: ", err)
	}
	if len(v) != 3 || v[0] != 1 || v[1] != 2.5 || v[2] != -3e-2 {
		tst.Error("Wrong values from ReadFloats:", v)
	}
}

func TestRandomizeInRange(tst *testing.T) {
	var pars FloatParameters
	a := 0.0
	par := NewBasicFloatParameter(&a, "a")
	par.SetMin(0.25)
	par.SetMax(0.75)
	pars.Append(par)

	for i := 0; i < 100; i++ {
		pars.Randomize()
		if !pars.InRange() {
			tst.Fatal("Randomized value out of range:", a)
		}
	}
}

// paraboloid is a minimal Optimizable for optimizer tests.
type paraboloid struct {
	x          float64
	parameters FloatParameters
}

func newParaboloid() *paraboloid {
	p := &paraboloid{}
	par := NewBasicFloatParameter(&p.x, "x")
	par.SetMin(-10)
	par.SetMax(10)
	p.parameters.Append(par)
	return p
}

func (p *paraboloid) GetFloatParameters() FloatParameters {
	return p.parameters
}

func (p *paraboloid) Copy() Optimizable {
	cp := newParaboloid()
	cp.x = p.x
	return cp
}

func (p *paraboloid) Likelihood() float64 {
	return -(p.x - 1) * (p.x - 1)
}

func TestNone(tst *testing.T) {
	m := newParaboloid()
	m.x = 3

	opt := NewNone()
	opt.SetOptimizable(m)
	opt.Quiet = true
	opt.Run(1)

	if opt.GetMaxLikelihood() != -4 {
		tst.Error("Wrong likelihood:", opt.GetMaxLikelihood())
	}
	pars := opt.GetMaxLikelihoodParameters()
	if pars["x"] != 3 {
		tst.Error("Wrong parameter value:", pars["x"])
	}

	s := opt.Summary()
	if s.GetMaxLikelihood() != -4 {
		tst.Error("Wrong summary likelihood:", s.GetMaxLikelihood())
	}
}
