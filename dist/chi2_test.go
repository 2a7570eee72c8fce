package dist

import (
	"math"
	"testing"
)

const smallDiff = 1e-6

/*** Tests if a and b are approximately equal ***/
func appreq(a, b float64) bool {
	return math.Abs(a-b) <= smallDiff
}

func TestQuantileChi2(tst *testing.T) {
	cases := []struct {
		prob, df, ref float64
	}{
		{0.95, 1, 3.841459},
		{0.95, 2, 5.991465},
		{0.99, 2, 9.210340},
		{0.9, 1, 2.705543},
	}
	for _, c := range cases {
		q := QuantileChi2(c.prob, c.df)
		if !appreq(q, c.ref) {
			tst.Errorf("QuantileChi2(%v, %v)=%v, expected %v", c.prob, c.df, q, c.ref)
		}
	}
}

func TestPValueChi2(tst *testing.T) {
	// p-value must invert the quantile
	for _, prob := range []float64{0.5, 0.9, 0.95, 0.99} {
		for _, df := range []float64{1, 2, 5} {
			q := QuantileChi2(prob, df)
			p := PValueChi2(q, df)
			if !appreq(p, 1-prob) {
				tst.Errorf("PValueChi2(%v, %v)=%v, expected %v", q, df, p, 1-prob)
			}
		}
	}

	if PValueChi2(0, 2) != 1 {
		tst.Error("Expected p-value 1 at 0")
	}
	if PValueChi2(-1, 2) != 1 {
		tst.Error("Expected p-value 1 for negative statistic")
	}
}

func TestCDFChi2(tst *testing.T) {
	// chi-squared with df=2 is exponential with rate 1/2
	for _, x := range []float64{0.5, 1, 2, 5} {
		ref := 1 - math.Exp(-x/2)
		if !appreq(CDFChi2(x, 2), ref) {
			tst.Errorf("CDFChi2(%v, 2)=%v, expected %v", x, CDFChi2(x, 2), ref)
		}
	}
}
