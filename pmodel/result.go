package pmodel

import (
	"bytes"
	"fmt"
	"math"

	"bitbucket.org/Davydov/goherit/gene"
)

// PersonPosterior stores the posterior distributions of one person.
type PersonPosterior struct {
	// Name is the person identifier.
	Name string `json:"name"`
	// Gene is the gene-count distribution indexed by the number
	// of copies.
	Gene [gene.NCounts]float64 `json:"gene"`
	// Trait is the trait distribution, index 0 for not
	// exhibiting, index 1 for exhibiting.
	Trait [2]float64 `json:"trait"`
}

// Result is the accumulator state of one inference run. Before
// Normalize it holds unnormalized sums of joint probabilities, after
// Normalize every distribution sums to one.
type Result struct {
	// People are the per-person distributions in pedigree order.
	People []PersonPosterior `json:"posteriors"`
	// Evidence is the total probability of the observations (the
	// normalization constant).
	Evidence float64 `json:"evidence"`
}

// newResult creates a zero-initialized accumulator for the pedigree.
func newResult(data *Data) *Result {
	res := &Result{
		People: make([]PersonPosterior, data.NPeople()),
	}
	for i, p := range data.Pedigree.People {
		res.People[i].Name = p.Name
	}
	return res
}

// accumulate adds the joint probability of one hypothesis into
// exactly one gene-count bucket and one trait bucket per person.
func (res *Result) accumulate(counts []int, traits uint64, p float64) {
	res.Evidence += p
	for i := range res.People {
		res.People[i].Gene[counts[i]] += p
		if traits&(1<<uint(i)) != 0 {
			res.People[i].Trait[1] += p
		} else {
			res.People[i].Trait[0] += p
		}
	}
}

// Normalize divides every distribution by its sum. A distribution
// with no probability mass means the evidence is jointly
// unsatisfiable and is reported as an error instead of producing
// NaNs.
func (res *Result) Normalize() error {
	for i := range res.People {
		p := &res.People[i]

		gsum := 0.0
		for _, v := range p.Gene {
			gsum += v
		}
		tsum := p.Trait[0] + p.Trait[1]

		if gsum <= 0 || tsum <= 0 || math.IsNaN(gsum) || math.IsNaN(tsum) {
			return fmt.Errorf("evidence is inconsistent: no probability mass for '%s'", p.Name)
		}

		for j := range p.Gene {
			p.Gene[j] /= gsum
		}
		p.Trait[0] /= tsum
		p.Trait[1] /= tsum
	}
	return nil
}

// String formats the per-person distributions as a table.
func (res *Result) String() string {
	var b bytes.Buffer
	for _, p := range res.People {
		fmt.Fprintf(&b, "%s:\n", p.Name)
		fmt.Fprintf(&b, "  Gene:\n")
		for g := gene.NCounts - 1; g >= 0; g-- {
			fmt.Fprintf(&b, "    %d: %.4f\n", g, p.Gene[g])
		}
		fmt.Fprintf(&b, "  Trait:\n")
		fmt.Fprintf(&b, "    True: %.4f\n", p.Trait[1])
		fmt.Fprintf(&b, "    False: %.4f\n", p.Trait[0])
	}
	return b.String()
}
