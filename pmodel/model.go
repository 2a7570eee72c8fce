package pmodel

import (
	"fmt"

	"github.com/gonum/blas/blas64"
	"github.com/gonum/matrix/mat64"

	"bitbucket.org/Davydov/goherit/gene"
	"bitbucket.org/Davydov/goherit/optimize"
)

// Model is the trait inheritance model for one pedigree. The gene
// prior is a fixed population constant; the mutation rate and the
// penetrances are model parameters so they can be estimated by
// maximum likelihood.
type Model struct {
	data *Data

	mu               float64
	pen0, pen1, pen2 float64

	// sharedPen ties the three penetrances to a single shared
	// parameter: the trait becomes independent of the gene count
	// (the null model of the association test).
	sharedPen bool
	pen       float64

	prior [gene.NCounts]float64

	parameters optimize.FloatParameters

	// cpt is the parent-pair to child gene count conditional
	// probability table, one row per (mother, father) gene count
	// pair.
	cpt     *mat64.Dense
	cptDone bool
}

// NewModel creates a model with default parameters. With sharedPen
// the three penetrances collapse into a single parameter.
func NewModel(data *Data, sharedPen bool) (m *Model) {
	m = &Model{
		data:      data,
		sharedPen: sharedPen,
		prior:     gene.DefaultPrior,
		cpt:       mat64.NewDense(gene.NCounts*gene.NCounts, gene.NCounts, nil),
	}
	m.setupParameters()
	m.SetDefaults()
	return
}

// setupParameters creates the float parameters of the model.
func (m *Model) setupParameters() {
	m.parameters = nil
	m.addParameters(optimize.BasicFloatParameterGenerator)
}

// addParameters adds all the parameters of the model.
func (m *Model) addParameters(nfp optimize.FloatParameterGenerator) {
	mu := nfp(&m.mu, "mu")
	mu.SetOnChange(func() {
		m.cptDone = false
	})
	mu.SetMin(0)
	mu.SetMax(0.5)
	m.parameters.Append(mu)

	if m.sharedPen {
		pen := nfp(&m.pen, "pen")
		pen.SetOnChange(func() {
			m.pen0 = m.pen
			m.pen1 = m.pen
			m.pen2 = m.pen
		})
		pen.SetMin(0)
		pen.SetMax(1)
		m.parameters.Append(pen)
		return
	}

	for i, par := range []*float64{&m.pen0, &m.pen1, &m.pen2} {
		pen := nfp(par, fmt.Sprintf("pen%d", i))
		pen.SetMin(0)
		pen.SetMax(1)
		m.parameters.Append(pen)
	}
}

// GetFloatParameters returns the model parameters.
func (m *Model) GetFloatParameters() optimize.FloatParameters {
	return m.parameters
}

// Copy returns a copy of the model sharing the immutable data.
func (m *Model) Copy() optimize.Optimizable {
	newM := &Model{
		data:      m.data,
		mu:        m.mu,
		pen0:      m.pen0,
		pen1:      m.pen1,
		pen2:      m.pen2,
		sharedPen: m.sharedPen,
		pen:       m.pen,
		prior:     m.prior,
		cpt:       mat64.NewDense(gene.NCounts*gene.NCounts, gene.NCounts, nil),
	}
	newM.setupParameters()
	return newM
}

// SetParameters sets the mutation rate and the penetrances.
func (m *Model) SetParameters(mu float64, pen [gene.NCounts]float64) {
	m.mu = mu
	m.pen0, m.pen1, m.pen2 = pen[0], pen[1], pen[2]
	m.cptDone = false
}

// GetParameters returns the mutation rate and the penetrances.
func (m *Model) GetParameters() (mu float64, pen [gene.NCounts]float64) {
	return m.mu, [gene.NCounts]float64{m.pen0, m.pen1, m.pen2}
}

// SetDefaults sets the default parameter values.
func (m *Model) SetDefaults() {
	if m.sharedPen {
		m.pen = 0.5
		m.pen0, m.pen1, m.pen2 = m.pen, m.pen, m.pen
		m.mu = gene.DefaultMutationRate
		m.cptDone = false
		return
	}
	m.SetParameters(gene.DefaultMutationRate, gene.DefaultPenetrance)
}

// UpdateMatrix recomputes the parent-pair conditional probability
// table. Each row is the collapse of the outer product of the two
// parents' allele transmission vectors: the child gene count is the
// number of mutant alleles received.
func (m *Model) UpdateMatrix() {
	tv := gene.TransmissionVector(m.mu)

	outer := blas64.General{
		Rows:   2,
		Cols:   2,
		Stride: 2,
		Data:   make([]float64, 4),
	}

	for gm := 0; gm < gene.NCounts; gm++ {
		for gf := 0; gf < gene.NCounts; gf++ {
			for i := range outer.Data {
				outer.Data[i] = 0
			}
			mother := blas64.Vector{Inc: 1, Data: []float64{1 - tv[gm], tv[gm]}}
			father := blas64.Vector{Inc: 1, Data: []float64{1 - tv[gf], tv[gf]}}
			blas64.Ger(1, mother, father, outer)

			row := gene.NCounts*gm + gf
			m.cpt.Set(row, 0, outer.Data[0])
			m.cpt.Set(row, 1, outer.Data[1]+outer.Data[2])
			m.cpt.Set(row, 2, outer.Data[3])
		}
	}
	m.cptDone = true
}

// penetrance returns the current penetrance vector.
func (m *Model) penetrance() [gene.NCounts]float64 {
	return [gene.NCounts]float64{m.pen0, m.pen1, m.pen2}
}

// jointProbability returns the probability of one fully specified
// hypothesis: counts assigns a gene count to every person, the
// traits bitmask assigns the trait status. Parent gene counts are
// read directly from the same assignment, so the evaluation is a
// single flat pass over all people.
func (m *Model) jointProbability(counts []int, traits uint64, pen *[gene.NCounts]float64) float64 {
	p := 1.0
	for i := range counts {
		g := counts[i]
		if g < 0 || g >= gene.NCounts {
			panic(fmt.Sprintf("invalid gene count %d", g))
		}

		var gp float64
		if m.data.mother[i] < 0 {
			gp = m.prior[g]
		} else {
			row := m.cpt.RawRowView(gene.NCounts*counts[m.data.mother[i]] + counts[m.data.father[i]])
			gp = row[g]
		}

		if traits&(1<<uint(i)) != 0 {
			p *= gp * pen[g]
		} else {
			p *= gp * (1 - pen[g])
		}
	}
	return p
}

// Summary returns the model parameters for reporting.
func (m *Model) Summary() interface{} {
	return map[string]interface{}{
		"mu":         m.mu,
		"penetrance": []float64{m.pen0, m.pen1, m.pen2},
		"prior":      m.prior[:],
		"sharedPen":  m.sharedPen,
	}
}
