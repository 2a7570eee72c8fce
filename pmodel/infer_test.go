package pmodel

import (
	"math"
	"strings"
	"testing"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/goherit/gene"
	"bitbucket.org/Davydov/goherit/pedigree"
)

const (
	// smallDiff is a threshold for comparison with reference
	// posteriors computed with an independent implementation of
	// the same model.
	smallDiff = 1e-9

	familyCSV = `name,mother,father,trait
Harry,Lily,James,
James,,,1
Lily,,,0
`

	coupleCSV = `name,mother,father,trait
child,mom,dad,1
mom,,,
dad,,,
`

	founderCSV = `name,mother,father,trait
alone,,,
`
)

func init() {
	// disable logging for benchmarks
	logging.SetLevel(logging.ERROR, "pmodel")
	logging.SetLevel(logging.ERROR, "pedigree")
}

// getData loads a pedigree from a CSV string.
func getData(tst testing.TB, csv string) *Data {
	ped, err := pedigree.ParseCSV(strings.NewReader(csv))
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	data, err := NewDataFromPedigree(ped)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	return data
}

func appreq(a, b float64) bool {
	return math.Abs(a-b) <= smallDiff
}

/*** Test reference posteriors for a two-generation family ***/
func TestReferencePosteriors(tst *testing.T) {
	data := getData(tst, familyCSV)
	m := NewModel(data, false)

	res, err := m.Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	if !appreq(res.Evidence, 0.03181759) {
		tst.Error("Wrong evidence probability:", res.Evidence)
	}

	refGene := map[string][gene.NCounts]float64{
		"Harry": {0.5351186101, 0.4556982701, 0.0091831197},
		"James": {0.2917933131, 0.5106382979, 0.1975683891},
		"Lily":  {0.9827318788, 0.0136490539, 0.0036190673},
	}
	refTrait := map[string][2]float64{
		"Harry": {0.7334887548, 0.2665112452},
		"James": {0, 1},
		"Lily":  {1, 0},
	}

	for _, p := range res.People {
		for g, ref := range refGene[p.Name] {
			if !appreq(p.Gene[g], ref) {
				tst.Errorf("%s: gene %d: expected %v, got %v", p.Name, g, ref, p.Gene[g])
			}
		}
		for t, ref := range refTrait[p.Name] {
			if !appreq(p.Trait[t], ref) {
				tst.Errorf("%s: trait %v: expected %v, got %v", p.Name, t == 1, ref, p.Trait[t])
			}
		}
	}
}

/*** Test that all distributions sum to 1 after normalization ***/
func TestDistributionClosure(tst *testing.T) {
	data := getData(tst, familyCSV)
	res, err := NewModel(data, false).Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	for _, p := range res.People {
		gsum := p.Gene[0] + p.Gene[1] + p.Gene[2]
		tsum := p.Trait[0] + p.Trait[1]
		if !appreq(gsum, 1) {
			tst.Errorf("%s: gene distribution sums to %v", p.Name, gsum)
		}
		if !appreq(tsum, 1) {
			tst.Errorf("%s: trait distribution sums to %v", p.Name, tsum)
		}
	}
}

/*** Test that a hypothesis violating an observation never gets
probability mass ***/
func TestEvidenceConsistency(tst *testing.T) {
	data := getData(tst, familyCSV)
	res, err := NewModel(data, false).Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	for _, p := range res.People {
		switch p.Name {
		case "James":
			if p.Trait[0] != 0 {
				tst.Error("James observed with trait, got P(false)=", p.Trait[0])
			}
		case "Lily":
			if p.Trait[1] != 0 {
				tst.Error("Lily observed without trait, got P(true)=", p.Trait[1])
			}
		}
	}
}

/*** Test that observation masks agree and that every enumerated
trait hypothesis matches the observations ***/
func TestObservationMasks(tst *testing.T) {
	data := getData(tst, familyCSV)

	// Harry is unobserved, James observed present, Lily observed
	// absent
	if data.observed != 6 {
		tst.Errorf("Wrong observed mask: %b", data.observed)
	}
	if data.present != 2 {
		tst.Errorf("Wrong present mask: %b", data.present)
	}
	if len(data.unknownPos) != 1 || data.unknownPos[0] != 0 {
		tst.Error("Wrong unobserved positions:", data.unknownPos)
	}

	for k := 0; k < 1<<uint(len(data.unknownPos)); k++ {
		traits := spreadMask(k, data.unknownPos) | data.present
		if traits&data.observed != data.present {
			tst.Errorf("Hypothesis %b contradicts observations", traits)
		}
	}
}

/*** Test that a lone founder without observations reproduces the
unconditional prior ***/
func TestFounderPrior(tst *testing.T) {
	data := getData(tst, founderCSV)
	res, err := NewModel(data, false).Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	p := res.People[0]
	for g, ref := range gene.DefaultPrior {
		if !appreq(p.Gene[g], ref) {
			tst.Errorf("gene %d: expected prior %v, got %v", g, ref, p.Gene[g])
		}
	}

	// P(trait) = sum over counts of prior * penetrance
	refTrait := 0.0
	for g, prior := range gene.DefaultPrior {
		refTrait += prior * gene.DefaultPenetrance[g]
	}
	if !appreq(p.Trait[1], refTrait) {
		tst.Errorf("expected P(trait)=%v, got %v", refTrait, p.Trait[1])
	}
}

/*** Test that an observed trait raises the carrier posterior above
the population prior ***/
func TestEvidenceRaisesPosterior(tst *testing.T) {
	data := getData(tst, coupleCSV)
	res, err := NewModel(data, false).Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	priorCarrier := gene.DefaultPrior[1] + gene.DefaultPrior[2]
	for _, p := range res.People {
		if p.Name != "child" {
			continue
		}
		carrier := p.Gene[1] + p.Gene[2]
		if carrier <= priorCarrier {
			tst.Errorf("expected carrier posterior above %v, got %v", priorCarrier, carrier)
		}
		if !appreq(carrier, 0.7870245621+0.016321138) {
			tst.Error("Wrong carrier posterior:", carrier)
		}
	}
}

/*** Test that inference is deterministic ***/
func TestDeterminism(tst *testing.T) {
	data := getData(tst, familyCSV)

	res1, err := NewModel(data, false).Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	res2, err := NewModel(data, false).Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	if res1.Evidence != res2.Evidence {
		tst.Error("Evidence differs between runs")
	}
	for i := range res1.People {
		if res1.People[i] != res2.People[i] {
			tst.Error("Posteriors differ between runs for", res1.People[i].Name)
		}
	}
}

/*** Test that unsatisfiable evidence surfaces as an error ***/
func TestInconsistentEvidence(tst *testing.T) {
	data := getData(tst, familyCSV)
	m := NewModel(data, false)
	// with zero penetrance an observed trait is impossible
	m.SetParameters(gene.DefaultMutationRate, [gene.NCounts]float64{0, 0, 0})

	if _, err := m.Infer(); err == nil {
		tst.Error("Expected normalization error for impossible evidence")
	}
}

func TestLikelihood(tst *testing.T) {
	data := getData(tst, familyCSV)
	m := NewModel(data, false)

	L := m.Likelihood()
	refL := math.Log(0.03181759)
	if math.IsNaN(L) || !appreq(L, refL) {
		tst.Error("Expected ", refL, ", got", L)
	}
}

func TestModelCopy(tst *testing.T) {
	data := getData(tst, familyCSV)
	m := NewModel(data, false)
	m.SetParameters(0.02, [gene.NCounts]float64{0.05, 0.5, 0.7})

	cp := m.Copy()
	npar := len(m.GetFloatParameters())
	if npar != len(cp.GetFloatParameters()) {
		tst.Error("Parameter number mismatch after copy")
	}
	if m.Likelihood() != cp.Likelihood() {
		tst.Error("Copy likelihood differs")
	}
}

func TestSharedPenetrance(tst *testing.T) {
	data := getData(tst, familyCSV)
	m := NewModel(data, true)

	if npar := len(m.GetFloatParameters()); npar != 2 {
		tst.Error("Wrong number of parameters for the shared penetrance model:", npar)
	}

	// with a shared penetrance the trait carries no information
	// about the gene count, founder posteriors must equal the
	// prior
	res, err := m.Infer()
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	for _, p := range res.People {
		if p.Name == "Harry" {
			continue
		}
		for g, ref := range gene.DefaultPrior {
			if !appreq(p.Gene[g], ref) {
				tst.Errorf("%s: gene %d: expected prior %v, got %v", p.Name, g, ref, p.Gene[g])
			}
		}
	}
}

/*** Test that every CPT row is a distribution for any mutation
rate ***/
func TestUpdateMatrix(tst *testing.T) {
	data := getData(tst, familyCSV)
	m := NewModel(data, false)

	for mu := 0.0; mu <= 0.5; mu += 0.05 {
		m.SetParameters(mu, gene.DefaultPenetrance)
		m.UpdateMatrix()

		for row := 0; row < gene.NCounts*gene.NCounts; row++ {
			sum := 0.0
			for g := 0; g < gene.NCounts; g++ {
				sum += m.cpt.At(row, g)
			}
			if !appreq(sum, 1) {
				tst.Errorf("CPT row %d for mu=%v sums to %v", row, mu, sum)
			}
		}
	}
}

func TestPedigreeTooLarge(tst *testing.T) {
	ped := pedigree.New()
	for i := 0; i < MaxPeople+1; i++ {
		ped.Add(&pedigree.Person{Name: string(rune('a' + i))})
	}
	if _, err := NewDataFromPedigree(ped); err == nil {
		tst.Error("Expected error for a pedigree above the enumeration cap")
	}
}

func BenchmarkInfer(b *testing.B) {
	data := getData(b, `name,mother,father,trait
c1,m,f,1
c2,m,f,0
c3,m,f,
m,,,
f,,,
`)
	m := NewModel(data, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Infer(); err != nil {
			b.Fatal(err)
		}
	}
}
