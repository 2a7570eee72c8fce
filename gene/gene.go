// Package gene provides the probability tables of the single-gene
// trait inheritance model: the founder gene-count prior, the
// penetrance of the trait given the gene count, and allele
// transmission probabilities with mutation.
package gene

import "fmt"

// NCounts is the number of possible gene counts (0, 1 or 2 copies).
const NCounts = 3

// Default model parameters.
const (
	// DefaultMutationRate is the probability of an allele
	// changing type during transmission from parent to child.
	DefaultMutationRate = 0.01
)

var (
	// DefaultPrior is the unconditional gene-count distribution
	// of a founder (a person with no recorded parents), indexed
	// by the number of gene copies.
	DefaultPrior = [NCounts]float64{0.96, 0.03, 0.01}

	// DefaultPenetrance is the probability of exhibiting the
	// trait given the number of gene copies.
	DefaultPenetrance = [NCounts]float64{0.01, 0.56, 0.65}
)

// Transmission returns the probability that a parent with the given
// number of gene copies transmits a mutant allele to a child, for the
// mutation rate mu. A parent without the gene transmits a mutant
// allele only through mutation; a parent with two copies transmits
// one unless mutation reverts it; a heterozygous parent passes either
// allele with equal probability.
func Transmission(count int, mu float64) float64 {
	switch count {
	case 0:
		return mu
	case 1:
		return 0.5
	case 2:
		return 1 - mu
	}
	panic(fmt.Sprintf("invalid gene count %d", count))
}

// TransmissionVector returns transmission probabilities for all three
// gene counts.
func TransmissionVector(mu float64) (v [NCounts]float64) {
	for count := 0; count < NCounts; count++ {
		v[count] = Transmission(count, mu)
	}
	return
}
