// Command pedsim samples a synthetic pedigree from the generative
// trait inheritance model and prints it as CSV. Founder genotypes
// are drawn from the gene prior, children receive one allele from
// each parent with mutation, traits are drawn from the penetrance.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"bitbucket.org/Davydov/goherit/gene"
)

// sampleCount samples a founder gene count from the prior.
func sampleCount(r *rand.Rand, prior [gene.NCounts]float64) int {
	x := r.Float64()
	for count, p := range prior {
		x -= p
		if x < 0 {
			return count
		}
	}
	return gene.NCounts - 1
}

// sampleChild samples a child gene count given the parents' counts.
func sampleChild(r *rand.Rand, gm, gf int, mu float64) (g int) {
	if r.Float64() < gene.Transmission(gm, mu) {
		g++
	}
	if r.Float64() < gene.Transmission(gf, mu) {
		g++
	}
	return
}

func main() {
	couples := flag.Int("couples", 1, "number of founder couples")
	children := flag.Int("children", 2, "number of children per couple")
	hide := flag.Float64("hide", 0.5, "fraction of trait observations to hide")
	seed := flag.Int64("seed", 1, "random generator seed")
	flag.Parse()

	r := rand.New(rand.NewSource(*seed))

	fmt.Println("name,mother,father,trait")

	emit := func(name, mother, father string, g int) {
		trait := 0
		if r.Float64() < gene.DefaultPenetrance[g] {
			trait = 1
		}
		if r.Float64() < *hide {
			fmt.Printf("%s,%s,%s,\n", name, mother, father)
		} else {
			fmt.Printf("%s,%s,%s,%d\n", name, mother, father, trait)
		}
	}

	for c := 0; c < *couples; c++ {
		mother := fmt.Sprintf("mother%d", c)
		father := fmt.Sprintf("father%d", c)
		gm := sampleCount(r, gene.DefaultPrior)
		gf := sampleCount(r, gene.DefaultPrior)
		emit(mother, "", "", gm)
		emit(father, "", "", gf)

		for i := 0; i < *children; i++ {
			child := fmt.Sprintf("child%d_%d", c, i)
			g := sampleChild(r, gm, gf, gene.DefaultMutationRate)
			emit(child, mother, father, g)
		}
	}
}
