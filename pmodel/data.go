// Package pmodel implements exact Bayesian inference of trait
// inheritance over a pedigree: enumeration of the joint hypothesis
// space, joint probability evaluation and marginal accumulation.
package pmodel

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/goherit/pedigree"
)

// log is the global logging variable.
var log = logging.MustGetLogger("pmodel")

// MaxPeople is the maximum supported pedigree size. The enumeration
// is exponential in the number of people, larger pedigrees are
// rejected instead of attempting an infeasible run.
const MaxPeople = 25

// Data stores a validated pedigree together with indexes derived for
// the enumeration: positions of parents and trait observation
// bitmasks. Data is immutable after creation and can be shared
// between model copies.
type Data struct {
	// Pedigree is the loaded pedigree.
	Pedigree *pedigree.Pedigree

	// mother and father are person indexes of the parents, -1
	// for founders.
	mother []int
	father []int

	// observed has bits set for people with a recorded trait
	// observation, present for people observed to exhibit the
	// trait.
	observed uint64
	present  uint64

	// unknownPos are the positions without a trait observation.
	unknownPos []int
}

// NewData reads a pedigree from a file. Files with the .fam
// extension are parsed as PLINK pedigrees, everything else as CSV.
func NewData(filename string) (*Data, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ped *pedigree.Pedigree
	if strings.HasSuffix(filename, ".fam") {
		ped, err = pedigree.ParseFam(f)
	} else {
		ped, err = pedigree.ParseCSV(f)
	}
	if err != nil {
		return nil, err
	}

	return NewDataFromPedigree(ped)
}

// NewDataFromPedigree creates Data from an already loaded pedigree.
func NewDataFromPedigree(ped *pedigree.Pedigree) (*Data, error) {
	n := ped.NPeople()
	if n == 0 {
		return nil, fmt.Errorf("empty pedigree")
	}
	if n > MaxPeople {
		return nil, fmt.Errorf("pedigree of %d people, at most %d supported by exact enumeration", n, MaxPeople)
	}

	data := &Data{
		Pedigree: ped,
		mother:   make([]int, n),
		father:   make([]int, n),
	}

	pos := make(map[string]int, n)
	for i, p := range ped.People {
		pos[p.Name] = i
	}

	for i, p := range ped.People {
		if p.IsFounder() {
			data.mother[i] = -1
			data.father[i] = -1
		} else {
			data.mother[i] = pos[p.Mother]
			data.father[i] = pos[p.Father]
		}
		switch p.Trait {
		case pedigree.TraitPresent:
			data.observed |= 1 << uint(i)
			data.present |= 1 << uint(i)
		case pedigree.TraitAbsent:
			data.observed |= 1 << uint(i)
		}
	}

	for i := 0; i < n; i++ {
		if data.observed&(1<<uint(i)) == 0 {
			data.unknownPos = append(data.unknownPos, i)
		}
	}

	return data, nil
}

// NPeople returns the number of people in the pedigree.
func (data *Data) NPeople() int {
	return data.Pedigree.NPeople()
}

// Digest returns a digest identifying the pedigree contents; it is
// used as a checkpoint key.
func (data *Data) Digest() []byte {
	h := sha256.New()
	for _, p := range data.Pedigree.People {
		fmt.Fprintf(h, "%s,%s,%s,%v\n", p.Name, p.Mother, p.Father, p.Trait)
	}
	return h.Sum(nil)
}
