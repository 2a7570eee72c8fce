// Package pedigree provides the family pedigree data structures and
// parsers for tabular pedigree formats.
package pedigree

import (
	"bytes"
	"fmt"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("pedigree")

// Trait is an observation of the trait for a person.
type Trait int

// Trait observation values.
const (
	// TraitUnknown means no observation was recorded.
	TraitUnknown Trait = iota
	// TraitAbsent means the person was observed not to exhibit
	// the trait.
	TraitAbsent
	// TraitPresent means the person was observed to exhibit the
	// trait.
	TraitPresent
)

// String returns a human readable representation of a trait
// observation.
func (t Trait) String() string {
	switch t {
	case TraitAbsent:
		return "absent"
	case TraitPresent:
		return "present"
	}
	return "unknown"
}

// Person is a single pedigree record. Mother and Father are either
// both empty (a founder) or both name other records of the same
// pedigree. A Person is immutable once loaded.
type Person struct {
	// Name is the person identifier, unique within a pedigree.
	Name string
	// Mother is the name of the mother, empty for a founder.
	Mother string
	// Father is the name of the father, empty for a founder.
	Father string
	// Trait is the trait observation.
	Trait Trait
}

// IsFounder returns true if the person has no recorded parents.
func (p *Person) IsFounder() bool {
	return p.Mother == ""
}

// Pedigree is a collection of persons preserving the input order.
type Pedigree struct {
	// People are the pedigree records in input order.
	People []*Person

	index map[string]*Person
}

// New creates an empty pedigree.
func New() *Pedigree {
	return &Pedigree{
		index: make(map[string]*Person),
	}
}

// Add appends a person to the pedigree. Duplicate names are an
// error.
func (ped *Pedigree) Add(p *Person) error {
	if p.Name == "" {
		return fmt.Errorf("person with an empty name")
	}
	if _, ok := ped.index[p.Name]; ok {
		return fmt.Errorf("duplicate person '%s'", p.Name)
	}
	ped.People = append(ped.People, p)
	ped.index[p.Name] = p
	return nil
}

// Get returns a person by name, nil if not present.
func (ped *Pedigree) Get(name string) *Person {
	return ped.index[name]
}

// NPeople returns the number of people in the pedigree.
func (ped *Pedigree) NPeople() int {
	return len(ped.People)
}

// Validate checks the pedigree invariants: parents are either both
// present or both absent, every parent reference resolves inside the
// pedigree, and the ancestry graph has no cycles.
func (ped *Pedigree) Validate() error {
	for _, p := range ped.People {
		if (p.Mother == "") != (p.Father == "") {
			return fmt.Errorf("person '%s' has only one recorded parent", p.Name)
		}
		if p.Mother != "" && ped.Get(p.Mother) == nil {
			return fmt.Errorf("person '%s' refers to unknown mother '%s'", p.Name, p.Mother)
		}
		if p.Father != "" && ped.Get(p.Father) == nil {
			return fmt.Errorf("person '%s' refers to unknown father '%s'", p.Name, p.Father)
		}
	}
	return ped.checkAcyclic()
}

// checkAcyclic verifies that every ancestry chain terminates at a
// founder.
func (ped *Pedigree) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(ped.People))

	var visit func(p *Person) error
	visit = func(p *Person) error {
		switch state[p.Name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("ancestry cycle involving '%s'", p.Name)
		}
		state[p.Name] = visiting
		if !p.IsFounder() {
			if err := visit(ped.Get(p.Mother)); err != nil {
				return err
			}
			if err := visit(ped.Get(p.Father)); err != nil {
				return err
			}
		}
		state[p.Name] = done
		return nil
	}

	for _, p := range ped.People {
		if err := visit(p); err != nil {
			return err
		}
	}
	return nil
}

// NFounders returns the number of founders.
func (ped *Pedigree) NFounders() (res int) {
	for _, p := range ped.People {
		if p.IsFounder() {
			res++
		}
	}
	return
}

// NObserved returns the number of people with a recorded trait
// observation.
func (ped *Pedigree) NObserved() (res int) {
	for _, p := range ped.People {
		if p.Trait != TraitUnknown {
			res++
		}
	}
	return
}

// String returns a short summary of the pedigree.
func (ped *Pedigree) String() string {
	return fmt.Sprintf("pedigree of %d people (%d founders, %d observed)",
		ped.NPeople(), ped.NFounders(), ped.NObserved())
}

// DOT renders the pedigree in the graphviz dot format. Persons
// observed to exhibit the trait are shaded, edges point from parents
// to children.
func (ped *Pedigree) DOT() string {
	var b bytes.Buffer
	b.WriteString("digraph pedigree {\n")
	for _, p := range ped.People {
		switch p.Trait {
		case TraitPresent:
			fmt.Fprintf(&b, "\t\"%s\" [style=filled, fillcolor=gray];\n", p.Name)
		case TraitAbsent:
			fmt.Fprintf(&b, "\t\"%s\";\n", p.Name)
		default:
			fmt.Fprintf(&b, "\t\"%s\" [style=dashed];\n", p.Name)
		}
	}
	for _, p := range ped.People {
		if p.IsFounder() {
			continue
		}
		fmt.Fprintf(&b, "\t\"%s\" -> \"%s\";\n", p.Mother, p.Name)
		fmt.Fprintf(&b, "\t\"%s\" -> \"%s\";\n", p.Father, p.Name)
	}
	b.WriteString("}\n")
	return b.String()
}
