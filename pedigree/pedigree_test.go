package pedigree

import (
	"strings"
	"testing"

	"github.com/op/go-logging"
)

const (
	familyCSV = `name,mother,father,trait
Harry,Lily,James,
James,,,1
Lily,,,0
`

	familyFam = `fam1 child father mother 1 2
fam1 father 0 0 1 1
fam1 mother 0 0 2 -9
`
)

func init() {
	logging.SetLevel(logging.ERROR, "pedigree")
}

func TestParseCSV(tst *testing.T) {
	ped, err := ParseCSV(strings.NewReader(familyCSV))
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	if ped.NPeople() != 3 {
		tst.Error("Expected 3 people, got", ped.NPeople())
	}
	if ped.NFounders() != 2 {
		tst.Error("Expected 2 founders, got", ped.NFounders())
	}
	if ped.NObserved() != 2 {
		tst.Error("Expected 2 observations, got", ped.NObserved())
	}

	harry := ped.Get("Harry")
	if harry == nil || harry.Mother != "Lily" || harry.Father != "James" {
		tst.Error("Wrong record for Harry:", harry)
	}
	if harry.Trait != TraitUnknown {
		tst.Error("Expected unknown trait for Harry, got", harry.Trait)
	}
	if ped.Get("James").Trait != TraitPresent {
		tst.Error("Expected present trait for James")
	}
	if ped.Get("Lily").Trait != TraitAbsent {
		tst.Error("Expected absent trait for Lily")
	}

	// input order must be preserved
	names := []string{"Harry", "James", "Lily"}
	for i, p := range ped.People {
		if p.Name != names[i] {
			tst.Error("Wrong order:", p.Name, "at", i)
		}
	}
}

func TestParseFam(tst *testing.T) {
	ped, err := ParseFam(strings.NewReader(familyFam))
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	if ped.NPeople() != 3 {
		tst.Error("Expected 3 people, got", ped.NPeople())
	}
	child := ped.Get("child")
	if child == nil || child.Mother != "mother" || child.Father != "father" {
		tst.Error("Wrong record for child:", child)
	}
	if child.Trait != TraitPresent {
		tst.Error("Expected present trait for child")
	}
	if ped.Get("father").Trait != TraitAbsent {
		tst.Error("Expected absent trait for father")
	}
	if ped.Get("mother").Trait != TraitUnknown {
		tst.Error("Expected unknown trait for mother")
	}
}

func TestParseErrors(tst *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"single parent", "name,mother,father,trait\na,b,,\nb,,,\n"},
		{"dangling parent", "name,mother,father,trait\na,b,c,\nb,,,\n"},
		{"duplicate name", "name,mother,father,trait\na,,,\na,,,\n"},
		{"cycle", "name,mother,father,trait\na,b,c,\nb,a,c,\nc,,,\n"},
		{"bad trait", "name,mother,father,trait\na,,,x\n"},
	}
	for _, c := range cases {
		if _, err := ParseCSV(strings.NewReader(c.csv)); err == nil {
			tst.Errorf("Expected error for %s", c.name)
		}
	}
}

func TestDOT(tst *testing.T) {
	ped, err := ParseCSV(strings.NewReader(familyCSV))
	if err != nil {
		tst.Fatal("Error: ", err)
	}

	dot := ped.DOT()
	for _, part := range []string{
		"digraph pedigree",
		"\"Lily\" -> \"Harry\"",
		"\"James\" -> \"Harry\"",
		"\"James\" [style=filled",
	} {
		if !strings.Contains(dot, part) {
			tst.Errorf("DOT output missing '%s':\n%s", part, dot)
		}
	}
}
