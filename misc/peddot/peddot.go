// Command peddot renders a pedigree file as a graphviz dot graph for
// quick visual checks of input files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/Davydov/goherit/pedigree"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: peddot <pedigree file>")
		os.Exit(2)
	}
	filename := flag.Arg(0)

	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	var ped *pedigree.Pedigree
	if strings.HasSuffix(filename, ".fam") {
		ped, err = pedigree.ParseFam(f)
	} else {
		ped, err = pedigree.ParseCSV(f)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(ped.DOT())
}
