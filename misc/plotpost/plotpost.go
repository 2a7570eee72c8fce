// Command plotpost runs posterior inference on a pedigree and plots
// the per-person gene-count distributions as grouped bars.
package main

import (
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/goherit/gene"
	"bitbucket.org/Davydov/goherit/pmodel"
)

func main() {
	out := flag.String("out", "posterior.png", "output file name")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: plotpost [-out file.png] <pedigree file>")
		os.Exit(2)
	}

	data, err := pmodel.NewData(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := pmodel.NewModel(data, false)
	res, err := m.Infer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := plot.New()
	p.Title.Text = "Posterior gene-count distributions"
	p.Y.Label.Text = "probability"
	p.Y.Max = 1

	width := vg.Points(15)

	for g := 0; g < gene.NCounts; g++ {
		values := make(plotter.Values, len(res.People))
		for i, person := range res.People {
			values[i] = person.Gene[g]
		}

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(g)
		bars.Offset = width * vg.Length(g-1)

		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("%d copies", g), bars)
	}

	names := make([]string, len(res.People))
	for i, person := range res.People {
		names[i] = person.Name
	}
	p.NominalX(names...)
	p.Legend.Top = true

	if err := p.Save(vg.Length(60*len(names))+2*vg.Inch, 4*vg.Inch, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
