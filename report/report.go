//Package report draws a summary of a finished dataset: a bar chart with
//the number of occurrences of each species found along the trajectory, so
//one can see at a glance what the sampling worked with.
package report

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//maxBars keeps the chart readable for reactive trajectories, which can
//easily produce hundreds of transient species.
const maxBars = 25

//SpeciesBars saves a png bar chart of the species populations to plotname.
//counts maps each species name to its number of occurrences. Only the
//most populated species get their own bar; the rest are folded into a
//final "other" bar.
func SpeciesBars(counts map[string]int, title, plotname string) error {
	if len(counts) == 0 {
		return fmt.Errorf("report: no species to plot")
	}
	type pop struct {
		name string
		n    int
	}
	pops := make([]pop, 0, len(counts))
	for k, v := range counts {
		pops = append(pops, pop{k, v})
	}
	sort.Slice(pops, func(i, j int) bool {
		if pops[i].n != pops[j].n {
			return pops[i].n > pops[j].n
		}
		return pops[i].name < pops[j].name
	})
	if len(pops) > maxBars {
		other := 0
		for _, v := range pops[maxBars-1:] {
			other += v.n
		}
		pops = append(pops[:maxBars-1], pop{"other", other})
	}
	values := make(plotter.Values, len(pops))
	names := make([]string, len(pops))
	for i, v := range pops {
		values[i] = float64(v.n)
		names[i] = v.name
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.Y.Label.Text = "occurrences"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 60, G: 100, B: 180, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -0.8
	p.X.Tick.Label.YAlign = -0.3
	return p.Save(8*vg.Inch, 4*vg.Inch, plotname)
}
