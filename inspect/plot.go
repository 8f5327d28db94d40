package main

import (
	"image/color"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

func savePlot(h *hbook.H1D, title string, output string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "η"
	p.Y.Label.Text = "dN/dη"

	hist := hplot.NewH1D(h)
	hist.FillColor = nil
	hist.LineStyle.Color = color.RGBA{B: 255, A: 255}
	hist.Infos.Style = hplot.HInfoNone
	p.Add(hist)

	return p.Save(6*vg.Inch, 4*vg.Inch, output)
}
