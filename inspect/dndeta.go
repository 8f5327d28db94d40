package main

import (
	"math"

	centralmult "github.com/next-exp/centralmult_go/pkg"
	"go-hep.org/x/hep/hbook"
)

type DNdEtaPoint struct {
	Eta   float64
	Value float64
	Error float64
	// number of events with this eta bin in acceptance
	Events float64
}

// DNdEta integrates the summed histogram over phi and normalises each eta
// bin by its acceptance count and width. Bins never in acceptance are
// skipped.
func DNdEta(sum *centralmult.Hist2D) []DNdEtaPoint {
	etaAxis := sum.XAxis()
	width := etaAxis.BinWidth()
	points := make([]DNdEtaPoint, 0, etaAxis.NBins)
	for ix := 1; ix <= etaAxis.NBins; ix++ {
		nEvents := sum.Acceptance(ix)
		if nEvents <= 0 {
			continue
		}
		signal, variance := 0.0, 0.0
		for iy := 1; iy <= sum.YAxis().NBins; iy++ {
			signal += sum.BinContent(ix, iy)
			e := sum.BinError(ix, iy)
			variance += e * e
		}
		points = append(points, DNdEtaPoint{
			Eta:    etaAxis.BinCenter(ix),
			Value:  signal / nEvents / width,
			Error:  math.Sqrt(variance) / nEvents / width,
			Events: nEvents,
		})
	}
	return points
}

func DNdEtaH1D(etaAxis centralmult.Axis, points []DNdEtaPoint, name string) *hbook.H1D {
	h := hbook.NewH1D(etaAxis.NBins, etaAxis.Min, etaAxis.Max)
	for _, p := range points {
		h.Fill(p.Eta, p.Value)
	}
	h.Ann["name"] = name
	h.Ann["path"] = "/" + name
	h.Ann["title"] = "dN_{ch}/d#eta"
	h.Ann["xlabel"] = "#eta"
	return h
}
