package main

import (
	"math"

	centralmult "github.com/next-exp/centralmult_go/pkg"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Toy central barrel: one cylindrical layer around the beam axis
const (
	LAYER_RADIUS      = 3.9  // cm
	LAYER_HALF_LENGTH = 14.1 // cm
)

// Generator is a toy Monte-Carlo filler. Each event is generated from its
// own seed so the output does not depend on which worker ran it.
type Generator struct {
	Seed             uint64
	MeanMultiplicity float64
	VertexSigma      float64
	Corrections      centralmult.Corrections
}

// EtaAcceptance returns the eta range covered by the layer for a vertex
// at vz along the beam axis.
func EtaAcceptance(vz float64) (float64, float64) {
	low := -math.Asinh((LAYER_HALF_LENGTH + vz) / LAYER_RADIUS)
	high := math.Asinh((LAYER_HALF_LENGTH - vz) / LAYER_RADIUS)
	return low, high
}

// Generate clears the record and fills it with one event: the acceptance
// row gets 1 for every eta bin fully inside the layer acceptance, and
// every track inside an accepted bin adds 1 to its (eta, phi) bin.
func (g Generator) Generate(record *centralmult.Record, evtNumber int) (float64, error) {
	hist, err := record.Histogram()
	if err != nil {
		return 0, err
	}
	record.ClearEvent()
	record.SetCorrected(g.Corrections)

	src := rand.NewSource(g.Seed + uint64(evtNumber)*0x9E3779B97F4A7C15)
	vertex := distuv.Normal{Mu: 0, Sigma: g.VertexSigma, Src: src}
	multiplicity := distuv.Poisson{Lambda: g.MeanMultiplicity, Src: src}
	etaAxis := hist.XAxis()
	etaDist := distuv.Uniform{Min: etaAxis.Min, Max: etaAxis.Max, Src: src}
	phiDist := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}

	vz := vertex.Rand()
	low, high := EtaAcceptance(vz)
	for ix := 1; ix <= etaAxis.NBins; ix++ {
		if etaAxis.BinLowEdge(ix) >= low && etaAxis.BinUpEdge(ix) <= high {
			hist.SetAcceptance(ix, 1)
		}
	}

	nTracks := int(multiplicity.Rand())
	for i := 0; i < nTracks; i++ {
		eta := etaDist.Rand()
		phi := phiDist.Rand()
		if hist.Acceptance(etaAxis.FindBin(eta)) == 0 {
			continue
		}
		hist.Fill(eta, phi, 1)
	}
	return vz, nil
}
