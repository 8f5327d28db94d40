package centralmult

import (
	"bytes"
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// ToH2D converts the regular bins into an hbook histogram for plotting
// and YODA export. The acceptance row is not part of it; use
// AcceptanceH1D. Bin errors are recomputed by hbook from the contents.
func (h *Hist2D) ToH2D(name string) *hbook.H2D {
	out := hbook.NewH2D(
		h.xaxis.NBins, h.xaxis.Min, h.xaxis.Max,
		h.yaxis.NBins, h.yaxis.Min, h.yaxis.Max,
	)
	for ix := 1; ix <= h.xaxis.NBins; ix++ {
		for iy := 1; iy <= h.yaxis.NBins; iy++ {
			content := h.sumw.At(ix, iy)
			if content == 0 {
				continue
			}
			out.Fill(h.xaxis.BinCenter(ix), h.yaxis.BinCenter(iy), content)
		}
	}
	out.Ann["name"] = name
	out.Ann["path"] = "/" + name
	out.Ann["title"] = "d^{2}N_{ch}/d#etad#varphi in the central region"
	out.Ann["xlabel"] = "#eta"
	out.Ann["ylabel"] = "#varphi"
	return out
}

// AcceptanceH1D converts the acceptance row into a 1D histogram over eta.
func (h *Hist2D) AcceptanceH1D(name string) *hbook.H1D {
	out := hbook.NewH1D(h.xaxis.NBins, h.xaxis.Min, h.xaxis.Max)
	for ix := 1; ix <= h.xaxis.NBins; ix++ {
		acc := h.sumw.At(ix, ACCEPTANCE_ROW)
		if acc == 0 {
			continue
		}
		out.Fill(h.xaxis.BinCenter(ix), acc)
	}
	out.Ann["name"] = name
	out.Ann["path"] = "/" + name
	out.Ann["title"] = "eta acceptance"
	out.Ann["xlabel"] = "#eta"
	return out
}

// MarshalYODA writes the density and the acceptance of the record as two
// YODA objects named after DisplayName.
func (r *Record) MarshalYODA() ([]byte, error) {
	hist, err := r.Histogram()
	if err != nil {
		return nil, err
	}
	name := r.DisplayName()
	density, err := hist.ToH2D(name).MarshalYODA()
	if err != nil {
		return nil, fmt.Errorf("error encoding %s: %w", name, err)
	}
	acceptance, err := hist.AcceptanceH1D(name + "Acceptance").MarshalYODA()
	if err != nil {
		return nil, fmt.Errorf("error encoding %s acceptance: %w", name, err)
	}
	var buf bytes.Buffer
	buf.Write(density)
	buf.Write(acceptance)
	return buf.Bytes(), nil
}
