package centralmult

import "fmt"

// Merge sums the histograms of records sharing the same binning. Regular
// bins and the acceptance row are added in parallel. The records are not
// modified.
func Merge(records ...*Record) (*Hist2D, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	first, err := records[0].Histogram()
	if err != nil {
		return nil, fmt.Errorf("error merging record 0: %w", err)
	}
	sum := first.Clone()
	for i, record := range records[1:] {
		h, err := record.Histogram()
		if err != nil {
			return nil, fmt.Errorf("error merging record %d: %w", i+1, err)
		}
		if err := sum.Add(h); err != nil {
			return nil, fmt.Errorf("error merging record %d: %w", i+1, err)
		}
	}
	return sum, nil
}
