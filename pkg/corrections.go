package centralmult

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Corrections is the set of corrections already applied to a record.
// Bits are independent.
type Corrections uint32

// Bit positions match the ones used in files written by earlier versions
const (
	SecondaryCorrection  Corrections = 1 << 14
	AcceptanceCorrection Corrections = 1 << 16
	EmpiricalCorrection  Corrections = 1 << 19
)

const NoCorrections Corrections = 0

var correctionNames = []struct {
	Bit  Corrections
	Name string
}{
	{SecondaryCorrection, "secondary"},
	{AcceptanceCorrection, "acceptance"},
	{EmpiricalCorrection, "empirical"},
}

const allCorrections = SecondaryCorrection | AcceptanceCorrection | EmpiricalCorrection

func (c Corrections) Has(bit Corrections) bool {
	return bit != 0 && c&bit == bit
}

func (c Corrections) Set(bits Corrections) Corrections {
	return c | bits
}

func (c Corrections) Clear(bits Corrections) Corrections {
	return c &^ bits
}

func (c Corrections) Names() []string {
	names := make([]string, 0, len(correctionNames))
	for _, entry := range correctionNames {
		if c.Has(entry.Bit) {
			names = append(names, entry.Name)
		}
	}
	return names
}

func (c Corrections) String() string {
	names := c.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseCorrections converts correction names into a bitmask.
func ParseCorrections(names []string) (Corrections, error) {
	var c Corrections
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || name == "none" {
			continue
		}
		found := false
		for _, entry := range correctionNames {
			if entry.Name == name {
				c = c.Set(entry.Bit)
				found = true
				break
			}
		}
		if !found {
			return NoCorrections, fmt.Errorf("invalid correction: %s", name)
		}
	}
	return c, nil
}

func (c Corrections) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Names())
}

func (c *Corrections) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParseCorrections(names)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalText accepts "secondary,acceptance" or "secondary|acceptance",
// used for environment variables.
func (c *Corrections) UnmarshalText(text []byte) error {
	fields := strings.FieldsFunc(string(text), func(r rune) bool {
		return r == ',' || r == '|'
	})
	parsed, err := ParseCorrections(fields)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FromBits keeps only the known correction bits of a stored mask.
func FromBits(bits uint32) Corrections {
	return Corrections(bits) & allCorrections
}
