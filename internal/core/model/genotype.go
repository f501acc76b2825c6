package model

import (
	"encoding/json"
	"fmt"
)

type Zygosity string

const (
	Normal    Zygosity = "normal"
	Het       Zygosity = "het"
	Expressed Zygosity = "expressed"
	Super     Zygosity = "super"
)

func (z Zygosity) Valid() bool {
	switch z {
	case Normal, Het, Expressed, Super:
		return true
	}
	return false
}

// Entry is one gene's recorded state. PosHet, when set, is the percentage
// chance that a recessive carrier is truly heterozygous.
type Entry struct {
	State  Zygosity `json:"state" yaml:"state"`
	PosHet *float64 `json:"pos_het,omitempty" yaml:"pos_het,omitempty"`
}

func State(z Zygosity) Entry {
	return Entry{State: z}
}

func PossibleHet(z Zygosity, percent float64) Entry {
	return Entry{State: z, PosHet: &percent}
}

type entryObject struct {
	State  Zygosity `json:"state"`
	PosHet *float64 `json:"pos_het,omitempty"`
}

// MarshalJSON writes a bare state string unless a posHet is recorded.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.PosHet == nil {
		return json.Marshal(string(e.State))
	}
	return json.Marshal(entryObject{State: e.State, PosHet: e.PosHet})
}

// UnmarshalJSON accepts either "het" or {"state":"het","pos_het":66}.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Entry{State: Zygosity(s)}
		return nil
	}
	var obj entryObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("genotype entry must be a state string or {state, pos_het}: %w", err)
	}
	*e = Entry{State: obj.State, PosHet: obj.PosHet}
	return nil
}

// Genotype maps gene keys to entries. Absent keys read as normal.
type Genotype map[string]Entry

func (g Genotype) Get(key string) Entry {
	if e, ok := g[key]; ok {
		return e
	}
	return Entry{State: Normal}
}

func (g Genotype) Clone() Genotype {
	out := make(Genotype, len(g))
	for k, v := range g {
		if v.PosHet != nil {
			p := *v.PosHet
			v.PosHet = &p
		}
		out[k] = v
	}
	return out
}
