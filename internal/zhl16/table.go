package zhl16

import (
	"strings"

	"github.com/pkg/errors"
)

// Variant selects which set of a-coefficients is used for ceilings.
type Variant string

const (
	// VariantA is the original coefficient set without added conservatism.
	VariantA Variant = "A"
	// VariantB has more conservative a-values, used for table construction.
	VariantB Variant = "B"
	// VariantC has faster a-values, the least conservative set.
	VariantC Variant = "C"
)

func (v Variant) index() (int, error) {
	switch v {
	case VariantA:
		return 0, nil
	case VariantB:
		return 1, nil
	case VariantC:
		return 2, nil
	}
	return 0, errors.Wrapf(ErrUnknownCompartment, "variant %q", string(v))
}

// ParseVariant accepts "A", "B" or "C" in either case.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := v.index(); err != nil {
		return "", err
	}
	return v, nil
}

// Revision names a compartment set.
type Revision string

const (
	// RevisionStandard is compartments 1 through 16.
	RevisionStandard Revision = "standard"
	// RevisionWith1b adds the 5-minute compartment "1b" after compartment 1.
	RevisionWith1b Revision = "with-1b"
)

// ParseRevision accepts "standard" or "with-1b".
func ParseRevision(s string) (Revision, error) {
	switch r := Revision(strings.ToLower(strings.TrimSpace(s))); r {
	case RevisionStandard, RevisionWith1b:
		return r, nil
	}
	return "", errors.Errorf("unknown table revision %q", s)
}

// CompartmentID identifies a compartment. Ids are "1" through "16" plus "1b".
type CompartmentID string

// Compartment1b is the alternate first compartment present in RevisionWith1b.
const Compartment1b CompartmentID = "1b"

// Compartment holds the nitrogen parameters of one tissue compartment.
type Compartment struct {
	ID       CompartmentID
	HalfTime float64 // minutes
	B        float64
	a        [3]float64 // indexed by Variant
}

// A returns the a-coefficient for the given variant.
func (c Compartment) A(v Variant) (float64, error) {
	i, err := v.index()
	if err != nil {
		return 0, err
	}
	return c.a[i], nil
}

// DecayConstant returns ln(2) / half-time for the compartment.
func (c Compartment) DecayConstant() (float64, error) {
	k, err := DecayConstant(c.HalfTime)
	if err != nil {
		return 0, errors.Wrapf(err, "compartment %s", c.ID)
	}
	return k, nil
}

// zhl16N is the ZH-L16 nitrogen table. Compartment 1b sits between 1 and 2
// and is only included by RevisionWith1b.
var zhl16N = []Compartment{
	{ID: "1", HalfTime: 4.0, B: 0.505, a: [3]float64{1.2599, 1.2599, 1.2599}},
	{ID: Compartment1b, HalfTime: 5.0, B: 0.5578, a: [3]float64{1.1696, 1.1696, 1.1696}},
	{ID: "2", HalfTime: 8.0, B: 0.6514, a: [3]float64{1.0, 1.0, 1.0}},
	{ID: "3", HalfTime: 12.5, B: 0.7222, a: [3]float64{0.8618, 0.8618, 0.8618}},
	{ID: "4", HalfTime: 18.5, B: 0.7825, a: [3]float64{0.7562, 0.7562, 0.7562}},
	{ID: "5", HalfTime: 27.0, B: 0.8126, a: [3]float64{0.6667, 0.6667, 0.62}},
	{ID: "6", HalfTime: 38.3, B: 0.8434, a: [3]float64{0.5933, 0.56, 0.5043}},
	{ID: "7", HalfTime: 54.3, B: 0.8693, a: [3]float64{0.5282, 0.4947, 0.441}},
	{ID: "8", HalfTime: 77.0, B: 0.891, a: [3]float64{0.4701, 0.45, 0.4}},
	{ID: "9", HalfTime: 109.0, B: 0.9092, a: [3]float64{0.4187, 0.4187, 0.375}},
	{ID: "10", HalfTime: 146.0, B: 0.9222, a: [3]float64{0.3798, 0.3798, 0.35}},
	{ID: "11", HalfTime: 187.0, B: 0.9319, a: [3]float64{0.3497, 0.3497, 0.3295}},
	{ID: "12", HalfTime: 239.0, B: 0.9403, a: [3]float64{0.3223, 0.3223, 0.3065}},
	{ID: "13", HalfTime: 305.0, B: 0.9477, a: [3]float64{0.2971, 0.285, 0.2835}},
	{ID: "14", HalfTime: 390.0, B: 0.9544, a: [3]float64{0.2737, 0.2737, 0.261}},
	{ID: "15", HalfTime: 498.0, B: 0.9602, a: [3]float64{0.2523, 0.2523, 0.248}},
	{ID: "16", HalfTime: 635.0, B: 0.9653, a: [3]float64{0.2327, 0.2327, 0.2327}},
}

// Table is an immutable, ordered set of compartments.
type Table struct {
	revision     Revision
	compartments []Compartment
	index        map[CompartmentID]int
}

// NewTable builds the compartment table for a revision.
func NewTable(rev Revision) (*Table, error) {
	if _, err := ParseRevision(string(rev)); err != nil {
		return nil, err
	}

	t := &Table{
		revision: rev,
		index:    make(map[CompartmentID]int, len(zhl16N)),
	}
	for _, c := range zhl16N {
		if c.ID == Compartment1b && rev != RevisionWith1b {
			continue
		}
		t.index[c.ID] = len(t.compartments)
		t.compartments = append(t.compartments, c)
	}
	return t, nil
}

// StandardTable returns the 16-compartment table.
func StandardTable() *Table {
	t, _ := NewTable(RevisionStandard)
	return t
}

// Revision reports which compartment set the table holds.
func (t *Table) Revision() Revision { return t.revision }

// Len returns the number of compartments.
func (t *Table) Len() int { return len(t.compartments) }

// Compartments returns the compartments in table order. The slice is a copy.
func (t *Table) Compartments() []Compartment {
	out := make([]Compartment, len(t.compartments))
	copy(out, t.compartments)
	return out
}

// IDs returns compartment ids in table order.
func (t *Table) IDs() []CompartmentID {
	ids := make([]CompartmentID, len(t.compartments))
	for i, c := range t.compartments {
		ids[i] = c.ID
	}
	return ids
}

// Lookup returns the compartment with the given id.
func (t *Table) Lookup(id CompartmentID) (Compartment, error) {
	i, ok := t.index[id]
	if !ok {
		return Compartment{}, errors.Wrapf(ErrUnknownCompartment, "id %q in %s table", string(id), t.revision)
	}
	return t.compartments[i], nil
}
