package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// GarmentType selects which dimension set a measurement carries.
type GarmentType string

const (
	GarmentShirt   GarmentType = "shirt"
	GarmentPant    GarmentType = "pant"
	GarmentTrouser GarmentType = "trouser"
)

// Valid reports whether t is one of the known garment types.
func (t GarmentType) Valid() bool {
	switch t {
	case GarmentShirt, GarmentPant, GarmentTrouser:
		return true
	}
	return false
}

// ShirtStyle distinguishes shirt cuts. Only meaningful when the garment type
// is shirt; other types carry no style.
type ShirtStyle string

const (
	StyleArrow ShirtStyle = "arrow"
	StyleSlack ShirtStyle = "slack"
)

// Measurement is one garment-type-specific set of body dimensions tied to a
// customer. CreatedAt is nullable: the writer may set it or leave it unset.
type Measurement struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Type       GarmentType `json:"type"`
	Style      *ShirtStyle `json:"style"`
	Dimensions Dimensions  `json:"measurements"`
	Notes      string      `json:"notes,omitempty"`
	Printed    bool        `json:"printed"`
	CreatedAt  *time.Time  `json:"created_at"`
}

// Value is a single dimension reading. Clients send either a JSON string or a
// bare number; both decode to the string form.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*v = Value(n.String())
		return nil
	}
	return fmt.Errorf("dimension value must be a string or number, got %s", b)
}

// ShirtDimensions is the shirt field set.
type ShirtDimensions struct {
	Length   Value `json:"length,omitempty"`
	Chest    Value `json:"chest,omitempty"`
	Waist    Value `json:"waist,omitempty"`
	Hip      Value `json:"hip,omitempty"`
	Shoulder Value `json:"shoulder,omitempty"`
	Sleeve   Value `json:"sleeve,omitempty"`
	Neck     Value `json:"neck,omitempty"`
	Cuff     Value `json:"cuff,omitempty"`
}

// PantDimensions is the pant field set.
type PantDimensions struct {
	Length Value `json:"length,omitempty"`
	Waist  Value `json:"waist,omitempty"`
	Hip    Value `json:"hip,omitempty"`
	Thigh  Value `json:"thigh,omitempty"`
	Knee   Value `json:"knee,omitempty"`
	Bottom Value `json:"bottom,omitempty"`
	Fork   Value `json:"fork,omitempty"`
}

// TrouserDimensions is the trouser field set.
type TrouserDimensions struct {
	Length Value `json:"length,omitempty"`
	Waist  Value `json:"waist,omitempty"`
	Hip    Value `json:"hip,omitempty"`
	Thigh  Value `json:"thigh,omitempty"`
	Bottom Value `json:"bottom,omitempty"`
	Fork   Value `json:"fork,omitempty"`
}

// Dimensions holds exactly one garment-specific dimension set; the populated
// variant must match the owning measurement's type. The serialized JSON form
// is the flat field object and is used both on the wire and as the storage
// blob.
type Dimensions struct {
	Shirt   *ShirtDimensions   `json:"-"`
	Pant    *PantDimensions    `json:"-"`
	Trouser *TrouserDimensions `json:"-"`
}

// MarshalJSON emits the populated variant as a flat object, or {} when empty.
func (d Dimensions) MarshalJSON() ([]byte, error) {
	switch {
	case d.Shirt != nil:
		return json.Marshal(d.Shirt)
	case d.Pant != nil:
		return json.Marshal(d.Pant)
	case d.Trouser != nil:
		return json.Marshal(d.Trouser)
	}
	return []byte("{}"), nil
}

// Encode returns the storage form of d.
func (d Dimensions) Encode() (string, error) {
	b, err := d.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Field is a named dimension value in the garment's canonical field order.
type Field struct {
	Name  string
	Value string
}

// Fields lists the populated dimensions in canonical order. Empty values are
// skipped.
func (d Dimensions) Fields() []Field {
	var pairs []Field
	add := func(name string, v Value) {
		if v != "" {
			pairs = append(pairs, Field{Name: name, Value: string(v)})
		}
	}
	switch {
	case d.Shirt != nil:
		s := d.Shirt
		add("length", s.Length)
		add("chest", s.Chest)
		add("waist", s.Waist)
		add("hip", s.Hip)
		add("shoulder", s.Shoulder)
		add("sleeve", s.Sleeve)
		add("neck", s.Neck)
		add("cuff", s.Cuff)
	case d.Pant != nil:
		p := d.Pant
		add("length", p.Length)
		add("waist", p.Waist)
		add("hip", p.Hip)
		add("thigh", p.Thigh)
		add("knee", p.Knee)
		add("bottom", p.Bottom)
		add("fork", p.Fork)
	case d.Trouser != nil:
		tr := d.Trouser
		add("length", tr.Length)
		add("waist", tr.Waist)
		add("hip", tr.Hip)
		add("thigh", tr.Thigh)
		add("bottom", tr.Bottom)
		add("fork", tr.Fork)
	}
	return pairs
}

// DecodeDimensions parses a flat dimension object into the variant matching
// the garment type. Unknown fields are dropped; an empty blob decodes to an
// empty variant.
func DecodeDimensions(t GarmentType, raw []byte) (Dimensions, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	var d Dimensions
	switch t {
	case GarmentShirt:
		d.Shirt = &ShirtDimensions{}
		return d, json.Unmarshal(raw, d.Shirt)
	case GarmentPant:
		d.Pant = &PantDimensions{}
		return d, json.Unmarshal(raw, d.Pant)
	case GarmentTrouser:
		d.Trouser = &TrouserDimensions{}
		return d, json.Unmarshal(raw, d.Trouser)
	default:
		return d, fmt.Errorf("unknown garment type %q", t)
	}
}
