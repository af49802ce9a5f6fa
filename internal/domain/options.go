package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OptionsShape tags which wire format an item's options arrived in. The
// shape is resolved once when the payload is decoded; readers never sniff
// the raw JSON again.
type OptionsShape int

const (
	OptionsNone OptionsShape = iota
	// OptionsStructured is {"selectedOptions": [{name, price}], "removedIngredients": [..]}.
	OptionsStructured
	// OptionsLegacy is a flat array of option labels.
	OptionsLegacy
	// OptionsMalformed matched neither shape; the raw payload is kept and
	// rendered as an opaque fallback instead of failing the order.
	OptionsMalformed
)

type SelectedOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ItemOptions struct {
	Shape    OptionsShape
	Selected []SelectedOption
	Removed  []string
	Legacy   []string
	raw      json.RawMessage
}

type structuredOptions struct {
	SelectedOptions    []SelectedOption `json:"selectedOptions"`
	RemovedIngredients []string         `json:"removedIngredients"`
}

func (o *ItemOptions) UnmarshalJSON(data []byte) error {
	*o = ItemOptions{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var labels []string
		if err := json.Unmarshal(data, &labels); err == nil {
			o.Shape = OptionsLegacy
			o.Legacy = labels
			return nil
		}
	} else if strings.HasPrefix(trimmed, "{") {
		// An object counts as structured only when it carries at least one
		// of the known keys; anything else is an unknown dialect.
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err == nil {
			_, hasSelected := probe["selectedOptions"]
			_, hasRemoved := probe["removedIngredients"]
			if hasSelected || hasRemoved {
				var s structuredOptions
				if err := json.Unmarshal(data, &s); err == nil {
					o.Shape = OptionsStructured
					o.Selected = s.SelectedOptions
					o.Removed = s.RemovedIngredients
					return nil
				}
			}
		}
	}

	o.Shape = OptionsMalformed
	o.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the payload in the shape it arrived in, so a record
// read and written back is byte-equivalent regardless of format.
func (o ItemOptions) MarshalJSON() ([]byte, error) {
	switch o.Shape {
	case OptionsStructured:
		return json.Marshal(structuredOptions{
			SelectedOptions:    o.Selected,
			RemovedIngredients: o.Removed,
		})
	case OptionsLegacy:
		return json.Marshal(o.Legacy)
	case OptionsMalformed:
		return o.raw, nil
	}
	return []byte("null"), nil
}

// Render produces the human-readable option summary shown on the board.
// A malformed payload renders as its raw text rather than an error.
func (o ItemOptions) Render() string {
	switch o.Shape {
	case OptionsStructured:
		parts := make([]string, 0, len(o.Selected)+len(o.Removed))
		for _, s := range o.Selected {
			if s.Price.IsZero() {
				parts = append(parts, s.Name)
			} else {
				parts = append(parts, fmt.Sprintf("%s (+%s)", s.Name, s.Price.StringFixed(2)))
			}
		}
		for _, r := range o.Removed {
			parts = append(parts, "no "+r)
		}
		return strings.Join(parts, ", ")
	case OptionsLegacy:
		return strings.Join(o.Legacy, ", ")
	case OptionsMalformed:
		return string(o.raw)
	}
	return ""
}

func (o ItemOptions) clone() ItemOptions {
	c := o
	c.Selected = append([]SelectedOption(nil), o.Selected...)
	c.Removed = append([]string(nil), o.Removed...)
	c.Legacy = append([]string(nil), o.Legacy...)
	c.raw = append(json.RawMessage(nil), o.raw...)
	return c
}

// Scan and Value let GORM store the options column as JSON.
func (o *ItemOptions) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*o = ItemOptions{}
		return nil
	case []byte:
		return o.UnmarshalJSON(v)
	case string:
		return o.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("options: unsupported column type %T", value)
}

func (o ItemOptions) Value() (driver.Value, error) {
	if o.Shape == OptionsNone {
		return nil, nil
	}
	b, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return []byte(b), nil
}
