package models

import (
	"bytes"
	"encoding/json"
	"math"
)

// -----------------------------------------------------------------------------
// Row
// -----------------------------------------------------------------------------

// MCell is one display column of a row.
type MCell struct {
	Column string
	Value  interface{}
}

// MRow is a record of display-ready fields for a single identifier. Columns
// keep their insertion order when serialized.
type MRow []MCell

// Get returns the value stored under column.
func (r MRow) Get(column string) (interface{}, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return nil, false
}

// -----------------------------------------------------------------------------

// Set replaces the value of column or appends it as the last column.
func (r *MRow) Set(column string, value interface{}) {
	for i := range *r {
		if (*r)[i].Column == column {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, MCell{Column: column, Value: value})
}

// -----------------------------------------------------------------------------

func (r MRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Column)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// -----------------------------------------------------------------------------
// Return
// -----------------------------------------------------------------------------

// MReturn is a percentage return that may be "not available". It serializes
// to null when not available so the front-end can tell it apart from 0.
type MReturn struct {
	Value float64
	Valid bool
}

// NotAvailable is the "no data" marker.
func NotAvailable() MReturn {
	return MReturn{}
}

// ReturnOf wraps a computed value. Non-finite values are not available.
func ReturnOf(v float64) MReturn {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable()
	}
	return MReturn{Value: v, Valid: true}
}

func (r MReturn) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}
