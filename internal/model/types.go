package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Rendition is one derived artifact of an asset's original.
type Rendition struct {
	ObjectKey string `json:"object_key"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
}

type Renditions []Rendition

func (r Renditions) Value() (driver.Value, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal Renditions: %w", err)
	}
	return b, nil
}

func (r *Renditions) Scan(src interface{}) error {
	if src == nil {
		*r = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Renditions.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(data, r)
}

// ObjectKeys returns the content-store keys of every rendition, in order.
func (r Renditions) ObjectKeys() []string {
	keys := make([]string, 0, len(r))
	for _, rn := range r {
		keys = append(keys, rn.ObjectKey)
	}
	return keys
}
