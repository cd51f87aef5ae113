package collection

import "encoding/json"

// Meta describes persisted per-collection metadata.
type Meta struct {
	Name Type `json:"name"`
	// Count is filled in when listing and never persisted.
	Count int `json:"-"`
}

// MarshalList serialises metadata slice.
func MarshalList(metas []Meta) ([]byte, error) {
	return json.MarshalIndent(metas, "", "  ")
}

// UnmarshalList deserialises metadata slice and upgrades arrays of plain names.
func UnmarshalList(data []byte) ([]Meta, error) {
	if len(data) == 0 {
		return []Meta{}, nil
	}
	var metas []Meta
	if err := json.Unmarshal(data, &metas); err == nil {
		return metas, nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	metas = make([]Meta, 0, len(names))
	for _, name := range names {
		metas = append(metas, Meta{Name: Type(name)})
	}
	return metas, nil
}
