package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CartKey is the dataset field holding the cart in the persisted document.
const CartKey = "cart"

// Dataset is the full state of one tenant: the nine collections and the cart.
// It serializes flat, one JSON field per collection plus "cart".
type Dataset struct {
	Collections map[EntityType][]Record
	Cart        Cart
}

// NewDataset returns a dataset with every collection present and empty.
func NewDataset() *Dataset {
	d := &Dataset{
		Collections: make(map[EntityType][]Record, len(EntityTypes)),
		Cart:        Cart{},
	}
	for _, t := range EntityTypes {
		d.Collections[t] = []Record{}
	}
	return d
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := NewDataset()
	if d == nil {
		return out
	}
	for t, records := range d.Collections {
		out.Collections[t] = CloneRecords(records)
	}
	out.Cart = d.Cart.Clone()
	return out
}

// MarshalJSON writes the dataset as a flat object keyed by collection name.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(EntityTypes)+1)
	for _, t := range EntityTypes {
		records := d.Collections[t]
		if records == nil {
			records = []Record{}
		}
		flat[string(t)] = records
	}
	cart := d.Cart
	if cart == nil {
		cart = Cart{}
	}
	flat[CartKey] = cart
	return json.Marshal(flat)
}

// UnmarshalJSON reads a flat dataset object. Numbers inside records decode as
// json.Number so they re-encode exactly; strings stay strings. Unknown fields
// are ignored and cart entries below 1 are dropped.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	*d = *NewDataset()
	for _, t := range EntityTypes {
		raw, ok := flat[string(t)]
		if !ok || bytes.Equal(raw, []byte("null")) {
			continue
		}
		var records []Record
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&records); err != nil {
			return fmt.Errorf("decoding %s: %w", t, err)
		}
		if records == nil {
			records = []Record{}
		}
		d.Collections[t] = records
	}

	if raw, ok := flat[CartKey]; ok && !bytes.Equal(raw, []byte("null")) {
		var cart Cart
		if err := json.Unmarshal(raw, &cart); err != nil {
			return fmt.Errorf("decoding cart: %w", err)
		}
		for productID, qty := range cart {
			if qty >= 1 {
				d.Cart[productID] = qty
			}
		}
	}
	return nil
}

// RootDocument maps tenant id to that tenant's dataset. It is the unit of
// persistence.
type RootDocument map[string]*Dataset

// Clone returns a deep copy of every dataset in the document.
func (doc RootDocument) Clone() RootDocument {
	out := make(RootDocument, len(doc))
	for id, ds := range doc {
		out[id] = ds.Clone()
	}
	return out
}

// Encode serializes the document as JSON.
func (doc RootDocument) Encode() ([]byte, error) {
	if doc == nil {
		doc = RootDocument{}
	}
	return json.Marshal(doc)
}

// DecodeRootDocument parses a serialized document. A null or empty JSON object
// yields an empty document; a null dataset is replaced by an empty one.
func DecodeRootDocument(data []byte) (RootDocument, error) {
	var doc RootDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = RootDocument{}
	}
	for id, ds := range doc {
		if ds == nil {
			doc[id] = NewDataset()
		}
	}
	return doc, nil
}
