package domain

import (
	"encoding/json"
	"fmt"
)

// Serialize flattens a document into its persisted row shape. The element
// sequence is stored as one JSON array, in paint order.
func Serialize(doc Document) (Record, error) {
	elements := doc.Elements
	if elements == nil {
		elements = []Element{}
	}

	raw, err := json.Marshal(elements)
	if err != nil {
		return Record{}, fmt.Errorf("marshal elements: %w", err)
	}

	return Record{
		ID:              doc.ID,
		Name:            doc.Name,
		Background:      doc.Background,
		BackgroundImage: doc.BackgroundImage,
		Width:           doc.Width,
		Height:          doc.Height,
		Elements:        raw,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}

// Deserialize rebuilds a document from a persisted row. A missing or null
// element block yields an empty sequence.
func Deserialize(rec Record) (Document, error) {
	elements := []Element{}
	if len(rec.Elements) > 0 && string(rec.Elements) != "null" {
		if err := json.Unmarshal(rec.Elements, &elements); err != nil {
			return Document{}, fmt.Errorf("unmarshal elements: %w", err)
		}
		if elements == nil {
			elements = []Element{}
		}
	}

	return Document{
		ID:              rec.ID,
		Name:            rec.Name,
		Background:      rec.Background,
		BackgroundImage: rec.BackgroundImage,
		Width:           rec.Width,
		Height:          rec.Height,
		Elements:        elements,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}, nil
}
