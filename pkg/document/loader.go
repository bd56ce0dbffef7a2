package document

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoadFile reads a document from a JSON file.
func LoadFile(path string) (doc *Document, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read document file: %s", path)
		return doc, err
	}

	// Parse JSON
	doc = New()
	err = json.Unmarshal(fileData, doc)
	if err != nil {
		doc = nil
		err = errors.Wrapf(err, "failed to parse document JSON: %s", path)
		return doc, err
	}

	// Validate entry IDs
	err = doc.Validate()
	if err != nil {
		doc = nil
		err = errors.Wrap(err, "document validation failed")
		return doc, err
	}

	return doc, err
}

// SaveFile writes a document to a JSON file.
func SaveFile(doc *Document, path string) (err error) {
	var data []byte
	data, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal document")
		return err
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write document file: %s", path)
		return err
	}

	return err
}

// Validate checks that the document's entry sequences are well-formed:
// every entry carries a positive ID that is unique within its sequence.
func (d *Document) Validate() (err error) {
	seen := make(map[int64]struct{}, len(d.Education))
	for i, entry := range d.Education {
		if entry.ID <= 0 {
			err = errors.Errorf("education entry at index %d has invalid id %d", i, entry.ID)
			return err
		}
		if _, dup := seen[entry.ID]; dup {
			err = errors.Errorf("education entry id %d is duplicated", entry.ID)
			return err
		}
		seen[entry.ID] = struct{}{}
	}

	seen = make(map[int64]struct{}, len(d.Experience))
	for i, entry := range d.Experience {
		if entry.ID <= 0 {
			err = errors.Errorf("experience entry at index %d has invalid id %d", i, entry.ID)
			return err
		}
		if _, dup := seen[entry.ID]; dup {
			err = errors.Errorf("experience entry id %d is duplicated", entry.ID)
			return err
		}
		seen[entry.ID] = struct{}{}
	}

	seen = make(map[int64]struct{}, len(d.Portfolio))
	for i, entry := range d.Portfolio {
		if entry.ID <= 0 {
			err = errors.Errorf("portfolio entry at index %d has invalid id %d", i, entry.ID)
			return err
		}
		if _, dup := seen[entry.ID]; dup {
			err = errors.Errorf("portfolio entry id %d is duplicated", entry.ID)
			return err
		}
		seen[entry.ID] = struct{}{}
	}

	return err
}
