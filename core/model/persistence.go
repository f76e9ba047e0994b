package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// SaveWeights validates w and writes it as JSON to filename.
//
// Example:
//
//	w, err := lr.ExportWeights()
//	...
//	err = model.SaveWeights(w, "model.json")
func SaveWeights(w *ModelWeights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	return WriteWeights(w, file)
}

// LoadWeights reads and validates weights written by SaveWeights.
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadWeights(file)
}

// WriteWeights validates w and writes it as JSON to wr.
func WriteWeights(w *ModelWeights, wr io.Writer) error {
	if err := w.Validate(); err != nil {
		return err
	}
	data, err := w.ToJSON()
	if err != nil {
		return err
	}
	if _, err := wr.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to write model weights")
	}
	return nil
}

// ReadWeights decodes and validates weights from r.
func ReadWeights(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read model weights")
	}
	var w ModelWeights
	if err := w.FromJSON(data); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}
