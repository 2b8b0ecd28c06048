package model

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveModel gob-encodes v to filename. The file is written to a temporary
// sibling first and renamed into place, so a crash never leaves a truncated
// model behind.
//
// Example:
//
//	weights, _ := lr.ExportWeights()
//	err := model.SaveModel(weights, "password_time_model.gob")
func SaveModel(v interface{}, filename string) (err error) {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = SaveModelToWriter(v, tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to move model into place: %w", err)
	}
	return nil
}

// LoadModel gob-decodes filename into v, which must be a pointer.
func LoadModel(v interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadModelFromReader(v, file)
}

// SaveModelToWriter gob-encodes v to w.
func SaveModelToWriter(v interface{}, w io.Writer) error {
	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// LoadModelFromReader gob-decodes from r into v, which must be a pointer.
func LoadModelFromReader(v interface{}, r io.Reader) error {
	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}
	return nil
}
