// Package dataset loads the reference name table used for fuzzy resolution.
//
// The table is a comma-delimited file with a header row. Two columns are
// required: "name" (native script) and "english_name". A "gender" column is
// optional. The dataset is immutable after load and safe for concurrent
// reads without locking.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/moniker/internal/domain/model"
)

// Dataset holds the loaded reference table in row order.
type Dataset struct {
	records []model.NameRecord
	native  []string
	english []string
}

// Load parses the reference table at path.
// It fails with an error wrapping ErrLoadDataset when the file is missing,
// unreadable, lacks a required column, or contains a row with an empty
// required value. Rows must fail loudly here: a half-loaded table would
// silently skew every match downstream.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrLoadDataset, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	return parse(f, path)
}

func parse(r io.Reader, path string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", ErrLoadDataset, path, err)
	}

	nativeIdx, englishIdx, genderIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case model.ColumnNative.String():
			nativeIdx = i
		case model.ColumnEnglish.String():
			englishIdx = i
		case "gender":
			genderIdx = i
		}
	}
	if nativeIdx < 0 {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrLoadDataset, path, model.ColumnNative.String())
	}
	if englishIdx < 0 {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrLoadDataset, path, model.ColumnEnglish.String())
	}

	d := &Dataset{}
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s row %d: %v", ErrLoadDataset, path, row+1, err)
		}

		native := strings.TrimSpace(rec[nativeIdx])
		english := strings.TrimSpace(rec[englishIdx])
		if native == "" || english == "" {
			return nil, fmt.Errorf("%w: %s row %d has an empty required value", ErrLoadDataset, path, row+1)
		}
		gender := ""
		if genderIdx >= 0 && genderIdx < len(rec) {
			gender = strings.TrimSpace(rec[genderIdx])
		}

		d.records = append(d.records, model.NameRecord{
			Native:  native,
			English: english,
			Gender:  gender,
			Index:   row,
		})
		d.native = append(d.native, native)
		d.english = append(d.english, english)
		row++
	}

	if len(d.records) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrLoadDataset, path)
	}
	return d, nil
}

// Column returns all values of one column in row order.
// The returned slice is shared with the dataset and must not be mutated.
func (d *Dataset) Column(c model.Column) ([]string, error) {
	switch c {
	case model.ColumnNative:
		return d.native, nil
	case model.ColumnEnglish:
		return d.english, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, c)
	}
}

// Record returns the row at index i.
func (d *Dataset) Record(i int) model.NameRecord {
	return d.records[i]
}

// Records returns all rows in order. Callers must treat the slice as
// read-only.
func (d *Dataset) Records() []model.NameRecord {
	return d.records
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.records)
}
