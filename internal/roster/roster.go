// package roster reads the tabular user input a provisioning run iterates.
//
// The only column this tool requires is UPN (the mailbox identity); every
// other column is carried through untouched and ignored downstream.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tbarron/m365prof/internal/shared"
)

// Record is one input row. UPN may be empty when the row lacked the identity
// column value; the batch runner counts those as failures rather than
// aborting the run.
type Record struct {
	UPN string
}

// LoadFile reads and parses the roster CSV at path.
//
// A missing file and an unparseable file are both fatal for the whole run and
// are reported before any store mutation happens.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", shared.ErrRosterNotFound, path)
		}
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrRosterParse, path, err)
	}
	return records, nil
}

// Parse reads roster records from r. The first row is the header and must
// contain a UPN column (matched case-insensitively).
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	// Rows may carry trailing or missing columns; handle width ourselves.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	upnCol := -1
	for i, h := range header {
		if shared.NormalizeHeader(h) == "upn" {
			upnCol = i
			break
		}
	}
	if upnCol < 0 {
		return nil, fmt.Errorf("missing required column UPN")
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		var upn string
		if upnCol < len(row) {
			upn = row[upnCol]
		}
		records = append(records, Record{UPN: upn})
	}

	return records, nil
}
