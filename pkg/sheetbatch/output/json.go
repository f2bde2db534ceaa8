// Package output serializes compiled batches to the JSON request body
// of a spreadsheet batch update.
package output

import (
	"encoding/json"

	"github.com/tidwall/pretty"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/models"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

// ToJSON serializes a batch to JSON. Pretty output keeps short arrays
// on one line.
func ToJSON(batch *ops.Batch, indent bool) ([]byte, error) {
	data, err := json.Marshal(batch)
	if err != nil {
		return nil, err
	}
	if indent {
		return pretty.Pretty(data), nil
	}
	return data, nil
}

// SheetToJSON serializes the batch of a single sheet to JSON.
func SheetToJSON(sheet *models.Sheet, indent bool) ([]byte, error) {
	requests, err := sheet.Operations()
	if err != nil {
		return nil, err
	}
	return ToJSON(ops.NewBatch(requests), indent)
}
