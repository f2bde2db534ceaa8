package ops

import "encoding/json"

// Batch is an ordered, compiled set of operations to be applied as one
// atomic request. Order matters: the remote side applies requests in
// submission order.
type Batch struct {
	Requests []Operation
	// IncludeSpreadsheetInResponse asks the remote side to echo the
	// resulting spreadsheet. The compiler always leaves it false.
	IncludeSpreadsheetInResponse bool
}

// NewBatch returns a batch over requests that does not ask for the
// spreadsheet to be echoed back.
func NewBatch(requests []Operation) *Batch {
	return &Batch{Requests: requests}
}

// Len returns the number of operations.
func (b *Batch) Len() int {
	return len(b.Requests)
}

// Kinds returns the kind of every operation in order.
func (b *Batch) Kinds() []Kind {
	kinds := make([]Kind, len(b.Requests))
	for i, op := range b.Requests {
		kinds[i] = op.Kind()
	}
	return kinds
}

func (b *Batch) MarshalJSON() ([]byte, error) {
	requests := b.Requests
	if requests == nil {
		requests = []Operation{}
	}
	return json.Marshal(struct {
		Requests                     []Operation `json:"requests"`
		IncludeSpreadsheetInResponse bool        `json:"includeSpreadsheetInResponse"`
	}{requests, b.IncludeSpreadsheetInResponse})
}
