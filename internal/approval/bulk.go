package approval

// BulkFailure is one item that could not be processed in a batch.
type BulkFailure struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkResult reports per-item outcomes of a batch operation. Items
// succeed or fail independently; committed items are never rolled back
// because a sibling failed.
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

func NewBulkResult() BulkResult {
	return BulkResult{
		Succeeded: make([]string, 0),
		Failed:    make([]BulkFailure, 0),
	}
}

func (r *BulkResult) AddSuccess(id string) {
	r.Succeeded = append(r.Succeeded, id)
}

func (r *BulkResult) AddFailure(id, code, message string) {
	r.Failed = append(r.Failed, BulkFailure{ID: id, Code: code, Message: message})
}
