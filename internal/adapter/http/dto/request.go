package dto

// BatchRequest asks for a batch reconciliation of many register sessions.
type BatchRequest struct {
	RegisterIDs []string `json:"register_ids"`
}

// Validate checks the request is processable.
func (r BatchRequest) Validate() error {
	if len(r.RegisterIDs) == 0 {
		return ErrEmptyBatch
	}
	return nil
}
