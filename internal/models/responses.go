package models

// Envelope is the uniform response wrapper returned by every endpoint.
// Status is either "success" or "error". Data carries the payload on
// success; Errors carries field-level messages on validation failure.
type Envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ProductPage is one page of a product listing with pagination metadata.
type ProductPage struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	Total      int64     `json:"total"`
	TotalPages int       `json:"total_pages"`
}
