package dto

// ProductPayload is the body sent to the product service for both
// create and update calls.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
}
