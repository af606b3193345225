package dto

// ProductFormState holds the editable fields of the product editor as
// raw input text. Price and Quantity stay strings until transcription
// so that non-numeric input is a field error, not a bind failure.
type ProductFormState struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
