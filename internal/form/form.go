package form

import (
	"strconv"

	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/dto"
)

// ToFormState populates the editable fields from an existing product,
// or to create-mode defaults when none is given.
func ToFormState(product *domain.Product) dto.ProductFormState {
	if product == nil {
		return dto.ProductFormState{Quantity: "0"}
	}

	return dto.ProductFormState{
		Name:        product.Name,
		Description: product.Description,
		Price:       strconv.FormatFloat(product.Price, 'f', -1, 64),
		Quantity:    strconv.FormatInt(product.Quantity, 10),
	}
}

// ToPayload transcribes field state into a create/update payload. Any
// field errors block submission; an invalid form never reaches the
// network.
func ToPayload(fields dto.ProductFormState) (dto.ProductPayload, []dto.FieldError) {
	var fieldErrors []dto.FieldError

	if len(fields.Name) < 3 || len(fields.Name) > 200 {
		fieldErrors = append(fieldErrors, dto.FieldError{
			Field:   "name",
			Message: "Product name must be between 3 and 200 characters",
		})
	}

	if len(fields.Description) < 10 || len(fields.Description) > 2000 {
		fieldErrors = append(fieldErrors, dto.FieldError{
			Field:   "description",
			Message: "Description must be between 10 and 2000 characters",
		})
	}

	price, err := strconv.ParseFloat(fields.Price, 64)
	if err != nil || price <= 0 {
		fieldErrors = append(fieldErrors, dto.FieldError{
			Field:   "price",
			Message: "Price must be greater than 0",
		})
	}

	quantity, err := strconv.ParseInt(fields.Quantity, 10, 64)
	if err != nil || quantity < 0 {
		fieldErrors = append(fieldErrors, dto.FieldError{
			Field:   "quantity",
			Message: "Quantity cannot be negative",
		})
	}

	if len(fieldErrors) > 0 {
		return dto.ProductPayload{}, fieldErrors
	}

	return dto.ProductPayload{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       price,
		Quantity:    quantity,
	}, nil
}
