package dto

import "github.com/mmahmood233/buy-01/internal/domain"

// ConsoleState is the snapshot rendered by the presentation layer
// after every dashboard operation.
type ConsoleState struct {
	Products     []domain.Product `json:"products"`
	Modal        domain.ModalKind `json:"modal"`
	Editing      *domain.Product  `json:"editing,omitempty"`
	MediaProduct *domain.Product  `json:"mediaProduct,omitempty"`
	Media        []domain.Media   `json:"media,omitempty"`
	Loading      bool             `json:"loading"`
	Error        string           `json:"error,omitempty"`
	Notice       string           `json:"notice,omitempty"`
}
