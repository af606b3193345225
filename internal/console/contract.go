package console

import (
	"context"

	"github.com/mmahmood233/buy-01/internal/dto"
)

// CatalogConsole is the seller dashboard session: it owns the product
// collection snapshot, the single open modal, and the media list of
// whichever product is under media management. Every mutation goes
// through it, and every successful mutation is followed by a fresh
// fetch of the affected collection.
type CatalogConsole interface {
	LoadOwnedProducts(ctx context.Context) (err error)
	OpenCreateForm()
	OpenEditForm(productID string) (err error)
	SubmitProductForm(ctx context.Context, fields dto.ProductFormState) (fieldErrors []dto.FieldError, err error)
	DeleteProduct(ctx context.Context, productID string) (err error)
	OpenMediaManager(ctx context.Context, productID string) (err error)
	CloseMediaManager(ctx context.Context) (err error)
	UploadMedia(ctx context.Context, file dto.MediaFile) (err error)
	DeleteMedia(ctx context.Context, mediaID string) (err error)
	Snapshot() dto.ConsoleState
}

// Confirmer is the synchronous yes/no decision point in front of
// destructive operations. Splitting it out keeps the two-step
// confirm-then-dispatch protocol deterministic in tests.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}
