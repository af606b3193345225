package console

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/dto"
	"github.com/mmahmood233/buy-01/internal/form"
	"github.com/mmahmood233/buy-01/internal/gateway"
	"github.com/mmahmood233/buy-01/internal/intake"
	"github.com/mmahmood233/buy-01/pkg/errs"
)

const (
	deleteProductPrompt = "Are you sure you want to delete this product?"
	deleteMediaPrompt   = "Are you sure you want to delete this image?"

	noticeDisplayWindow = 3 * time.Second
)

type CatalogConsoleImpl struct {
	mu sync.Mutex

	principal      domain.Principal
	productGateway gateway.ProductGateway
	mediaGateway   gateway.MediaGateway
	confirmer      Confirmer

	products      []domain.Product
	modal         domain.ModalState
	loading       bool
	lastErr       string
	notice        string
	noticeExpires time.Time
}

// CreateCatalogConsole builds a dashboard session for the given
// principal. A principal without the seller role never gets a console;
// the gate sits here, before any dashboard logic can run.
func CreateCatalogConsole(principal domain.Principal, productGateway gateway.ProductGateway, mediaGateway gateway.MediaGateway, confirmer Confirmer) (CatalogConsole, error) {
	if !principal.IsSeller() {
		return nil, errs.ErrNoSellerRole
	}

	return &CatalogConsoleImpl{
		principal:      principal,
		productGateway: productGateway,
		mediaGateway:   mediaGateway,
		confirmer:      confirmer,
		modal:          domain.ClosedModal(),
	}, nil
}

// LoadOwnedProducts replaces the in-memory collection with a fresh
// fetch of the principal's products. On failure the previous
// collection stays intact; there is no retry.
func (c *CatalogConsoleImpl) LoadOwnedProducts(ctx context.Context) (err error) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	products, err := c.productGateway.GetProductsByUserID(ctx, c.principal.UserID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.lastErr = err.Error()
		return err
	}

	c.products = products
	c.reconcileModalLocked()

	return nil
}

func (c *CatalogConsoleImpl) OpenCreateForm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = ""
	c.modal = domain.ModalState{Kind: domain.ModalEditProduct}
}

func (c *CatalogConsoleImpl) OpenEditForm(productID string) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.findProductLocked(productID)
	if !ok {
		// A caller asking to edit a product outside the current
		// collection is a bug in the caller, not a user-facing failure.
		log.Error().Str("component", "OpenEditForm").Str("product_id", productID).Msg("edit requested for product outside the loaded collection")
		return errs.ErrProductNotFound
	}

	c.lastErr = ""
	c.modal = domain.ModalState{Kind: domain.ModalEditProduct, Editing: &product}

	return nil
}

// SubmitProductForm transcribes and validates the form, then issues an
// update when the editor holds an existing product and a create
// otherwise. Field errors resolve locally and never reach the network.
// On success the modal closes and the collection is re-fetched; the
// locally known post-write record is never trusted.
func (c *CatalogConsoleImpl) SubmitProductForm(ctx context.Context, fields dto.ProductFormState) (fieldErrors []dto.FieldError, err error) {
	c.mu.Lock()
	if c.modal.Kind != domain.ModalEditProduct {
		c.mu.Unlock()
		return nil, errs.ErrModalMismatch
	}

	editingID := ""
	if c.modal.Editing != nil {
		editingID = c.modal.Editing.ID
	}
	c.lastErr = ""
	c.mu.Unlock()

	payload, fieldErrors := form.ToPayload(fields)
	if len(fieldErrors) > 0 {
		return fieldErrors, nil
	}

	if editingID != "" {
		_, err = c.productGateway.UpdateProduct(ctx, editingID, payload)
	} else {
		_, err = c.productGateway.CreateProduct(ctx, payload)
	}

	if err != nil {
		// The modal stays open and the form stays editable.
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.modal = domain.ClosedModal()
	c.mu.Unlock()

	return nil, c.LoadOwnedProducts(ctx)
}

// DeleteProduct asks for confirmation, deletes the product, and
// re-fetches the collection. The product service cascades the delete
// to the product's media; a media manager open for the deleted product
// is forced closed by the post-refresh reconcile.
func (c *CatalogConsoleImpl) DeleteProduct(ctx context.Context, productID string) (err error) {
	if !c.confirmer.Confirm(ctx, deleteProductPrompt) {
		return nil
	}

	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()

	err = c.productGateway.DeleteProduct(ctx, productID)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		return err
	}

	return c.LoadOwnedProducts(ctx)
}

// OpenMediaManager switches the modal to media management for the
// given product and fetches its media list. A fetch failure leaves the
// list empty with the error reported.
func (c *CatalogConsoleImpl) OpenMediaManager(ctx context.Context, productID string) (err error) {
	c.mu.Lock()
	product, ok := c.findProductLocked(productID)
	if !ok {
		c.mu.Unlock()
		log.Error().Str("component", "OpenMediaManager").Str("product_id", productID).Msg("media manager requested for product outside the loaded collection")
		return errs.ErrProductNotFound
	}

	c.lastErr = ""
	c.notice = ""
	c.modal = domain.ModalState{Kind: domain.ModalManagingMedia, MediaProduct: &product}
	c.mu.Unlock()

	return c.refreshMedia(ctx, productID)
}

// CloseMediaManager discards the media list and refreshes the product
// collection, because uploads or deletes may have changed image counts
// on the underlying products. Closing an already-closed modal is a
// no-op for modal state but still refreshes.
func (c *CatalogConsoleImpl) CloseMediaManager(ctx context.Context) (err error) {
	c.mu.Lock()
	c.modal = domain.ClosedModal()
	c.mu.Unlock()

	return c.LoadOwnedProducts(ctx)
}

// UploadMedia classifies the file before any network call; a rejection
// short-circuits. On success the media list is re-fetched rather than
// locally appended, and a success notice is shown for a short window.
func (c *CatalogConsoleImpl) UploadMedia(ctx context.Context, file dto.MediaFile) (err error) {
	c.mu.Lock()
	if c.modal.Kind != domain.ModalManagingMedia {
		c.mu.Unlock()
		return errs.ErrModalMismatch
	}
	productID := c.modal.MediaProduct.ID
	c.lastErr = ""
	c.notice = ""
	c.mu.Unlock()

	verdict := intake.Classify(file)
	if !verdict.Accepted {
		err = errs.ErrInvalidFileType
		if verdict.Reason == intake.ReasonSizeExceeded {
			err = errs.ErrFileTooLarge
		}

		c.mu.Lock()
		c.lastErr = verdict.Message
		c.mu.Unlock()
		return err
	}

	_, err = c.mediaGateway.UploadMedia(ctx, file, productID)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.notice = "Image uploaded successfully"
	c.noticeExpires = time.Now().Add(noticeDisplayWindow)
	c.mu.Unlock()

	return c.refreshMedia(ctx, productID)
}

func (c *CatalogConsoleImpl) DeleteMedia(ctx context.Context, mediaID string) (err error) {
	c.mu.Lock()
	if c.modal.Kind != domain.ModalManagingMedia {
		c.mu.Unlock()
		return errs.ErrModalMismatch
	}
	productID := c.modal.MediaProduct.ID
	c.mu.Unlock()

	if !c.confirmer.Confirm(ctx, deleteMediaPrompt) {
		return nil
	}

	c.mu.Lock()
	c.lastErr = ""
	c.notice = ""
	c.mu.Unlock()

	err = c.mediaGateway.DeleteMedia(ctx, mediaID)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.notice = "Image deleted successfully"
	c.noticeExpires = time.Now().Add(noticeDisplayWindow)
	c.mu.Unlock()

	return c.refreshMedia(ctx, productID)
}

func (c *CatalogConsoleImpl) Snapshot() dto.ConsoleState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := dto.ConsoleState{
		Products:     append([]domain.Product(nil), c.products...),
		Modal:        c.modal.Kind,
		Editing:      c.modal.Editing,
		MediaProduct: c.modal.MediaProduct,
		Media:        append([]domain.Media(nil), c.modal.MediaList...),
		Loading:      c.loading,
		Error:        c.lastErr,
	}

	if c.notice != "" && time.Now().Before(c.noticeExpires) {
		state.Notice = c.notice
	}

	return state
}

// refreshMedia re-fetches the media list for the given product. The
// result only applies while the media manager is still open for that
// exact product; a response for a superseded fetch is discarded.
func (c *CatalogConsoleImpl) refreshMedia(ctx context.Context, productID string) error {
	media, err := c.mediaGateway.GetMediaByProductID(ctx, productID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal.Kind != domain.ModalManagingMedia || c.modal.MediaProduct.ID != productID {
		log.Debug().Str("component", "refreshMedia").Str("product_id", productID).Msg("discarding media response for a superseded fetch")
		return nil
	}

	if err != nil {
		c.lastErr = err.Error()
		return err
	}

	c.modal.MediaList = media
	return nil
}

// reconcileModalLocked force-closes a modal whose product is no longer
// in the collection, so the UI never references media of a product the
// server has deleted.
func (c *CatalogConsoleImpl) reconcileModalLocked() {
	var anchor *domain.Product
	switch c.modal.Kind {
	case domain.ModalEditProduct:
		anchor = c.modal.Editing
	case domain.ModalManagingMedia:
		anchor = c.modal.MediaProduct
	}

	if anchor == nil {
		return
	}

	if _, ok := c.findProductLocked(anchor.ID); !ok {
		c.modal = domain.ClosedModal()
	}
}

func (c *CatalogConsoleImpl) findProductLocked(productID string) (domain.Product, bool) {
	for _, product := range c.products {
		if product.ID == productID {
			return product, true
		}
	}
	return domain.Product{}, false
}
