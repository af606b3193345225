package console

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/dto"
	"github.com/mmahmood233/buy-01/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductGateway struct {
	mu        sync.Mutex
	owned     []domain.Product
	listErr   error
	listCalls int
	created   []dto.ProductPayload
	createErr error
	updated   map[string]dto.ProductPayload
	updateErr error
	deleted   []string
	deleteErr error
}

func (f *fakeProductGateway) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return f.GetProductsByUserID(ctx, "")
}

func (f *fakeProductGateway) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.owned {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, errs.ErrNotFound
}

func (f *fakeProductGateway) GetProductsByUserID(ctx context.Context, userID string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Product(nil), f.owned...), nil
}

func (f *fakeProductGateway) CreateProduct(ctx context.Context, payload dto.ProductPayload) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, payload)
	if f.createErr != nil {
		return domain.Product{}, f.createErr
	}

	// Server-assigned fields that no optimistic local construction
	// could guess.
	product := domain.Product{
		ID:          "p-server-assigned",
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		UserID:      "u-1",
		CreatedAt:   "2026-01-01T00:00:00Z",
		UpdatedAt:   "2026-01-01T00:00:00Z",
	}
	f.owned = append(f.owned, product)

	return product, nil
}

func (f *fakeProductGateway) UpdateProduct(ctx context.Context, id string, payload dto.ProductPayload) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updated == nil {
		f.updated = map[string]dto.ProductPayload{}
	}
	f.updated[id] = payload
	if f.updateErr != nil {
		return domain.Product{}, f.updateErr
	}

	for i := range f.owned {
		if f.owned[i].ID == id {
			f.owned[i].Name = payload.Name
			f.owned[i].UpdatedAt = "2026-02-02T00:00:00Z"
			return f.owned[i], nil
		}
	}

	return domain.Product{}, errs.ErrNotFound
}

func (f *fakeProductGateway) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}

	kept := f.owned[:0]
	for _, p := range f.owned {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.owned = kept

	return nil
}

type fakeMediaGateway struct {
	mu         sync.Mutex
	media      map[string][]domain.Media
	fetchErr   error
	fetchCalls int
	gates      map[string]chan struct{}
	started    map[string]chan struct{}
	uploaded   []dto.MediaFile
	uploadErr  error
	deleted    []string
	deleteErr  error
}

func (f *fakeMediaGateway) GetMediaByProductID(ctx context.Context, productID string) ([]domain.Media, error) {
	f.mu.Lock()
	f.fetchCalls++
	started := f.started[productID]
	gate := f.gates[productID]
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]domain.Media(nil), f.media[productID]...), nil
}

func (f *fakeMediaGateway) UploadMedia(ctx context.Context, file dto.MediaFile, productID string) (domain.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploaded = append(f.uploaded, file)
	if f.uploadErr != nil {
		return domain.Media{}, f.uploadErr
	}

	media := domain.Media{
		ID:          "m-server-assigned",
		ImagePath:   "/uploads/" + file.FileName,
		ProductID:   productID,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		FileSize:    file.Size,
		UploadedBy:  "u-1",
		CreatedAt:   "2026-01-01T00:00:00Z",
	}
	if f.media == nil {
		f.media = map[string][]domain.Media{}
	}
	f.media[productID] = append(f.media[productID], media)

	return media, nil
}

func (f *fakeMediaGateway) DeleteMedia(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}

	for productID, list := range f.media {
		kept := list[:0]
		for _, m := range list {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		f.media[productID] = kept
	}

	return nil
}

type scriptedConfirmer struct {
	mu      sync.Mutex
	answer  bool
	prompts []string
}

func (s *scriptedConfirmer) Confirm(ctx context.Context, prompt string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.answer
}

func sellerPrincipal() domain.Principal {
	return domain.Principal{UserID: "u-1", Name: "Jordan", Role: domain.RoleSeller}
}

func ownedProducts() []domain.Product {
	return []domain.Product{
		{ID: "p-1", Name: "Keyboard", Description: "Tenkeyless, brown switches", Price: 89.99, Quantity: 12, UserID: "u-1"},
		{ID: "p-2", Name: "Mouse", Description: "Wireless, ergonomic shape", Price: 49.99, Quantity: 30, UserID: "u-1"},
	}
}

func validForm() dto.ProductFormState {
	return dto.ProductFormState{
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless, brown switches",
		Price:       "89.99",
		Quantity:    "12",
	}
}

func newTestConsole(t *testing.T, pg *fakeProductGateway, mg *fakeMediaGateway, confirmer *scriptedConfirmer) CatalogConsole {
	t.Helper()

	c, err := CreateCatalogConsole(sellerPrincipal(), pg, mg, confirmer)
	require.NoError(t, err)

	return c
}

func loadedConsole(t *testing.T, pg *fakeProductGateway, mg *fakeMediaGateway, confirmer *scriptedConfirmer) CatalogConsole {
	t.Helper()

	c := newTestConsole(t, pg, mg, confirmer)
	require.NoError(t, c.LoadOwnedProducts(context.Background()))

	return c
}

func TestCreateCatalogConsoleRequiresSellerRole(t *testing.T) {
	buyer := domain.Principal{UserID: "u-9", Name: "Sam", Role: domain.RoleClient}

	c, err := CreateCatalogConsole(buyer, &fakeProductGateway{}, &fakeMediaGateway{}, &scriptedConfirmer{})

	assert.ErrorIs(t, err, errs.ErrNoSellerRole)
	assert.Nil(t, c)
}

func TestLoadOwnedProducts(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	c := newTestConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})

	require.NoError(t, c.LoadOwnedProducts(context.Background()))

	state := c.Snapshot()
	assert.Len(t, state.Products, 2)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
}

func TestLoadOwnedProductsFailureKeepsCollection(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})

	pg.mu.Lock()
	pg.listErr = errors.New("product service is down")
	pg.mu.Unlock()

	err := c.LoadOwnedProducts(context.Background())
	require.Error(t, err)

	state := c.Snapshot()
	assert.Len(t, state.Products, 2, "previous collection must stay intact")
	assert.False(t, state.Loading)
	assert.Equal(t, "product service is down", state.Error)
}

func TestModalExclusivity(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})
	ctx := context.Background()

	c.OpenCreateForm()
	assert.Equal(t, domain.ModalEditProduct, c.Snapshot().Modal)
	assert.Nil(t, c.Snapshot().Editing)

	require.NoError(t, c.OpenEditForm("p-1"))
	state := c.Snapshot()
	assert.Equal(t, domain.ModalEditProduct, state.Modal)
	require.NotNil(t, state.Editing)
	assert.Equal(t, "p-1", state.Editing.ID)
	assert.Nil(t, state.MediaProduct)

	require.NoError(t, c.OpenMediaManager(ctx, "p-2"))
	state = c.Snapshot()
	assert.Equal(t, domain.ModalManagingMedia, state.Modal)
	assert.Nil(t, state.Editing)
	require.NotNil(t, state.MediaProduct)
	assert.Equal(t, "p-2", state.MediaProduct.ID)

	c.OpenCreateForm()
	state = c.Snapshot()
	assert.Equal(t, domain.ModalEditProduct, state.Modal)
	assert.Nil(t, state.MediaProduct)
	assert.Empty(t, state.Media)

	require.NoError(t, c.CloseMediaManager(ctx))
	assert.Equal(t, domain.ModalClosed, c.Snapshot().Modal)
}

func TestOpenEditFormUnknownProduct(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})

	err := c.OpenEditForm("p-unknown")

	assert.ErrorIs(t, err, errs.ErrProductNotFound)
	assert.Equal(t, domain.ModalClosed, c.Snapshot().Modal)
}

func TestSubmitProductFormCreateRefreshes(t *testing.T) {
	pg := &fakeProductGateway{}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})
	ctx := context.Background()

	c.OpenCreateForm()
	fieldErrors, err := c.SubmitProductForm(ctx, validForm())

	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	require.Len(t, pg.created, 1)

	state := c.Snapshot()
	assert.Equal(t, domain.ModalClosed, state.Modal)
	require.Len(t, state.Products, 1)
	assert.Equal(t, "p-server-assigned", state.Products[0].ID)
	assert.Equal(t, "2026-01-01T00:00:00Z", state.Products[0].CreatedAt,
		"displayed record must come from the re-fetch, not a local guess")
}

func TestSubmitProductFormUpdate(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})
	ctx := context.Background()

	require.NoError(t, c.OpenEditForm("p-1"))

	fields := validForm()
	fields.Name = "Keyboard v2"
	fieldErrors, err := c.SubmitProductForm(ctx, fields)

	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	assert.Contains(t, pg.updated, "p-1")
	assert.Empty(t, pg.created)

	state := c.Snapshot()
	assert.Equal(t, domain.ModalClosed, state.Modal)
	assert.Equal(t, "Keyboard v2", state.Products[0].Name)
	assert.Equal(t, "2026-02-02T00:00:00Z", state.Products[0].UpdatedAt)
}

func TestSubmitProductFormFieldErrorsSkipNetwork(t *testing.T) {
	pg := &fakeProductGateway{}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})

	c.OpenCreateForm()

	fields := validForm()
	fields.Name = "ab"
	fieldErrors, err := c.SubmitProductForm(context.Background(), fields)

	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "name", fieldErrors[0].Field)
	assert.Empty(t, pg.created, "no network call for a locally invalid form")
	assert.Equal(t, domain.ModalEditProduct, c.Snapshot().Modal, "form stays editable")
}

func TestSubmitProductFormGatewayFailureKeepsModalOpen(t *testing.T) {
	pg := &fakeProductGateway{createErr: errors.New("name already taken")}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})

	c.OpenCreateForm()
	_, err := c.SubmitProductForm(context.Background(), validForm())

	require.Error(t, err)
	state := c.Snapshot()
	assert.Equal(t, domain.ModalEditProduct, state.Modal)
	assert.Equal(t, "name already taken", state.Error)
}

func TestSubmitProductFormWithoutEditor(t *testing.T) {
	c := loadedConsole(t, &fakeProductGateway{}, &fakeMediaGateway{}, &scriptedConfirmer{})

	_, err := c.SubmitProductForm(context.Background(), validForm())

	assert.ErrorIs(t, err, errs.ErrModalMismatch)
}

func TestDeleteProductDeclined(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{answer: false})

	require.NoError(t, c.DeleteProduct(context.Background(), "p-1"))

	assert.Empty(t, pg.deleted, "declined confirmation must not dispatch the delete")
	assert.Len(t, c.Snapshot().Products, 2)
}

func TestDeleteProductConfirmedForcesMediaManagerClosed(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{media: map[string][]domain.Media{
		"p-1": {{ID: "m-1", ProductID: "p-1"}, {ID: "m-2", ProductID: "p-1"}, {ID: "m-3", ProductID: "p-1"}},
	}}
	confirmer := &scriptedConfirmer{answer: true}
	c := loadedConsole(t, pg, mg, confirmer)
	ctx := context.Background()

	require.NoError(t, c.OpenMediaManager(ctx, "p-1"))
	require.Len(t, c.Snapshot().Media, 3)

	require.NoError(t, c.DeleteProduct(ctx, "p-1"))

	assert.Equal(t, []string{"p-1"}, pg.deleted)
	assert.Empty(t, mg.deleted, "media cleanup is the product service's cascade, not ours")

	state := c.Snapshot()
	assert.Equal(t, domain.ModalClosed, state.Modal, "media manager for the deleted product is forced closed")
	require.Len(t, state.Products, 1)
	assert.Equal(t, "p-2", state.Products[0].ID)
	assert.Equal(t, []string{deleteProductPrompt}, confirmer.prompts)
}

func TestDeleteProductFailureLeavesCollection(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts(), deleteErr: errors.New("delete rejected")}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{answer: true})

	err := c.DeleteProduct(context.Background(), "p-1")

	require.Error(t, err)
	state := c.Snapshot()
	assert.Len(t, state.Products, 2)
	assert.Equal(t, "delete rejected", state.Error)
}

func TestOpenMediaManagerPopulatesList(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{media: map[string][]domain.Media{
		"p-1": {{ID: "m-1", ProductID: "p-1"}},
	}}
	c := loadedConsole(t, pg, mg, &scriptedConfirmer{})

	require.NoError(t, c.OpenMediaManager(context.Background(), "p-1"))

	state := c.Snapshot()
	assert.Equal(t, domain.ModalManagingMedia, state.Modal)
	require.Len(t, state.Media, 1)
	assert.Equal(t, "m-1", state.Media[0].ID)
}

func TestOpenMediaManagerFetchFailure(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{fetchErr: errors.New("media service is down")}
	c := loadedConsole(t, pg, mg, &scriptedConfirmer{})

	err := c.OpenMediaManager(context.Background(), "p-1")

	require.Error(t, err)
	state := c.Snapshot()
	assert.Equal(t, domain.ModalManagingMedia, state.Modal, "modal opens even when the fetch fails")
	assert.Empty(t, state.Media)
	assert.Equal(t, "media service is down", state.Error)
}

func TestCloseMediaManagerWhenAlreadyClosed(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	c := loadedConsole(t, pg, &fakeMediaGateway{}, &scriptedConfirmer{})

	before := pg.listCalls
	require.NoError(t, c.CloseMediaManager(context.Background()))

	assert.Equal(t, domain.ModalClosed, c.Snapshot().Modal)
	assert.Equal(t, before+1, pg.listCalls, "closing still triggers a product refresh")
}

func TestUploadMediaSizeExceeded(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{}
	c := loadedConsole(t, pg, mg, &scriptedConfirmer{})
	ctx := context.Background()

	require.NoError(t, c.OpenMediaManager(ctx, "p-1"))

	err := c.UploadMedia(ctx, dto.MediaFile{
		FileName:    "large.jpg",
		ContentType: "image/jpeg",
		Size:        3 * 1024 * 1024,
	})

	assert.ErrorIs(t, err, errs.ErrFileTooLarge)
	assert.Empty(t, mg.uploaded, "rejected file never reaches the gateway")
	assert.Equal(t, "File size exceeds 2MB limit", c.Snapshot().Error)
}

func TestUploadMediaUnsupportedType(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{}
	c := loadedConsole(t, pg, mg, &scriptedConfirmer{})
	ctx := context.Background()

	require.NoError(t, c.OpenMediaManager(ctx, "p-1"))

	err := c.UploadMedia(ctx, dto.MediaFile{
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
		Size:        1024,
	})

	assert.ErrorIs(t, err, errs.ErrInvalidFileType)
	assert.Empty(t, mg.uploaded)
}

func TestUploadMediaSuccessRefetchesList(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{}
	c := loadedConsole(t, pg, mg, &scriptedConfirmer{})
	ctx := context.Background()

	require.NoError(t, c.OpenMediaManager(ctx, "p-1"))

	err := c.UploadMedia(ctx, dto.MediaFile{
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
		Size:        1024,
		Content:     []byte("jpeg bytes"),
	})

	require.NoError(t, err)
	require.Len(t, mg.uploaded, 1)

	state := c.Snapshot()
	require.Len(t, state.Media, 1)
	assert.Equal(t, "m-server-assigned", state.Media[0].ID,
		"list comes from the re-fetch, not an optimistic append")
	assert.Equal(t, "Image uploaded successfully", state.Notice)
}

func TestUploadMediaWithoutManager(t *testing.T) {
	c := loadedConsole(t, &fakeProductGateway{owned: ownedProducts()}, &fakeMediaGateway{}, &scriptedConfirmer{})

	err := c.UploadMedia(context.Background(), dto.MediaFile{ContentType: "image/png", Size: 10})

	assert.ErrorIs(t, err, errs.ErrModalMismatch)
}

func TestDeleteMediaConfirmedRefetches(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{media: map[string][]domain.Media{
		"p-1": {{ID: "m-1", ProductID: "p-1"}, {ID: "m-2", ProductID: "p-1"}},
	}}
	confirmer := &scriptedConfirmer{answer: true}
	c := loadedConsole(t, pg, mg, confirmer)
	ctx := context.Background()

	require.NoError(t, c.OpenMediaManager(ctx, "p-1"))
	require.NoError(t, c.DeleteMedia(ctx, "m-1"))

	assert.Equal(t, []string{"m-1"}, mg.deleted)
	state := c.Snapshot()
	require.Len(t, state.Media, 1)
	assert.Equal(t, "m-2", state.Media[0].ID)
	assert.Equal(t, []string{deleteMediaPrompt}, confirmer.prompts)
}

func TestDeleteMediaDeclined(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	mg := &fakeMediaGateway{media: map[string][]domain.Media{
		"p-1": {{ID: "m-1", ProductID: "p-1"}},
	}}
	c := loadedConsole(t, pg, mg, &scriptedConfirmer{answer: false})
	ctx := context.Background()

	require.NoError(t, c.OpenMediaManager(ctx, "p-1"))
	require.NoError(t, c.DeleteMedia(ctx, "m-1"))

	assert.Empty(t, mg.deleted)
	assert.Len(t, c.Snapshot().Media, 1)
}

// A late response for a superseded media fetch must be discarded: the
// user opens the manager for product A, immediately switches to B, and
// A's response arrives last.
func TestStaleMediaFetchDiscarded(t *testing.T) {
	pg := &fakeProductGateway{owned: ownedProducts()}
	gateA := make(chan struct{})
	startedA := make(chan struct{})
	mg := &fakeMediaGateway{
		media: map[string][]domain.Media{
			"p-1": {{ID: "m-a", ProductID: "p-1"}},
			"p-2": {{ID: "m-b", ProductID: "p-2"}},
		},
		gates:   map[string]chan struct{}{"p-1": gateA},
		started: map[string]chan struct{}{"p-1": startedA},
	}
	c := loadedConsole(t, pg, mg, &scriptedConfirmer{})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.OpenMediaManager(ctx, "p-1")
	}()

	<-startedA
	require.NoError(t, c.OpenMediaManager(ctx, "p-2"))

	close(gateA)
	<-done

	state := c.Snapshot()
	assert.Equal(t, domain.ModalManagingMedia, state.Modal)
	require.NotNil(t, state.MediaProduct)
	assert.Equal(t, "p-2", state.MediaProduct.ID)
	require.Len(t, state.Media, 1)
	assert.Equal(t, "m-b", state.Media[0].ID, "list shown is B's, A's response was discarded")
}
