package gateway

import (
	"context"

	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/dto"
)

type ProductGateway interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProductsByUserID(ctx context.Context, userID string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, payload dto.ProductPayload) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, payload dto.ProductPayload) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type MediaGateway interface {
	GetMediaByProductID(ctx context.Context, productID string) ([]domain.Media, error)
	UploadMedia(ctx context.Context, file dto.MediaFile, productID string) (domain.Media, error)
	DeleteMedia(ctx context.Context, id string) error
}

type AuthGateway interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
}
