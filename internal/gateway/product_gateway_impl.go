package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/dto"
	"github.com/mmahmood233/buy-01/internal/identity"
	"github.com/mmahmood233/buy-01/internal/infrastructure/circuitbreaker"
	"github.com/mmahmood233/buy-01/pkg/httpclient"
	"github.com/rs/zerolog/log"
)

type ProductGatewayImpl struct {
	gatewayClient
	host string
}

func CreateProductGateway(host string, cred identity.CredentialProvider) ProductGateway {
	return &ProductGatewayImpl{
		gatewayClient: gatewayClient{
			cred: cred,
			cb:   circuitbreaker.CreateCircuitBreaker("product-service"),
		},
		host: host,
	}
}

func (g *ProductGatewayImpl) GetAllProducts(ctx context.Context) (products []domain.Product, err error) {
	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/products", g.host),
		Method: http.MethodGet,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "GetAllProducts").Msg("")
		return
	}

	err = json.Unmarshal(body, &products)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling product list response: %v", err)
	}

	return
}

func (g *ProductGatewayImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/products/%s", g.host, id),
		Method: http.MethodGet,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "GetProductByID").Msg("")
		return
	}

	err = json.Unmarshal(body, &product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("error unmarshalling product response: %v", err)
	}

	return
}

func (g *ProductGatewayImpl) GetProductsByUserID(ctx context.Context, userID string) (products []domain.Product, err error) {
	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/products/user/%s", g.host, userID),
		Method: http.MethodGet,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "GetProductsByUserID").Msg("")
		return
	}

	err = json.Unmarshal(body, &products)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling product list response: %v", err)
	}

	return
}

func (g *ProductGatewayImpl) CreateProduct(ctx context.Context, payload dto.ProductPayload) (product domain.Product, err error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return domain.Product{}, fmt.Errorf("error marshalling product payload: %v", err)
	}

	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/products", g.host),
		Method: http.MethodPost,
		Body:   jsonBody,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		log.Error().Err(err).Str("component", "CreateProduct").Msg("")
		return
	}

	err = json.Unmarshal(body, &product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("error unmarshalling product response: %v", err)
	}

	return
}

func (g *ProductGatewayImpl) UpdateProduct(ctx context.Context, id string, payload dto.ProductPayload) (product domain.Product, err error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return domain.Product{}, fmt.Errorf("error marshalling product payload: %v", err)
	}

	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/products/%s", g.host, id),
		Method: http.MethodPut,
		Body:   jsonBody,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return
	}

	err = json.Unmarshal(body, &product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("error unmarshalling product response: %v", err)
	}

	return
}

// DeleteProduct removes the product; the product service cascades the
// delete to the product's media. No compensating media calls are made
// here.
func (g *ProductGatewayImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	_, err = g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/products/%s", g.host, id),
		Method: http.MethodDelete,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteProduct").Msg("")
	}

	return
}
