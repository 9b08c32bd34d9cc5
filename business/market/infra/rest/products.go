package rest

import (
	"context"

	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
)

// productListLimit fetches well past the backend's default pagination.
const productListLimit = "200"

// ProductsClient lists marketplace products.
type ProductsClient struct {
	hc  httpclient.Client
	log logger.LoggerInterface
}

// NewProductsClient creates the products client.
func NewProductsClient(hc httpclient.Client, log logger.LoggerInterface) *ProductsClient {
	return &ProductsClient{hc: hc, log: log}
}

// List fetches all products.
func (c *ProductsClient) List(ctx context.Context) ([]domain.Product, error) {
	resp, err := c.hc.NewRequest().
		SetQueryParam("limit", productListLimit).
		Get(ctx, "/v1/products")
	if err := check(resp, err, "listing products"); err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := decode(resp.Body(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches one product by ID.
func (c *ProductsClient) Get(ctx context.Context, id string) (domain.Product, error) {
	var product domain.Product
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/products/"+id)
	if err := check(resp, err, "fetching product"); err != nil {
		return product, err
	}
	if err := decode(resp.Body(), &product); err != nil {
		return product, err
	}
	return product, nil
}
