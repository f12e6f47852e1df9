package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront_client/internal/clients"
	"storefront_client/internal/domain"
)

// CatalogUseCase covers product browsing for customers and product
// management for sellers.
type CatalogUseCase interface {
	// BrowseProducts lists the catalog, filtered client-side by a
	// case-insensitive substring match on name or description.
	BrowseProducts(ctx context.Context, search string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	// SellerProducts lists the products owned by one seller.
	SellerProducts(ctx context.Context, sellerID int) ([]domain.Product, error)
	CreateProduct(ctx context.Context, seller *domain.User, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, seller *domain.User, id int, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, seller *domain.User, id int) error
}

type catalogUseCase struct {
	api clients.CatalogAPI
	log *logrus.Logger
}

func NewCatalogUseCase(api clients.CatalogAPI, logger *logrus.Logger) CatalogUseCase {
	return &catalogUseCase{
		api: api,
		log: logger,
	}
}

func (uc *catalogUseCase) BrowseProducts(ctx context.Context, search string) ([]domain.Product, error) {
	products, err := uc.api.ListProducts(ctx, clients.ProductQuery{})
	if err != nil {
		uc.log.Errorf("Catalog: failed to list products: %v", err)
		return nil, err
	}
	if search = strings.TrimSpace(search); search == "" {
		return products, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.ProductName), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			filtered = append(filtered, p)
		}
	}
	uc.log.Debugf("Catalog: search %q matched %d of %d products", search, len(filtered), len(products))
	return filtered, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return uc.api.GetProduct(ctx, id)
}

func (uc *catalogUseCase) SellerProducts(ctx context.Context, sellerID int) ([]domain.Product, error) {
	return uc.api.ListProducts(ctx, clients.ProductQuery{SellerID: sellerID})
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, seller *domain.User, in domain.ProductInput) (*domain.Product, error) {
	if err := requireSeller(seller); err != nil {
		return nil, err
	}
	if err := checkProductInput(in, true); err != nil {
		return nil, err
	}
	product, err := uc.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Catalog: seller %d created product %d (%s)", seller.ID, product.ID, product.ProductName)
	return product, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, seller *domain.User, id int, in domain.ProductInput) (*domain.Product, error) {
	if err := requireSeller(seller); err != nil {
		return nil, err
	}
	if err := checkProductInput(in, false); err != nil {
		return nil, err
	}
	return uc.api.UpdateProduct(ctx, id, in)
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, seller *domain.User, id int) error {
	if err := requireSeller(seller); err != nil {
		return err
	}
	if err := uc.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	uc.log.Infof("Catalog: seller %d deleted product %d", seller.ID, id)
	return nil
}

func requireSeller(user *domain.User) error {
	if user == nil {
		return &domain.AuthError{Reason: "sign in required"}
	}
	if user.Role != domain.RoleSeller {
		return &domain.AuthError{Reason: "only sellers can manage products"}
	}
	return nil
}

// checkProductInput mirrors the server-side serializer rules so obviously
// invalid payloads never leave the process.
func checkProductInput(in domain.ProductInput, create bool) error {
	if create {
		if in.ProductName == nil || *in.ProductName == "" {
			return &domain.ValidationError{Message: "product name is required"}
		}
		if in.Price == nil {
			return &domain.ValidationError{Message: "price is required"}
		}
		if in.Stock == nil {
			return &domain.ValidationError{Message: "stock is required"}
		}
	}
	if in.Price != nil && *in.Price <= 0 {
		return &domain.ValidationError{Message: "Price must be greater than 0"}
	}
	if in.Stock != nil && *in.Stock < 0 {
		return &domain.ValidationError{Message: "Product stock cannot be negative"}
	}
	return nil
}
