package service

import (
	"sort"

	"go-sales-crm/internal/model"
	"go-sales-crm/internal/pricing"
	"go-sales-crm/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductSort string

const (
	SortByName      ProductSort = "name"
	SortByPriceAsc  ProductSort = "price_asc"
	SortByPriceDesc ProductSort = "price_desc"
)

// ProductQuery filters the catalog. Price bounds compare against the
// normalized display price.
type ProductQuery struct {
	repository.ProductFilter
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     ProductSort
}

type ProductService interface {
	ListProducts(query ProductQuery) ([]ProductView, error)
	GetProduct(id uuid.UUID) (*ProductView, error)
	ListCategories() ([]model.Category, error)
}

type productService struct {
	repo       repository.ProductRepository
	normalizer pricing.Normalizer
}

func NewProductService(repo repository.ProductRepository, n pricing.Normalizer) ProductService {
	return &productService{repo: repo, normalizer: n}
}

func (s *productService) ListProducts(query ProductQuery) ([]ProductView, error) {
	products, err := s.repo.FindAll(query.ProductFilter)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		v := newProductView(s.normalizer, p)
		if query.MinPrice != nil && v.DisplayPrice.LessThan(*query.MinPrice) {
			continue
		}
		if query.MaxPrice != nil && v.DisplayPrice.GreaterThan(*query.MaxPrice) {
			continue
		}
		views = append(views, v)
	}

	switch query.Sort {
	case SortByPriceAsc:
		sort.SliceStable(views, func(i, j int) bool { return views[i].DisplayPrice.LessThan(views[j].DisplayPrice) })
	case SortByPriceDesc:
		sort.SliceStable(views, func(i, j int) bool { return views[i].DisplayPrice.GreaterThan(views[j].DisplayPrice) })
	}
	return views, nil
}

func (s *productService) GetProduct(id uuid.UUID) (*ProductView, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, ErrProductNotFound, "get product")
	}
	v := newProductView(s.normalizer, *product)
	return &v, nil
}

func (s *productService) ListCategories() ([]model.Category, error) {
	categories, err := s.repo.FindCategories()
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}
