package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// ProductInput carries the writable product fields.
type ProductInput struct {
	Title    string
	Text     string
	State    string
	Category string
}

// ProductService exposes product lifecycle operations.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	UpdateByID(ctx context.Context, id uint, in ProductInput) (*model.Product, error)
	DeleteByID(ctx context.Context, id uint) (*model.Product, error)
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService builds a ProductService over the product store.
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

// Create persists a new product. Both title and text are unique, so either
// colliding with an existing row is a conflict.
func (s *productService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	product := &model.Product{
		Title:    in.Title,
		Text:     in.Text,
		State:    in.State,
		Category: in.Category,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

// UpdateByID overwrites all writable fields of an existing product.
func (s *productService) UpdateByID(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	product.Title = in.Title
	product.Text = in.Text
	product.State = in.State
	product.Category = in.Category

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteByID(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
