package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
)

const (
	dashboardRecentProducts = 10
	dashboardRecentSales    = 10
	dashboardTopProducts    = 5
)

type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.Dashboard, error)
}

type dashboardService struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
}

func NewDashboardService(products repository.ProductRepository, sales repository.SaleRepository) DashboardService {
	return &dashboardService{products: products, sales: sales}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {

	products, err := s.products.ListRecentProducts(ctx, dashboardRecentProducts)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch recent products").WithError(err)
	}

	sales, _, err := s.sales.ListSales(ctx, 0, dashboardRecentSales)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch recent sales").WithError(err)
	}

	top, err := s.sales.TopSellingProducts(ctx, dashboardTopProducts)
	if err != nil {
		return nil, errors.DatabaseError("Failed to rank products").WithError(err)
	}

	if products == nil {
		products = []models.Product{}
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	if top == nil {
		top = []models.TopProduct{}
	}

	return &models.Dashboard{
		RecentProducts: products,
		Inventory:      inventorySummary(products),
		RecentSales:    sales,
		TopProducts:    top,
	}, nil
}

// inventorySummary values the given products at price times stock.
func inventorySummary(products []models.Product) models.InventorySummary {
	value := decimal.Zero
	for _, p := range products {
		value = value.Add(models.LineSubtotal(p.Price, p.Stock))
	}
	return models.InventorySummary{Total: len(products), Value: value}
}
