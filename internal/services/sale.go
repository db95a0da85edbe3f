package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storedesk/backoffice-api/internal/api/middleware"
	"github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/metrics"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"github.com/storedesk/backoffice-api/internal/utils"
)

type SaleService interface {
	CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	ListSales(ctx context.Context, page, perPage int) (*models.Page[models.Sale], error)
	UpdateSaleStatus(ctx context.Context, id uuid.UUID, req *models.UpdateSaleStatusRequest) (*models.Sale, error)
}

type saleService struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	policy    models.TransitionPolicy
}

func NewSaleService(sales repository.SaleRepository, customers repository.CustomerRepository, products repository.ProductRepository, policy models.TransitionPolicy) SaleService {
	return &saleService{
		sales:     sales,
		customers: customers,
		products:  products,
		policy:    policy,
	}
}

func (s *saleService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {

	logger := middleware.LoggerFromContext(ctx)

	if len(req.Items) == 0 {
		return nil, errors.ValidationError("A sale must contain at least one item")
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errors.ValidationError("Item quantity must be a positive integer")
		}
	}

	status := req.Status
	if status == "" {
		status = models.SaleStatusPending
	}
	if !models.IsInitialSaleStatus(status) {
		return nil, errors.BadRequestf("A sale cannot be created with status %s", status)
	}

	customer, err := s.customers.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundf("Customer %s not found", req.CustomerID).WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch customer").WithError(err)
	}

	ids := uniqueProductIDs(req.Items)

	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, errors.BadRequestf("Products not found: %s", strings.Join(missing, ", "))
	}

	sale := &models.Sale{
		CustomerID:    req.CustomerID,
		Status:        status,
		PaymentMethod: utils.SanitizeText(req.PaymentMethod),
		Address:       utils.SanitizeText(req.Address),
		Items:         make([]models.SaleItem, 0, len(req.Items)),
	}

	total := decimal.Zero
	for _, item := range req.Items {
		product := byID[item.ProductID]
		subtotal := models.LineSubtotal(product.Price, item.Quantity)

		sale.Items = append(sale.Items, models.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	sale.Total = total

	if err := s.sales.CreateSale(ctx, sale); err != nil {
		if pqErr, ok := repository.StorageError(err); ok {
			logger.Warn("Sale rejected by the database", slog.String("code", string(pqErr.Code)), slog.Any("error", err))
			return nil, errors.BadRequestf("Failed to create sale: %s", pqErr.Message).WithError(err)
		}
		return nil, err
	}

	sale.Customer = customer
	for i := range sale.Items {
		product := byID[sale.Items[i].ProductID]
		sale.Items[i].Product = &product
	}

	metrics.SaleCreated(string(sale.Status))
	logger.Info("Sale created", slog.String("saleId", sale.ID.String()), slog.String("total", sale.Total.StringFixed(2)))

	return sale, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*models.Sale, error) {

	sale, err := s.sales.GetSaleByID(ctx, id)
	if err != nil {
		return nil, saleLookupError(id, err)
	}

	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, page, perPage int) (*models.Page[models.Sale], error) {

	page, perPage = models.NormalizePage(page, perPage)

	sales, total, err := s.sales.ListSales(ctx, models.Offset(page, perPage), perPage)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch sales").WithError(err)
	}

	result := models.NewPage(sales, total, page, perPage)

	return &result, nil
}

// UpdateSaleStatus moves a sale to req.Status and replaces its notes with the
// generated status message.
func (s *saleService) UpdateSaleStatus(ctx context.Context, id uuid.UUID, req *models.UpdateSaleStatusRequest) (*models.Sale, error) {

	logger := middleware.LoggerFromContext(ctx)

	target := models.SaleStatus(strings.TrimSpace(req.Status))
	if target == "" {
		return nil, errors.ValidationError("Status is required")
	}

	current, err := s.sales.GetSaleByID(ctx, id)
	if err != nil {
		return nil, saleLookupError(id, err)
	}

	if s.policy == models.TransitionStrict && !current.Status.CanTransitionTo(target) {
		metrics.SaleTransition(string(target), target.IsKnown(), "rejected")
		return nil, errors.BadRequestf("Invalid status transition from %s to %s", current.Status, target)
	}

	trackingCode := nonEmpty(utils.SanitizeOptional(req.TrackingCode))
	address := nonEmpty(utils.SanitizeOptional(req.Address))

	code := ""
	if trackingCode != nil {
		code = *trackingCode
	}

	change := models.SaleStatusChange{
		Status:       target,
		Notes:        StatusNotes(models.StatusMessage(target, code), derefSanitized(req.Notes), derefSanitized(req.AdminName)),
		TrackingCode: trackingCode,
		Address:      address,
	}

	if err := s.sales.UpdateSaleStatus(ctx, id, change); err != nil {
		return nil, saleLookupError(id, err)
	}

	metrics.SaleTransition(string(target), target.IsKnown(), "applied")
	logger.Info("Sale status updated", slog.String("saleId", id.String()), slog.String("from", string(current.Status)), slog.String("to", string(target)))

	updated, err := s.sales.GetSaleByID(ctx, id)
	if err != nil {
		return nil, saleLookupError(id, err)
	}

	return updated, nil
}

// StatusNotes builds the notes value stored on a transition: the generated message,
// then the admin note and the author, one per line.
func StatusNotes(autoMessage, note, adminName string) string {
	var b strings.Builder
	b.WriteString(autoMessage)

	if note != "" {
		b.WriteString("\n")
		b.WriteString(note)
	}
	if adminName != "" {
		b.WriteString("\nBy: ")
		b.WriteString(adminName)
	}

	return b.String()
}

func saleLookupError(id uuid.UUID, err error) error {
	if stdErrors.Is(err, repository.ErrNotFound) {
		return errors.NotFoundf("Sale %s not found", id).WithError(err)
	}
	return errors.DatabaseError("Failed to fetch sale").WithError(err)
}

func uniqueProductIDs(items []models.SaleItemRequest) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func derefSanitized(s *string) string {
	if s == nil {
		return ""
	}
	return utils.SanitizeText(*s)
}
