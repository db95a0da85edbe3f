package api

import (
	"net/http"

	"github.com/storedesk/backoffice-api/internal/api/handlers"
	"github.com/storedesk/backoffice-api/internal/api/middleware"
)

const adminPrefix = "/api/v1/admin"

type Handlers struct {
	Auth      *handlers.AuthHandler
	Sales     *handlers.SaleHandler
	Products  *handlers.ProductHandler
	Category  *handlers.CategoryHandler
	Brands    *handlers.BrandHandler
	Customers *handlers.CustomerHandler
	Dashboard *handlers.DashboardHandler
}

// RegisterRoutes mounts the admin API on mux. Everything except login sits behind the
// bearer token guard.
func RegisterRoutes(mux *http.ServeMux, h *Handlers, auth *middleware.AuthMiddleware) {

	route := func(method, path string, handler http.HandlerFunc) {
		mux.HandleFunc(method+" "+adminPrefix+path, auth.Authenticate(handler))
	}

	mux.HandleFunc("POST "+adminPrefix+"/auth/login", h.Auth.Login())
	route("GET", "/auth/me", h.Auth.Me())

	route("GET", "/sales", h.Sales.ListSales())
	route("POST", "/sales", h.Sales.CreateSale())
	route("GET", "/sales/{id}", h.Sales.GetSale())
	route("PATCH", "/sales/{id}/status", h.Sales.UpdateSaleStatus())

	route("GET", "/categories", h.Category.ListCategories())
	route("GET", "/categories/all", h.Category.ListAllCategories())
	route("POST", "/categories", h.Category.CreateCategory())
	route("GET", "/categories/{id}", h.Category.GetCategory())
	route("PATCH", "/categories/{id}", h.Category.UpdateCategory())
	route("DELETE", "/categories/{id}", h.Category.DeleteCategory())

	route("GET", "/brands", h.Brands.ListBrands())
	route("POST", "/brands", h.Brands.CreateBrand())
	route("GET", "/brands/{id}", h.Brands.GetBrand())
	route("PATCH", "/brands/{id}", h.Brands.RenameBrand())
	route("DELETE", "/brands/{id}", h.Brands.DeleteBrand())

	route("GET", "/products", h.Products.ListProducts())
	route("POST", "/products", h.Products.CreateProduct())
	route("GET", "/products/{id}", h.Products.GetProduct())
	route("PATCH", "/products/{id}", h.Products.UpdateProduct())
	route("DELETE", "/products/{id}", h.Products.DeleteProduct())

	route("GET", "/customers", h.Customers.ListCustomers())
	route("GET", "/dashboard", h.Dashboard.GetDashboard())
}
