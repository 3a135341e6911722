package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"CartStoreAPI/internal/middleware"
	"CartStoreAPI/internal/model"
	"CartStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// In-memory store ports backing the endpoint tests. Item mutations keep the
// cart's total in step with its ledger, like the pgx repositories do.

type fakeCatalog struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{rows: make(map[int64]model.Product)}
}

func (f *fakeCatalog) Create(ctx context.Context, p *model.Product) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ProductID = f.nextID
	f.rows[p.ProductID] = *p
	return p.ProductID, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, model.NotFound("product")
	}
	return &p, nil
}

func (f *fakeCatalog) List(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Product, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (f *fakeCatalog) Update(ctx context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.ProductID]; !ok {
		return model.NotFound("product")
	}
	f.rows[p.ProductID] = *p
	return nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return model.NotFound("product")
	}
	delete(f.rows, id)
	return nil
}

type fakeCartStore struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	nextID  int64
	carts   map[int64]*model.Cart
	items   map[int64]map[int64]int
}

func newFakeCartStore(catalog *fakeCatalog) *fakeCartStore {
	return &fakeCartStore{
		catalog: catalog,
		carts:   make(map[int64]*model.Cart),
		items:   make(map[int64]map[int64]int),
	}
}

func (f *fakeCartStore) FindActiveByToken(ctx context.Context, token string) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.SessionID == token && c.AbandonedAt == nil {
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.NotFound("cart")
}

func (f *fakeCartStore) Create(ctx context.Context, token string) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.SessionID == token && c.AbandonedAt == nil {
			cp := *c
			return &cp, nil
		}
	}
	f.nextID++
	c := &model.Cart{CartID: f.nextID, SessionID: token, LastInteractionAt: time.Now()}
	f.carts[c.CartID] = c
	f.items[c.CartID] = make(map[int64]int)
	cp := *c
	return &cp, nil
}

func (f *fakeCartStore) GetByID(ctx context.Context, cartID int64) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[cartID]
	if !ok {
		return nil, model.NotFound("cart")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCartStore) Items(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CartItem
	for productID, qty := range f.items[cartID] {
		p := f.catalog.rows[productID]
		out = append(out, model.CartItem{
			ProductID:  productID,
			Name:       p.Name,
			Quantity:   qty,
			UnitPrice:  p.Price,
			TotalPrice: p.Price * float64(qty),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (f *fakeCartStore) SetItem(ctx context.Context, cartID, productID int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[cartID]; !ok {
		return model.NotFound("cart")
	}
	f.items[cartID][productID] = qty
	f.recalculateLocked(cartID)
	return nil
}

func (f *fakeCartStore) IncrementItem(ctx context.Context, cartID, productID int64, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[cartID]; !ok {
		return 0, model.NotFound("cart")
	}
	next := f.items[cartID][productID] + delta
	if next <= 0 {
		return 0, model.Invalid("quantity must be greater than 0")
	}
	f.items[cartID][productID] = next
	f.recalculateLocked(cartID)
	return next, nil
}

func (f *fakeCartStore) RemoveItem(ctx context.Context, cartID, productID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[cartID][productID]; !ok {
		return false, nil
	}
	delete(f.items[cartID], productID)
	f.recalculateLocked(cartID)
	return true, nil
}

func (f *fakeCartStore) MarkAbandoned(ctx context.Context, cartID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[cartID]
	if !ok {
		return model.NotFound("cart")
	}
	if c.AbandonedAt == nil {
		now := time.Now()
		c.AbandonedAt = &now
	}
	return nil
}

func (f *fakeCartStore) MarkAbandonedBefore(ctx context.Context, cutoff, at time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeCartStore) PurgeAbandonedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeCartStore) recalculateLocked(cartID int64) {
	var total float64
	for productID, qty := range f.items[cartID] {
		total += f.catalog.rows[productID].Price * float64(qty)
	}
	f.carts[cartID].TotalPrice = total
}

// newTestServer wires the routes exactly as main does, over the fakes.
func newTestServer() (*echo.Echo, *fakeCatalog, *fakeCartStore) {
	catalog := newFakeCatalog()
	carts := newFakeCartStore(catalog)

	e := echo.New()
	api := e.Group("")
	registerProductRoutes(api, services.NewProductService(catalog))
	registerCartRoutes(api, services.NewCartService(carts, catalog), services.NewSessionService(carts))
	return e, catalog, carts
}

func doJSON(e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}
