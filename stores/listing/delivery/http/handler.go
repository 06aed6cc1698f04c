package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/delivery"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/listing"
	"github.com/rebooked/goapi/middleware"
	"github.com/rebooked/goapi/stores/listing/usecase"
)

type handler struct {
	listing listing.Usecase
}

func New(e *echo.Echo, listing listing.Usecase) {
	h := &handler{listing}

	gs := e.Group("/listings")
	gs.GET("", h.getAll)
	gs.GET("/:token", h.get, middleware.IsValidAddress("token"))

	e.GET("/accounts/:account/tokens", h.getAccountTokens, middleware.IsValidAddress("account"))
}

type searchParams struct {
	Search         string           `query:"search"`
	Category       listing.Category `query:"category"`
	Sort           listing.SortKey  `query:"sort"`
	IncludeExpired bool             `query:"includeExpired"`
	Offset         int              `query:"offset"`
	Limit          int              `query:"limit"`
}

type searchResult struct {
	Items []listing.Listing `json:"items"`
	Total int               `json:"total"`
}

// getAll serves the filtered snapshot of active listings. The snapshot is
// refreshed in the background; an empty result while the chain is
// unreachable is a valid response, not an error.
func (h *handler) getAll(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	p := &searchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Category = listing.Category(strings.ToLower(string(p.Category)))
	if p.Category != "" && p.Category != listing.CategoryAll && !p.Category.IsValid() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid category")
	}

	snapshot := h.listing.GetSnapshot(context)
	filtered := usecase.FilterSortListings(snapshot, listing.FilterOptions{
		SearchText:     p.Search,
		Category:       p.Category,
		IncludeExpired: p.IncludeExpired,
		SortBy:         p.Sort,
	}, time.Now().Unix())

	return delivery.MakeJsonResp(c, http.StatusOK, searchResult{
		Items: usecase.Paginate(filtered, p.Offset, p.Limit),
		Total: len(filtered),
	})
}

func (h *handler) get(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	token := domain.Address(c.Param("token"))

	l, err := h.listing.GetListing(context, token)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

type accountTokensResult struct {
	Items []listing.Listing `json:"items"`
	Stats listing.Stats     `json:"stats"`
}

func (h *handler) getAccountTokens(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	account := domain.Address(c.Param("account"))

	items, err := h.listing.GetListingsByOwner(context, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, accountTokensResult{
		Items: items,
		Stats: usecase.ComputeStats(items),
	})
}
