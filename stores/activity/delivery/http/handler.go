package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/delivery"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/activity"
	"github.com/rebooked/goapi/stores/activity/usecase"
)

type handler struct {
	activity        activity.Usecase
	notifier        activity.Notifier
	contractAddress domain.Address
	historyLimit    int
}

type HandlerCfg struct {
	Activity        activity.Usecase
	Notifier        activity.Notifier
	ContractAddress domain.Address
	HistoryLimit    int
}

func New(e *echo.Echo, cfg *HandlerCfg) {
	h := &handler{
		activity:        cfg.Activity,
		notifier:        cfg.Notifier,
		contractAddress: cfg.ContractAddress,
		historyLimit:    cfg.HistoryLimit,
	}

	e.GET("/activity", h.getActivity)

	g := e.Group("/notifications")
	g.GET("", h.getNotifications)
	g.DELETE("/:id", h.dismiss)
	g.DELETE("", h.clearAll)
}

type activityParams struct {
	Address string `query:"address"`
	Sort    string `query:"sort"`
	Offset  int    `query:"offset"`
	Limit   int    `query:"limit"`
}

type activityResult struct {
	Items []activity.MarketplaceEvent `json:"items"`
	Total int                         `json:"total"`
}

// getActivity derives the marketplace feed from the contract account's
// recent history and applies consumer-side filter, sort and pagination
func (h *handler) getActivity(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	p := &activityParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	events, err := h.activity.GetMarketplaceEvents(context, h.contractAddress, h.historyLimit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	events = usecase.FilterByAddress(events, p.Address)

	dir := domain.SortDirDesc
	if p.Sort == "asc" {
		dir = domain.SortDirAsc
	}
	usecase.SortEvents(events, dir)

	return delivery.MakeJsonResp(c, http.StatusOK, activityResult{
		Items: paginateEvents(events, p.Offset, p.Limit),
		Total: len(events),
	})
}

func paginateEvents(events []activity.MarketplaceEvent, offset, limit int) []activity.MarketplaceEvent {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(events) {
		return []activity.MarketplaceEvent{}
	}
	if limit <= 0 {
		return events[offset:]
	}
	end := offset + limit
	if end > len(events) {
		end = len(events)
	}
	return events[offset:end]
}

type notificationsResult struct {
	Items  []activity.Notification `json:"items"`
	Unread int                     `json:"unread"`
}

func (h *handler) getNotifications(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	return delivery.MakeJsonResp(c, http.StatusOK, notificationsResult{
		Items:  h.notifier.Notifications(context),
		Unread: h.notifier.Unread(context),
	})
}

func (h *handler) dismiss(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	if !h.notifier.Dismiss(context, c.Param("id")) {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "notification not found")
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "dismissed")
}

func (h *handler) clearAll(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	h.notifier.ClearAll(context)
	return delivery.MakeJsonResp(c, http.StatusOK, "cleared")
}
