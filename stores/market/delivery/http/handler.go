package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/delivery"
	"github.com/rebooked/goapi/domain/market"
)

type handler struct {
	market market.Usecase
}

func New(e *echo.Echo, market market.Usecase) {
	h := &handler{market}

	g := e.Group("/payloads")
	g.POST("/mint", h.mint)
	g.POST("/list", h.list)
	g.POST("/buy", h.buy)
	g.POST("/cancel", h.cancel)
}

func (h *handler) mint(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	p := &market.MintRequest{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	payload, err := h.market.BuildMintPayload(context, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, payload)
}

func (h *handler) list(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	p := &market.ListRequest{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	payload, err := h.market.BuildListPayload(context, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, payload)
}

func (h *handler) buy(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	p := &market.BuyRequest{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	payload, err := h.market.BuildBuyPayload(context, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, payload)
}

func (h *handler) cancel(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	p := &market.CancelRequest{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	payload, err := h.market.BuildCancelPayload(context, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, payload)
}
