package api

import (
	"github.com/labstack/echo/v4"

	models "github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
	"github.com/nischitpatel/stock-price-analysis-system/internal/usecase"
	xhttp "github.com/nischitpatel/stock-price-analysis-system/pkg/http"
	xlogger "github.com/nischitpatel/stock-price-analysis-system/pkg/logger"
)

// Cache-Control lifetimes for statement and valuation payloads. Fundamentals
// change at most quarterly; valuations carry a live snapshot.
const (
	fundamentalsCacheControl = "public, max-age=3600"
	valuationCacheControl    = "public, max-age=1800"
)

// StocksEchoHandler exposes statement, valuation and ownership endpoints.
type StocksEchoHandler struct {
	logger *xlogger.Logger
	fund   *usecase.FundamentalsUseCase
	val    *usecase.ValuationUseCase
	own    *usecase.OwnershipUseCase
}

func NewStocksEchoHandler(
	logger *xlogger.Logger,
	fund *usecase.FundamentalsUseCase,
	val *usecase.ValuationUseCase,
	own *usecase.OwnershipUseCase,
) *StocksEchoHandler {
	return &StocksEchoHandler{logger: logger, fund: fund, val: val, own: own}
}

func (h *StocksEchoHandler) RegisterRoutes(e *echo.Echo) {
	stocks := e.Group("/api/stocks")
	stocks.GET("/balance-sheet/:symbol", h.BalanceSheetRaw)
	stocks.GET("/balance-sheet/normalized/:symbol", h.BalanceSheet)
	stocks.GET("/income-statement/:symbol", h.IncomeStatementRaw)
	stocks.GET("/income-statement/normalized/:symbol", h.IncomeStatement)

	e.GET("/api/valuation/:symbol", h.Valuation)
	e.GET("/api/ownership/:symbol", h.Ownership)

	e.GET("/health", h.Health)
}

func (h *StocksEchoHandler) BalanceSheet(c echo.Context) error {
	p, verr := h.statementParams(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.fund.GetBalanceSheet(c.Request().Context(), c.Param("symbol"), *p)
	if err != nil {
		h.logger.Error("balance sheet usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, fundamentalsCacheControl)
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) BalanceSheetRaw(c echo.Context) error {
	p, verr := h.statementParams(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.fund.GetBalanceSheetRaw(c.Request().Context(), c.Param("symbol"), *p)
	if err != nil {
		h.logger.Error("balance sheet raw usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, fundamentalsCacheControl)
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) IncomeStatement(c echo.Context) error {
	p, verr := h.statementParams(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.fund.GetIncomeStatement(c.Request().Context(), c.Param("symbol"), *p)
	if err != nil {
		h.logger.Error("income statement usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, fundamentalsCacheControl)
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) IncomeStatementRaw(c echo.Context) error {
	p, verr := h.statementParams(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.fund.GetIncomeStatementRaw(c.Request().Context(), c.Param("symbol"), *p)
	if err != nil {
		h.logger.Error("income statement raw usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, fundamentalsCacheControl)
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) Valuation(c echo.Context) error {
	req := &models.ValuationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rt, err := domrepo.ParseReportType(req.Type)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	includeCurrent := req.Current == nil || *req.Current
	res, err := h.val.GetValuationHistory(c.Request().Context(), c.Param("symbol"), usecase.ValuationParams{
		Type:           rt,
		From:           req.From,
		To:             req.To,
		Limit:          req.Limit,
		TTM:            req.TTM,
		IncludeCurrent: includeCurrent,
	})
	if err != nil {
		h.logger.Error("valuation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, valuationCacheControl)
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) Ownership(c echo.Context) error {
	res, err := h.own.GetOwnershipPattern(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		h.logger.Error("ownership usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, valuationCacheControl)
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *StocksEchoHandler) statementParams(c echo.Context) (*usecase.StatementParams, interface{}) {
	req := &models.StatementRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return nil, verr
	}
	rt, err := domrepo.ParseReportType(req.Type)
	if err != nil {
		return nil, err.Error()
	}
	return &usecase.StatementParams{
		Type:  rt,
		From:  req.From,
		To:    req.To,
		Limit: req.Limit,
	}, nil
}
