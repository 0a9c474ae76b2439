package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloud-ru/fincalc-go/internal/history"
	"github.com/cloud-ru/fincalc-go/internal/tools"
)

// SaveCalculationResponse результат расчёта и сохранённая запись
type SaveCalculationResponse struct {
	Calculation interface{}               `json:"calculation"`
	Saved       *history.SavedCalculation `json:"saved"`
}

// CalculationsResponse список сохранённых расчётов
type CalculationsResponse struct {
	Family       history.Family             `json:"family"`
	Calculations []history.SavedCalculation `json:"calculations"`
}

func (s *Server) listCalculations(c echo.Context) error {
	family, err := history.ParseFamily(c.Param("family"))
	if err != nil {
		return respondError(c, err)
	}

	list, err := s.history.List(c.Request().Context(), currentIdentity(c), family)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, CalculationsResponse{Family: family, Calculations: list})
}

// saveCalculation считает расчёт по параметрам тела запроса и сохраняет его в историю
func (s *Server) saveCalculation(c echo.Context) error {
	family, err := history.ParseFamily(c.Param("family"))
	if err != nil {
		return respondError(c, err)
	}

	var req ToolRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}

	ctx := c.Request().Context()

	var (
		calculation interface{}
		record      history.SavedCalculation
	)
	switch family {
	case history.FamilyLoan:
		calc, err := tools.CalculateLoan(ctx, s.cfg, s.tracer, req.Params)
		if err != nil {
			return respondError(c, err)
		}
		calculation = calc
		record = history.NewLoanRecord(calc.Category, calc.Parameters, calc.Result)
	case history.FamilyDeposit:
		calc, err := tools.CalculateDeposit(ctx, s.cfg, s.tracer, req.Params)
		if err != nil {
			return respondError(c, err)
		}
		calculation = calc
		record = history.NewDepositRecord(calc.Category, calc.Parameters, calc.Result)
	}

	saved, err := s.history.Save(ctx, currentIdentity(c), record)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, SaveCalculationResponse{Calculation: calculation, Saved: saved})
}

func (s *Server) clearCalculations(c echo.Context) error {
	family, err := history.ParseFamily(c.Param("family"))
	if err != nil {
		return respondError(c, err)
	}

	if err := s.history.Clear(c.Request().Context(), currentIdentity(c), family); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
