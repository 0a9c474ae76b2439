package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloud-ru/fincalc-go/internal/rates"
	"github.com/cloud-ru/fincalc-go/internal/tools"
)

// ToolRequest тело запроса на вызов инструмента
type ToolRequest struct {
	Params map[string]interface{} `json:"params"`
}

// ToolResponse ответ инструмента
type ToolResponse struct {
	Tool   string      `json:"tool"`
	Result interface{} `json:"result"`
}

func (s *Server) listTools(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"tools": s.registry.List()})
}

func (s *Server) callTool(c echo.Context) error {
	var req ToolRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	name := c.Param("name")
	result, err := s.registry.Call(c.Request().Context(), name, req.Params)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ToolResponse{Tool: name, Result: result})
}

func (s *Server) loanPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"presets": tools.LoanCategoryPresets()})
}

func (s *Server) depositPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"presets": tools.DepositCategoryPresets()})
}

func (s *Server) bankRates(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"banks": rates.Table()})
}

func (s *Server) profile(c echo.Context) error {
	return c.JSON(http.StatusOK, currentIdentity(c))
}
