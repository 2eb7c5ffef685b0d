package rest

import (
	"context"
	"net/http"
	"time"

	"localGuide/domain"
	"localGuide/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type InterestService interface {
	GetAllInterests(ctx context.Context) ([]domain.Interest, error)
}

type InterestHandler struct {
	interestService InterestService
	timeout         time.Duration
}

func NewInterestHandler(interestService InterestService) *InterestHandler {
	return &InterestHandler{
		interestService: interestService,
		timeout:         10 * time.Second,
	}
}

func (h *InterestHandler) GetAllInterests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	interests, err := h.interestService.GetAllInterests(ctx)
	if err != nil {
		logger.Error("Failed to find all interests", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to fetch interests"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(interests))
}
