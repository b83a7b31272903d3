// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/twothirdshuman/minecraft-banking/internal/domain"
	"github.com/twothirdshuman/minecraft-banking/pkg/errorspkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Get(ctx context.Context, name string) (domain.Account, error)
	Balance(ctx context.Context, name string) (int64, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name, secret string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

// List handles http request to list all account names.
//
// The response body is a bare json array of names for compatibility with
// existing clients.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	names, err := h.service.ListNames(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if names == nil {
		names = []string{}
	}

	gctx.JSON(http.StatusOK, names)
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// Balance handles http request to get the balance of one account.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	name := gctx.Query("account")
	if name == "" {
		gctx.JSON(http.StatusBadRequest, web.Error(errMissingAccountParam))

		return
	}

	balance, err := h.service.Balance(ctx, name)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, balanceResponse{Balance: balance})
}

// Create handles http request to create an account. The pin field of the
// request carries the bank operator secret, not an account pin.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var payload map[string]any
	if err := gctx.ShouldBindJSON(&payload); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	req, err := parseCreateRequest(payload)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if _, err := h.service.Create(ctx, req.Name, req.Secret); err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrInvalidSecret:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case domain.ErrAccountAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.Status(http.StatusOK)
}
