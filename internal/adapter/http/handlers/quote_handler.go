package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quotedesk/internal/adapter/http/dto/request"
	"quotedesk/internal/adapter/http/dto/response"
	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase"
	"quotedesk/internal/usecase/interfaces"
	"quotedesk/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
	errInvalidStatusValue  = pkg.NewDomainErrorSimple("INVALID_STATUS", "Unknown quote status", http.StatusBadRequest)
)

// actorHeader carries the human-readable identity stamped on timeline events.
const actorHeader = "X-Actor"

// QuoteHandler handles HTTP requests for the quote lifecycle.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary  Create a quote in DRAFT
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    quote body request.CreateQuoteRequest true "quote"
// @Success  201 {object} response.QuoteResponse
// @Router   /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), payload.ToInput(actorFrom(c)), actorFrom(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// ListQuotes godoc
// @Summary  List quotes
// @Tags     quotes
// @Produce  json
// @Param    status query string false "filter by status"
// @Param    search query string false "match quote id, company or contact email"
// @Param    created_by query string false "filter by creator"
// @Param    page query int false "page (1-based)"
// @Param    page_size query int false "page size"
// @Success  200 {object} response.QuoteListResponse
// @Router   /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	filter := interfaces.ListFilter{
		Search:    c.Query("search"),
		CreatedBy: c.Query("created_by"),
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		filter.Status = entities.QuoteStatus(strings.ToUpper(s))
	}
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)

	quotes, total, err := h.usecase.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteList(quotes, total, page, pageSize))
}

// GetQuote godoc
// @Summary  Get one quote by id
// @Tags     quotes
// @Produce  json
// @Param    id path string true "quote id"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q))
}

// UpdateQuote godoc
// @Summary  Update a draft quote's content
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id path string true "quote id"
// @Param    quote body request.UpdateQuoteRequest true "patch"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id} [put]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	q, err := h.usecase.UpdateDraft(c.Request.Context(), c.Param("id"), payload.ToPatch(), actorFrom(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ChangeQuoteStatus godoc
// @Summary  Change a quote's lifecycle status
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id path string true "quote id"
// @Param    status body request.ChangeStatusRequest true "target status"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/status [patch]
func (h *QuoteHandler) ChangeQuoteStatus(c *gin.Context) {
	var payload request.ChangeStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	status, ok := payload.ResolveStatus()
	if !ok {
		c.JSON(errInvalidStatusValue.HTTPStatus, errInvalidStatusValue.ToHTTPError())
		return
	}

	q, err := h.usecase.ChangeStatus(c.Request.Context(), c.Param("id"), status, actorFrom(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q))
}

// SendQuote godoc
// @Summary  Render the quote PDF and email it to the contact
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id path string true "quote id"
// @Param    send body request.SendQuoteRequest false "optional override recipient"
// @Success  200 {object} response.QuoteResponse
// @Router   /quotes/{id}/send [post]
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	var payload request.SendQuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
			return
		}
	}

	q, err := h.usecase.Send(c.Request.Context(), c.Param("id"), actorFrom(c), payload.OverrideEmail)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q))
}

// DeleteQuote godoc
// @Summary  Delete a draft quote
// @Tags     quotes
// @Param    id path string true "quote id"
// @Success  204
// @Router   /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.usecase.Remove(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func actorFrom(c *gin.Context) string {
	if actor := strings.TrimSpace(c.GetHeader(actorHeader)); actor != "" {
		return actor
	}
	return "system"
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteInput), errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDuplicateQuoteID):
		return pkg.NewDomainErrorSimple("DUPLICATE_QUOTE_ID", "Quote id already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Status transition not allowed", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteNotEditable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_EDITABLE", "Quote contents can no longer be edited", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotDeletable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_DELETABLE", "Only draft quotes can be deleted", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidRecipient):
		return pkg.NewDomainErrorSimple("INVALID_RECIPIENT", "No valid recipient email for this quote", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrRenderFailed):
		return pkg.NewDomainError("RENDER_FAILED", "Quote document could not be rendered", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrDispatchFailed):
		return pkg.NewDomainError("DISPATCH_FAILED", "Quote email could not be delivered", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("CONFLICT", "Quote was modified concurrently, reload and retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
