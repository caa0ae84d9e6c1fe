package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotedesk/internal/adapter/http/handlers/mocks"
	"quotedesk/internal/adapter/http/dto/response"
	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase"
	"quotedesk/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newQuoteRouter(t *testing.T) (*gin.Engine, *mocks.MockIQuoteUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc)

	r := gin.New()
	r.POST("/v1/quotes", h.CreateQuote)
	r.GET("/v1/quotes", h.ListQuotes)
	r.GET("/v1/quotes/:id", h.GetQuote)
	r.PUT("/v1/quotes/:id", h.UpdateQuote)
	r.PATCH("/v1/quotes/:id/status", h.ChangeQuoteStatus)
	r.POST("/v1/quotes/:id/send", h.SendQuote)
	r.DELETE("/v1/quotes/:id", h.DeleteQuote)
	return r, uc
}

func sampleQuote() entities.Quote {
	return entities.Quote{
		ID:           "id-1",
		QuoteID:      "Q-2026-001",
		Status:       entities.QuoteStatusDraft,
		CompanyName:  "Acme GmbH",
		ContactEmail: "jamie@acme.example",
		LineItems: []entities.LineItem{
			{Category: "standard", Quantity: 4, UnitPrice: decimal.NewFromInt(108), Subtotal: decimal.NewFromInt(432)},
		},
		ImplementationPrice: decimal.NewFromInt(1000),
		Version:             1,
	}
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newQuoteRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing quote_id", func(t *testing.T) {
		r, _ := newQuoteRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(`{"company_name":"Acme"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success with actor header", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any(), "alice").Return(sampleQuote(), nil)

		body := `{"quote_id":"Q-2026-001","company_name":"Acme GmbH","line_items":[{"category":"standard","quantity":4}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Actor", "alice")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.QuoteResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp.QuoteID != "Q-2026-001" {
			t.Fatalf("unexpected quote id %q", resp.QuoteID)
		}
		if resp.Totals.Total != 1432 {
			t.Fatalf("expected total 1432, got %v", resp.Totals.Total)
		}
	})

	t.Run("duplicate id maps to 409", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrDuplicateQuoteID)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(`{"quote_id":"Q-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	t.Run("passes filters and pagination", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().List(gomock.Any(), interfaces.ListFilter{
			Status: entities.QuoteStatusSent,
			Search: "acme",
		}, 2, 10).Return([]entities.Quote{sampleQuote()}, 11, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes?status=sent&search=acme&page=2&page_size=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.QuoteListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp.Total != 11 || resp.Page != 2 || resp.PageSize != 10 || len(resp.Items) != 1 {
			t.Fatalf("unexpected list response %+v", resp)
		}
	})

	t.Run("invalid status filter maps to 400", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().List(gomock.Any(), gomock.Any(), 1, 20).Return(nil, 0, usecase.ErrInvalidStatus)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes?status=bogus", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_GetQuote(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "id-1").Return(sampleQuote(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/id-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_UpdateQuote(t *testing.T) {
	t.Run("not editable maps to 409", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().UpdateDraft(gomock.Any(), "id-1", gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrQuoteNotEditable)

		req := httptest.NewRequest(http.MethodPut, "/v1/quotes/id-1", bytes.NewBufferString(`{"company_name":"New Co"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().UpdateDraft(gomock.Any(), "id-1", gomock.Any(), "alice").DoAndReturn(
			func(_ context.Context, _ string, patch usecase.UpdateQuotePatch, _ string) (entities.Quote, error) {
				if patch.CompanyName == nil || *patch.CompanyName != "New Co" {
					t.Fatalf("expected company name patch, got %+v", patch)
				}
				if patch.ContactEmail != nil {
					t.Fatal("absent field must map to nil")
				}
				return sampleQuote(), nil
			})

		req := httptest.NewRequest(http.MethodPut, "/v1/quotes/id-1", bytes.NewBufferString(`{"company_name":"New Co"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Actor", "alice")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_ChangeQuoteStatus(t *testing.T) {
	t.Run("unknown status maps to 400", func(t *testing.T) {
		r, _ := newQuoteRouter(t)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/id-1/status", bytes.NewBufferString(`{"status":"BOGUS"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("lowercase status is normalized", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		q := sampleQuote()
		q.Status = entities.QuoteStatusPreview
		uc.EXPECT().ChangeStatus(gomock.Any(), "id-1", entities.QuoteStatusPreview, gomock.Any()).Return(q, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/id-1/status", bytes.NewBufferString(`{"status":"preview"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("illegal transition maps to 422", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().ChangeStatus(gomock.Any(), "id-1", entities.QuoteStatusAccepted, gomock.Any()).Return(entities.Quote{}, usecase.ErrInvalidTransition)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/id-1/status", bytes.NewBufferString(`{"status":"ACCEPTED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("concurrent modification maps to 409", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().ChangeStatus(gomock.Any(), "id-1", entities.QuoteStatusSent, gomock.Any()).Return(entities.Quote{}, usecase.ErrConflict)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/id-1/status", bytes.NewBufferString(`{"status":"SENT"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_SendQuote(t *testing.T) {
	t.Run("empty body is allowed", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		q := sampleQuote()
		q.Status = entities.QuoteStatusSent
		uc.EXPECT().Send(gomock.Any(), "id-1", "system", "").Return(q, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/id-1/send", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("override email is forwarded", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		q := sampleQuote()
		q.Status = entities.QuoteStatusSent
		uc.EXPECT().Send(gomock.Any(), "id-1", "alice", "other@client.example").Return(q, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/id-1/send", bytes.NewBufferString(`{"override_email":"other@client.example"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Actor", "alice")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid recipient maps to 422", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().Send(gomock.Any(), "id-1", gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrInvalidRecipient)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/id-1/send", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("render failure maps to 502", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().Send(gomock.Any(), "id-1", gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrRenderFailed)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/id-1/send", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("dispatch failure maps to 502", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().Send(gomock.Any(), "id-1", gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrDispatchFailed)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/id-1/send", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_DeleteQuote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().Remove(gomock.Any(), "id-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/quotes/id-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("not deletable maps to 409", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().Remove(gomock.Any(), "id-1").Return(usecase.ErrQuoteNotDeletable)

		req := httptest.NewRequest(http.MethodDelete, "/v1/quotes/id-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}
