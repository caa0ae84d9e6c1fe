package routes

import (
	"quotedesk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes = "/quotes"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PUT("/:id", quoteHandler.UpdateQuote)
		quotes.PATCH("/:id/status", quoteHandler.ChangeQuoteStatus)
		quotes.POST("/:id/send", quoteHandler.SendQuote)
		quotes.DELETE("/:id", quoteHandler.DeleteQuote)
	}
}
