package routes

import (
	"log"
	"strconv"

	_ "quotedesk/docs" // This will be auto-generated
	"quotedesk/internal/adapter/fsm"
	"quotedesk/internal/adapter/http/handlers"
	"quotedesk/internal/adapter/persistence/repository"
	"quotedesk/internal/infrastructure/config"
	"quotedesk/internal/infrastructure/database"
	"quotedesk/internal/infrastructure/mail"
	"quotedesk/internal/infrastructure/pdf"
	"quotedesk/internal/usecase"
	"quotedesk/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg := config.Load()

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	if err := router.Run(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config) {
	ddb := database.ConnectDynamoDB()
	quoteRepo := repository.NewQuoteDynamoRepository(ddb)

	renderer := pdf.NewChromedpRenderer(pdf.Config{
		Timeout:   cfg.Renderer.Timeout,
		RemoteURL: cfg.Renderer.RemoteURL,
		NoSandbox: cfg.Renderer.NoSandbox,
		Mock:      cfg.Renderer.Mock,
	})

	var dispatcher interfaces.IMailDispatcher
	smtpDispatcher, err := mail.NewSMTPDispatcher(cfg.Mail)
	if err != nil {
		log.Printf("Mail dispatcher not configured: %v", err)
	} else {
		dispatcher = smtpDispatcher
	}

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, fsm.New(), renderer, dispatcher, cfg.Defaults)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
