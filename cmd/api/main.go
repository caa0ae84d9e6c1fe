package main

import (
	_ "quotedesk/docs"
	"quotedesk/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Quotedesk API
// @version         1.0
// @description     Commercial quoting service (quote lifecycle, PDF rendering, email dispatch) backed by DynamoDB.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
