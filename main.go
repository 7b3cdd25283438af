package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aninayuwoki/cobranza/config"
	"github.com/aninayuwoki/cobranza/internal/handlers"
	"github.com/aninayuwoki/cobranza/internal/routes"
	"github.com/aninayuwoki/cobranza/internal/store"
)

func main() {
	godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	config.ConnectDB()
	config.ConnectRedis()

	st, err := openStore()
	if err != nil {
		slog.Error("failed to open the student store", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	routes.SetupRoutes(r, handlers.NewStudentHandler(st))

	addr := config.Addr()
	slog.Info("listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openStore picks Postgres when DB_URL was configured, the JSON file
// otherwise.
func openStore() (store.Store, error) {
	if config.DB != nil {
		return store.NewGorm(config.DB)
	}
	return store.OpenJSONFile(config.DataFile())
}
