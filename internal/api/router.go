package api

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"mcwallet/internal/handler"
	"mcwallet/internal/keymanager"
	"mcwallet/internal/store"
)

// SetupRouter sets up router with handlers
func SetupRouter(manager *keymanager.KeyManager, s *store.SqliteStore, logger *zap.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(manager, s, logger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallets", walletsDispatch(walletHandler))
	mux.HandleFunc("/wallets/batch", walletHandler.CreateBatch)
	mux.HandleFunc("/wallets/import", walletHandler.Import)
	mux.HandleFunc("/wallets/balance", walletHandler.Balance)
	mux.HandleFunc("/wallets/balances", walletHandler.Balances)
	mux.HandleFunc("/wallets/recover", walletHandler.Recover)

	// Password endpoints
	mux.HandleFunc("/password/score", walletHandler.Score)

	return requestLogger(logger, mux)
}

// walletsDispatch splits /wallets between creation (POST) and listing (GET).
func walletsDispatch(h *handler.WalletHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Create(w, r)
		case http.MethodGet:
			h.List(w, r)
		default:
			http.Error(w, "Method not allowed. Should be POST or GET", http.StatusMethodNotAllowed)
		}
	}
}

// requestLogger logs every request with method, path, status and duration.
// Request bodies are never logged; they can carry passwords and keys.
func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
