package httpkit

import (
	"net/http"
	"strings"
	"time"

	"vitalog/internal/platform/config"
	"vitalog/internal/platform/net/middleware"
)

// CommonStack is the default middleware chain mounted at the API root
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	cors := middleware.CORSOptions{
		AllowedOrigins: strings.Split(cfg.MayString("CORS_ORIGINS", "*"), ","),
		MaxAge:         300,
	}

	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog,
		middleware.CORS(cors),
		middleware.Compress(5),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
