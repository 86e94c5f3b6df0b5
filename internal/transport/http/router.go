package http

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-email-otp/internal/application/verification"
	"github.com/go-email-otp/internal/config"
	"github.com/go-email-otp/internal/transport/http/handler"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	verifySvc := verification.NewService(verification.ServiceDeps{
		Store:  deps.CodeStore,
		Mailer: deps.Mailer,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	})

	healthH := handler.NewHealthHandler()
	verifyH := handler.NewVerificationHandler(verifySvc, deps.Logger)

	r.Get("/", healthH.Root)
	r.Get("/health-check/{action}", healthH.Ping)
	r.Post("/send-code", verifyH.SendCode)
	r.Post("/verify-code", verifyH.VerifyCode)

	if dir := cfg.StaticDir; dir != "" && isDir(dir) {
		fs := http.FileServer(http.Dir(dir))
		r.Get("/*", fs.ServeHTTP)
		r.Head("/*", fs.ServeHTTP)
	}

	return r
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
