package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/blindquote/api/controllers"
	quotecontrollers "github.com/angelmondragon/blindquote/api/controllers/quotes"
	"github.com/angelmondragon/blindquote/api/middleware"
	"github.com/angelmondragon/blindquote/pkg/config"
	"github.com/angelmondragon/blindquote/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	gatherer prometheus.Gatherer,
	quoteDeps quotecontrollers.Deps,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/quotes", func(r chi.Router) {
		r.Get("/", quotecontrollers.List(quoteDeps))
		r.Post("/", quotecontrollers.Create(quoteDeps))

		r.Route("/{quoteId}", func(r chi.Router) {
			r.Get("/", quotecontrollers.Detail(quoteDeps))
			r.Post("/import", quotecontrollers.Import(quoteDeps))
			r.Get("/export/{format}", quotecontrollers.Export(quoteDeps))
			r.Get("/render/{variant}", quotecontrollers.Render(quoteDeps))
			r.Post("/calculate", quotecontrollers.Calculate(quoteDeps))
			r.Post("/reset", quotecontrollers.Reset(quoteDeps))

			r.Route("/fabric", func(r chi.Router) {
				r.Post("/name-color", quotecontrollers.NameColor(quoteDeps))
				r.Post("/light-filter", quotecontrollers.LightFilter(quoteDeps))
				r.Post("/light-filter/clear", quotecontrollers.ClearLightFilter(quoteDeps))
				r.Post("/selective-set", quotecontrollers.SelectiveSet(quoteDeps))
			})
		})
	})

	return r
}
