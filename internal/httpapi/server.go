package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"latentd/internal/adapter"
	"latentd/internal/binding"
	"latentd/internal/engine"
	"latentd/internal/plan"
	"latentd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Capabilities(id string) (adapter.CapabilitySet, error)
	DefaultModel() string
	Status() types.StatusResponse
	LogProb(ctx context.Context, id string, xs, zs binding.Binding) (float64, error)
	LogLik(ctx context.Context, id string, xs, zs binding.Binding) (float64, error)
	Predict(ctx context.Context, id string, xs, zs binding.Binding) (binding.Binding, error)
	SamplePrior(ctx context.Context, id string) (binding.Binding, error)
	SampleLikelihood(ctx context.Context, id string, zs binding.Binding) (binding.Binding, error)
	ValidatePlan(id string, p plan.Plan) error
	Ready() bool
}

// toBinding converts a wire payload into an immutable binding. A nil map
// converts to the zero binding so handlers can tell "absent" from "empty".
func toBinding(m map[string]types.ValuePayload) (binding.Binding, error) {
	if m == nil {
		return binding.Binding{}, nil
	}
	b := binding.New()
	for name, p := range m {
		v, err := binding.NewValue(p.Shape, p.Data)
		if err != nil {
			return binding.Binding{}, err
		}
		b = b.With(name, v)
	}
	return b, nil
}

// fromBinding converts a binding back into wire payloads.
func fromBinding(b binding.Binding) map[string]types.ValuePayload {
	out := make(map[string]types.ValuePayload, b.Len())
	for _, name := range b.Keys() {
		v, _ := b.Get(name)
		out[name] = types.ValuePayload{Shape: v.Shape(), Data: v.Data()}
	}
	return out
}

// decodeJSON enforces the JSON content type and body size limit.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeServiceError maps well-known service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) int {
	switch {
	case engine.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
		return http.StatusNotFound
	case engine.IsTooBusy(err):
		IncrementBackpressure("queue_full")
		writeJSONError(w, http.StatusTooManyRequests, err.Error())
		return http.StatusTooManyRequests
	case binding.IsKeyNotFound(err), binding.IsKeyConflict(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return http.StatusBadRequest
	case adapter.IsUnsupportedOperation(err),
		adapter.IsUnsupportedPartialData(err),
		plan.IsUnsupportedLatentSpec(err),
		plan.IsSubsamplingUnsupported(err),
		plan.IsMissingLatentBinding(err):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return http.StatusUnprocessableEntity
	}
	if he, ok := err.(HTTPError); ok {
		writeJSONError(w, he.StatusCode(), he.Error())
		return he.StatusCode()
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
	return http.StatusInternalServerError
}

// resolvedID echoes which model a response refers to.
func resolvedID(svc Service, requested string) string {
	if requested != "" {
		return requested
	}
	return svc.DefaultModel()
}

func logCall(r *http.Request, op, model string, status int, start time.Time, err error) {
	if requestLogLevel(r) < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("op", op).Str("model", model).Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Err(err).Msg("eval end")
		return
	}
	log.Printf("eval end op=%s model=%s status=%d dur=%s err=%v", op, model, status, time.Since(start), err)
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.ModelsResponse{Models: svc.ListModels()}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/models/{id}/capabilities", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		caps, err := svc.Capabilities(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.CapabilitiesResponse{
			Model:        id,
			Capabilities: caps.Names(),
		})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	// scalarEval serves the two scalar density endpoints, which only differ
	// in the engine method they dispatch to.
	scalarEval := func(op string, eval func(ctx context.Context, id string, xs, zs binding.Binding) (float64, error)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var req types.EvalRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			start := time.Now()
			xs, err := toBinding(req.Data)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			zs, err := toBinding(req.Latents)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			// Join server base context with request context so shutdown
			// cancels work too.
			ctx, cancel := joinContexts(serverBaseCtx, r.Context())
			defer cancel()
			v, err := eval(ctx, req.Model, xs, zs)
			if err != nil {
				if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
					return
				}
				status := writeServiceError(w, err)
				logCall(r, op, req.Model, status, start, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(types.EvalResponse{Model: resolvedID(svc, req.Model), Value: v})
			logCall(r, op, req.Model, http.StatusOK, start, nil)
		}
	}

	r.Post("/eval/logprob", scalarEval("logprob", svc.LogProb))
	r.Post("/eval/loglik", scalarEval("loglik", svc.LogLik))

	r.Post("/eval/predict", func(w http.ResponseWriter, r *http.Request) {
		var req types.EvalRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		start := time.Now()
		xs, err := toBinding(req.Data)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		zs, err := toBinding(req.Latents)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		out, err := svc.Predict(ctx, req.Model, xs, zs)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := writeServiceError(w, err)
			logCall(r, "predict", req.Model, status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.BindingResponse{Model: resolvedID(svc, req.Model), Values: fromBinding(out)})
		logCall(r, "predict", req.Model, http.StatusOK, start, nil)
	})

	r.Post("/sample/prior", func(w http.ResponseWriter, r *http.Request) {
		var req types.SampleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		start := time.Now()
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		out, err := svc.SamplePrior(ctx, req.Model)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := writeServiceError(w, err)
			logCall(r, "sample_prior", req.Model, status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.BindingResponse{Model: resolvedID(svc, req.Model), Values: fromBinding(out)})
		logCall(r, "sample_prior", req.Model, http.StatusOK, start, nil)
	})

	r.Post("/sample/likelihood", func(w http.ResponseWriter, r *http.Request) {
		var req types.SampleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		start := time.Now()
		zs, err := toBinding(req.Latents)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		out, err := svc.SampleLikelihood(ctx, req.Model, zs)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := writeServiceError(w, err)
			logCall(r, "sample_likelihood", req.Model, status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.BindingResponse{Model: resolvedID(svc, req.Model), Values: fromBinding(out)})
		logCall(r, "sample_likelihood", req.Model, http.StatusOK, start, nil)
	})

	r.Post("/validate", func(w http.ResponseWriter, r *http.Request) {
		var req types.ValidateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		strategy, err := plan.ParseStrategy(req.Strategy)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Latent != "" && req.Latents != nil {
			writeJSONError(w, http.StatusBadRequest, "latent and latents are mutually exclusive")
			return
		}
		var spec plan.LatentSpec
		switch {
		case req.Latent != "":
			spec = plan.Single(req.Latent)
		case req.Latents != nil:
			spec = plan.List(req.Latents...)
		}
		p := plan.Plan{Strategy: strategy, Latents: spec, Subsample: req.Subsample}
		if err := svc.ValidatePlan(req.Model, p); err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.ValidateResponse{Model: resolvedID(svc, req.Model), OK: true})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
