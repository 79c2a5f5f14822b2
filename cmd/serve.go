package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listing-cli/internal/csvio"
	"github.com/sells-group/listing-cli/internal/model"
	"github.com/sells-group/listing-cli/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for enrichment requests and run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Single-record enrichment, synchronous.
		r.Post("/enrich", func(w http.ResponseWriter, req *http.Request) {
			var record model.Business
			if err := json.NewDecoder(req.Body).Decode(&record); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if record.Name == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
				return
			}

			env.Enricher.EnrichRecord(req.Context(), &record)
			writeJSON(w, http.StatusOK, record)
		})

		// Whole-file enrichment, asynchronous; poll /runs/{id} for the result.
		r.Post("/runs", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Input string `json:"input"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if body.Input == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "input is required"})
				return
			}

			run, err := env.Store.CreateRun(ctx, body.Input)
			if err != nil {
				zap.L().Error("create run failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create run failed"})
				return
			}

			go runEnrichment(ctx, env, run.ID, body.Input)

			writeJSON(w, http.StatusAccepted, map[string]string{
				"run_id": run.ID,
				"status": string(model.RunStatusRunning),
			})
		})

		r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
			limit := 20
			if v := req.URL.Query().Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					limit = n
				}
			}
			runs, err := env.Store.ListRuns(req.Context(), limit)
			if err != nil {
				zap.L().Error("list runs failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list runs failed"})
				return
			}
			if runs == nil {
				runs = []model.EnrichmentRun{}
			}
			writeJSON(w, http.StatusOK, runs)
		})

		r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
			run, err := env.Store.GetRun(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
				return
			}
			writeJSON(w, http.StatusOK, run)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// runEnrichment executes one CSV enrichment end to end and records the
// outcome on the run.
func runEnrichment(ctx context.Context, env *pipelineEnv, runID, input string) {
	table, err := csvio.ReadTable(input)
	if err != nil {
		zap.L().Error("enrichment failed", zap.String("run_id", runID), zap.Error(err))
		completeRun(ctx, env.Store, runID, pipeline.Stats{}, "", err)
		return
	}
	records := table.Listings()

	stats := env.Enricher.EnrichAll(ctx, records, cfg.Enrich.Concurrency)

	output := csvio.EnrichedOutputPath(input)
	_, writeErr := csvio.WriteEnriched(table, records, output, cfg.Enrich.ChunkSize)
	completeRun(ctx, env.Store, runID, stats, output, writeErr)

	if writeErr != nil {
		zap.L().Error("enrichment failed", zap.String("run_id", runID), zap.Error(writeErr))
		return
	}
	zap.L().Info("enrichment complete",
		zap.String("run_id", runID),
		zap.String("output", output),
		zap.Int("records", stats.Records),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
