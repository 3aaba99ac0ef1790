package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/soartravel/soar"
	"github.com/soartravel/soar/entity"
	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/memorysync"
	"github.com/spf13/cobra"
)

type (
	chatRequest struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}

	chatResponse struct {
		Reply string `json:"reply"`
	}

	memoriesResponse struct {
		Text string `json:"text"`
	}

	syncRequest struct {
		Trips          []entity.Trip          `json:"trips"`
		FlightBookings []entity.FlightBooking `json:"flight_bookings"`
	}

	syncResponse struct {
		Trips          memorysync.Result `json:"trips"`
		FlightBookings memorysync.Result `json:"flight_bookings"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat and sync HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, conf, closeFn, err := flags.newAssistant(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if !cmd.Flags().Changed("port") {
				port = conf.Server.Port
			}
			logger := a.Logger()

			logger.Info("server started", "port", port)
			defer logger.Info("server stopped")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", port),
				Handler: createServerHandler(a, logger),
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			go func() {
				<-ctx.Done()
				if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
					logger.Error("failed to shutdown server", "error", err)
				}
			}()

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3001, "Port to listen on")

	return cmd
}

func createServerHandler(a *soar.Assistant, logger *slog.Logger) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/v1/chat", func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.UserID == "" || strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "user_id and message are required")
			return
		}

		writeJSON(w, http.StatusOK, chatResponse{Reply: a.Handle(r.Context(), req.Message, req.UserID)})
	}).Methods("POST")

	users := router.PathPrefix("/v1/users/{userId}").Subrouter()

	users.HandleFunc("/memories", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if strings.TrimSpace(query) == "" {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}

		writeJSON(w, http.StatusOK, memoriesResponse{Text: a.RetrieveMemories(r.Context(), query, mux.Vars(r)["userId"])})
	}).Methods("GET")

	users.HandleFunc("/sync", func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userId"]

		var req syncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tripsResult, bookingsResult, err := a.SyncUserData(r.Context(), userID, req.Trips, req.FlightBookings)
		if err != nil {
			logger.Error("failed to sync user data", "user_id", userID, "error", err)
			writeError(w, http.StatusServiceUnavailable, "sync is unavailable right now")
			return
		}

		writeJSON(w, http.StatusOK, syncResponse{Trips: tripsResult, FlightBookings: bookingsResult})
	}).Methods("POST")

	users.HandleFunc("/preferences", func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userId"]

		var pref entity.TravelPreference
		if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if pref.UserID != "" && pref.UserID != userID {
			writeError(w, http.StatusBadRequest, "userId does not match the path")
			return
		}
		pref.UserID = userID

		result, err := a.SyncPreferences(r.Context(), pref)
		if err != nil {
			if errors.Is(err, errors.ErrInvalidRequest) {
				writeError(w, http.StatusBadRequest, "invalid preferences")
				return
			}
			logger.Error("failed to sync preferences", "user_id", userID, "error", err)
			writeError(w, http.StatusServiceUnavailable, "sync is unavailable right now")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}).Methods("POST")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"processing": a.IsProcessing(),
		})
	}).Methods("GET")

	router.Handle("/metrics", a.Metrics().Handler()).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true), handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)))

	return cors(recovery(router))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
