package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/syedmehedi34/scsi-job-task-server/db"
	"github.com/syedmehedi34/scsi-job-task-server/handlers"
	"github.com/syedmehedi34/scsi-job-task-server/logging"
	"github.com/syedmehedi34/scsi-job-task-server/middleware"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

// enableCORS allows credentialed requests from the configured frontend
// origins. Wildcards are off the table: the session rides in a cookie, and
// browsers refuse Access-Control-Allow-Origin: * for credentialed requests.
func enableCORS(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				break
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func mongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost:27017"
	}
	if dbUser == "" {
		return fmt.Sprintf("mongodb://%s", dbHost)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s", dbUser, dbPass, dbHost)
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Tasks Service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_SKIPPED, Description: No .env file loaded: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logging.Logger.Fatal("Event ID: CONFIG_ERROR, Description: JWT_SECRET is not set in the environment variables.")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5001"
	}

	dbName := os.Getenv("MONGO_DB_NAME")
	if dbName == "" {
		dbName = "TaskManagement"
	}

	production := os.Getenv("APP_ENV") == "production"

	var corsOrigins []string
	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			corsOrigins = append(corsOrigins, origin)
		}
	}
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:5173"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := mongoURI()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB, using database %s.", dbName)

	taskRepo := db.NewTaskRepository(client, dbName)
	userRepo := db.NewUserRepository(client, dbName)
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	jwtService := services.NewJWTService(jwtSecret)
	taskService := services.NewTaskService(taskRepo, services.NewStoreBreaker("tasks-store-cb"))
	userService := services.NewUserService(userRepo, services.NewStoreBreaker("users-store-cb"))

	authHandler := handlers.NewAuthHandler(jwtService, production)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)

	r := mux.NewRouter()

	// Open routes: liveness and the session lifecycle itself.
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "project is running")
	}).Methods(http.MethodGet)
	r.HandleFunc("/jwt", authHandler.IssueToken).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Everything touching tasks or users requires a valid session cookie.
	guarded := r.NewRoute().Subrouter()
	guarded.Use(mux.MiddlewareFunc(middleware.JWTAuthMiddleware(jwtService)))
	guarded.HandleFunc("/tasks", taskHandler.GetTasks).Methods(http.MethodGet)
	guarded.HandleFunc("/tasks", taskHandler.UpsertTask).Methods(http.MethodPatch)
	guarded.HandleFunc("/tasks", taskHandler.DeleteTask).Methods(http.MethodDelete)
	guarded.HandleFunc("/drag_tasks", taskHandler.DragTask).Methods(http.MethodPatch)
	guarded.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	guarded.HandleFunc("/user", userHandler.GetUser).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      enableCORS(corsOrigins, r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logging.Logger.Info("Event ID: SERVICE_STOPPING, Description: Shutdown signal received, draining connections...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_ERROR, Description: HTTP server shutdown failed: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: DB_DISCONNECT_ERROR, Description: MongoDB disconnect failed: %v", err)
	}
	logging.Logger.Info("Event ID: SERVICE_STOPPED, Description: Tasks Service stopped.")
}
