package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"tlux-project/microservices/dashboard-service/handlers"
	"tlux-project/microservices/dashboard-service/logging"
	"tlux-project/microservices/dashboard-service/repositories"
	"tlux-project/microservices/dashboard-service/services"
	"tlux-project/microservices/dashboard-service/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Dashboard Service...")
	err := godotenv.Load(".env")
	if err != nil {
		logging.Logger.Fatalf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	mongoCollectionName := os.Getenv("MONGO_COLLECTION")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stateClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer stateClient.Disconnect(ctx)

	if err := stateClient.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	stateCollection := stateClient.Database(mongoDBName).Collection(mongoCollectionName)
	logging.Logger.Infof("Event ID: DB_COLLECTION_SET, Description: Using MongoDB collection: %s/%s", mongoDBName, mongoCollectionName)

	stateRepository := repositories.NewMongoStateRepository(stateCollection)
	stateService, err := services.NewStateService(ctx, stateRepository)
	if err != nil {
		logging.Logger.Fatalf("Event ID: STATE_LOAD_FAILED, Description: Failed to load shared state: %v", err)
	}

	if err := stateService.Start(context.Background()); err != nil {
		logging.Logger.Fatalf("Event ID: SYNC_SUBSCRIBE_FAILED, Description: Failed to subscribe to state changes: %v", err)
	}
	logging.Logger.Info("Event ID: SYNC_SUBSCRIBED, Description: Subscribed to shared state change notifications.")

	geminiBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiServiceCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	geminiURL := os.Getenv("GEMINI_API_URL")
	if geminiURL == "" {
		geminiURL = "https://generativelanguage.googleapis.com"
	}
	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-3-flash-preview"
	}
	geminiKey := os.Getenv("GEMINI_API_KEY")

	httpClient := utils.NewHTTPClient()

	taskService := services.NewTaskService(stateService)
	userService := services.NewUserService(stateService)
	reportService := services.NewReportService(stateService, httpClient, geminiBreaker, geminiURL, geminiKey, geminiModel)

	taskHandler := handlers.NewTaskHandler(stateService, taskService)
	userHandler := handlers.NewUserHandler(stateService, userService)
	dashboardHandler := handlers.NewDashboardHandler(stateService)
	reportHandler := handlers.NewReportHandler(stateService, reportService)
	syncHandler := handlers.NewSyncHandler()
	stateService.AddListener(syncHandler.BroadcastEvent)

	// Kreiranje mux routera
	r := mux.NewRouter()

	r.HandleFunc("/api/viewer", userHandler.GetViewer).Methods(http.MethodGet)
	r.HandleFunc("/api/viewer", userHandler.SelectViewer).Methods(http.MethodPost)
	r.HandleFunc("/api/users", userHandler.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users", userHandler.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/assignable", userHandler.GetAssignableUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", taskHandler.GetTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/progress", taskHandler.ChangeTaskProgress).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/status", taskHandler.ChangeTaskStatus).Methods(http.MethodPost)
	r.HandleFunc("/api/filters", taskHandler.SetFilter).Methods(http.MethodPost)
	r.HandleFunc("/api/filters", taskHandler.ClearFilter).Methods(http.MethodDelete)
	r.HandleFunc("/api/projects", dashboardHandler.GetProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/dashboard", dashboardHandler.GetDashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/report", reportHandler.GetReport).Methods(http.MethodGet)
	r.HandleFunc("/api/report", reportHandler.RequestReport).Methods(http.MethodPost)
	r.HandleFunc("/api/report", reportHandler.ClearReport).Methods(http.MethodDelete)
	r.HandleFunc("/api/sync", syncHandler.Feed)

	corsRouter := enableCORS(r)

	// Pokretanje servera
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
