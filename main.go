package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"proflow/handlers"
	"proflow/logging"
	"proflow/persistence"
	"proflow/services"

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

// newSnapshotRepository connects to MongoDB and wraps snapshot writes in a
// circuit breaker. When no database is reachable the store still runs: the
// snapshot lives in memory and durable writes are skipped, matching the
// best-effort persistence contract.
func newSnapshotRepository() persistence.SnapshotRepository {
	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	mongoCollectionName := os.Getenv("MONGO_COLLECTION")

	if mongoURI == "" {
		logging.Logger.Warn("Event ID: DB_NOT_CONFIGURED, Description: MONGO_URI is not set, snapshots will not be persisted")
		return persistence.NewMemorySnapshotRepository()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Warnf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed, falling back to in-memory snapshots: %v", err)
		return persistence.NewMemorySnapshotRepository()
	}
	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Warnf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error, falling back to in-memory snapshots: %v", err)
		return persistence.NewMemorySnapshotRepository()
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	collection := client.Database(mongoDBName).Collection(mongoCollectionName)
	logging.Logger.Infof("Event ID: DB_COLLECTION_SET, Description: Using MongoDB collection: %s/%s", mongoDBName, mongoCollectionName)

	snapshotBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "SnapshotWriteCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return persistence.NewMongoSnapshotRepository(collection, snapshotBreaker)
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting ProFlow service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	repository := newSnapshotRepository()
	store := services.NewStoreService(repository)

	projectHandler := handlers.NewProjectHandler(store)
	taskHandler := handlers.NewTaskHandler(store)
	teamHandler := handlers.NewTeamHandler(store)
	activityHandler := handlers.NewActivityHandler(store)
	aiHandler := handlers.NewAIHandler(store)
	authHandler := handlers.NewAuthHandler(store)

	r := mux.NewRouter()

	r.HandleFunc("/api/projects", projectHandler.GetAllProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/api/projects/{projectId}", projectHandler.GetProject).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{projectId}", projectHandler.UpdateProject).Methods(http.MethodPut)
	r.HandleFunc("/api/projects/{projectId}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	r.HandleFunc("/api/projects/{projectId}/tasks", projectHandler.GetProjectTasks).Methods(http.MethodGet)

	r.HandleFunc("/api/tasks", taskHandler.GetAllTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/move", taskHandler.MoveTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskId}", taskHandler.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{taskId}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{taskId}/subtasks", taskHandler.AddSubtask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskId}/subtasks/{subtaskId}/toggle", taskHandler.ToggleSubtask).Methods(http.MethodPatch)
	r.HandleFunc("/api/tasks/{taskId}/subtasks/{subtaskId}", taskHandler.RemoveSubtask).Methods(http.MethodDelete)

	r.HandleFunc("/api/team", teamHandler.GetTeam).Methods(http.MethodGet)
	r.HandleFunc("/api/team/{memberId}", teamHandler.GetTeamMember).Methods(http.MethodGet)

	r.HandleFunc("/api/activity", activityHandler.GetActivity).Methods(http.MethodGet)

	r.HandleFunc("/api/insights", aiHandler.GetInsights).Methods(http.MethodGet)
	r.HandleFunc("/api/insights/productivity", aiHandler.GetProductivity).Methods(http.MethodGet)

	r.HandleFunc("/api/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/logout", authHandler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/api/me", authHandler.CurrentUser).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

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
