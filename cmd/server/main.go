package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/SKrishna-7/stratify/internal/config"
	"github.com/SKrishna-7/stratify/internal/database"
	"github.com/SKrishna-7/stratify/internal/handlers"
	"github.com/SKrishna-7/stratify/internal/jobs"
	"github.com/SKrishna-7/stratify/internal/repository"
	scheduler "github.com/SKrishna-7/stratify/internal/scheduler"
	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"github.com/SKrishna-7/stratify/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	deckRepo := repository.NewDeckRepository(db)
	eventRepo := repository.NewEventRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, cfg.JWTSecret)
	goalService := services.NewGoalService(goalRepo, courseRepo)
	courseService := services.NewCourseService(courseRepo, goalService)
	taskService := services.NewTaskService(taskRepo)
	appService := services.NewApplicationService(appRepo)
	deckService := services.NewDeckService(deckRepo)
	eventService := services.NewEventService(eventRepo)
	activityService := services.NewActivityService(activityRepo)
	dashboardService := services.NewDashboardService(userService, courseService, goalService, taskService, eventService, activityService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	goalHandler := handlers.NewGoalHandler(goalService, activityService)
	courseHandler := handlers.NewCourseHandler(courseService, activityService)
	taskHandler := handlers.NewTaskHandler(taskService)
	appHandler := handlers.NewApplicationHandler(appService)
	deckHandler := handlers.NewDeckHandler(deckService)
	eventHandler := handlers.NewEventHandler(eventService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, activityService)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetCurrentUserHandler).Methods("GET")

	// Goal routes
	goalRoutes := router.PathPrefix("/goals").Subrouter()
	goalRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	goalRoutes.HandleFunc("", goalHandler.CreateGoalHandler).Methods("POST")
	goalRoutes.HandleFunc("", goalHandler.GetGoalsHandler).Methods("GET")
	goalRoutes.HandleFunc("/imminent", goalHandler.GetImminentGoalHandler).Methods("GET")
	goalRoutes.HandleFunc("/sync/{courseId}", goalHandler.SyncCourseGoalsHandler).Methods("POST")
	goalRoutes.HandleFunc("/{id}", goalHandler.GetGoalHandler).Methods("GET")
	goalRoutes.HandleFunc("/{id}", goalHandler.DeleteGoalHandler).Methods("DELETE")
	goalRoutes.HandleFunc("/{id}/progress", goalHandler.UpdateGoalProgressHandler).Methods("PATCH")
	goalRoutes.HandleFunc("/{id}/toggle", goalHandler.ToggleGoalHandler).Methods("POST")
	goalRoutes.HandleFunc("/{id}/forecast", goalHandler.GetGoalForecastHandler).Methods("GET")

	// Course routes
	courseRoutes := router.PathPrefix("/courses").Subrouter()
	courseRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	courseRoutes.HandleFunc("", courseHandler.CreateCourseHandler).Methods("POST")
	courseRoutes.HandleFunc("", courseHandler.GetCoursesHandler).Methods("GET")
	courseRoutes.HandleFunc("/{id}", courseHandler.GetCourseHandler).Methods("GET")
	courseRoutes.HandleFunc("/{id}", courseHandler.DeleteCourseHandler).Methods("DELETE")
	courseRoutes.HandleFunc("/{id}/modules", courseHandler.AddModuleHandler).Methods("POST")
	courseRoutes.HandleFunc("/{id}/modules/{moduleId}", courseHandler.UpdateModuleHandler).Methods("PATCH")
	courseRoutes.HandleFunc("/{id}/modules/{moduleId}", courseHandler.DeleteModuleHandler).Methods("DELETE")
	courseRoutes.HandleFunc("/{id}/modules/{moduleId}/topics", courseHandler.AddTopicHandler).Methods("POST")
	courseRoutes.HandleFunc("/{id}/topics/{topicId}/toggle", courseHandler.ToggleTopicHandler).Methods("POST")
	courseRoutes.HandleFunc("/{id}/topics/{topicId}/focus", courseHandler.ToggleTopicFocusHandler).Methods("POST")
	courseRoutes.HandleFunc("/{id}/topics/{topicId}/note", courseHandler.SaveTopicNoteHandler).Methods("PUT")
	courseRoutes.HandleFunc("/{id}/topics/{topicId}/resource", courseHandler.SaveTopicResourceHandler).Methods("PUT")
	courseRoutes.HandleFunc("/{id}/topics/{topicId}", courseHandler.DeleteTopicHandler).Methods("DELETE")

	// Kanban board routes
	taskRoutes := router.PathPrefix("/tasks").Subrouter()
	taskRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	taskRoutes.HandleFunc("/board", taskHandler.GetBoardHandler).Methods("GET")
	taskRoutes.HandleFunc("", taskHandler.CreateTaskHandler).Methods("POST")
	taskRoutes.HandleFunc("/{id}/move", taskHandler.MoveTaskHandler).Methods("PATCH")
	taskRoutes.HandleFunc("/{id}/priority", taskHandler.UpdateTaskPriorityHandler).Methods("PATCH")
	taskRoutes.HandleFunc("/{id}", taskHandler.DeleteTaskHandler).Methods("DELETE")

	// Job application routes
	appRoutes := router.PathPrefix("/applications").Subrouter()
	appRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	appRoutes.HandleFunc("", appHandler.CreateApplicationHandler).Methods("POST")
	appRoutes.HandleFunc("", appHandler.GetApplicationsHandler).Methods("GET")
	appRoutes.HandleFunc("/{id}/status", appHandler.UpdateApplicationStatusHandler).Methods("PATCH")
	appRoutes.HandleFunc("/{id}", appHandler.DeleteApplicationHandler).Methods("DELETE")

	// Flashcard routes
	deckRoutes := router.PathPrefix("/decks").Subrouter()
	deckRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	deckRoutes.HandleFunc("", deckHandler.CreateDeckHandler).Methods("POST")
	deckRoutes.HandleFunc("", deckHandler.GetDecksHandler).Methods("GET")
	deckRoutes.HandleFunc("/{id}", deckHandler.GetDeckHandler).Methods("GET")
	deckRoutes.HandleFunc("/{id}", deckHandler.DeleteDeckHandler).Methods("DELETE")
	deckRoutes.HandleFunc("/{id}/cards", deckHandler.AddCardHandler).Methods("POST")
	deckRoutes.HandleFunc("/{id}/cards/{cardId}/rate", deckHandler.RateCardHandler).Methods("PATCH")
	deckRoutes.HandleFunc("/{id}/cards/{cardId}", deckHandler.DeleteCardHandler).Methods("DELETE")

	// Planner routes
	eventRoutes := router.PathPrefix("/events").Subrouter()
	eventRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	eventRoutes.HandleFunc("", eventHandler.CreateEventHandler).Methods("POST")
	eventRoutes.HandleFunc("", eventHandler.GetEventsHandler).Methods("GET")
	eventRoutes.HandleFunc("/{id}/toggle", eventHandler.ToggleEventHandler).Methods("PATCH")
	eventRoutes.HandleFunc("/{id}", eventHandler.DeleteEventHandler).Methods("DELETE")

	// Dashboard routes
	dashboardRoutes := router.PathPrefix("/dashboard").Subrouter()
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	dashboardRoutes.HandleFunc("", dashboardHandler.GetDashboardHandler).Methods("GET")
	dashboardRoutes.HandleFunc("/heatmap", dashboardHandler.GetHeatmapHandler).Methods("GET")

	// Daily deadline risk scan
	riskScanner := jobs.NewRiskScanner(goalService, courseService)
	scheduler.StartRiskCronJobs(riskScanner)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	logger.Log.Infof("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), corsHandler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
