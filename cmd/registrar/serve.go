package main

import (
	"context"
	"net/http"

	_ "time/tzdata" // Load timezone data

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/campuskit/registrar-service/internal/app"
	"github.com/campuskit/registrar-service/internal/config"
	"github.com/campuskit/registrar-service/internal/controllers"
	"github.com/campuskit/registrar-service/internal/middleware"
	"github.com/campuskit/registrar-service/internal/repositories"
	"github.com/campuskit/registrar-service/internal/routes"
	"github.com/campuskit/registrar-service/internal/services"
	"github.com/campuskit/registrar-service/internal/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func runServe() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	deptRepo := repositories.NewDepartmentRepository(application.DB)
	instrRepo := repositories.NewInstructorRepository(application.DB)
	studentRepo := repositories.NewStudentRepository(application.DB)
	courseRepo := repositories.NewCourseRepository(application.DB)
	enrollRepo := repositories.NewEnrollmentRepository(application.DB)

	// Conditionally seed the demo campus.
	if cfg.SeedDemoData {
		if err := app.SeedDemoData(deptRepo, instrRepo, studentRepo, courseRepo, enrollRepo); err != nil {
			utils.Logger.Fatal("Failed to seed demo data:", err)
		}
	}

	// Services
	deptService := services.NewDepartmentService(deptRepo, instrRepo, courseRepo)
	studentService := services.NewStudentService(studentRepo, enrollRepo)
	courseService := services.NewCourseService(courseRepo, deptRepo, enrollRepo)
	instrService := services.NewInstructorService(instrRepo, deptRepo)
	enrollService := services.NewEnrollmentService(enrollRepo, studentRepo, courseRepo)
	statsService := services.NewStatsService(studentRepo)

	// Controllers
	healthController := controllers.NewHealthController(application)
	deptController := controllers.NewDepartmentController(deptService)
	studentController := controllers.NewStudentController(studentService)
	courseController := controllers.NewCourseController(courseService)
	instrController := controllers.NewInstructorController(instrService)
	enrollController := controllers.NewEnrollmentController(enrollService)
	statsController := controllers.NewStatsController(statsService)

	// Router
	router := mux.NewRouter()
	router.Use(middleware.Metrics)

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc(routes.Students, studentController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Students, studentController.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.StudentByID, studentController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.StudentByID, studentController.UpdateHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.StudentByID, studentController.DeleteHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Courses, courseController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Courses, courseController.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.CourseByID, courseController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.CourseByID, courseController.UpdateHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.CourseByID, courseController.DeleteHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Instructors, instrController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Instructors, instrController.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.InstructorByID, instrController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.InstructorByID, instrController.UpdateHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.InstructorByID, instrController.DeleteHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Departments, deptController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Departments, deptController.CreateHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.DepartmentByID, deptController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DepartmentByID, deptController.UpdateHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.DepartmentByID, deptController.DeleteHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Enrollments, enrollController.EnrollHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.EnrollmentGrade, enrollController.SetGradeHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.EnrollmentByID, enrollController.WithdrawHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.EnrollmentStats, statsController.EnrollmentStatsHandler).Methods(http.MethodGet)

	// Hourly enrollment stats to the log.
	c := cron.New()
	_, schErr := c.AddFunc("0 * * * *", func() {
		statsService.LogEnrollmentStats(context.Background())
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule enrollment stats job")
	}
	c.Start()
	defer c.Stop()

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, corsHandler.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
