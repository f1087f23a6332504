package main

import (
	"github.com/spf13/cobra"

	"github.com/campuskit/registrar-service/internal/app"
	"github.com/campuskit/registrar-service/internal/config"
	"github.com/campuskit/registrar-service/internal/repositories"
	"github.com/campuskit/registrar-service/internal/utils"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the demo campus and exit",
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

func runSeed() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	deptRepo := repositories.NewDepartmentRepository(application.DB)
	instrRepo := repositories.NewInstructorRepository(application.DB)
	studentRepo := repositories.NewStudentRepository(application.DB)
	courseRepo := repositories.NewCourseRepository(application.DB)
	enrollRepo := repositories.NewEnrollmentRepository(application.DB)

	if err := app.SeedDemoData(deptRepo, instrRepo, studentRepo, courseRepo, enrollRepo); err != nil {
		utils.Logger.Fatal("Failed to seed demo data:", err)
	}
}
