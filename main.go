package main

import (
	"plato/config"
	assessmentController "plato/controllers/assessment"
	"plato/database"
	assessmentRoutes "plato/routers/assessmentRoutes"
	authRoutes "plato/routers/authRoutes"
	checkinRoutes "plato/routers/checkinRoutes"
	questionRoutes "plato/routers/questionRoutes"
	userRoutes "plato/routers/userRoutes"
	"plato/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	assessmentRoutes.SetupAssessmentRoutes(app)
	checkinRoutes.SetupCheckinRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeAssessmentScheduler(assessmentController.Service())

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
