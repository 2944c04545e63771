package routes

import (
	"learning_portal/backend/config"
	"learning_portal/backend/controllers"
	"learning_portal/backend/middleware"
	"learning_portal/backend/payment"
	"learning_portal/backend/repository"
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes wires stores, services and controllers onto app. A nil
// gateway leaves paid checkout disabled.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, gateway payment.Gateway, log *zap.Logger) {
	// Stores
	catalogRepo := repository.NewCatalogRepository(db, cfg.StoreTimeout)
	userRepo := repository.NewUserRepository(db, cfg.StoreTimeout)
	enrollmentRepo := repository.NewEnrollmentRepository(db, cfg.StoreTimeout)
	progressRepo := repository.NewProgressRepository(db, cfg.StoreTimeout)
	orderRepo := repository.NewOrderRepository(db, cfg.StoreTimeout)
	testimonialRepo := repository.NewTestimonialRepository(db, cfg.StoreTimeout)

	// Services
	progressService := services.NewProgressService(catalogRepo, progressRepo, log)
	quizService := services.NewQuizService(catalogRepo, progressService, log)
	enrollmentService := services.NewEnrollmentService(catalogRepo, userRepo, enrollmentRepo, log)
	catalogService := services.NewCatalogService(catalogRepo, progressService, log)
	userService := services.NewUserService(userRepo, cfg, log)
	paymentService := services.NewPaymentService(catalogRepo, userRepo, orderRepo, enrollmentService,
		gateway, cfg.MidtransServerKey, log)

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return utils.RespondError(c, log, utils.NewError(utils.KindTransient, "database unavailable", err))
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg, log)
	adminMiddleware := middleware.AdminMiddleware(userRepo, log)

	// Auth routes
	authController := controllers.NewAuthController(userService, log)
	app.Post("/auth/register", authController.Register)
	app.Post("/auth/login", authController.Login)

	// User routes
	userController := controllers.NewUserController(userService, enrollmentService, log)
	app.Get("/user/profile", authMiddleware, userController.GetProfile)
	app.Get("/users/:id/courses", authMiddleware, userController.GetUserCourses)

	// Progress routes
	progressController := controllers.NewProgressController(progressService, log)
	app.Get("/progress", progressController.GetProgress)
	app.Post("/progress/complete-lesson", authMiddleware, progressController.CompleteLesson)

	// Enrollment routes
	enrollmentController := controllers.NewEnrollmentController(enrollmentService, log)
	app.Post("/enroll", authMiddleware, enrollmentController.Enroll)

	// Catalog routes
	coursesController := controllers.NewCoursesController(catalogService, log)
	app.Get("/courses", coursesController.GetCourses)
	app.Get("/courses/:id", coursesController.GetCourse)

	lessonsController := controllers.NewLessonsController(catalogService, log)
	app.Get("/lessons", lessonsController.GetLessons)
	app.Get("/lessons/:id", lessonsController.GetLesson)

	quizzesController := controllers.NewQuizzesController(catalogService, quizService, log)
	app.Get("/quizzes", quizzesController.GetQuizzes)
	app.Post("/quizzes/submit", authMiddleware, quizzesController.SubmitQuiz)
	app.Get("/quizzes/:id", quizzesController.GetQuiz)

	testimonialsController := controllers.NewTestimonialsController(testimonialRepo, log)
	app.Get("/testimonials", testimonialsController.GetTestimonials)
	app.Post("/testimonials", testimonialsController.CreateTestimonial)

	// Payment routes
	paymentController := controllers.NewPaymentController(paymentService, log)
	app.Post("/payments/checkout", authMiddleware, paymentController.Checkout)
	app.Post("/payments/webhook", paymentController.Webhook)

	// Admin routes
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)

	admin.Post("/courses", coursesController.CreateCourse)
	admin.Put("/courses/:id", coursesController.UpdateCourse)
	admin.Delete("/courses/:id", coursesController.DeleteCourse)

	admin.Post("/lessons", lessonsController.CreateLesson)
	admin.Put("/lessons/:id", lessonsController.UpdateLesson)
	admin.Delete("/lessons/:id", lessonsController.DeleteLesson)

	admin.Get("/quizzes/:id", quizzesController.GetQuizAdmin)
	admin.Post("/quizzes", quizzesController.CreateQuiz)
	admin.Put("/quizzes/:id", quizzesController.UpdateQuiz)
	admin.Delete("/quizzes/:id", quizzesController.DeleteQuiz)

	admin.Get("/users", userController.ListUsers)
	admin.Get("/users/:id", userController.GetUser)
	admin.Post("/users", userController.CreateUser)
	admin.Delete("/users/:id", userController.DeleteUser)
}
