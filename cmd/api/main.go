package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/config"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/db"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/logging"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/repositories"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/categories"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/mailer"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/matching"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/notification"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/otp"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/profile"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/projects"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/ranking"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/search"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/users"
)

func main() {
	_ = godotenv.Load()
	logging.Init()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		fatal("could not connect to database", err)
	}
	if err := db.Migrate(gdb); err != nil {
		fatal("could not migrate database", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(ctx).Err(); err != nil {
		fatal("could not reach redis", err)
	}

	hub := realtime.NewHub()
	go hub.Run()
	go realtime.Relay(ctx, rdb, hub)

	// repositories
	userRepo := repositories.NewUserRepository(gdb)
	projectRepo := repositories.NewProjectRepository(gdb)
	hireRepo := repositories.NewHireRepository(gdb)
	applicationRepo := repositories.NewApplicationRepository(gdb)
	categoryRepo := repositories.NewCategoryRepository(gdb)
	notificationRepo := repositories.NewNotificationRepository(gdb)

	// services
	otpTTL := time.Duration(cfg.OTPTTLMin) * time.Minute
	notifySvc := notification.NewService(notificationRepo, realtime.Publisher{RDB: rdb})
	profileSvc := profile.NewService(userRepo)
	userSvc := users.NewService(
		userRepo,
		otp.NewStore(rdb, otpTTL, cfg.OTPRateLimit, time.Hour),
		mailer.New(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     strconv.Itoa(cfg.SMTPPort),
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}),
		profileSvc,
		notifySvc,
		users.Config{JWTSecret: cfg.JWTSecret, JWTExpiresMin: cfg.JWTExpiresMin, OTPTTL: otpTTL},
	)
	projectSvc := projects.NewService(projectRepo, applicationRepo, hireRepo, userRepo, notifySvc)
	matchingSvc := matching.NewService(projectRepo, userRepo)

	// handlers
	authH := &handlers.AuthHandler{
		Users:   userSvc,
		Expires: cfg.JWTExpiresMin,
		Secure:  strings.HasPrefix(cfg.FrontendBaseURL, "https://"),
	}
	googleH := &handlers.GoogleOAuthHandler{
		Auth:            authH,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	userH := &handlers.UserHandler{
		Users:         userSvc,
		Profiles:      profileSvc,
		Matching:      matchingSvc,
		Notifications: notifySvc,
	}
	projectH := &handlers.ProjectHandler{Projects: projectSvc, Matching: matchingSvc}
	applicationH := &handlers.ApplicationHandler{Ranking: ranking.NewService(applicationRepo)}
	searchH := &handlers.SearchHandler{Searcher: search.NewService(categoryRepo, projectRepo)}
	categoryH := handlers.NewCategoryHandler(categories.NewService(categoryRepo))
	socketH := &handlers.SocketHandler{Hub: hub}

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(append(cfg.Origins(), cfg.SocketOrigin), ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	auth := []fiber.Handler{middleware.JWTFromCookie(cfg.JWTSecret), middleware.AttachJWTLocals()}
	limiter := middleware.NewRedisLimiter(rdb)
	authLimit := middleware.RateLimit(limiter, "auth", cfg.AuthRateLimit, time.Minute)

	api := app.Group("/api/v1", middleware.RequestTimeout(15*time.Second))

	u := api.Group("/users")
	u.Post("/registerUser", authLimit, authH.Register)
	u.Post("/loginUser", authLimit, authH.Login)
	u.Post("/logout", authH.Logout)
	u.Post("/verifyUser", authLimit, authH.Verify)
	u.Post("/resendOTP", authLimit, authH.ResendOTP)
	u.Post("/forgotPassword", authLimit, authH.ForgotPassword)
	u.Post("/resetPassword", authLimit, authH.ResetPassword)
	u.Get("/auth/google/start", googleH.GoogleStart)
	u.Get("/auth/google/callback", googleH.GoogleCallback)
	u.Post("/getAllUsers", userH.GetAllUsers)
	u.Post("/getUserByEmail", userH.GetUserByEmail)
	u.Post("/getUserById", userH.GetUserByID)
	u.Post("/getUserReviews", userH.GetUserReviews)
	u.Post("/getCompaniesInFeed", userH.GetCompaniesInFeed)
	u.Post("/profileCompletion", userH.ProfileCompletion)
	u.Put("/updateUser", append(auth, userH.UpdateUser)...)
	u.Post("/setReview", append(auth, userH.SetReview)...)
	u.Post("/setContacted", append(auth, userH.SetContacted)...)
	u.Post("/readNotification", append(auth, userH.ReadNotification)...)
	u.Get("/notifications", append(auth, userH.UnreadNotifications)...)

	p := api.Group("/projects")
	p.Post("/getAllProjects", projectH.GetAllProjects)
	p.Get("/getProjectById/:projectId", projectH.GetProjectByID)
	p.Get("/getValidProjectsForHire", projectH.GetValidProjectsForHire)
	p.Get("/matches/:projectId", projectH.GetMatches)
	p.Post("/createProject", append(auth, middleware.RequireRoles("client", "company"), projectH.CreateProject)...)
	p.Put("/editProject", append(auth, projectH.EditProject)...)
	p.Delete("/deleteProject/:projectId", append(auth, projectH.DeleteProject)...)
	p.Post("/applyToProject", append(auth, middleware.RequireRoles("freelancer"), projectH.ApplyToProject)...)

	hire := api.Group("/hire", auth...)
	hire.Post("/sendHireRequest", projectH.SendHireRequest)
	hire.Post("/respondHireRequest", middleware.RequireRoles("freelancer"), projectH.RespondHireRequest)

	api.Post("/application/getApplicationsByProjectId", applicationH.GetApplicationsByProjectID)
	api.Post("/search", searchH.Search)

	cat := api.Group("/category")
	cat.Get("/getCategories", categoryH.GetCategories)
	cat.Post("/createCategory", append(auth, categoryH.CreateCategory)...)
	cat.Put("/:categoryId/parent", append(auth, categoryH.MoveCategory)...)

	app.Get("/ws", append(auth, socketH.Upgrade, socketH.Serve())...)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	slog.Info("listening", "port", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		fatal("server stopped", err)
	}
}

// errorHandler renders errors that escape handlers, mostly fiber's own
// 401/403/404, in the usual envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code == fiber.StatusInternalServerError {
		return c.Status(code).JSON(response.FromError(err))
	}
	return c.Status(code).JSON(response.New(code, fe.Message, nil))
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
