package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"courseplatform/config"
	"courseplatform/internal/app"
	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/cache"
	"courseplatform/internal/infrastructure/repository"
	"courseplatform/internal/infrastructure/security"
	"courseplatform/internal/middleware"
	handlers "courseplatform/internal/transport/http"
	"courseplatform/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	logger := app.NewLogger(cfg.Env)
	defer logger.Sync()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError — чтобы ловить нарушение уникальности как gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	// Миграции
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Balance{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.Group{},
		&domain.GroupMember{},
		&domain.Enrollment{},
		&domain.Subscription{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	seed(db, logger)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	userRepo := repository.NewUserRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)
	tokenCache := cache.NewTokenCache(rdb)

	authUC := usecase.NewAuthUseCase(userRepo, hasher, tokenManager, tokenCache, cfg.StartingBalance, logger)
	ledgerUC := usecase.NewLedgerUseCase(balanceRepo, logger)
	catalogUC := usecase.NewCatalogUseCase(courseRepo, userRepo, logger)
	enrollmentUC := usecase.NewEnrollmentUseCase(enrollmentRepo, logger)

	limiter := middleware.NewRateLimiter(rdb)

	router := handlers.NewRouter(
		handlers.NewAuthHandler(authUC),
		handlers.NewCourseHandler(catalogUC),
		handlers.NewPaymentHandler(enrollmentUC, ledgerUC),
		handlers.NewUserHandler(authUC, ledgerUC),
		authUC,
		limiter,
		cfg.AllowedOrigins,
	)

	logger.Info("server started", zap.String("port", cfg.HTTPPort))
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// seed наполняет пустую базу демо-курсами с группами.
func seed(db *gorm.DB, logger *zap.Logger) {
	var count int64
	db.Model(&domain.Course{}).Count(&count)
	if count > 0 {
		return
	}

	repo := repository.NewCourseRepository(db)
	ctx := context.Background()

	golang := &domain.Course{
		Author:      "Иван Петров",
		Title:       "Go для бэкенда",
		StartDate:   time.Now().AddDate(0, 1, 0),
		Price:       1000,
		IsAvailable: true,
	}
	if err := repo.Create(ctx, golang); err != nil {
		logger.Warn("seed failed", zap.Error(err))
		return
	}
	_ = repo.CreateLesson(ctx, &domain.Lesson{
		CourseID: golang.ID,
		Title:    "Вводный урок",
		Link:     "https://example.com/go/intro",
	})
	_ = repo.CreateGroup(ctx, &domain.Group{CourseID: golang.ID, GroupNumber: 1, MaxStudents: 35})
	_ = repo.CreateGroup(ctx, &domain.Group{CourseID: golang.ID, GroupNumber: 2, MaxStudents: 35})

	design := &domain.Course{
		Author:      "Анна Сидорова",
		Title:       "UX/UI Дизайн с нуля",
		StartDate:   time.Now().AddDate(0, 2, 0),
		Price:       1500,
		IsAvailable: true,
	}
	if err := repo.Create(ctx, design); err != nil {
		logger.Warn("seed failed", zap.Error(err))
		return
	}
	_ = repo.CreateGroup(ctx, &domain.Group{CourseID: design.ID, GroupNumber: 3, MaxStudents: 35})

	logger.Info("db seeded with default courses")
}
