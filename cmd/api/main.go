package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "agrifin-backend/internal/adapter/http"
	"agrifin-backend/internal/adapter/middleware"
	"agrifin-backend/internal/adapter/repository/mysql"
	"agrifin-backend/internal/config"
	appDomain "agrifin-backend/internal/domain/application"
	loanDomain "agrifin-backend/internal/domain/loan"
	"agrifin-backend/internal/infrastructure/cache"
	"agrifin-backend/internal/infrastructure/db"
	"agrifin-backend/internal/ml"
	ucApplication "agrifin-backend/internal/usecase/application"
	ucPortfolio "agrifin-backend/internal/usecase/portfolio"
	ucScoring "agrifin-backend/internal/usecase/scoring"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&appDomain.LoanApplication{}, &appDomain.StatusUpdate{}, &appDomain.Document{},
		&loanDomain.Loan{}, &loanDomain.Repayment{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	appRepo := mysql.NewApplicationRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	guow := mysql.NewGormUoW(gdb)
	engine := ml.NewEngine(cfg.ModelsDir)

	appUC := ucApplication.NewUsecase(appRepo, loanRepo, guow, engine)
	scoringUC := ucScoring.NewUsecase(engine)
	portfolioUC := ucPortfolio.NewUsecase(loanRepo)

	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(appUC)
	reviewH := httpadp.NewReviewHandler(appUC, portfolioUC)
	scoringH := httpadp.NewScoringHandler(scoringUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	mlGroup := e.Group("/ml")
	mlGroup.POST("/eligibility", scoringH.Eligibility)
	mlGroup.POST("/risk", scoringH.Risk)
	mlGroup.POST("/recommend-amount", scoringH.RecommendAmount)

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	farmer := e.Group("/farmer")
	farmer.POST("/applications", appH.Submit, idemp)
	farmer.GET("/applications", appH.ListMine)
	farmer.GET("/applications/:id", appH.GetMine)
	farmer.POST("/applications/:id/documents", appH.UploadDocument, idemp)
	farmer.GET("/loans", appH.ListMyLoans)
	farmer.GET("/repayments", appH.ListMyRepayments)

	mfi := e.Group("/mfi")
	mfi.GET("/applications", reviewH.ListApplications)
	mfi.GET("/applications/:id", reviewH.GetApplication)
	mfi.POST("/applications/:id/status", reviewH.UpdateStatus, idemp)
	mfi.POST("/applications/:id/review", reviewH.Review, idemp)
	mfi.GET("/portfolio", reviewH.Portfolio)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
