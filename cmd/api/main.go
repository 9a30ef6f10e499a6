package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pointage-hq/pointage-backend-go/internal/config"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
	appHTTP "github.com/pointage-hq/pointage-backend-go/internal/handler/http"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/cron"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/database"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/email"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/jwt"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/keylock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/sse"
	"github.com/pointage-hq/pointage-backend-go/internal/repository/jsonfile"
	"github.com/pointage-hq/pointage-backend-go/internal/repository/postgresql"
	authService "github.com/pointage-hq/pointage-backend-go/internal/service/auth"
	employeeService "github.com/pointage-hq/pointage-backend-go/internal/service/employee"
	payrollService "github.com/pointage-hq/pointage-backend-go/internal/service/payroll"
	punchService "github.com/pointage-hq/pointage-backend-go/internal/service/punch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	clk, err := clock.New(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone: ", err)
	}

	var employeeRepo employee.EmployeeRepository
	switch cfg.Store.Type {
	case config.StoreTypeJSON:
		store, err := jsonfile.NewEmployeeStore(cfg.Store.DataFile)
		if err != nil {
			log.Fatal("Failed to open data file: ", err)
		}
		employeeRepo = store
	case config.StoreTypePostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		repo := postgresql.NewEmployeeRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to prepare database schema: ", err)
		}
		employeeRepo = repo
	default:
		log.Fatal("Unsupported store type: ", cfg.Store.Type)
	}

	hub := sse.NewHub()
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	authSvc := authService.NewAuthService(cfg.Admin, jwtSvc)
	ledgerLocks := keylock.New()
	punchSvc := punchService.NewPunchService(employeeRepo, clk, hub, emailSvc, cfg.Punch.ToleranceMinutes, ledgerLocks)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, clk, hub, ledgerLocks)
	payrollSvc := payrollService.NewPayrollService(employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewPunchJobs(punchSvc, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtSvc,
		cfg.App.Env,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewPunchHandler(punchSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewEventsHandler(hub),
		appHTTP.NewTimeHandler(clk),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
