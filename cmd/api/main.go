package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/config"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	appHTTP "github.com/cmlabs-hris/kintai-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/kintai-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/kintai-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/kintai-backend-go/internal/service/employee"
	requestService "github.com/cmlabs-hris/kintai-backend-go/internal/service/request"
)

type repositories struct {
	tx          database.Transactor
	employees   employee.EmployeeRepository
	records     attendance.AttendanceRepository
	submissions attendance.SubmissionRepository
	leaves      request.LeaveRequestRepository
	adjustments request.AdjustmentRequestRepository
	close       func()
}

func openRepositories(ctx context.Context, cfg *config.Config, loc *time.Location) (repositories, error) {
	switch cfg.App.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		return repositories{
			tx:          store,
			employees:   memory.NewEmployeeRepository(store),
			records:     memory.NewAttendanceRepository(store),
			submissions: memory.NewSubmissionRepository(store),
			leaves:      memory.NewLeaveRequestRepository(store),
			adjustments: memory.NewAdjustmentRequestRepository(store),
			close:       func() {},
		}, nil
	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgresql.ApplySchema(ctx, db); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("failed to apply schema: %w", err)
		}
		return repositories{
			tx:          postgresql.NewTransactor(db),
			employees:   postgresql.NewEmployeeRepository(db),
			records:     postgresql.NewAttendanceRepository(db, loc),
			submissions: postgresql.NewSubmissionRepository(db),
			leaves:      postgresql.NewLeaveRequestRepository(db, loc),
			adjustments: postgresql.NewAdjustmentRequestRepository(db, loc),
			close:       db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.App.Storage)
	}
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	shift, err := cfg.Schedule()
	if err != nil {
		return err
	}
	clock := timeutil.NewSystemClock(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, loc)
	if err != nil {
		return err
	}
	defer repos.close()

	leavePolicy := employeeService.LeavePolicy{
		InitialDays: cfg.Business.LeaveDaysInitial,
		CapDays:     cfg.Business.LeaveDaysCap,
	}
	if cfg.Admin.Code != "" {
		if _, err := employeeService.EnsureAdmin(ctx, repos.employees, clock, leavePolicy, cfg.Admin.Code, cfg.Admin.Name, cfg.Admin.Password); err != nil {
			return err
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(repos.employees, JWTService, clock)
	employeeSvc := employeeService.NewEmployeeService(repos.tx, repos.employees, clock, leavePolicy)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.records,
		repos.submissions,
		repos.employees,
		clock,
		shift,
	)
	requestSvc := requestService.NewRequestService(
		repos.tx,
		repos.leaves,
		repos.adjustments,
		repos.records,
		repos.submissions,
		repos.employees,
		clock,
		shift,
	)

	hub := sse.NewHub()
	notifyingRequestSvc := requestService.NewNotifyingRequestService(requestSvc, hub)

	authHandler := appHTTP.NewAuthHandler(authService, employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	requestHandler := appHTTP.NewRequestHandler(notifyingRequestSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub)

	router := appHTTP.NewRouter(
		JWTService,
		authService,
		appHTTP.RouterOptions{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
			LogLevel:    cfg.SlogLevel(),
			LogOutput:   os.Stdout,
		},
		authHandler,
		attendanceHandler,
		requestHandler,
		employeeHandler,
		eventsHandler,
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewAttendanceJobs(attendanceSvc, clock).RegisterJobs(scheduler, cfg.Business.AbsenceSweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.App.Storage, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
