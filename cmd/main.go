package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applyWeeklyScheduleHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/apply_weekly_schedule"
	changeOrderStatusHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/change_order_status"
	createOrderHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/create_order"
	deleteOrderHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/delete_order"
	getAvailableSlotsHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/get_available_slots"
	getDayOrdersHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/get_day_orders"
	getOrderHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/get_order"
	getUserOrdersHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/get_user_orders"
	runDeadlineSweepHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/run_deadline_sweep"
	updateOrderHandler "github.com/v1adych/SWB-OrderService/internal/api/handlers/update_order"
	"github.com/v1adych/SWB-OrderService/internal/api/middleware"
	"github.com/v1adych/SWB-OrderService/internal/config"
	orderRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/order"
	timeslotRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/timeslot"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
	ingredientServiceClient "github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
	userServiceClient "github.com/v1adych/SWB-OrderService/internal/integrations/userservice"
	ordersService "github.com/v1adych/SWB-OrderService/internal/service/orders"
	applyWeeklyScheduleUC "github.com/v1adych/SWB-OrderService/internal/usecase/apply_weekly_schedule"
	createOrderUC "github.com/v1adych/SWB-OrderService/internal/usecase/create_order"
	getAvailableSlotsUC "github.com/v1adych/SWB-OrderService/internal/usecase/get_available_slots"
	runDeadlineSweepUC "github.com/v1adych/SWB-OrderService/internal/usecase/run_deadline_sweep"
	updateOrderUC "github.com/v1adych/SWB-OrderService/internal/usecase/update_order"
	deadlinesweepWorker "github.com/v1adych/SWB-OrderService/internal/worker/deadlinesweep"
	"github.com/v1adych/SWB-OrderService/pkg/dbmetrics"
	"github.com/v1adych/SWB-OrderService/pkg/logger"
	"github.com/v1adych/SWB-OrderService/pkg/metrics"
	"github.com/v1adych/SWB-OrderService/pkg/simpletxmanager"
	"github.com/v1adych/SWB-OrderService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SWB-OrderService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс точки выдачи: все дедлайны и слоты считаются в нем
	location, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Schedule.Timezone, err)
	}
	log.Info("Schedule timezone: %s, slot duration: %d minutes",
		cfg.Schedule.Timezone, cfg.Schedule.SlotDurationMinutes)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	ingredientClient := ingredientServiceClient.NewClient(
		cfg.IngredientService.URL,
		time.Duration(cfg.IngredientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, IngredientService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.IngredientService.URL, cfg.IngredientService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		orderRepository      *orderRepo.Repository
		timeSlotRepository   *timeslotRepo.Repository
		workingDayRepository *workingdayRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		orderRepository = orderRepo.NewRepository(wrappedDB)
		timeSlotRepository = timeslotRepo.NewRepository(wrappedDB)
		workingDayRepository = workingdayRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		orderRepository = orderRepo.NewRepository(db)
		timeSlotRepository = timeslotRepo.NewRepository(db)
		workingDayRepository = workingdayRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &ordersService.RealTimeProvider{}

	// Инициализируем сервисы
	orderSvc := ordersService.NewService(
		orderRepository,
		timeSlotRepository,
		workingDayRepository,
		userClient,
		txMgr,
		timeProvider,
		location,
		log,
	)

	// Инициализируем use cases
	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		timeSlotRepository,
		workingDayRepository,
		ingredientClient,
		txMgr,
		log,
	)

	updateOrderUseCase := updateOrderUC.NewUseCase(
		orderRepository,
		timeSlotRepository,
		workingDayRepository,
		ingredientClient,
		txMgr,
		timeProvider,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		workingDayRepository,
		timeSlotRepository,
		orderRepository,
		txMgr,
		log,
	)

	applyWeeklyScheduleUseCase := applyWeeklyScheduleUC.NewUseCase(
		workingDayRepository,
		timeSlotRepository,
		orderRepository,
		txMgr,
		timeProvider,
		cfg.Schedule.SlotDurationMinutes,
		location,
		log,
	)

	runDeadlineSweepUseCase := runDeadlineSweepUC.NewUseCase(
		orderRepository,
		timeProvider,
		location,
		log,
	)

	// Инициализируем handlers
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	updateOrder := updateOrderHandler.NewHandler(updateOrderUseCase, log)
	deleteOrder := deleteOrderHandler.NewHandler(orderSvc, log)
	changeOrderStatus := changeOrderStatusHandler.NewHandler(orderSvc, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(orderSvc, log)
	getDayOrders := getDayOrdersHandler.NewHandler(orderSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	applyWeeklySchedule := applyWeeklyScheduleHandler.NewHandler(applyWeeklyScheduleUseCase, userClient, log)
	runDeadlineSweep := runDeadlineSweepHandler.NewHandler(runDeadlineSweepUseCase, userClient, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты рабочего дня с остатком вместимости
	api.HandleFunc("/days/{date}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заказы ---
	// Создание заказа
	protected.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)

	// Получение заказа по ID
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)

	// Изменение состава заказа (до дедлайна)
	protected.HandleFunc("/orders/{orderId}", updateOrder.Handle).Methods(http.MethodPut)

	// Удаление заказа (до дедлайна)
	protected.HandleFunc("/orders/{orderId}", deleteOrder.Handle).Methods(http.MethodDelete)

	// Смена статуса заказа (для операторов)
	protected.HandleFunc("/orders/{orderId}/status", changeOrderStatus.Handle).Methods(http.MethodPatch)

	// История заказов пользователя
	protected.HandleFunc("/users/{userId}/orders", getUserOrders.Handle).Methods(http.MethodGet)

	// --- Управление днем (для операторов) ---
	// Все заказы рабочего дня по дневным номерам
	protected.HandleFunc("/days/{date}/orders", getDayOrders.Handle).Methods(http.MethodGet)

	// Применение недельного шаблона расписания
	protected.HandleFunc("/schedule/weekly", applyWeeklySchedule.Handle).Methods(http.MethodPost)

	// Ручной запуск прохода автоподтверждения
	protected.HandleFunc("/schedule/deadline-sweep", runDeadlineSweep.Handle).Methods(http.MethodPost)

	// Запускаем фоновый воркер автоподтверждения
	workerCtx, stopWorker := context.WithCancel(context.Background())
	sweepWorker := deadlinesweepWorker.NewWorker(
		runDeadlineSweepUseCase,
		time.Duration(cfg.Schedule.SweepIntervalSeconds)*time.Second,
		log,
	)
	go sweepWorker.Run(workerCtx)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновый воркер
	stopWorker()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
