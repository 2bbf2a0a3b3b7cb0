// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	appctx "ricemill/internal/core/context"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
	"ricemill/internal/core/security"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
	"ricemill/internal/domain/auth"
	"ricemill/internal/domain/entries"
	"ricemill/internal/domain/entries/daily_milling"
	"ricemill/internal/domain/entries/daily_production"
	"ricemill/internal/domain/entries/rice_inward"
	"ricemill/internal/domain/entries/rice_purchase"
	"ricemill/internal/domain/registers/stock"
	"ricemill/internal/infrastructure/storage/postgres"
	"ricemill/internal/infrastructure/storage/postgres/auth_repo"
	"ricemill/internal/infrastructure/storage/postgres/entry_repo"
	"ricemill/internal/infrastructure/storage/postgres/register_repo"
	"ricemill/pkg/logger"
	"ricemill/pkg/numerator"
)

const demoMillCode = "demo-mill"

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnw("could not read .env", "error", err)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	users := auth_repo.NewUserRepo(txm)

	adminUserID, err := seedAdminUser(ctx, users, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		registry := mill.NewPostgresRegistry(pool.Unwrap())
		m, err := seedDemoMill(ctx, registry, log)
		if err != nil {
			log.Fatalw("failed to seed demo mill", "error", err)
		}
		if err := seedDemoEntries(ctx, txm, m, adminUserID, log); err != nil {
			log.Fatalw("failed to seed demo entries", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, users *auth_repo.UserRepo, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@ricemill.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	existing, err := users.GetByEmail(ctx, adminEmail)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return id.ID{}, fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.ID{}, fmt.Errorf("hash password: %w", err)
	}

	user := auth.NewUser(adminEmail, string(passwordHash), "System Admin", appctx.RoleAdmin)
	if err := users.Create(ctx, user); err != nil {
		return id.ID{}, fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", user.Email,
		"user_id", user.ID,
	)

	return user.ID, nil
}

func seedDemoMill(ctx context.Context, registry *mill.PostgresRegistry, log *logger.Logger) (*mill.Mill, error) {
	all, err := registry.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, m := range all {
		if m.Code == demoMillCode {
			log.Infow("demo mill already exists", "mill_id", m.ID)
			return m, nil
		}
	}

	m := &mill.Mill{
		Code:    demoMillCode,
		Name:    "Demo Rice Mill",
		Address: "Industrial Area, Plot 12",
	}
	m.Normalize()
	if err := registry.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create demo mill: %w", err)
	}
	log.Infow("demo mill created", "mill_id", m.ID, "code", m.Code)
	return m, nil
}

// seedDemoEntries goes through the entry services so every row gets its
// stock transaction and audit record.
func seedDemoEntries(ctx context.Context, txm *postgres.TxManager, m *mill.Mill, adminUserID id.ID, log *logger.Logger) error {
	auditService, err := postgres.NewAuditService(txm)
	if err != nil {
		return err
	}
	deps := domain.EntryDeps{
		TxManager: txm,
		Stock:     stock.NewService(register_repo.NewStockRepo(txm), txm, stock.SourcesFrom(entries.Descriptors())),
		Numerator: numerator.New(txm, nil),
		Audit:     auditService,
	}
	ctx = security.WithUserID(ctx, adminUserID.String())

	today := types.TruncateDate(time.Now())
	day := func(offset int) entity.BaseEntry {
		return entity.BaseEntry{Date: today.AddDate(0, 0, -offset)}
	}

	purchases := rice_purchase.NewService(entry_repo.NewRicePurchaseRepo(txm), deps)
	inward := rice_inward.NewService(entry_repo.NewRiceInwardRepo(txm), deps)
	milling := daily_milling.NewService(entry_repo.NewDailyMillingRepo(txm), deps)
	production := daily_production.NewService(entry_repo.NewDailyProductionRepo(txm), deps)

	existing, err := inward.List(ctx, m.ID, domain.ListQuery{Limit: 1})
	if err != nil {
		return fmt.Errorf("check existing entries: %w", err)
	}
	if existing.Total > 0 {
		log.Infow("demo entries already present, skipping", "mill_id", m.ID)
		return nil
	}

	deal, err := purchases.Create(ctx, m.ID, &rice_purchase.RicePurchase{
		BaseEntry:  day(5),
		PartyName:  "Krishna Traders",
		BrokerName: "Ramesh",
		RiceType:   "Sona Masoori",
		LotType:    "A",
		RiceQty:    types.NewMeasure(250),
		Rate:       types.NewMeasure(3200),
		Brokerage:  types.NewMeasure(500),
	})
	if err != nil {
		return fmt.Errorf("seed rice purchase: %w", err)
	}

	for i, truck := range []string{"AP09AB1234", "AP09CD5678", "TS07EF9012"} {
		_, err := inward.Create(ctx, m.ID, &rice_inward.RiceInward{
			BaseEntry:   day(4 - i),
			RSTNumber:   fmt.Sprintf("RST-%03d", i+1),
			TruckNumber: truck,
			PartyName:   deal.PartyName,
			BrokerName:  deal.BrokerName,
			DealNumber:  deal.DealNumber,
			RiceType:    deal.RiceType,
			GunnyNew:    120,
			GunnyOld:    40,
			GrossWeight: types.NewMeasure(18.5),
			TareWeight:  types.NewMeasure(6.2),
		})
		if err != nil {
			return fmt.Errorf("seed rice inward: %w", err)
		}
	}

	if _, err := milling.Create(ctx, m.ID, &daily_milling.DailyMilling{
		BaseEntry:    day(1),
		PaddyType:    "Sona Masoori",
		PaddyQty:     types.NewMeasure(30),
		RiceQty:      types.NewMeasure(20),
		BrokenQty:    types.NewMeasure(2),
		BranQty:      types.NewMeasure(2.5),
		HuskQty:      types.NewMeasure(5.5),
		MillingHours: types.NewMeasure(9),
	}); err != nil {
		return fmt.Errorf("seed daily milling: %w", err)
	}

	if _, err := production.Create(ctx, m.ID, &daily_production.DailyProduction{
		BaseEntry:   day(0),
		ProductType: "RICE",
		Quantity:    types.NewMeasure(20),
		Bags:        80,
		Warehouse:   "Godown 1",
	}); err != nil {
		return fmt.Errorf("seed daily production: %w", err)
	}

	log.Infow("demo entries created", "mill_id", m.ID, "deal_number", deal.DealNumber)
	return nil
}
