package app

import (
	"database/sql"
	"path/filepath"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/approval"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/audit"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/directory"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/leave"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/messaging/kafka"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/rbac"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/rbac/infra"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	leaveRepo := leave.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("internal", "rbac", "infra", "model.conf"),
		filepath.Join("internal", "rbac", "infra", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Review Scope ---
	scope := approval.NewScope(directory.NewResolver(gormDB))

	// --- Services ---
	leaveService := leave.NewService(db, leaveRepo, ledgerRepo, auditRepo, outboxRepo, scope)
	timesheetService := timesheet.NewService(db, timesheetRepo, auditRepo, outboxRepo, scope)
	ledgerService := ledger.NewService(ledgerRepo)
	auditService := audit.NewService(auditRepo)

	// --- Handlers ---
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	timesheetHandler := timesheet.NewHandlerWithRedis(timesheetService, rdb)
	ledgerHandler := ledger.NewHandler(ledgerService)
	auditHandler := audit.NewHandler(auditService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService, rdb)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService)
		audit.RegisterRoutes(api, auditHandler, rbacService)
	}

	return nil
}
