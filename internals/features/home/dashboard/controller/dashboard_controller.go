package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerDTO "feekhata_backend/internals/features/finance/ledger/dto"
	ledgerModel "feekhata_backend/internals/features/finance/ledger/model"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	activityService "feekhata_backend/internals/features/home/activity/service"
	helper "feekhata_backend/internals/helpers"
)

type DashboardController struct {
	DB       *gorm.DB
	Ensurer  *ledgerService.Ensurer
	Store    ledgerService.LedgerStore
	Activity *activityService.GormRecorder
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	store := ledgerService.NewGormLedgerStore(db)
	return &DashboardController{
		DB:       db,
		Ensurer:  ledgerService.NewEnsurer(store, ledgerService.NewGormStudentFeeSource(db)),
		Store:    store,
		Activity: activityService.NewGormRecorder(db),
	}
}

// GET /api/a/dashboard
//
// One call feeds the home screen: current-month collection stats plus
// the latest activity. Ledger coverage is ensured first so a fresh
// month never shows an empty board.
func (ctrl *DashboardController) Summary(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	ctx := c.UserContext()
	if err := ctrl.Ensurer.EnsureCurrentMonth(ctx, instituteID, nil); err != nil {
		log.Printf("[ERROR] ensure month for dashboard failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to prepare ledger")
	}

	month := ledgerService.CurrentMonth()
	entries, err := ctrl.Store.ListForMonth(ctx, instituteID, month)
	if err != nil {
		log.Printf("[ERROR] list month for dashboard failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch ledger")
	}

	var totalStudents int64
	if err := ctrl.DB.WithContext(ctx).
		Table("students").
		Where("student_institute_id = ? AND student_deleted_at IS NULL", instituteID).
		Count(&totalStudents).Error; err != nil {
		log.Printf("[ERROR] count students failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	paid, pending := 0, 0
	var collected, outstanding float64
	for _, e := range entries {
		collected += e.FeeLedgerAmountPaid
		outstanding += e.Outstanding()
		if e.FeeLedgerStatus == ledgerModel.LedgerPaid {
			paid++
		} else {
			pending++
		}
	}

	activity, err := ctrl.Activity.ListRecent(ctx, instituteID, 10)
	if err != nil {
		log.Printf("[ERROR] recent activity for dashboard failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch activity")
	}

	return helper.Success(c, "Dashboard fetched", fiber.Map{
		"month":              month.String(),
		"total_students":     totalStudents,
		"paid_count":         paid,
		"pending_count":      pending,
		"collected_amount":   collected,
		"outstanding_amount": outstanding,
		"ledger":             ledgerDTO.FromModels(entries),
		"recent_activity":    activity,
	})
}
