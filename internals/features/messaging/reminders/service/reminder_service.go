package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"feekhata_backend/internals/constants"
	ledgerModel "feekhata_backend/internals/features/finance/ledger/model"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	paymentModel "feekhata_backend/internals/features/finance/payments/model"
	paymentService "feekhata_backend/internals/features/finance/payments/service"
	activityService "feekhata_backend/internals/features/home/activity/service"
	instituteModel "feekhata_backend/internals/features/lembaga/institutes/model"
	studentModel "feekhata_backend/internals/features/lembaga/students/model"
	whatsappModel "feekhata_backend/internals/features/messaging/whatsapp/model"
	whatsappService "feekhata_backend/internals/features/messaging/whatsapp/service"
)

var ErrInstituteNotFound = errors.New("institute not found")

// Parallel sends per reminder run; keeps the shim and gateway happy.
const sendConcurrency = 8

type ReminderService struct {
	DB       *gorm.DB
	Ensurer  *ledgerService.Ensurer
	Store    ledgerService.LedgerStore
	Payments paymentService.PendingPaymentStore
	Sender   whatsappService.Sender
	Activity activityService.Recorder
}

func NewReminderService(db *gorm.DB, sender whatsappService.Sender) *ReminderService {
	store := ledgerService.NewGormLedgerStore(db)
	students := ledgerService.NewGormStudentFeeSource(db)
	return &ReminderService{
		DB:       db,
		Ensurer:  ledgerService.NewEnsurer(store, students),
		Store:    store,
		Payments: paymentService.NewGormPaymentStore(db),
		Sender:   sender,
		Activity: activityService.NewGormRecorder(db),
	}
}

type ReminderResult struct {
	StudentID   uuid.UUID `json:"student_id"`
	Success     bool      `json:"success"`
	PaymentLink string    `json:"payment_link,omitempty"`
}

type ReminderRunSummary struct {
	Sent                    int              `json:"sent"`
	Total                   int              `json:"total"`
	TotalExpectedCollection float64          `json:"total_expected_collection"`
	Results                 []ReminderResult `json:"results"`
}

/* ======================= FEE REMINDERS ======================= */

// SendReminders ensures current-month coverage, then messages every
// parent with a non-paid entry, issuing a payment link + pending payment
// per student. teacherID restricts the run to that teacher's students.
func (s *ReminderService) SendReminders(ctx context.Context, instituteID uuid.UUID, teacherID *uuid.UUID) (*ReminderRunSummary, error) {
	institute, err := s.findInstitute(ctx, instituteID)
	if err != nil {
		return nil, err
	}

	students, err := s.loadStudents(ctx, instituteID, teacherID)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	summary := &ReminderRunSummary{Results: []ReminderResult{}}
	if len(students) == 0 {
		return summary, nil
	}

	var onlyIDs []uuid.UUID
	if teacherID != nil {
		for _, st := range students {
			onlyIDs = append(onlyIDs, st.StudentID)
		}
	}
	if err := s.Ensurer.EnsureCurrentMonth(ctx, instituteID, onlyIDs); err != nil {
		return nil, fmt.Errorf("ensure current month: %w", err)
	}

	month := ledgerService.CurrentMonth()
	entries, err := s.Store.ListForMonth(ctx, instituteID, month)
	if err != nil {
		return nil, fmt.Errorf("list ledger month: %w", err)
	}

	studentByID := make(map[uuid.UUID]studentModel.StudentModel, len(students))
	for _, st := range students {
		studentByID[st.StudentID] = st
	}

	var unpaid []ledgerModel.FeeLedgerModel
	for _, e := range entries {
		if e.FeeLedgerStatus == ledgerModel.LedgerPaid {
			continue
		}
		if _, ok := studentByID[e.FeeLedgerStudentID]; !ok {
			continue
		}
		unpaid = append(unpaid, e)
	}
	summary.Total = len(unpaid)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sendConcurrency)

	for _, entry := range unpaid {
		entry := entry
		student := studentByID[entry.FeeLedgerStudentID]

		g.Go(func() error {
			result := s.remindOne(gctx, institute, student, entry, month, teacherID)

			mu.Lock()
			summary.Results = append(summary.Results, result)
			if result.Success {
				summary.Sent++
			}
			summary.TotalExpectedCollection += entry.Outstanding()
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if summary.Sent > 0 && institute.InstitutePhone != "" {
		s.notifyOwner(ctx, institute, summary)
	}

	return summary, nil
}

// remindOne handles a single student: link, pending payment, message,
// logs. Failures are per-student; one dead phone never kills the run.
func (s *ReminderService) remindOne(
	ctx context.Context,
	institute *instituteModel.InstituteModel,
	student studentModel.StudentModel,
	entry ledgerModel.FeeLedgerModel,
	month ledgerService.MonthKey,
	teacherID *uuid.UUID,
) ReminderResult {
	result := ReminderResult{StudentID: student.StudentID}

	amount := entry.Outstanding()
	if amount <= 0 {
		amount = student.StudentMonthlyFee
	}

	paymentLink := "https://pay.razorpay.com/demo"
	if amount > 0 {
		referenceID := fmt.Sprintf("fee-%s-%04d-%02d", student.StudentID, month.Year, int(month.Month))
		link, err := paymentService.CreatePaymentLink(
			amount,
			fmt.Sprintf("Fee for %s - %s", student.StudentName, institute.InstituteName),
			referenceID,
			student.StudentID.String(),
			institute.InstituteID.String(),
		)
		if err != nil {
			log.Printf("[WARN] payment link for student %s failed: %v", student.StudentID, err)
		}
		if link != nil {
			paymentLink = link.ShortURL
			ledgerID := entry.FeeLedgerID
			linkID := link.ID
			linkURL := link.ShortURL
			pending := &paymentModel.PaymentModel{
				PaymentID:          uuid.New(),
				PaymentInstituteID: institute.InstituteID,
				PaymentStudentID:   student.StudentID,
				PaymentTeacherID:   teacherID,
				PaymentAmount:      amount,
				PaymentLinkID:      &linkID,
				PaymentLinkURL:     &linkURL,
				PaymentStatus:      paymentModel.PaymentPending,
				PaymentSource:      paymentModel.PaymentSourceLink,
				PaymentLedgerID:    &ledgerID,
			}
			if err := s.Payments.Create(ctx, pending); err != nil {
				log.Printf("[ERROR] pending payment for student %s failed: %v", student.StudentID, err)
				return result
			}
		}
	}
	result.PaymentLink = paymentLink

	err := s.Sender.Send(ctx, whatsappService.Message{
		InstituteName: institute.InstituteName,
		StudentName:   student.StudentName,
		ParentPhone:   student.StudentParentPhone,
		DueAmount:     amount,
		PaymentLink:   paymentLink,
		MessageType:   string(whatsappModel.WhatsappMessageFee),
	})
	if err != nil {
		log.Printf("[WARN] reminder send to %s failed: %v", student.StudentParentPhone, err)
		return result
	}
	result.Success = true

	sid := student.StudentID
	waLog := whatsappModel.WhatsappLogModel{
		WhatsappLogInstituteID:     institute.InstituteID,
		WhatsappLogTeacherID:       teacherID,
		WhatsappLogStudentID:       &sid,
		WhatsappLogMessageType:     whatsappModel.WhatsappMessageFee,
		WhatsappLogStatus:          "sent",
		WhatsappLogRecipientPhones: []string{student.StudentParentPhone},
	}
	if err := s.DB.WithContext(ctx).Create(&waLog).Error; err != nil {
		log.Printf("[WARN] whatsapp log insert failed: %v", err)
	}
	s.Activity.Record(ctx, institute.InstituteID, constants.ActivityReminderSent, &sid,
		fmt.Sprintf("Reminder sent to %s", student.StudentName))

	return result
}

func (s *ReminderService) notifyOwner(ctx context.Context, institute *instituteModel.InstituteModel, summary *ReminderRunSummary) {
	ownerMessage := fmt.Sprintf(
		"Fee reminders sent to %d parents.\nExpected collection: ₹%d.\nYou will be notified automatically when parents pay.",
		summary.Sent, int64(math.Round(summary.TotalExpectedCollection)))

	err := s.Sender.Send(ctx, whatsappService.Message{
		InstituteName: institute.InstituteName,
		StudentName:   "Owner",
		ParentPhone:   lastTenDigits(institute.InstitutePhone),
		Body:          ownerMessage,
		MessageType:   string(whatsappModel.WhatsappMessageFee),
	})
	if err != nil {
		log.Printf("[WARN] owner summary send failed: %v", err)
	}
}

/* ======================= BROADCAST ======================= */

var broadcastTemplates = map[whatsappModel.WhatsappMessageType]func(institute, student string) string{
	whatsappModel.WhatsappMessageHomework: func(inst, student string) string {
		return fmt.Sprintf("[%s] Homework reminder for %s: Please complete today's homework and bring it tomorrow.", inst, student)
	},
	whatsappModel.WhatsappMessageAbsent: func(inst, student string) string {
		return fmt.Sprintf("[%s] Absence alert: %s was absent today. Please ensure they catch up on the missed lessons.", inst, student)
	},
	whatsappModel.WhatsappMessageTest: func(inst, student string) string {
		return fmt.Sprintf("[%s] Test announcement for %s: A test has been scheduled. Please ensure your child is prepared.", inst, student)
	},
}

var broadcastLabels = map[whatsappModel.WhatsappMessageType]string{
	whatsappModel.WhatsappMessageHomework: "Homework",
	whatsappModel.WhatsappMessageAbsent:   "Absence alert",
	whatsappModel.WhatsappMessageTest:     "Test announcement",
}

// Broadcast sends a templated message to the selected students' parents.
func (s *ReminderService) Broadcast(ctx context.Context, instituteID uuid.UUID, msgType whatsappModel.WhatsappMessageType, studentIDs []uuid.UUID) (int, error) {
	template, ok := broadcastTemplates[msgType]
	if !ok {
		return 0, fmt.Errorf("unknown broadcast type %q", msgType)
	}

	institute, err := s.findInstitute(ctx, instituteID)
	if err != nil {
		return 0, err
	}

	var students []studentModel.StudentModel
	if err := s.DB.WithContext(ctx).
		Where("student_institute_id = ? AND student_id IN ?", instituteID, studentIDs).
		Find(&students).Error; err != nil {
		return 0, fmt.Errorf("load students: %w", err)
	}

	var mu sync.Mutex
	sent := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sendConcurrency)
	for _, st := range students {
		st := st
		g.Go(func() error {
			err := s.Sender.Send(gctx, whatsappService.Message{
				InstituteName: institute.InstituteName,
				StudentName:   st.StudentName,
				ParentPhone:   st.StudentParentPhone,
				Body:          template(institute.InstituteName, st.StudentName),
				MessageType:   string(msgType),
			})
			if err != nil {
				log.Printf("[WARN] broadcast to %s failed: %v", st.StudentParentPhone, err)
				return nil
			}

			sid := st.StudentID
			waLog := whatsappModel.WhatsappLogModel{
				WhatsappLogInstituteID:     instituteID,
				WhatsappLogStudentID:       &sid,
				WhatsappLogMessageType:     msgType,
				WhatsappLogStatus:          "sent",
				WhatsappLogRecipientPhones: []string{st.StudentParentPhone},
			}
			if err := s.DB.WithContext(gctx).Create(&waLog).Error; err != nil {
				log.Printf("[WARN] whatsapp log insert failed: %v", err)
			}

			mu.Lock()
			sent++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sent, err
	}

	if sent > 0 {
		plural := "students"
		if sent == 1 {
			plural = "student"
		}
		s.Activity.Record(ctx, instituteID, constants.ActivityBroadcastSent, nil,
			fmt.Sprintf("%s sent to %d %s", broadcastLabels[msgType], sent, plural))
	}

	return sent, nil
}

/* ======================= HELPERS ======================= */

func (s *ReminderService) findInstitute(ctx context.Context, instituteID uuid.UUID) (*instituteModel.InstituteModel, error) {
	var institute instituteModel.InstituteModel
	if err := s.DB.WithContext(ctx).
		Where("institute_id = ?", instituteID).
		First(&institute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstituteNotFound
		}
		return nil, err
	}
	return &institute, nil
}

func (s *ReminderService) loadStudents(ctx context.Context, instituteID uuid.UUID, teacherID *uuid.UUID) ([]studentModel.StudentModel, error) {
	q := s.DB.WithContext(ctx).Where("student_institute_id = ?", instituteID)
	if teacherID != nil {
		q = q.Where("student_teacher_id = ?", *teacherID)
	}
	var students []studentModel.StudentModel
	if err := q.Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func lastTenDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		return digits[len(digits)-10:]
	}
	return digits
}
