package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// GenerationService materializes monthly rent bills for active tenancies.
type GenerationService interface {
	// Generate runs a single-flight batch for the given month (zero value =
	// current month) scoped to one admin or, with a nil adminID, the whole
	// fleet. Individual tenant failures are collected in the report and never
	// abort the batch; ErrGenerationInProgress is returned when another run
	// holds the flag.
	Generate(ctx context.Context, month domain.Month, adminID *uuid.UUID) (*domain.GenerationReport, error)

	// Stats reports generation progress for a month without mutating anything.
	Stats(ctx context.Context, month domain.Month, adminID *uuid.UUID) (*domain.GenerationStats, error)

	// Status exposes the run coordinator's state.
	Status() domain.RunStatus

	// ResetRunFlag force-clears the single-flight flag (operator recovery).
	ResetRunFlag()
}

type generationService struct {
	tenantRepo port.TenantRepository
	billRepo   port.BillRepository
	email      port.EmailSender
	clock      port.Clock
	coord      *RunCoordinator
	cfg        config.BillingConfig
}

// NewGenerationService creates a new GenerationService implementation.
func NewGenerationService(
	tenantRepo port.TenantRepository,
	billRepo port.BillRepository,
	email port.EmailSender,
	clock port.Clock,
	coord *RunCoordinator,
	cfg config.BillingConfig,
) GenerationService {
	return &generationService{
		tenantRepo: tenantRepo,
		billRepo:   billRepo,
		email:      email,
		clock:      clock,
		coord:      coord,
		cfg:        cfg,
	}
}

func (s *generationService) Generate(ctx context.Context, month domain.Month, adminID *uuid.UUID) (report *domain.GenerationReport, err error) {
	if month.IsZero() {
		month = domain.MonthOf(s.clock.Now())
	}

	if !s.coord.TryStart(month, adminID) {
		return nil, domain.ErrGenerationInProgress
	}
	// The flag must clear on every exit path, so release and panic recovery
	// both live in the same deferred frame.
	defer func() {
		s.coord.Finish()
		if p := recover(); p != nil {
			logrus.WithField("month", month.String()).Errorf("generation run panicked: %v", p)
			report = nil
			err = fmt.Errorf("generation run for %s panicked: %v", month, p)
		}
	}()

	log := logrus.WithField("month", month.String())
	if adminID != nil {
		log = log.WithField("admin_id", adminID.String())
	}
	log.Info("bill generation run started")

	tenancies, err := s.tenantRepo.FindActiveTenancies(ctx, month.LastDay(), adminID)
	if err != nil {
		return nil, fmt.Errorf("generation.Generate: %w", err)
	}

	report = s.runBatch(ctx, month, tenancies, log)
	log.WithFields(logrus.Fields{
		"total":     report.TotalTenants,
		"generated": report.BillsGenerated,
		"skipped":   report.BillsSkipped,
		"errors":    report.Errors,
	}).Info("bill generation run finished")
	return report, nil
}

// runBatch walks the tenancies sequentially. Each iteration recovers its own
// failure into the report so one tenant never aborts the rest, and the
// ErrorDetails order matches iteration order.
func (s *generationService) runBatch(ctx context.Context, month domain.Month, tenancies []domain.Tenancy, log *logrus.Entry) *domain.GenerationReport {
	report := &domain.GenerationReport{
		Month:        month,
		TotalTenants: len(tenancies),
		ErrorDetails: []domain.GenerationFailure{},
	}

	for _, tenancy := range tenancies {
		existing, err := s.billRepo.FindForMonth(ctx, tenancy.TenantID, month, tenancy.AdminID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.recordFailure(report, tenancy, err, log)
			continue
		}
		if existing != nil {
			report.BillsSkipped++
			continue
		}

		bill, err := s.buildBill(tenancy, month)
		if err != nil {
			s.recordFailure(report, tenancy, err, log)
			continue
		}

		if err := s.billRepo.Insert(ctx, bill); err != nil {
			// A duplicate here means another writer won the check-then-insert
			// race and the unique index caught it, so count it as a skip.
			if errors.Is(err, domain.ErrDuplicateBill) {
				report.BillsSkipped++
				continue
			}
			s.recordFailure(report, tenancy, err, log)
			continue
		}
		report.BillsGenerated++

		// Best effort, like the payment receipt: a bounced notice never
		// fails the run.
		if err := s.email.SendBillNotice(ctx, tenancy.Email, tenancy.Name, bill); err != nil {
			log.WithField("tenant", tenancy.Name).Warnf("bill notice email failed: %v", err)
		}
	}
	return report
}

func (s *generationService) buildBill(tenancy domain.Tenancy, month domain.Month) (*domain.Bill, error) {
	rent := tenancy.EffectiveRent()
	charges := tenancy.EffectiveCharges()
	total := rent.Add(charges)
	if !total.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	return &domain.Bill{
		TenantID:    tenancy.TenantID,
		PropertyID:  tenancy.PropertyID,
		AdminID:     tenancy.AdminID,
		Month:       month,
		RentAmount:  rent,
		Charges:     charges,
		TotalAmount: total,
		DueDate:     month.Next().FirstDay().AddDate(0, 0, s.cfg.DueDateOffsetDays),
		BillDate:    s.clock.Now(),
		Status:      domain.BillPending,
	}, nil
}

func (s *generationService) recordFailure(report *domain.GenerationReport, tenancy domain.Tenancy, err error, log *logrus.Entry) {
	report.Errors++
	report.ErrorDetails = append(report.ErrorDetails, domain.GenerationFailure{
		TenantName:  tenancy.Name,
		TenantEmail: tenancy.Email,
		Error:       err.Error(),
	})
	log.WithFields(logrus.Fields{
		"tenant_id": tenancy.TenantID.String(),
		"tenant":    tenancy.Name,
	}).Warnf("bill generation failed for tenant: %v", err)
}

func (s *generationService) Stats(ctx context.Context, month domain.Month, adminID *uuid.UUID) (*domain.GenerationStats, error) {
	if month.IsZero() {
		month = domain.MonthOf(s.clock.Now())
	}

	tenancies, err := s.tenantRepo.FindActiveTenancies(ctx, month.LastDay(), adminID)
	if err != nil {
		return nil, fmt.Errorf("generation.Stats: %w", err)
	}
	existing, err := s.billRepo.CountForMonth(ctx, month, adminID)
	if err != nil {
		return nil, fmt.Errorf("generation.Stats: %w", err)
	}

	missing := len(tenancies) - existing
	if missing < 0 {
		missing = 0
	}
	return &domain.GenerationStats{
		Month:           month,
		EligibleTenants: len(tenancies),
		ExistingBills:   existing,
		MissingBills:    missing,
	}, nil
}

func (s *generationService) Status() domain.RunStatus {
	return s.coord.Status()
}

func (s *generationService) ResetRunFlag() {
	logrus.Warn("generation run flag reset by operator")
	s.coord.Reset()
}
