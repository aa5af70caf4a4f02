package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/export"
	"rentdesk/internal/port"
)

const exportPageSize = 500

// ReportService renders and archives monthly bill registers.
type ReportService interface {
	// ExportMonth renders the month's bills (scoped by actor) as an XLSX
	// register.
	ExportMonth(ctx context.Context, actor Actor, month domain.Month) ([]byte, error)

	// ArchiveMonth renders the register and uploads it to the configured
	// bucket, returning the object key and a presigned download URL.
	ArchiveMonth(ctx context.Context, actor Actor, month domain.Month) (*domain.ArchivedReport, error)
}

type reportService struct {
	billRepo port.BillRepository
	storage  port.ObjectStorage
	cfg      config.ReportsConfig
}

// NewReportService creates a new ReportService implementation. storage may be
// nil when no archive bucket is configured; ArchiveMonth then fails cleanly.
func NewReportService(billRepo port.BillRepository, storage port.ObjectStorage, cfg config.ReportsConfig) ReportService {
	return &reportService{billRepo: billRepo, storage: storage, cfg: cfg}
}

func (s *reportService) ExportMonth(ctx context.Context, actor Actor, month domain.Month) ([]byte, error) {
	filter := port.BillFilter{Month: month, AdminID: actor.Scope()}

	var bills []domain.Bill
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.billRepo.List(ctx, filter, offset, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("report.ExportMonth: %w", err)
		}
		bills = append(bills, page...)
		if len(bills) >= total || len(page) == 0 {
			break
		}
	}

	return export.BillRegister(month, bills)
}

// archiveURLExpiry bounds how long an archived register's download link stays
// valid.
const archiveURLExpiry = 15 * 60

func (s *reportService) ArchiveMonth(ctx context.Context, actor Actor, month domain.Month) (*domain.ArchivedReport, error) {
	if s.storage == nil || s.cfg.Bucket == "" {
		return nil, fmt.Errorf("report.ArchiveMonth: no archive bucket configured")
	}

	register, err := s.ExportMonth(ctx, actor, month)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("bill-registers/%s.xlsx", month)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(register),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Size:        int64(len(register)),
	})
	if err != nil {
		return nil, fmt.Errorf("report.ArchiveMonth: %w", err)
	}

	// The link is a convenience; the key alone is enough to fetch later.
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, archiveURLExpiry)
	if err != nil {
		logrus.WithField("key", key).Warnf("presigning archive URL failed: %v", err)
		url = ""
	}

	logrus.WithFields(logrus.Fields{
		"month":    month.String(),
		"key":      key,
		"location": out.Location,
	}).Info("bill register archived")
	return &domain.ArchivedReport{Key: key, URL: url}, nil
}
