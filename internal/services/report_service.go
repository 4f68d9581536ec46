package services

import (
	"context"
	"errors"
	"time"

	"petshop2/internal/caching"
	"petshop2/internal/models"
	"petshop2/internal/repositories"
	"petshop2/internal/tenancy"

	"github.com/google/uuid"
)

const reportCacheTTL = 10 * time.Minute

type ReportService interface {
	Summary(ctx context.Context, from, to time.Time) (*models.ReportSummary, error)
	RefreshSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*models.ReportSummary, error)
}

type reportService struct {
	saleRepo      repositories.SaleRepository
	financialRepo repositories.FinancialRepository
	apptRepo      repositories.AppointmentRepository
	lodgingRepo   repositories.LodgingRepository
	cacheSvc      caching.CacheService
}

func NewReportService(
	saleRepo repositories.SaleRepository,
	financialRepo repositories.FinancialRepository,
	apptRepo repositories.AppointmentRepository,
	lodgingRepo repositories.LodgingRepository,
	cacheSvc caching.CacheService,
) ReportService {
	return &reportService{
		saleRepo:      saleRepo,
		financialRepo: financialRepo,
		apptRepo:      apptRepo,
		lodgingRepo:   lodgingRepo,
		cacheSvc:      cacheSvc,
	}
}

// Summary returns the dashboard numbers for the current tenant, serving from
// the report cache when the requested window matches the cached one.
func (s *reportService) Summary(ctx context.Context, from, to time.Time) (*models.ReportSummary, error) {
	tenantID, ok := tenancy.TenantIDFromContext(ctx)
	if !ok {
		return nil, errors.New("no tenant in context")
	}

	if cached, err := s.cacheSvc.GetReportSummary(ctx, tenantID); err == nil && cached != nil {
		if summary := summaryFromCache(cached, from, to); summary != nil {
			return summary, nil
		}
	}

	return s.RefreshSummary(ctx, tenantID, from, to)
}

// RefreshSummary recomputes the aggregates and rewrites the cache. It takes
// tenantID explicitly so the background scheduler can call it without a
// request context.
func (s *reportService) RefreshSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*models.ReportSummary, error) {
	salesTotal, err := s.saleRepo.TotalInPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	income, err := s.financialRepo.SumByType(ctx, tenantID, models.EntryIncome, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.financialRepo.SumByType(ctx, tenantID, models.EntryExpense, from, to)
	if err != nil {
		return nil, err
	}
	scheduled, err := s.apptRepo.CountByStatus(ctx, tenantID, models.AppointmentScheduled, from, to)
	if err != nil {
		return nil, err
	}
	done, err := s.apptRepo.CountByStatus(ctx, tenantID, models.AppointmentDone, from, to)
	if err != nil {
		return nil, err
	}
	lodgings, err := s.lodgingRepo.CountActiveInPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &models.ReportSummary{
		TenantID:              tenantID,
		From:                  from,
		To:                    to,
		SalesTotal:            salesTotal,
		Income:                income,
		Expenses:              expenses,
		Balance:               income - expenses,
		ScheduledAppointments: scheduled,
		DoneAppointments:      done,
		ActiveLodgings:        lodgings,
		GeneratedAt:           time.Now(),
	}

	// Cache failures degrade to recomputation on the next request
	_ = s.cacheSvc.SetReportSummary(ctx, tenantID, summary.ToCache(), reportCacheTTL)

	return summary, nil
}

func summaryFromCache(cached map[string]interface{}, from, to time.Time) *models.ReportSummary {
	summary := models.ReportSummaryFromCache(cached)
	if summary == nil {
		return nil
	}
	if !summary.From.Equal(from) || !summary.To.Equal(to) {
		return nil
	}
	return summary
}
