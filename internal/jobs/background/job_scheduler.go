package background

import (
	"context"
	"log"
	"sync"
	"time"

	"petshop2/internal/repositories"
	"petshop2/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance work: marking overdue financial
// entries, closing out finished lodgings and warming the per-tenant report
// cache.
type JobScheduler struct {
	scheduler     gocron.Scheduler
	financialRepo repositories.FinancialRepository
	lodgingRepo   repositories.LodgingRepository
	tenantRepo    repositories.TenantRepository
	reportSvc     services.ReportService
	jobs          map[string]gocron.Job
	mu            sync.RWMutex
}

func NewJobScheduler(
	financialRepo repositories.FinancialRepository,
	lodgingRepo repositories.LodgingRepository,
	tenantRepo repositories.TenantRepository,
	reportSvc services.ReportService,
) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		financialRepo: financialRepo,
		lodgingRepo:   lodgingRepo,
		tenantRepo:    tenantRepo,
		reportSvc:     reportSvc,
		jobs:          make(map[string]gocron.Job),
	}

	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.register("financial-overdue", gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.markOverdueEntries, context.Background()))

	js.register("lodging-expire", gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.expireFinishedLodgings, context.Background()))

	js.register("report-cache-refresh", gocron.DurationJob(10*time.Minute),
		gocron.NewTask(js.refreshReportCaches, context.Background()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule))
}

func (js *JobScheduler) register(name string, def gocron.JobDefinition, task gocron.Task, opts ...gocron.JobOption) {
	opts = append(opts, gocron.WithName(name))
	job, err := js.scheduler.NewJob(def, task, opts...)
	if err != nil {
		log.Printf("Failed to create %s job: %v", name, err)
		return
	}

	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
}

// markOverdueEntries flips pending entries past their due date to vencido.
func (js *JobScheduler) markOverdueEntries(ctx context.Context) {
	n, err := js.financialRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("ERROR: marking overdue financial entries: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Marked %d financial entries as overdue", n)
	}
}

// expireFinishedLodgings finalizes stays whose check-out has passed.
func (js *JobScheduler) expireFinishedLodgings(ctx context.Context) {
	n, err := js.lodgingRepo.ExpireFinished(ctx, time.Now())
	if err != nil {
		log.Printf("ERROR: expiring finished lodgings: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Finalized %d lodgings past check-out", n)
	}
}

// refreshReportCaches recomputes the current-month dashboard summary for
// every tenant so the first request after the TTL doesn't pay for it.
func (js *JobScheduler) refreshReportCaches(ctx context.Context) {
	const batchSize = 100

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	for offset := 0; ; offset += batchSize {
		tenants, err := js.tenantRepo.List(ctx, batchSize, offset)
		if err != nil {
			log.Printf("ERROR: listing tenants for report refresh: %v", err)
			return
		}
		if len(tenants) == 0 {
			return
		}

		for _, tenant := range tenants {
			if !tenant.Active() {
				continue
			}
			if _, err := js.reportSvc.RefreshSummary(ctx, tenant.ID, from, to); err != nil {
				log.Printf("ERROR: refreshing report cache for tenant %s: %v", tenant.ID, err)
			}
		}

		if len(tenants) < batchSize {
			return
		}
	}
}
