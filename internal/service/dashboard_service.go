package service

import (
	"sort"
	"time"

	"go-sales-crm/internal/pricing"
	"go-sales-crm/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	Days                 int             `json:"days"`
	Customers            int64           `json:"customers"`
	Interviews           int64           `json:"interviews"`
	SuccessfulInterviews int64           `json:"successful_interviews"`
	ActiveSales          int             `json:"active_sales"`
	Revenue              decimal.Decimal `json:"revenue"`
	RevenueDisplay       string          `json:"revenue_display"`
}

// DailySales is one bucket of the sales trend chart.
type DailySales struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DashboardService interface {
	GetDashboardStats(days int) (*DashboardStats, error)
	GetSalesTrend(days int) ([]DailySales, error)
}

type dashboardService struct {
	customerRepo  repository.CustomerRepository
	interviewRepo repository.InterviewRepository
	saleRepo      repository.SaleRepository
	normalizer    pricing.Normalizer
	now           func() time.Time
}

func NewDashboardService(cRepo repository.CustomerRepository, iRepo repository.InterviewRepository, sRepo repository.SaleRepository, n pricing.Normalizer) DashboardService {
	return &dashboardService{
		customerRepo:  cRepo,
		interviewRepo: iRepo,
		saleRepo:      sRepo,
		normalizer:    n,
		now:           time.Now,
	}
}

func clampDays(days int) int {
	if days <= 0 {
		return 30
	}
	if days > 365 {
		return 365
	}
	return days
}

func (s *dashboardService) activeSalesSince(since time.Time) ([]SaleView, error) {
	sales, err := s.saleRepo.FindAll(repository.SaleFilter{Status: repository.SaleStatusActive, From: &since})
	if err != nil {
		return nil, errors.Wrap(err, "load sales")
	}
	views := make([]SaleView, len(sales))
	for i, sale := range sales {
		views[i] = newSaleView(s.normalizer, sale)
	}
	return views, nil
}

func (s *dashboardService) GetDashboardStats(days int) (*DashboardStats, error) {
	days = clampDays(days)
	since := s.now().AddDate(0, 0, -days)

	customers, err := s.customerRepo.Count()
	if err != nil {
		return nil, errors.Wrap(err, "count customers")
	}
	interviews, succeeded, err := s.interviewRepo.CountSince(since)
	if err != nil {
		return nil, errors.Wrap(err, "count interviews")
	}
	sales, err := s.activeSalesSince(since)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, v := range sales {
		revenue = revenue.Add(v.Total)
	}

	return &DashboardStats{
		Days:                 days,
		Customers:            customers,
		Interviews:           interviews,
		SuccessfulInterviews: succeeded,
		ActiveSales:          len(sales),
		Revenue:              revenue,
		RevenueDisplay:       pricing.Format(revenue),
	}, nil
}

func (s *dashboardService) GetSalesTrend(days int) ([]DailySales, error) {
	days = clampDays(days)
	since := s.now().AddDate(0, 0, -days)

	sales, err := s.activeSalesSince(since)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*DailySales)
	for _, v := range sales {
		key := v.SaleDate.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &DailySales{Date: key, Revenue: decimal.Zero}
			buckets[key] = b
		}
		b.Count++
		b.Revenue = b.Revenue.Add(v.Total)
	}

	trend := make([]DailySales, 0, len(buckets))
	for _, b := range buckets {
		trend = append(trend, *b)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend, nil
}
