package services

import (
	"sort"
	"time"

	"venue-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportService builds the dashboard aggregates from booking, payment,
// and inventory data. Read-only.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type MonthRevenue struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

type DashboardSummary struct {
	TotalBookings  int64          `json:"totalBookings"`
	TotalRevenue   float64        `json:"totalRevenue"`
	UpcomingEvents int64          `json:"upcomingEvents"`
	LowStockItems  int64          `json:"lowStockItems"`
	RevenueByMonth []MonthRevenue `json:"revenueByMonth"`
}

// StaffSummary is the reduced view for non-admin staff: counts only,
// no revenue figures.
type StaffSummary struct {
	TotalBookings  int64 `json:"totalBookings"`
	UpcomingEvents int64 `json:"upcomingEvents"`
	LowStockItems  int64 `json:"lowStockItems"`
}

func (s *ReportService) countBookings() (int64, error) {
	var n int64
	err := s.DB.Model(&models.Booking{}).Count(&n).Error
	return n, err
}

func (s *ReportService) countUpcoming(now time.Time) (int64, error) {
	today := datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	var n int64
	err := s.DB.Model(&models.Booking{}).
		Where("event_date >= ? AND status = ?", today, models.StatusConfirmed).
		Count(&n).Error
	return n, err
}

func (s *ReportService) countLowStock() (int64, error) {
	var n int64
	err := s.DB.Model(&models.Inventory{}).
		Where("quantity <= low_stock_threshold").
		Count(&n).Error
	return n, err
}

// revenueByMonth buckets the last six months of payments by calendar
// month. Rows are fetched and summed in Go so the query stays free of
// dialect-specific date functions.
func (s *ReportService) revenueByMonth(now time.Time) ([]MonthRevenue, error) {
	cutoff := now.AddDate(0, -6, 0)
	var payments []models.Payment
	if err := s.DB.Where("payment_date >= ?", cutoff).Find(&payments).Error; err != nil {
		return nil, err
	}

	type yearMonth struct {
		year  int
		month int
	}
	buckets := make(map[yearMonth]float64)
	for _, p := range payments {
		key := yearMonth{p.PaymentDate.Year(), int(p.PaymentDate.Month())}
		buckets[key] += p.Amount
	}

	series := make([]MonthRevenue, 0, len(buckets))
	for key, total := range buckets {
		series = append(series, MonthRevenue{Year: key.year, Month: key.month, Total: total})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series, nil
}

// DashboardSummary builds the admin dashboard: headline counts, total
// revenue, and the six-month revenue series.
func (s *ReportService) DashboardSummary() (DashboardSummary, error) {
	now := time.Now()
	var out DashboardSummary
	var err error

	if out.TotalBookings, err = s.countBookings(); err != nil {
		return out, err
	}
	if err = s.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.TotalRevenue).Error; err != nil {
		return out, err
	}
	if out.UpcomingEvents, err = s.countUpcoming(now); err != nil {
		return out, err
	}
	if out.LowStockItems, err = s.countLowStock(); err != nil {
		return out, err
	}
	if out.RevenueByMonth, err = s.revenueByMonth(now); err != nil {
		return out, err
	}
	return out, nil
}

// StaffSummary builds the reduced counts-only staff dashboard.
func (s *ReportService) StaffSummary() (StaffSummary, error) {
	now := time.Now()
	var out StaffSummary
	var err error

	if out.TotalBookings, err = s.countBookings(); err != nil {
		return out, err
	}
	if out.UpcomingEvents, err = s.countUpcoming(now); err != nil {
		return out, err
	}
	if out.LowStockItems, err = s.countLowStock(); err != nil {
		return out, err
	}
	return out, nil
}
