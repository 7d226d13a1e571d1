// Package analytics derives read-only statistics from the trade collection.
// Every function recomputes from its inputs and never mutates them.
package analytics

import (
	"math"
	"sort"
	"time"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// DayBucket aggregates the trades of one calendar day.
type DayBucket struct {
	Day    int            `json:"day"`
	PnL    float64        `json:"pnl"`
	Count  int            `json:"count"`
	Trades []models.Trade `json:"trades"`
}

// WeekStats aggregates one Sunday-start row of the month grid.
type WeekStats struct {
	Week     int     `json:"week"`
	StartDay int     `json:"startDay"`
	EndDay   int     `json:"endDay"`
	PnL      float64 `json:"pnl"`
	Trades   int     `json:"trades"`
	WinRate  int     `json:"winRate"`
}

// MonthCalendar is the calendar view of one month.
type MonthCalendar struct {
	Year        int               `json:"year"`
	Month       time.Month        `json:"month"`
	DaysInMonth int               `json:"daysInMonth"`
	Offset      int               `json:"offset"`
	Days        map[int]DayBucket `json:"days"`
	Weeks       []WeekStats       `json:"weeks"`
	MonthPnL    float64           `json:"monthPnL"`
	MonthTrades int               `json:"monthTrades"`
}

// DailyBuckets groups the trades dated within year/month by day of month.
// Days without trades have no entry. Trades with unparseable dates are skipped.
func DailyBuckets(trades []models.Trade, year int, month time.Month) map[int]DayBucket {
	buckets := make(map[int]DayBucket)
	for _, t := range trades {
		d, ok := utils.ParseDate(t.Date)
		if !ok || d.Year() != year || d.Month() != month {
			continue
		}
		b := buckets[d.Day()]
		b.Day = d.Day()
		b.PnL = utils.Add(b.PnL, t.PnL)
		b.Count++
		b.Trades = append(b.Trades, t)
		buckets[d.Day()] = b
	}
	return buckets
}

// WeeklyRollup partitions the month into grid rows. A week's win rate counts
// trades with positive P&L, whatever their status.
func WeeklyRollup(buckets map[int]DayBucket, year int, month time.Month) []WeekStats {
	days := utils.DaysInMonth(year, month)
	offset := utils.FirstWeekdayOffset(year, month)
	weeks := (days + offset + 6) / 7

	stats := make([]WeekStats, 0, weeks)
	for i := 0; i < weeks; i++ {
		start := i*7 - offset + 1
		end := start + 6
		if start > days {
			break
		}
		w := WeekStats{Week: i + 1, StartDay: start, EndDay: end}
		wins := 0
		for day, b := range buckets {
			if day < start || day > end {
				continue
			}
			w.PnL = utils.Add(w.PnL, b.PnL)
			w.Trades += b.Count
			for _, t := range b.Trades {
				if t.PnL > 0 {
					wins++
				}
			}
		}
		w.WinRate = percent(wins, w.Trades)
		stats = append(stats, w)
	}
	return stats
}

// BuildCalendar assembles the full month view.
func BuildCalendar(trades []models.Trade, year int, month time.Month) MonthCalendar {
	buckets := DailyBuckets(trades, year, month)
	cal := MonthCalendar{
		Year:        year,
		Month:       month,
		DaysInMonth: utils.DaysInMonth(year, month),
		Offset:      utils.FirstWeekdayOffset(year, month),
		Days:        buckets,
		Weeks:       WeeklyRollup(buckets, year, month),
	}
	for _, b := range buckets {
		cal.MonthPnL = utils.Add(cal.MonthPnL, b.PnL)
		cal.MonthTrades += b.Count
	}
	return cal
}

// SortedDays returns the non-empty buckets ordered by day, for the daily bar series.
func (c MonthCalendar) SortedDays() []DayBucket {
	out := make([]DayBucket, 0, len(c.Days))
	for _, b := range c.Days {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// percent returns round(100*n/total), or 0 when total is 0.
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}
