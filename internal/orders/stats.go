package orders

import (
	"sort"
	"time"
)

// Stats summarizes a brand's orders for the dashboard stats view. All
// aggregation happens locally over the fetched order list. Cancelled and
// returned orders are excluded from revenue but still counted per status.
type Stats struct {
	TotalRevenue float64
	OrderCount   int
	ItemsSold    int
	ByStatus     map[string]int
	Monthly      []MonthlyRevenue
}

// MonthlyRevenue is revenue bucketed by calendar month, oldest first.
type MonthlyRevenue struct {
	Month   time.Time
	Revenue float64
	Orders  int
}

// Aggregate computes summary stats over the given orders.
func Aggregate(list []Order) Stats {
	stats := Stats{ByStatus: make(map[string]int)}
	months := make(map[time.Time]*MonthlyRevenue)

	for _, o := range list {
		stats.OrderCount++
		stats.ByStatus[o.Status]++

		if o.Status == StatusCancelled || o.Status == StatusReturned {
			continue
		}
		stats.TotalRevenue += o.TotalAmount
		stats.ItemsSold += len(o.Items)

		month := time.Date(o.Date.Year(), o.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		bucket, ok := months[month]
		if !ok {
			bucket = &MonthlyRevenue{Month: month}
			months[month] = bucket
		}
		bucket.Revenue += o.TotalAmount
		bucket.Orders++
	}

	stats.Monthly = make([]MonthlyRevenue, 0, len(months))
	for _, bucket := range months {
		stats.Monthly = append(stats.Monthly, *bucket)
	}
	sort.Slice(stats.Monthly, func(i, j int) bool {
		return stats.Monthly[i].Month.Before(stats.Monthly[j].Month)
	})
	return stats
}
