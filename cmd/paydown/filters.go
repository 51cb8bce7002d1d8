package main

import (
	"time"

	"github.com/yurifrl/paydown/pkg/csv"
	"github.com/yurifrl/paydown/pkg/history"
)

type filters struct {
	startDate  string
	endDate    string
	minAmount  float64
	maxAmount  float64
	skipBlanks bool
}

func (f *filters) toFilterFunc() csv.FilterFunc[history.PaymentRecord] {
	return func(r history.PaymentRecord) bool {
		if f.startDate != "" {
			start, _ := time.Parse("2006-01-02", f.startDate)
			if r.Date().Before(start) {
				return false
			}
		}
		if f.endDate != "" {
			end, _ := time.Parse("2006-01-02", f.endDate)
			if r.Date().After(end) {
				return false
			}
		}
		if f.minAmount != 0 && r.Amount() < f.minAmount {
			return false
		}
		if f.maxAmount != 0 && r.Amount() > f.maxAmount {
			return false
		}
		if f.skipBlanks && r.Blank() {
			return false
		}
		return true
	}
}
