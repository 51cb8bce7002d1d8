package csv

import (
	"bytes"
	"fmt"
	"time"

	"github.com/yurifrl/paydown/pkg/history"
)

type Record interface {
	Date() time.Time
	Amount() float64
	Cleared() history.ClearedStatus
	Memo() string
}

type FilterFunc[T Record] func(T) bool

func Create[T Record](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	buf.WriteString("Date,Amount,Cleared,Memo\n")
	for _, r := range records {
		if filter == nil || filter(r) {
			buf.WriteString(fmt.Sprintf("%s,%.2f,%s,%s\n",
				r.Date().Format("2006/01/02"),
				r.Amount(),
				r.Cleared(),
				r.Memo()))
		}
	}
	return buf.Bytes()
}
