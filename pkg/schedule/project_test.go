package schedule

import (
	"testing"
	"time"
)

func TestProjectFinish(t *testing.T) {
	today := date(2025, time.March, 17)

	finish, payments, ok := ProjectFinish(today, 300.00, 20.00)
	if !ok {
		t.Fatal("expected a projection")
	}
	if payments != 15 {
		t.Errorf("expected 15 payments left, got %d", payments)
	}
	if expected := today.AddDate(0, 0, 225); !finish.Equal(expected) {
		t.Errorf("expected finish %s, got %s", expected.Format("2006-01-02"), finish.Format("2006-01-02"))
	}
}

func TestProjectFinishRoundsUp(t *testing.T) {
	today := date(2025, time.March, 17)
	_, payments, ok := ProjectFinish(today, 301.00, 20.00)
	if !ok || payments != 16 {
		t.Errorf("expected 16 payments for a partial remainder, got %d (ok=%v)", payments, ok)
	}
}

func TestProjectFinishInvalidPayment(t *testing.T) {
	today := date(2025, time.March, 17)
	if _, _, ok := ProjectFinish(today, 300.00, 0); ok {
		t.Error("zero payment amount must yield no projection")
	}
	if _, _, ok := ProjectFinish(today, 300.00, -5); ok {
		t.Error("negative payment amount must yield no projection")
	}
}

func TestProjectFinishZeroBalance(t *testing.T) {
	today := date(2025, time.March, 17)
	finish, payments, ok := ProjectFinish(today, 0, 20.00)
	if !ok || payments != 0 || !finish.Equal(today) {
		t.Errorf("zero balance should finish today with 0 payments, got %s %d ok=%v",
			finish.Format("2006-01-02"), payments, ok)
	}
}
