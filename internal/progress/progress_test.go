package progress

import "testing"

func TestCanSubmit(t *testing.T) {
	// 首题：尚未作答时只能提交第 0 题
	if !CanSubmit(0, None) {
		t.Fatalf("expected first question to be submittable with no answers")
	}
	if CanSubmit(1, None) {
		t.Fatalf("expected question 1 to be rejected with no answers")
	}

	// 已答到第 2 题：0..3 可提交（含重答），4 及以后被拒
	for i := 0; i <= 3; i++ {
		if !CanSubmit(i, 2) {
			t.Fatalf("expected question %d to be submittable with last=2", i)
		}
	}
	if CanSubmit(4, 2) {
		t.Fatalf("expected question 4 to be rejected with last=2")
	}
	if CanSubmit(5, 2) {
		t.Fatalf("expected question 5 to be rejected with last=2")
	}
}

func TestCanAdvance(t *testing.T) {
	const total = 5

	// 当前题未作答时不能前进
	if CanAdvance(3, 2, total) {
		t.Fatalf("expected advance to be blocked on an unanswered question")
	}
	// 已作答的题可以前进
	if !CanAdvance(2, 2, total) {
		t.Fatalf("expected advance to be allowed on an answered question")
	}
	// 最后一题即使已作答也无处前进
	if CanAdvance(total-1, total-1, total) {
		t.Fatalf("expected advance to be blocked on the last question")
	}
	// 未作答任何题时也不能前进
	if CanAdvance(0, None, total) {
		t.Fatalf("expected advance to be blocked with no answers")
	}
}

func TestFraction(t *testing.T) {
	cases := []struct {
		last, total int
		want        float64
	}{
		{None, 5, 0.2},
		{0, 5, 0.4},
		{3, 5, 1.0},
		{4, 5, 1.0},
	}
	for _, c := range cases {
		got := Fraction(c.last, c.total)
		if got != c.want {
			t.Fatalf("Fraction(%d, %d) = %v, want %v", c.last, c.total, got, c.want)
		}
	}

	// 空目录不应除零
	if got := Fraction(None, 0); got != 0 {
		t.Fatalf("Fraction(-1, 0) = %v, want 0", got)
	}
}
