package pagination

import (
	"strconv"
	"testing"
)

const (
	testDefaultSize = 10
	testMaxSize     = 100
)

func TestBuild_Defaults(t *testing.T) {
	p := Build("", "", testDefaultSize, testMaxSize)
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.Size != testDefaultSize {
		t.Errorf("expected size %d, got %d", testDefaultSize, p.Size)
	}
}

func TestBuild_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		rawPage  string
		rawSize  string
		wantPage int
		wantSize int
	}{
		{"valid values", "3", "25", 3, 25},
		{"size above max clamps to max", "1", "5000", 1, testMaxSize},
		{"size exactly max", "1", "100", 1, 100},
		{"zero page falls back to 1", "0", "10", 1, 10},
		{"negative page falls back to 1", "-4", "10", 1, 10},
		{"zero size falls back to default", "2", "0", 2, testDefaultSize},
		{"negative size falls back to default", "2", "-1", 2, testDefaultSize},
		{"garbage page falls back to 1", "abc", "10", 1, 10},
		{"garbage size falls back to default", "1", "lots", 1, testDefaultSize},
		{"size one is allowed", "1", "1", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.rawPage, tt.rawSize, testDefaultSize, testMaxSize)
			if p.Page != tt.wantPage {
				t.Errorf("page: got %d, want %d", p.Page, tt.wantPage)
			}
			if p.Size != tt.wantSize {
				t.Errorf("size: got %d, want %d", p.Size, tt.wantSize)
			}
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	// Normalizing an already-normalized request must be a no-op.
	inputs := [][2]string{
		{"", ""}, {"0", "9999"}, {"7", "50"}, {"-1", "-1"}, {"x", "y"},
	}
	for _, in := range inputs {
		first := Build(in[0], in[1], testDefaultSize, testMaxSize)
		second := Build(strconv.Itoa(first.Page), strconv.Itoa(first.Size), testDefaultSize, testMaxSize)
		if first != second {
			t.Errorf("Build not idempotent for input %v: first %+v, second %+v", in, first, second)
		}
	}
}

func TestParams_OffsetLimit(t *testing.T) {
	p := Params{Page: 3, Size: 10}
	if got := p.Offset(); got != 20 {
		t.Errorf("expected offset 20, got %d", got)
	}
	if got := p.Limit(); got != 10 {
		t.Errorf("expected limit 10, got %d", got)
	}

	first := Params{Page: 1, Size: 25}
	if got := first.Offset(); got != 0 {
		t.Errorf("expected offset 0 for first page, got %d", got)
	}
}

func TestNewResult_PageCount(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		total     int
		size      int
		wantPages int
	}{
		{"exact multiple", 10, 30, 10, 3},
		{"partial last page", 5, 25, 10, 3},
		{"single page", 7, 7, 10, 1},
		{"no matches", 0, 0, 10, 0},
		{"one match", 1, 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			res := NewResult(items, tt.total, Params{Page: 1, Size: tt.size})
			if res.Pages != tt.wantPages {
				t.Errorf("pages: got %d, want %d", res.Pages, tt.wantPages)
			}
			if res.Total != tt.total {
				t.Errorf("total: got %d, want %d", res.Total, tt.total)
			}
			if len(res.Items) > res.Size {
				t.Errorf("items length %d exceeds size %d", len(res.Items), res.Size)
			}
		})
	}
}

func TestNewResult_NilItemsBecomesEmptySlice(t *testing.T) {
	// An offset past the end of the data set yields no rows; the response
	// must still carry an empty array and the true total.
	res := NewResult[string](nil, 42, Params{Page: 9, Size: 10})
	if res.Items == nil {
		t.Fatal("expected non-nil items slice")
	}
	if len(res.Items) != 0 {
		t.Errorf("expected empty items, got %d", len(res.Items))
	}
	if res.Total != 42 {
		t.Errorf("expected total 42, got %d", res.Total)
	}
	if res.Pages != 5 {
		t.Errorf("expected pages 5, got %d", res.Pages)
	}
}
