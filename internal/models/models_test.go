package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func assertErrorContains(t *testing.T, err error, want string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}

	if !strings.Contains(err.Error(), want) {
		t.Errorf("expected error containing %q, got %q", want, err.Error())
	}
}

func TestBuildGraphRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.BuildGraphRequest
		wantErr string
	}{
		{name: "zero values are valid", req: models.BuildGraphRequest{}},
		{name: "valid bounds", req: models.BuildGraphRequest{NodeBudget: 500, ScoreThreshold: 0.35}},
		{name: "budget at cap", req: models.BuildGraphRequest{NodeBudget: models.MaxNodeBudget}},
		{name: "negative budget", req: models.BuildGraphRequest{NodeBudget: -1}, wantErr: "node_budget"},
		{name: "budget over cap", req: models.BuildGraphRequest{NodeBudget: models.MaxNodeBudget + 1}, wantErr: "node_budget"},
		{name: "threshold below zero", req: models.BuildGraphRequest{ScoreThreshold: -0.1}, wantErr: "score_threshold"},
		{name: "threshold above one", req: models.BuildGraphRequest{ScoreThreshold: 1.1}, wantErr: "score_threshold"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}

func TestResizeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ResizeRequest
		wantErr string
	}{
		{name: "valid", req: models.ResizeRequest{Width: 960, Height: 680}},
		{name: "zero width", req: models.ResizeRequest{Height: 680}, wantErr: "positive"},
		{name: "negative height", req: models.ResizeRequest{Width: 960, Height: -1}, wantErr: "positive"},
		{name: "width too large", req: models.ResizeRequest{Width: 20000, Height: 680}, wantErr: "16384"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}

func TestFlexList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "plain string", in: `"Harbor view"`, want: []string{"Harbor view"}},
		{name: "empty string", in: `""`, want: nil},
		{name: "string list", in: `["a","b"]`, want: []string{"a", "b"}},
		{name: "list with non-strings", in: `["a", 2, null, "b"]`, want: []string{"a", "b"}},
		{name: "language map prefers english", in: `{"fr":"vue","en":"view"}`, want: []string{"view", "vue"}},
		{name: "language map fallback", in: `{"nl":"gezicht"}`, want: []string{"gezicht"}},
		{name: "unsupported shape", in: `42`, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var f models.FlexList
			assertNoError(t, json.Unmarshal([]byte(tc.in), &f))

			if len(f) != len(tc.want) {
				t.Fatalf("got %v, want %v", f, tc.want)
			}
			for i := range tc.want {
				if f[i] != tc.want[i] {
					t.Errorf("element %d: got %q, want %q", i, f[i], tc.want[i])
				}
			}
		})
	}
}

func TestItem_FlexYear(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *int
	}{
		{name: "numeric year", in: `{"id":"a","year":1641}`, want: intPtr(1641)},
		{name: "float year", in: `{"id":"a","year":1641.0}`, want: intPtr(1641)},
		{name: "string year", in: `{"id":"a","year":" 1641 "}`, want: intPtr(1641)},
		{name: "sentinel year", in: `{"id":"a","year":"Unknown Year"}`, want: nil},
		{name: "missing year", in: `{"id":"a"}`, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var it models.Item
			assertNoError(t, json.Unmarshal([]byte(tc.in), &it))

			switch {
			case tc.want == nil && it.Year != nil:
				t.Errorf("got year %d, want nil", *it.Year)
			case tc.want != nil && it.Year == nil:
				t.Errorf("got nil year, want %d", *tc.want)
			case tc.want != nil && *it.Year != *tc.want:
				t.Errorf("got year %d, want %d", *it.Year, *tc.want)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func TestItem_DisplayTitle(t *testing.T) {
	it := models.Item{ID: "x", Title: models.FlexList{"", "Canal houses"}}
	if got := it.DisplayTitle(); got != "Canal houses" {
		t.Errorf("got %q, want first non-empty title", got)
	}

	empty := models.Item{ID: "x"}
	if got := empty.DisplayTitle(); got != "x" {
		t.Errorf("got %q, want id fallback", got)
	}
}

func TestNeighborEdge_Other(t *testing.T) {
	e := models.NeighborEdge{Source: "a", Target: "b"}

	if other, ok := e.Other("a"); !ok || other != "b" {
		t.Errorf("Other(a) = %q, %v", other, ok)
	}
	if other, ok := e.Other("b"); !ok || other != "a" {
		t.Errorf("Other(b) = %q, %v", other, ok)
	}
	if _, ok := e.Other("c"); ok {
		t.Error("Other(c) should report false")
	}
}

func TestInteractionRecord_ViewedByRecency(t *testing.T) {
	rec := models.NewInteractionRecord()
	rec.Views = []string{"b", "a", "c"}
	rec.ViewTimestamps = map[string][]int64{
		"a": {100, 300},
		"b": {200},
		"c": {200},
	}

	got := rec.ViewedByRecency()
	want := []string{"b", "c", "a"} // ties break on id, most recent last

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInteractionRecord_Clone(t *testing.T) {
	rec := models.NewInteractionRecord()
	rec.Views = []string{"a"}
	rec.ViewTimestamps["a"] = []int64{100}
	rec.Bookmarks = []string{"a"}

	c := rec.Clone()
	c.Views = append(c.Views, "b")
	c.ViewTimestamps["a"] = append(c.ViewTimestamps["a"], 200)
	c.Bookmarks = append(c.Bookmarks, "b")

	if len(rec.Views) != 1 || len(rec.ViewTimestamps["a"]) != 1 || len(rec.Bookmarks) != 1 {
		t.Errorf("mutating the clone changed the original: %+v", rec)
	}
}
