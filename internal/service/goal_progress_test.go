package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"

	"github.com/gin-gonic/gin"
)

func testDay(t *testing.T) (today, now time.Time) {
	t.Helper()
	now = time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	return dateOnly(now), now
}

func TestApplyDelta_Basic(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 10}

	entry, completed := applyDelta(goal, 25, nil, today, now)
	if goal.Current != 35 {
		t.Fatalf("want current 35, got %v", goal.Current)
	}
	if completed {
		t.Fatal("goal reported completed at 35/100")
	}
	if entry.Delta != 25 {
		t.Fatalf("want delta 25, got %v", entry.Delta)
	}
	if !entry.Date.Equal(today) {
		t.Fatalf("want date %v, got %v", today, entry.Date)
	}
}

func TestApplyDelta_ClampAtZero(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 10}

	entry, _ := applyDelta(goal, -30, nil, today, now)
	if goal.Current != 0 {
		t.Fatalf("want current clamped to 0, got %v", goal.Current)
	}
	// 流水保留原始增量，不做截断
	if entry.Delta != -30 {
		t.Fatalf("want raw delta -30, got %v", entry.Delta)
	}
}

func TestApplyDelta_OvershootPreserved(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 90}

	_, completed := applyDelta(goal, 50, nil, today, now)
	if goal.Current != 140 {
		t.Fatalf("want current 140, got %v", goal.Current)
	}
	if !completed {
		t.Fatal("reaching target did not report completion")
	}
	if goal.CompletedAt == nil || !goal.CompletedAt.Equal(now) {
		t.Fatalf("want completed_at %v, got %v", now, goal.CompletedAt)
	}
}

func TestApplyDelta_CompletionIsMonotonic(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 100}
	goal.CompletedAt = &now

	later := now.Add(time.Hour)
	_, completed := applyDelta(goal, -50, nil, today, later)
	if completed {
		t.Fatal("dropping below target reported new completion")
	}
	if goal.CompletedAt == nil || !goal.CompletedAt.Equal(now) {
		t.Fatal("completed_at changed after dropping below target")
	}

	// 再次达标也不重复打点
	_, completed = applyDelta(goal, 60, nil, today, later)
	if completed {
		t.Fatal("re-reaching target reported completion again")
	}
	if !goal.CompletedAt.Equal(now) {
		t.Fatal("completed_at re-stamped on second crossing")
	}
}

func TestApplyDelta_ZeroDelta(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 10}

	entry, completed := applyDelta(goal, 0, nil, today, now)
	if goal.Current != 10 {
		t.Fatalf("want current unchanged at 10, got %v", goal.Current)
	}
	// 零增量也写一条流水（当天有活动）
	if entry == nil || entry.Delta != 0 {
		t.Fatalf("want a zero-delta entry, got %+v", entry)
	}
	if completed {
		t.Fatal("zero delta reported completion")
	}
}

func bindProgress(t *testing.T, body string) (ProgressRequest, error) {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")

	var req ProgressRequest
	err := ctx.ShouldBindJSON(&req)
	return req, err
}

func TestProgressRequest_ZeroDeltaBinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req, err := bindProgress(t, `{"delta":0}`)
	if err != nil {
		t.Fatalf("zero delta rejected by binding: %v", err)
	}
	if req.Delta == nil || *req.Delta != 0 {
		t.Fatalf("want delta 0, got %v", req.Delta)
	}

	if _, err := bindProgress(t, `{}`); err == nil {
		t.Fatal("missing delta accepted")
	}
}

func TestForceComplete(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 40}

	entry := forceComplete(goal, today, now)
	if goal.Current != 100 {
		t.Fatalf("want current 100, got %v", goal.Current)
	}
	if entry == nil {
		t.Fatal("want a ledger entry for a 60-unit jump")
	}
	if entry.Delta != 60 {
		t.Fatalf("want delta 60, got %v", entry.Delta)
	}
	if entry.Note == nil || *entry.Note != forceCompleteNote {
		t.Fatalf("unexpected note: %v", entry.Note)
	}
}

func TestForceComplete_NoEntryWhenAlreadyAtTarget(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 100}
	earlier := now.Add(-time.Hour)
	goal.CompletedAt = &earlier

	entry := forceComplete(goal, today, now)
	if entry != nil {
		t.Fatalf("want no ledger entry, got delta %v", entry.Delta)
	}
	// 完成时间无条件刷新
	if goal.CompletedAt == nil || !goal.CompletedAt.Equal(now) {
		t.Fatalf("want completed_at re-stamped to %v, got %v", now, goal.CompletedAt)
	}
}

func TestForceComplete_FromOvershoot(t *testing.T) {
	today, now := testDay(t)
	goal := &model.Goal{Target: 100, Current: 120}

	entry := forceComplete(goal, today, now)
	if goal.Current != 100 {
		t.Fatalf("want current pulled back to 100, got %v", goal.Current)
	}
	if entry == nil || entry.Delta != -20 {
		t.Fatalf("want delta -20, got %+v", entry)
	}
}

func TestParseDeadline(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	raw := "2026-09-15"
	deadline, err := parseDeadline(&raw, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC); !deadline.Equal(want) {
		t.Fatalf("want %v, got %v", want, deadline)
	}

	// 当天有效
	sameDay := "2026-08-30"
	if _, err := parseDeadline(&sameDay, today); err != nil {
		t.Fatalf("same-day deadline rejected: %v", err)
	}

	past := "2026-08-29"
	if _, err := parseDeadline(&past, today); err != util.ErrDeadlinePast {
		t.Fatalf("want ErrDeadlinePast, got %v", err)
	}

	malformed := "30.08.2026"
	if _, err := parseDeadline(&malformed, today); err != util.ErrInvalidDeadline {
		t.Fatalf("want ErrInvalidDeadline, got %v", err)
	}

	if deadline, err := parseDeadline(nil, today); err != nil || deadline != nil {
		t.Fatalf("nil input: want (nil, nil), got (%v, %v)", deadline, err)
	}
}

func TestParseDeadlineUpdate(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	if _, set, err := parseDeadlineUpdate(nil, today); err != nil || set {
		t.Fatalf("absent field: want set=false, got set=%v err=%v", set, err)
	}

	// 显式 null 清除截止日期
	deadline, set, err := parseDeadlineUpdate(json.RawMessage(`null`), today)
	if err != nil || !set || deadline != nil {
		t.Fatalf("explicit null: want cleared, got (%v, %v, %v)", deadline, set, err)
	}

	deadline, set, err = parseDeadlineUpdate(json.RawMessage(`""`), today)
	if err != nil || !set || deadline != nil {
		t.Fatalf("empty string: want cleared, got (%v, %v, %v)", deadline, set, err)
	}

	deadline, set, err = parseDeadlineUpdate(json.RawMessage(`"2026-09-15"`), today)
	if err != nil || !set {
		t.Fatalf("unexpected result: set=%v err=%v", set, err)
	}
	if want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC); deadline == nil || !deadline.Equal(want) {
		t.Fatalf("want %v, got %v", want, deadline)
	}

	if _, _, err := parseDeadlineUpdate(json.RawMessage(`123`), today); err != util.ErrInvalidDeadline {
		t.Fatalf("non-string value: want ErrInvalidDeadline, got %v", err)
	}

	if _, _, err := parseDeadlineUpdate(json.RawMessage(`"2026-08-29"`), today); err != util.ErrDeadlinePast {
		t.Fatalf("past date: want ErrDeadlinePast, got %v", err)
	}
}

func historyEntries(days []int, deltas []float64) []model.GoalHistory {
	entries := make([]model.GoalHistory, len(deltas))
	for i, d := range deltas {
		entries[i] = model.GoalHistory{
			Date:  time.Date(2026, 8, days[i], 0, 0, 0, 0, time.UTC),
			Delta: d,
		}
	}
	return entries
}

func TestBuildHistory_Replay(t *testing.T) {
	goal := &model.Goal{Target: 100, Current: 110}
	entries := historyEntries([]int{1, 2, 3}, []float64{20, 30, 60})

	view := BuildHistory(goal, entries)
	if view.Initial != 0 {
		t.Fatalf("want initial 0, got %v", view.Initial)
	}
	wantAfter := []float64{20, 50, 100}
	wantPct := []int{20, 50, 100}
	for i, row := range view.Rows {
		if row.After != wantAfter[i] {
			t.Fatalf("row %d: want after %v, got %v", i, wantAfter[i], row.After)
		}
		if row.Pct != wantPct[i] {
			t.Fatalf("row %d: want pct %d, got %d", i, wantPct[i], row.Pct)
		}
	}
}

func TestBuildHistory_BaselineBackComputation(t *testing.T) {
	// Current=40，流水合计 30，说明流水开始前已有 10 的进度
	goal := &model.Goal{Target: 100, Current: 40}
	entries := historyEntries([]int{5, 6}, []float64{10, 20})

	view := BuildHistory(goal, entries)
	if view.Initial != 10 {
		t.Fatalf("want initial 10, got %v", view.Initial)
	}
	if view.Rows[0].After != 20 || view.Rows[1].After != 40 {
		t.Fatalf("unexpected after values: %v, %v", view.Rows[0].After, view.Rows[1].After)
	}
}

func TestBuildHistory_NegativeBaselineClamped(t *testing.T) {
	// 历史上发生过零下限截断：Σdelta 大于 Current，基线归零
	goal := &model.Goal{Target: 100, Current: 5}
	entries := historyEntries([]int{1, 2}, []float64{-50, 60})

	view := BuildHistory(goal, entries)
	if view.Initial != 0 {
		t.Fatalf("want initial 0, got %v", view.Initial)
	}
}

func TestBuildHistory_ZeroTarget(t *testing.T) {
	goal := &model.Goal{Target: 0, Current: 10}
	entries := historyEntries([]int{1}, []float64{10})

	view := BuildHistory(goal, entries)
	if view.Rows[0].Pct != 0 {
		t.Fatalf("want pct 0 for zero target, got %d", view.Rows[0].Pct)
	}
}

func TestBuildHistory_Empty(t *testing.T) {
	goal := &model.Goal{Target: 100, Current: 25}

	view := BuildHistory(goal, nil)
	if view.Initial != 25 {
		t.Fatalf("want initial 25, got %v", view.Initial)
	}
	if len(view.Rows) != 0 {
		t.Fatalf("want no rows, got %d", len(view.Rows))
	}
}
