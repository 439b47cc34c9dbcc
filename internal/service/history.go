package service

import (
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"
)

// HistoryRow 流水回放后的单行视图
type HistoryRow struct {
	Date  time.Time `json:"date"`
	Delta float64   `json:"delta"`
	Note  *string   `json:"note"`
	After float64   `json:"after"`
	Pct   int       `json:"pct"`
}

// GoalHistoryView 目标的进度轨迹：回推出的起始基线加上逐条回放结果
type GoalHistoryView struct {
	Initial float64      `json:"initial"`
	Rows    []HistoryRow `json:"rows"`
}

// BuildHistory 回放目标流水。基线 = max(0, Current − Σdelta)，即回推
// 所有流水之前的进度（历史上发生过零下限截断时由基线吸收差额）。
// 累加器本身不封顶，但每行展示值 After 以 Target 为上限，
// Pct 按展示值取整数百分比。纯函数，不修改流水和目标。
func BuildHistory(goal *model.Goal, entries []model.GoalHistory) *GoalHistoryView {
	var totalDelta float64
	for _, e := range entries {
		totalDelta += e.Delta
	}

	initial := goal.Current - totalDelta
	if initial < 0 {
		initial = 0
	}

	rows := make([]HistoryRow, 0, len(entries))
	acc := initial
	for _, e := range entries {
		acc += e.Delta

		after := acc
		if after > goal.Target {
			after = goal.Target
		}

		pct := 0
		if goal.Target > 0 {
			pct = int(after / goal.Target * 100)
		}

		rows = append(rows, HistoryRow{
			Date:  e.Date,
			Delta: e.Delta,
			Note:  e.Note,
			After: after,
			Pct:   pct,
		})
	}

	return &GoalHistoryView{Initial: initial, Rows: rows}
}
