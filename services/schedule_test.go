package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsDateSelectable(t *testing.T) {
	// 2026-02-05 は木曜
	today := date(2026, 2, 5)

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"過去の日付", date(2026, 2, 4), false},
		{"当日", date(2026, 2, 5), false},
		{"今日+2（準備期間内）", date(2026, 2, 7), false},
		{"今日+3 だが日曜", date(2026, 2, 8), false},
		{"今日+4 の月曜", date(2026, 2, 9), true},
		{"今日+5 の火曜", date(2026, 2, 10), true},
		{"翌月の平日", date(2026, 3, 3), true},
		{"翌月の日曜", date(2026, 3, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateSelectable(today, tt.d))
		})
	}
}

func TestIsDateSelectableIgnoresTimeOfDay(t *testing.T) {
	// 「今日」が深夜でも昼でも判定は日付単位
	today := time.Date(2026, 2, 5, 23, 59, 0, 0, time.UTC)
	assert.False(t, IsDateSelectable(today, date(2026, 2, 7)))
	assert.True(t, IsDateSelectable(today, date(2026, 2, 9)))
}

func TestIsSlotAvailable(t *testing.T) {
	occupancy := map[string][]string{
		"2026-02-10": {"am"},
	}

	// 埋まっているのはその枠だけ。同日の別枠には波及しない
	assert.False(t, IsSlotAvailable(occupancy, "2026-02-10", "am"))
	assert.True(t, IsSlotAvailable(occupancy, "2026-02-10", "pm"))

	// インデックスに無い日付は両枠とも空き
	assert.True(t, IsSlotAvailable(occupancy, "2026-02-11", "am"))
	assert.True(t, IsSlotAvailable(occupancy, "2026-02-11", "pm"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-02-10", FormatDate(2026, time.February, 10))
	assert.Equal(t, "2026-11-01", FormatDate(2026, time.November, 1))
}

func TestBuildMonth(t *testing.T) {
	today := date(2026, 2, 5)
	occupancy := map[string][]string{
		"2026-02-10": {"am"},
	}

	cal := BuildMonth(2026, time.February, today, occupancy)

	assert.Equal(t, 2026, cal.Year)
	assert.Equal(t, 2, cal.Month)
	// 2026-02-01 は日曜なので先頭の空白マスは無い
	assert.Len(t, cal.Days, 28)
	assert.NotNil(t, cal.Days[0])

	d10 := cal.Days[9]
	assert.Equal(t, "2026-02-10", d10.Date)
	assert.True(t, d10.Selectable)
	assert.False(t, d10.Slots["am"]) // 埋まっている
	assert.True(t, d10.Slots["pm"])

	// 選べない日は空いていても枠を全部閉じる
	d7 := cal.Days[6]
	assert.False(t, d7.Selectable)
	assert.False(t, d7.Slots["am"])
	assert.False(t, d7.Slots["pm"])
}

func TestBuildMonthLeadingBlanks(t *testing.T) {
	// 2026-03-01 も日曜。2026-04-01 は水曜 → 空白3マス
	cal := BuildMonth(2026, time.April, date(2026, 2, 5), nil)
	assert.Nil(t, cal.Days[0])
	assert.Nil(t, cal.Days[1])
	assert.Nil(t, cal.Days[2])
	assert.NotNil(t, cal.Days[3])
	assert.Equal(t, "2026-04-01", cal.Days[3].Date)
}
