package services

import (
	"fmt"
	"time"

	"github.com/shostako/yasuragi-no-sato/entity"
)

// 見学予約のカレンダー規則。準備期間として3日先から受け付ける
const MinLeadDays = 3

// TimeSlotDef は1日2枠の固定時間枠
type TimeSlotDef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Time  string `json:"time"`
}

var TimeSlots = []TimeSlotDef{
	{ID: entity.SlotMorning, Label: "午前の部", Time: "10:00〜11:30"},
	{ID: entity.SlotAfternoon, Label: "午後の部", Time: "14:00〜15:30"},
}

func ValidTimeSlot(id string) bool {
	for _, s := range TimeSlots {
		if s.ID == id {
			return true
		}
	}
	return false
}

// FormatDate は保存形式 YYYY-MM-DD（monthは1始まり）
func FormatDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDateSelectable は見学日として選べるかどうか。
//   - 過去の日付は不可
//   - 今日から3日以内は不可（今日+3は可）
//   - 日曜は不可（祝日は簡易的に未対応。仕様上の既知の割り切り）
func IsDateSelectable(today, date time.Time) bool {
	t := truncateToDay(today)
	d := truncateToDay(date)

	if d.Before(t) {
		return false
	}
	if d.Before(t.AddDate(0, 0, MinLeadDays)) {
		return false
	}
	if d.Weekday() == time.Sunday {
		return false
	}
	return true
}

// IsSlotAvailable は占有インデックスに (日付, 枠) が無ければ空き
func IsSlotAvailable(occupancy map[string][]string, date, slotID string) bool {
	taken, ok := occupancy[date]
	if !ok {
		return true
	}
	for _, s := range taken {
		if s == slotID {
			return false
		}
	}
	return true
}

// CalendarDay は月グリッドの1マス。月初の曜日合わせの空マスは nil で表す
type CalendarDay struct {
	Day        int             `json:"day"`
	Date       string          `json:"date"`
	Selectable bool            `json:"selectable"`
	Slots      map[string]bool `json:"slots"` // slotID -> 空きあり
}

type CalendarMonth struct {
	Year  int            `json:"year"`
	Month int            `json:"month"` // 1〜12
	Days  []*CalendarDay `json:"days"`
}

// BuildMonth は公開予約ページのカレンダー1ヶ月分を組み立てる。
// 読み取りのみで副作用なし。前後の月への移動に上限は無い
func BuildMonth(year int, month time.Month, today time.Time, occupancy map[string][]string) CalendarMonth {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]*CalendarDay, 0, int(first.Weekday())+daysInMonth)

	// 先月分の空白
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, nil)
	}

	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, today.Location())
		dateStr := FormatDate(year, month, d)
		selectable := IsDateSelectable(today, date)

		slots := map[string]bool{}
		for _, s := range TimeSlots {
			// 選べない日は枠も全部閉じる
			slots[s.ID] = selectable && IsSlotAvailable(occupancy, dateStr, s.ID)
		}

		days = append(days, &CalendarDay{
			Day:        d,
			Date:       dateStr,
			Selectable: selectable,
			Slots:      slots,
		})
	}

	return CalendarMonth{Year: year, Month: int(month), Days: days}
}
