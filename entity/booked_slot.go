package entity

import (
	"fmt"
	"time"
)

// BookedSlot は「この日時枠は埋まっている」の非正規化インデックス。
// 真実の源はキャンセル以外の Reservation であり、これは公開カレンダーが
// 予約全件をなめずに空き判定するためのキャッシュ。予約ステータスを変える
// すべての経路が同一トランザクション内でここも更新する。
type BookedSlot struct {
	SlotID        string    `gorm:"primaryKey;size:13" json:"slotId"` // date_timeSlot
	Date          string    `gorm:"size:10;not null;index" json:"date"`
	TimeSlot      string    `gorm:"size:2;not null" json:"timeSlot"`
	ReservationID uint      `gorm:"not null" json:"reservationId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SlotKey は (日付, 時間枠) の複合キー。枠ごとに高々1レコード。
func SlotKey(date, timeSlot string) string {
	return fmt.Sprintf("%s_%s", date, timeSlot)
}
