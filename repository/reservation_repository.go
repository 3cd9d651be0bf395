package repository

import (
	"time"

	"github.com/shostako/yasuragi-no-sato/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// POST /reservations → 予約作成
func (r *ReservationRepository) Create(tx *gorm.DB, res *entity.Reservation) error {
	return tx.Create(res).Error
}

func (r *ReservationRepository) Get(id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := r.DB.First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// GET /admin/reservations → 新しい順、ステータス絞り込み
func (r *ReservationRepository) List(status string) ([]entity.Reservation, error) {
	var out []entity.Reservation
	db := r.DB.Order("created_at DESC")
	if status != "" && status != "all" {
		db = db.Where("status = ?", status)
	}
	err := db.Find(&out).Error
	return out, err
}

// GET /member/reservations → 自分の予約履歴（閲覧のみ）
type ReservationSummary struct {
	ID           uint      `json:"id"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"timeSlot"`
	Participants int       `json:"participants"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *ReservationRepository) ListForUser(uid uint) ([]ReservationSummary, error) {
	var out []ReservationSummary
	err := r.DB.Model(&entity.Reservation{}).
		Select("id, date, time_slot, participants, status, created_at").
		Where("uid = ?", uid).
		Order("created_at DESC").
		Scan(&out).Error
	return out, err
}

// 管理画面の統計用
func (r *ReservationRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	if err := r.DB.Model(&entity.Reservation{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[string]int64{}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

// OccupancyIndex は日付→埋まっている枠の一覧。
// 真実の源であるキャンセル以外の予約から毎回組み立てる（公開カレンダー用）。
func (r *ReservationRepository) OccupancyIndex() (map[string][]string, error) {
	var rows []struct {
		Date     string
		TimeSlot string
	}
	if err := r.DB.Model(&entity.Reservation{}).
		Select("date, time_slot").
		Where("status <> ?", entity.ReservationCancelled).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	idx := map[string][]string{}
	for _, row := range rows {
		idx[row.Date] = append(idx[row.Date], row.TimeSlot)
	}
	return idx, nil
}

func (r *ReservationRepository) UpdateStatus(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&entity.Reservation{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *ReservationRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Reservation{}, id).Error
}

// ---------------- BookedSlots（非正規化インデックス） ----------------

// UpsertBookedSlot はcreate-or-overwrite。初回確定もキャンセル復帰も同じ経路
func (r *ReservationRepository) UpsertBookedSlot(tx *gorm.DB, slot *entity.BookedSlot) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_id"}},
		UpdateAll: true,
	}).Create(slot).Error
}

// DeleteBookedSlot は存在しないキーでもエラーにしない
func (r *ReservationRepository) DeleteBookedSlot(tx *gorm.DB, slotID string) error {
	return tx.Delete(&entity.BookedSlot{}, "slot_id = ?", slotID).Error
}

func (r *ReservationRepository) GetBookedSlot(slotID string) (*entity.BookedSlot, error) {
	var slot entity.BookedSlot
	if err := r.DB.First(&slot, "slot_id = ?", slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}
