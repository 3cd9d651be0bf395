package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shostako/yasuragi-no-sato/entity"
	"github.com/shostako/yasuragi-no-sato/repository"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail は local@domain.tld の素朴な形だけを見る（元サイトと同じ基準）
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

type ReservationService struct {
	DB   *gorm.DB
	Repo *repository.ReservationRepository
}

func NewReservationService(db *gorm.DB, repo *repository.ReservationRepository) *ReservationService {
	return &ReservationService{DB: db, Repo: repo}
}

// ----- DTOs from Controller -----

type CreateReservationReq struct {
	Date         string `json:"date"`
	TimeSlot     string `json:"timeSlot"`
	Name         string `json:"name"`
	Furigana     string `json:"furigana"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Participants int    `json:"participants"`
	Message      string `json:"message"`
	Privacy      bool   `json:"privacy"`
}

// Validate は項目別エラーを返す。1項目でも残っていれば保存しない
func (s *ReservationService) Validate(req *CreateReservationReq) map[string]string {
	errs := map[string]string{}

	if req.Date == "" {
		errs["date"] = "ご希望日を選択してください"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errs["date"] = "ご希望日の形式が正しくありません"
	}
	if req.TimeSlot == "" {
		errs["timeSlot"] = "時間枠を選択してください"
	} else if !ValidTimeSlot(req.TimeSlot) {
		errs["timeSlot"] = "時間枠を選択してください"
	}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "お名前を入力してください"
	}
	if strings.TrimSpace(req.Furigana) == "" {
		errs["furigana"] = "フリガナを入力してください"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "メールアドレスを入力してください"
	} else if !emailRe.MatchString(req.Email) {
		errs["email"] = "正しいメールアドレスを入力してください"
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "電話番号を入力してください"
	}
	if req.Participants < 1 || req.Participants > 5 {
		errs["participants"] = "見学人数は1〜5名で入力してください"
	}
	if !req.Privacy {
		errs["privacy"] = "プライバシーポリシーに同意してください"
	}

	return errs
}

// Create は公開フォームからの新規予約。ステータスは必ずpendingで始まる
func (s *ReservationService) Create(req *CreateReservationReq, uid *uint) (*entity.Reservation, error) {
	res := &entity.Reservation{
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
		Name:         req.Name,
		Furigana:     req.Furigana,
		Email:        req.Email,
		Phone:        req.Phone,
		Participants: req.Participants,
		Status:       entity.ReservationPending,
		UID:          uid,
	}
	if req.Relationship != "" {
		res.Relationship = &req.Relationship
	}
	if req.Message != "" {
		res.Message = &req.Message
	}

	if err := s.Repo.Create(s.DB, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Calendar は公開カレンダー1ヶ月分（選択可否と枠の空き）
func (s *ReservationService) Calendar(year int, month time.Month, today time.Time) (*CalendarMonth, error) {
	occupancy, err := s.Repo.OccupancyIndex()
	if err != nil {
		return nil, err
	}
	cal := BuildMonth(year, month, today, occupancy)
	return &cal, nil
}

var ErrInvalidStatus = errors.New("invalid status")

// ChangeStatus は予約ステータス変更とBookedSlotインデックスの更新を
// 1トランザクションで行う。途中で失敗したら両方とも巻き戻り、
// ステータスとインデックスが食い違った状態は外から観測されない。
//
//   - cancelled: 枠を解放（インデックス削除。無くても害はない）
//   - confirmed: 枠を占有（upsert。初回確定もキャンセル復帰も同じ）
//
// 同じ枠を同時に押さえようとする2操作への楽観ロックは意図的に無い。
// 二重予約は管理者が手で解消する運用（仕様上の判断、DESIGN.md参照）
func (s *ReservationService) ChangeStatus(id uint, newStatus string) (*entity.Reservation, error) {
	if newStatus != entity.ReservationConfirmed && newStatus != entity.ReservationCancelled {
		return nil, ErrInvalidStatus
	}

	res, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}

	slotID := entity.SlotKey(res.Date, res.TimeSlot)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpdateStatus(tx, id, newStatus); err != nil {
			return err
		}

		switch newStatus {
		case entity.ReservationCancelled:
			if err := s.Repo.DeleteBookedSlot(tx, slotID); err != nil {
				return err
			}
		case entity.ReservationConfirmed:
			slot := &entity.BookedSlot{
				SlotID:        slotID,
				Date:          res.Date,
				TimeSlot:      res.TimeSlot,
				ReservationID: res.ID,
			}
			if err := s.Repo.UpsertBookedSlot(tx, slot); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Status = newStatus
	return res, nil
}

// Delete は予約本体とBookedSlotを同一トランザクションで消す。
// すでにcancelledならインデックス行は存在しない前提なので触らない
func (s *ReservationService) Delete(id uint) error {
	res, err := s.Repo.Get(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Delete(tx, id); err != nil {
			return err
		}
		if res.Status != entity.ReservationCancelled {
			slotID := entity.SlotKey(res.Date, res.TimeSlot)
			if err := s.Repo.DeleteBookedSlot(tx, slotID); err != nil {
				return err
			}
		}
		return nil
	})
}
