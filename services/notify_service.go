package services

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/shostako/yasuragi-no-sato/configs"
	"gopkg.in/gomail.v2"
)

// NotifyService は予約・お問い合わせ受付後の管理者宛メール通知。
// ベストエフォートであり、失敗しても本体の書き込みには一切影響させない
type NotifyService struct {
	cfg *configs.Config
	// テストで差し替えるための送信フック
	send func(m *gomail.Message) error
}

func NewNotifyService(cfg *configs.Config) *NotifyService {
	s := &NotifyService{cfg: cfg}
	s.send = func(m *gomail.Message) error {
		d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		return d.DialAndSend(m)
	}
	return s
}

type NotifyData struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Date         string `json:"date"`
	TimeSlot     string `json:"timeSlot"`
	Participants int    `json:"participants"`
	Message      string `json:"message"`
}

type NotifyRequest struct {
	Type string     `json:"type"` // reservation | contact
	Data NotifyData `json:"data"`
}

// Validate は通知本文に入る値の検査。name/emailは必須、長さに上限あり
func (s *NotifyService) Validate(req *NotifyRequest) map[string]string {
	errs := map[string]string{}

	if req.Type != "reservation" && req.Type != "contact" {
		errs["type"] = "type must be reservation or contact"
	}
	name := strings.TrimSpace(req.Data.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if len([]rune(name)) > 100 {
		errs["name"] = "name too long"
	}
	email := strings.TrimSpace(req.Data.Email)
	if email == "" {
		errs["email"] = "email is required"
	} else if !emailRe.MatchString(email) || len(email) > 254 {
		errs["email"] = "invalid email"
	}
	if len([]rune(req.Data.Message)) > 5000 {
		errs["message"] = "message too long"
	}

	return errs
}

// Send は通知メールを送る。SMTP未設定なら notified=false で静かに成功扱い。
// 戻り値のerrorは呼び出し側でログに落とすだけで、ユーザーには見せない
func (s *NotifyService) Send(req *NotifyRequest) (notified bool, err error) {
	if s.cfg.SMTPHost == "" || s.cfg.AdminEmail == "" {
		log.Println("⚠️ notify skipped: SMTP_HOST or ADMIN_EMAIL is not set")
		return false, nil
	}

	subject, body := formatNotifyEmail(req)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.SMTPUser, "やすらぎの郷 通知"))
	m.SetHeader("To", s.cfg.AdminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return false, err
	}
	return true, nil
}

// NotifyReservation はフォーム処理の後段から呼ぶベストエフォート通知
func (s *NotifyService) NotifyReservation(data NotifyData) {
	s.fireAndForget(&NotifyRequest{Type: "reservation", Data: data})
}

func (s *NotifyService) NotifyContact(data NotifyData) {
	s.fireAndForget(&NotifyRequest{Type: "contact", Data: data})
}

func (s *NotifyService) fireAndForget(req *NotifyRequest) {
	if errs := s.Validate(req); len(errs) > 0 {
		log.Printf("notify skipped: invalid payload: %v", errs)
		return
	}
	if _, err := s.Send(req); err != nil {
		// 通知失敗は運用者向けログのみ。本体処理には伝播させない
		log.Printf("notify error: %v", err)
	}
}

// 補間する値はすべてHTMLエスケープしてから本文に入れる
func formatNotifyEmail(req *NotifyRequest) (subject, body string) {
	d := req.Data
	name := html.EscapeString(d.Name)
	email := html.EscapeString(d.Email)
	phone := html.EscapeString(d.Phone)
	if phone == "" {
		phone = "未入力"
	}

	if req.Type == "reservation" {
		date := html.EscapeString(d.Date)
		slot := html.EscapeString(d.TimeSlot)
		subject = fmt.Sprintf("【新規予約】%s様 - %s %s", name, date, slot)
		body = fmt.Sprintf(`<!DOCTYPE html>
<html lang="ja"><head><meta charset="UTF-8"></head><body>
<div style="font-family: 'Hiragino Sans', 'Meiryo', sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #5D4E37; border-bottom: 2px solid #B8860B; padding-bottom: 10px;">新規予約のお知らせ</h2>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 10px; color: #666; width: 120px;">お名前</td><td style="padding: 10px;"><strong>%s</strong> 様</td></tr>
    <tr><td style="padding: 10px; color: #666;">メール</td><td style="padding: 10px;">%s</td></tr>
    <tr><td style="padding: 10px; color: #666;">電話番号</td><td style="padding: 10px;">%s</td></tr>
    <tr><td style="padding: 10px; color: #666;">希望日</td><td style="padding: 10px;"><strong>%s</strong></td></tr>
    <tr><td style="padding: 10px; color: #666;">時間帯</td><td style="padding: 10px;"><strong>%s</strong></td></tr>
    <tr><td style="padding: 10px; color: #666;">見学人数</td><td style="padding: 10px;">%d名</td></tr>
  </table>
  <p style="color: #666; font-size: 14px;">管理画面で詳細を確認してください。</p>
</div>
</body></html>`, name, email, phone, date, slot, d.Participants)
		return subject, body
	}

	message := html.EscapeString(d.Message)
	subject = fmt.Sprintf("【新規お問い合わせ】%s様", name)
	body = fmt.Sprintf(`<!DOCTYPE html>
<html lang="ja"><head><meta charset="UTF-8"></head><body>
<div style="font-family: 'Hiragino Sans', 'Meiryo', sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #5D4E37; border-bottom: 2px solid #B8860B; padding-bottom: 10px;">新規お問い合わせ</h2>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 10px; color: #666; width: 120px;">お名前</td><td style="padding: 10px;"><strong>%s</strong> 様</td></tr>
    <tr><td style="padding: 10px; color: #666;">メール</td><td style="padding: 10px;">%s</td></tr>
  </table>
  <div style="background: #f9f9f9; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <p style="color: #666; font-size: 12px; margin: 0 0 10px 0;">お問い合わせ内容：</p>
    <p style="margin: 0; white-space: pre-wrap;">%s</p>
  </div>
  <p style="color: #666; font-size: 14px;">管理画面で詳細を確認してください。</p>
</div>
</body></html>`, name, email, message)
	return subject, body
}
