package services

import (
	"strings"
	"testing"

	"github.com/shostako/yasuragi-no-sato/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestNotifyValidate(t *testing.T) {
	s := NewNotifyService(&configs.Config{})

	t.Run("正常", func(t *testing.T) {
		errs := s.Validate(&NotifyRequest{
			Type: "contact",
			Data: NotifyData{Name: "山田", Email: "yamada@example.com", Message: "質問です"},
		})
		assert.Empty(t, errs)
	})

	t.Run("typeの検査", func(t *testing.T) {
		errs := s.Validate(&NotifyRequest{Type: "spam", Data: NotifyData{Name: "a", Email: "a@b.jp"}})
		assert.Contains(t, errs, "type")
	})

	t.Run("必須と形式", func(t *testing.T) {
		errs := s.Validate(&NotifyRequest{Type: "contact", Data: NotifyData{}})
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "email")

		errs = s.Validate(&NotifyRequest{Type: "contact", Data: NotifyData{Name: "a", Email: "bad"}})
		assert.Contains(t, errs, "email")
	})

	t.Run("長さ上限", func(t *testing.T) {
		errs := s.Validate(&NotifyRequest{Type: "contact", Data: NotifyData{
			Name:  strings.Repeat("あ", 101),
			Email: "a@b.jp",
		}})
		assert.Contains(t, errs, "name")

		errs = s.Validate(&NotifyRequest{Type: "contact", Data: NotifyData{
			Name:    "a",
			Email:   strings.Repeat("a", 250) + "@b.jp",
			Message: strings.Repeat("あ", 5001),
		}})
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "message")
	})
}

func TestNotifySendWithoutSMTPConfig(t *testing.T) {
	// SMTP未設定は「静かに成功扱い」。エラーにはならない
	s := NewNotifyService(&configs.Config{})
	notified, err := s.Send(&NotifyRequest{
		Type: "contact",
		Data: NotifyData{Name: "山田", Email: "yamada@example.com"},
	})
	require.NoError(t, err)
	assert.False(t, notified)
}

func TestNotifySend(t *testing.T) {
	cfg := &configs.Config{
		SMTPHost:   "smtp.example.com",
		SMTPPort:   587,
		AdminEmail: "admin@example.com",
	}
	s := NewNotifyService(cfg)

	var sent *gomail.Message
	s.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	notified, err := s.Send(&NotifyRequest{
		Type: "reservation",
		Data: NotifyData{
			Name: "山田", Email: "yamada@example.com",
			Date: "2026-02-10", TimeSlot: "am", Participants: 2,
		},
	})
	require.NoError(t, err)
	assert.True(t, notified)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"admin@example.com"}, sent.GetHeader("To"))
	assert.Contains(t, sent.GetHeader("Subject")[0], "新規予約")
}

func TestFormatNotifyEmailEscapesHTML(t *testing.T) {
	// 補間される値は必ずエスケープされる（インジェクション対策）
	subject, body := formatNotifyEmail(&NotifyRequest{
		Type: "contact",
		Data: NotifyData{
			Name:    "<script>alert(1)</script>",
			Email:   "a@b.jp",
			Message: "<img src=x onerror=alert(1)>",
		},
	})
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<img src=x")
	assert.NotContains(t, subject, "<script>")
}

func TestFormatNotifyEmailReservation(t *testing.T) {
	subject, body := formatNotifyEmail(&NotifyRequest{
		Type: "reservation",
		Data: NotifyData{
			Name: "山田", Email: "yamada@example.com", Phone: "",
			Date: "2026-02-10", TimeSlot: "am", Participants: 3,
		},
	})
	assert.Equal(t, "【新規予約】山田様 - 2026-02-10 am", subject)
	assert.Contains(t, body, "2026-02-10")
	assert.Contains(t, body, "3名")
	assert.Contains(t, body, "未入力") // 電話番号なし
}
