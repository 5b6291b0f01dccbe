package service

import (
	"fmt"
	"html"
	"io"
	"strings"

	"tripplanner/config"
	"tripplanner/models"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否已启用邮件
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendItinerary 把行程发到指定邮箱，附带日历文件（ics 为空时不附带）
func (s *EmailService) SendItinerary(toEmail string, trip *models.Trip, ics string) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用，请配置 TRIPPLANNER_EMAIL_ENABLED=true")
	}

	subject := fmt.Sprintf("【AI行程规划】%s", trip.Title)
	m := s.newMessage(toEmail, subject, s.generateItineraryBody(trip))
	if ics != "" {
		m.Attach(trip.ID+".ics", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.WriteString(w, ics)
			return err
		}), gomail.SetHeader(map[string][]string{"Content-Type": {"text/calendar; charset=utf-8"}}))
	}
	return s.dialAndSend(m)
}

// generateItineraryBody 生成行程邮件内容
func (s *EmailService) generateItineraryBody(trip *models.Trip) string {
	var days strings.Builder
	for i, day := range trip.Days {
		fmt.Fprintf(&days, `<div class="day"><h3>第 %d 天 · %s</h3><ul>`, i+1, html.EscapeString(day.Date))
		for _, it := range day.SortedItems() {
			clock := it.Time
			if clock == "" {
				clock = "--:--"
			}
			fmt.Fprintf(&days, `<li><span class="time">[%s]</span> %s <span class="tag">%s</span>`,
				clock, html.EscapeString(it.Title), TypeName(it.Type))
			if it.CostEstimate != nil {
				fmt.Fprintf(&days, ` <span class="cost">%s</span>`, html.EscapeString(FormatAmount(*it.CostEstimate, trip.Budget.Currency)))
			}
			days.WriteString("</li>")
		}
		days.WriteString("</ul></div>")
	}

	var budget strings.Builder
	for _, c := range trip.Budget.Breakdown {
		fmt.Fprintf(&budget, "<tr><td>%s</td><td>%s</td></tr>",
			html.EscapeString(c.Category), html.EscapeString(FormatAmount(c.Estimate, trip.Budget.Currency)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 640px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #7c3aed); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .header p { margin: 8px 0 0; opacity: 0.9; }
        .content { padding: 30px; }
        .day h3 { color: #1d4ed8; margin: 20px 0 8px; }
        .day ul { padding-left: 18px; margin: 0; }
        .day li { color: #333; line-height: 1.8; }
        .time { color: #6b7280; font-family: 'Courier New', monospace; }
        .tag { background: #eff6ff; color: #2563eb; border-radius: 4px; padding: 0 6px; font-size: 12px; }
        .cost { color: #059669; font-size: 13px; }
        table { width: 100%%; border-collapse: collapse; margin-top: 10px; }
        td { border-bottom: 1px solid #eee; padding: 8px 4px; }
        .total { font-weight: bold; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>✈️ %s</h1>
            <p>%s · %s 至 %s</p>
        </div>
        <div class="content">
            %s
            <h3>预算</h3>
            <table>
                %s
                <tr class="total"><td>合计</td><td>%s</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© AI行程规划</p>
        </div>
    </div>
</body>
</html>
`,
		html.EscapeString(trip.Title),
		html.EscapeString(trip.Destination), trip.StartDate, trip.EndDate,
		days.String(),
		budget.String(),
		html.EscapeString(FormatAmount(trip.Budget.TotalEstimate, trip.Budget.Currency)),
	)
}

func (s *EmailService) newMessage(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

// dialAndSend 发送邮件
func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
