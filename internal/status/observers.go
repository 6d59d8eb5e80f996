package status

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gen2brain/beeep"
	"github.com/hako/durafmt"

	"wonryeol/internal/logger"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:y,wk:wk,d:d,h:h,m:m,s:s,ms:ms,us:us")

// FormatCount число с разделителями тысяч
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatDuration короткая запись длительности, не больше двух единиц
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

// LogSink пишет все обновления в журнал, пока канал открыт
func LogSink(updates <-chan Update, loggerManager *logger.LoggerManager) {
	for u := range updates {
		switch u.Level {
		case Alert:
			loggerManager.Error("[%s] %s", u.Feature, u.Text)
		default:
			loggerManager.Info("[%s] %s", u.Feature, u.Text)
		}
	}
}

// Notifier показывает уведомления рабочего стола для Done и Alert
type Notifier struct {
	Title  string
	notify func(title, body string) error
}

// NewDesktopNotifier уведомления через beeep
func NewDesktopNotifier(title string) *Notifier {
	return &Notifier{
		Title: title,
		notify: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}
}

func headless() bool {
	return runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// Run показывает уведомления, пока канал открыт; ошибки уведомлений
// не влияют на работу
func (n *Notifier) Run(updates <-chan Update, loggerManager *logger.LoggerManager) {
	for u := range updates {
		if u.Level < Done || headless() {
			continue
		}
		body := fmt.Sprintf("%s: %s", u.Feature, u.Text)
		if err := n.notify(n.Title, body); err != nil {
			loggerManager.Debug("Уведомление не показано: %v", err)
		}
	}
}
