// Package belial ищет на экране надписи заданных цветов и кликает по ним
package belial

import (
	"context"
	"fmt"
	"image"
	"time"

	"wonryeol/internal/click_manager"
	imgpkg "wonryeol/internal/image"
	"wonryeol/internal/logger"
	"wonryeol/internal/screenshot"
	"wonryeol/internal/scripts"
	"wonryeol/internal/status"
)

// Feature имя функции в статусах и задачах
const Feature = "belial"

// BucketSize сторона ячейки, в которой центры считаются одной надписью
const BucketSize = 20

// VerifyRadius полуразмер патча повторной проверки перед кликом (5x5)
const VerifyRadius = 2

// Params параметры одного прохода поиска
type Params struct {
	Colors       []imgpkg.RGB
	Excludes     []imgpkg.RGB
	Tolerance    int
	ExcludeRange int
	Step         int
}

// Find проходит снимок по цветам в порядке регистрации и построчно,
// возвращая абсолютные координаты первого принятого кандидата.
// blocked отсекает кандидатов в окне подавления повторных кликов.
func Find(img *image.RGBA, origin image.Point, p Params, blocked func(image.Point) bool) (image.Point, bool) {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	step := p.Step
	if step < 1 {
		step = 1
	}
	visited := make(map[image.Point]struct{})

	for _, target := range p.Colors {
		for y := 0; y < height; y += step {
			for x := 0; x < width; x += step {
				if !target.Matches(imgpkg.PixelAt(img, x, y), p.Tolerance) {
					continue
				}
				center := imgpkg.FindTextCenter(img, image.Pt(x, y), target, p.Tolerance)

				bucket := image.Pt(center.X/BucketSize, center.Y/BucketSize)
				if _, seen := visited[bucket]; seen {
					continue
				}
				visited[bucket] = struct{}{}

				abs := origin.Add(center)
				if blocked != nil && blocked(abs) {
					continue
				}
				if len(p.Excludes) > 0 && imgpkg.HasExcludeColorNearby(img, center, p.ExcludeRange, p.Excludes, p.Tolerance) {
					continue
				}
				return abs, true
			}
		}
	}
	return image.Point{}, false
}

// Scanner цикл поиска и клика
type Scanner struct {
	Params     Params
	Area       image.Rectangle
	Verify     bool
	ClickDelay time.Duration

	capturer screenshot.Capturer
	clicker  *click_manager.ClickManager
	status   scripts.Publisher
	logger   *logger.LoggerManager
	now      func() time.Time
}

// NewScanner создает новый экземпляр Scanner
func NewScanner(p Params, area image.Rectangle, capturer screenshot.Capturer, clicker *click_manager.ClickManager, publisher scripts.Publisher, loggerManager *logger.LoggerManager) *Scanner {
	return &Scanner{
		Params:   p,
		Area:     area,
		capturer: capturer,
		clicker:  clicker,
		status:   publisher,
		logger:   loggerManager,
		now:      time.Now,
	}
}

// SearchAndClick один проход: снимок, поиск, не больше одного клика
func (s *Scanner) SearchAndClick() (bool, error) {
	if len(s.Params.Colors) == 0 || s.Area.Empty() {
		return false, nil
	}

	img, err := s.capturer.CaptureRect(s.Area)
	if err != nil {
		return false, fmt.Errorf("capture search area: %w", err)
	}

	now := s.now()
	blocked := func(p image.Point) bool {
		return s.clicker.Cooldown() != nil && s.clicker.Cooldown().Blocked(p, now)
	}
	target, ok := Find(img, s.Area.Min, s.Params, blocked)
	if !ok {
		return false, nil
	}

	if err := s.clicker.MoveTo(target); err != nil {
		return false, err
	}
	if s.Verify && s.excludedAt(target) {
		s.logger.Debug("🚫 Исключающий цвет под курсором (%d, %d), клик отменен", target.X, target.Y)
		return false, nil
	}
	if err := s.clicker.Fire(target, s.now()); err != nil {
		return false, err
	}
	return true, nil
}

// excludedAt повторная проверка центра патча 5x5 перед кликом
func (s *Scanner) excludedAt(p image.Point) bool {
	r := image.Rect(p.X-VerifyRadius, p.Y-VerifyRadius, p.X+VerifyRadius+1, p.Y+VerifyRadius+1)
	patch, err := s.capturer.CaptureRect(r)
	if err != nil {
		s.logger.LogError(err, "Ошибка повторного снимка")
		return false
	}
	center := imgpkg.PixelAt(patch, VerifyRadius, VerifyRadius)
	for _, ex := range s.Params.Excludes {
		if ex.Matches(center, s.Params.Tolerance) {
			return true
		}
	}
	return false
}

// Run крутит поиск каждые TickInterval до отмены ctx.
// Ошибки прохода логируются и считаются "ничего не найдено".
func (s *Scanner) Run(ctx context.Context) error {
	_ = s.status.Publish(Feature, "🟢 감지 중", status.Info)
	defer func() { _ = s.status.Publish(Feature, "⏸️ 대기 중", status.Info) }()

	clicks := 0
	for {
		found, err := s.SearchAndClick()
		if err != nil {
			s.logger.LogError(err, "Ошибка поиска")
		}
		if found {
			clicks++
			_ = s.status.Publish(Feature, fmt.Sprintf("🟢 클릭! (%s)", status.FormatCount(clicks)), status.Info)
			if err := scripts.Sleep(ctx, s.ClickDelay); err != nil {
				return nil
			}
		}
		if err := scripts.Sleep(ctx, scripts.TickInterval); err != nil {
			return nil
		}
	}
}
