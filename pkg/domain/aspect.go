package domain

import (
	"errors"
	"math"
)

// AspectRatio はサポートする縦横比の閉集合です。
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectPortrait  AspectRatio = "3:4"
	AspectTall      AspectRatio = "9:16"
	AspectLandscape AspectRatio = "4:3"
	AspectWide      AspectRatio = "16:9"
)

// ErrInvalidDimensions は正でない寸法が渡された場合に返されます。
var ErrInvalidDimensions = errors.New("image dimensions must be positive")

// aspectTargets は列挙順を保持した比較対象です。同差の場合は先勝ちで、
// 結果が決定的になります。
var aspectTargets = []struct {
	ratio AspectRatio
	value float64
}{
	{AspectSquare, 1.0},
	{AspectPortrait, 3.0 / 4.0},
	{AspectTall, 9.0 / 16.0},
	{AspectLandscape, 4.0 / 3.0},
	{AspectWide, 16.0 / 9.0},
}

// ClassifyAspectRatio はピクセル寸法を最も近いサポート比に分類します。
// 正の寸法に対しては必ずいずれかの値を返します。
func ClassifyAspectRatio(width, height int) (AspectRatio, error) {
	if width <= 0 || height <= 0 {
		return "", ErrInvalidDimensions
	}

	ratio := float64(width) / float64(height)

	best := aspectTargets[0].ratio
	bestDiff := math.Abs(ratio - aspectTargets[0].value)
	for _, target := range aspectTargets[1:] {
		if diff := math.Abs(ratio - target.value); diff < bestDiff {
			best = target.ratio
			bestDiff = diff
		}
	}
	return best, nil
}
