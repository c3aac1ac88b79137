package entity

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

var ErrRegionFormat = errors.New("region must be x,y,width,height")

// Region описывает прямоугольную область интереса на изображении
type Region struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// Rect возвращает область в виде image.Rectangle
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty сообщает, что у области нет площади
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center возвращает координаты центра области
func (r Region) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ParseRegion разбирает область из строки вида "x,y,width,height"
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("%w: %q", ErrRegionFormat, s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("%w: %q", ErrRegionFormat, s)
		}
		v[i] = n
	}
	return Region{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
