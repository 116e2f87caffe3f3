// Package geometry holds the pure placement and dimension math shared by
// the crop, embed and thumbnail operators.
package geometry

import (
	"errors"
	"math"
)

// ErrOverflow is returned when checked arithmetic detects a wrapped
// product. It classifies as an internal error, not a processing error.
var ErrOverflow = errors.New("integer overflow")

// Position is a symbolic anchor used to place an inner rectangle within an
// outer one.
type Position int

const (
	Center Position = iota
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	TopLeft
)

func (p Position) String() string {
	switch p {
	case Top:
		return "top"
	case TopRight:
		return "top-right"
	case Right:
		return "right"
	case BottomRight:
		return "bottom-right"
	case Bottom:
		return "bottom"
	case BottomLeft:
		return "bottom-left"
	case Left:
		return "left"
	case TopLeft:
		return "top-left"
	default:
		return "center"
	}
}

// ParsePosition recognizes the anchor identifiers accepted on the query
// string. The empty string means center.
func ParsePosition(s string) (Position, bool) {
	switch s {
	case "", "center", "centre":
		return Center, true
	case "top":
		return Top, true
	case "top-right", "right-top":
		return TopRight, true
	case "right":
		return Right, true
	case "bottom-right", "right-bottom":
		return BottomRight, true
	case "bottom":
		return Bottom, true
	case "bottom-left", "left-bottom":
		return BottomLeft, true
	case "left":
		return Left, true
	case "top-left", "left-top":
		return TopLeft, true
	default:
		return Center, false
	}
}

// CalculatePosition computes the (left, top) placement of an inner
// rectangle within an outer rectangle for the given anchor. Symmetric
// anchors center the off-axis coordinate with truncating integer division,
// so an odd difference leaves the extra pixel on the far side. Results are
// not clamped: a negative offset means the inner rectangle extends past
// the outer one, which callers rely on when cropping beyond an edge.
func CalculatePosition(outerW, outerH, innerW, innerH int, pos Position) (left, top int) {
	switch pos {
	case Top:
		left = (outerW - innerW) / 2
	case TopRight:
		left = outerW - innerW
	case Right:
		left = outerW - innerW
		top = (outerH - innerH) / 2
	case BottomRight:
		left = outerW - innerW
		top = outerH - innerH
	case Bottom:
		left = (outerW - innerW) / 2
		top = outerH - innerH
	case BottomLeft:
		top = outerH - innerH
	case Left:
		top = (outerH - innerH) / 2
	case TopLeft:
		// (0, 0) by definition.
	default:
		left = (outerW - innerW) / 2
		top = (outerH - innerH) / 2
	}
	return left, top
}

// CheckedMultiply multiplies two signed 32-bit values and reports whether
// the product wrapped. Width/height and scale products go through here so
// oversized requests fail instead of silently truncating.
func CheckedMultiply(a, b int32) (int32, bool) {
	product := int64(a) * int64(b)
	return int32(product), product > math.MaxInt32 || product < math.MinInt32
}

// ScaleDimensions derives missing target dimensions from the source aspect
// ratio. A zero width or height is computed from the other axis; both zero
// yields the source dimensions unchanged.
func ScaleDimensions(srcW, srcH, targetW, targetH int) (int, int) {
	if targetW == 0 && targetH == 0 {
		return srcW, srcH
	}
	if targetW == 0 {
		targetW = int(math.Round(float64(targetH) * float64(srcW) / float64(srcH)))
		if targetW < 1 {
			targetW = 1
		}
	} else if targetH == 0 {
		targetH = int(math.Round(float64(targetW) * float64(srcH) / float64(srcW)))
		if targetH < 1 {
			targetH = 1
		}
	}
	return targetW, targetH
}
