package mapper

import (
	"scene-compiler/internal/compiler/models"
	"scene-compiler/internal/compiler/parser"

	"seehuhn.de/go/geom/rect"
)

// DeriveTransform maps the layout's declared bounds onto the canvas. A
// non-positive canvas dimension keeps native scale on that axis.
func DeriveTransform(bounds rect.Rect, canvas models.Canvas) models.Transform {
	w := bounds.URx - bounds.LLx
	h := bounds.URy - bounds.LLy
	if w <= 0 || h <= 0 {
		bounds = rect.Rect{URx: parser.DefaultNativeSize, URy: parser.DefaultNativeSize}
		w, h = parser.DefaultNativeSize, parser.DefaultNativeSize
	}

	sx, sy := 1.0, 1.0
	if canvas.Width > 0 {
		sx = canvas.Width / w
	}
	if canvas.Height > 0 {
		sy = canvas.Height / h
	}

	return models.Transform{
		ScaleX:  sx,
		ScaleY:  sy,
		OffsetX: -bounds.LLx * sx,
		OffsetY: -bounds.LLy * sy,
	}
}
