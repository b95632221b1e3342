package graph

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
)

// renderBase is the shorter dimension of locally rendered canvases
// (solid fills, pads, pose guides, sketches).
const renderBase = 512

// decodeImage decodes an embedded image payload into pixels. Any format
// registered with image (png, jpeg, gif) is accepted regardless of the
// payload's declared MIME type.
func decodeImage(p ImagePayload) (image.Image, error) {
	raw, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return img, nil
}

// encodePNG encodes pixels back into an embedded payload.
func encodePNG(img image.Image) (ImagePayload, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ImagePayload{}, fmt.Errorf("encode png: %w", err)
	}
	return ImagePayload{
		Base64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		MIMEType: "image/png",
	}, nil
}

// parseAspect parses a "W:H" ratio string such as "16:9".
func parseAspect(s string) (float64, error) {
	var w, h float64
	if _, err := fmt.Sscanf(s, "%f:%f", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, fmt.Errorf("invalid aspect ratio %q", s)
	}
	return w / h, nil
}

// parseHexColor parses "#RRGGBB" (or "#RGB") into an opaque color.
func parseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("length %d", len(s))
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

// aspectCanvas returns canvas dimensions for a ratio with the shorter
// side fixed at renderBase.
func aspectCanvas(ratio float64) (int, int) {
	if ratio >= 1 {
		return int(math.Round(renderBase * ratio)), renderBase
	}
	return renderBase, int(math.Round(renderBase / ratio))
}

// renderSolid produces a flat color canvas at the given aspect ratio.
func renderSolid(col color.Color, ratio float64) image.Image {
	w, h := aspectCanvas(ratio)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	return img
}

// cropToAspect cuts the largest window of the requested ratio out of
// the image, anchored by direction (center, top, bottom, left, right).
func cropToAspect(img image.Image, ratio float64, direction string) image.Image {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	tw, th := w, w/ratio
	if th > h {
		th = h
		tw = h * ratio
	}

	// Anchor offsets: default centered.
	ox := (w - tw) / 2
	oy := (h - th) / 2
	switch direction {
	case "top":
		oy = 0
	case "bottom":
		oy = h - th
	case "left":
		ox = 0
	case "right":
		ox = w - tw
	}

	rect := image.Rect(
		b.Min.X+int(math.Round(ox)),
		b.Min.Y+int(math.Round(oy)),
		b.Min.X+int(math.Round(ox+tw)),
		b.Min.Y+int(math.Round(oy+th)),
	)
	out := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

// padToAspect places the image on a larger canvas of the requested
// ratio filled with the given color, anchored by direction. When the
// image already matches the target ratio the output equals the input.
func padToAspect(img image.Image, ratio float64, direction string, fill color.Color) image.Image {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	cw, ch := w, w/ratio
	if ch < h {
		ch = h
		cw = h * ratio
	}

	ox := (cw - w) / 2
	oy := (ch - h) / 2
	switch direction {
	case "top":
		oy = 0
	case "bottom":
		oy = ch - h
	case "left":
		ox = 0
	case "right":
		ox = cw - w
	}

	out := image.NewNRGBA(image.Rect(0, 0, int(math.Round(cw)), int(math.Round(ch))))
	draw.Draw(out, out.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	target := image.Rect(
		int(math.Round(ox)), int(math.Round(oy)),
		int(math.Round(ox))+b.Dx(), int(math.Round(oy))+b.Dy(),
	)
	draw.Draw(out, target, img, b.Min, draw.Over)
	return out
}

// stitchImages joins two images edge to edge. Horizontal places b to
// the right of a; vertical places b below a. The off-axis dimension is
// the max of the two, remaining space left transparent.
func stitchImages(a, b image.Image, mode string) image.Image {
	ab, bb := a.Bounds(), b.Bounds()
	var out *image.NRGBA
	if mode == "vertical" {
		w := max(ab.Dx(), bb.Dx())
		out = image.NewNRGBA(image.Rect(0, 0, w, ab.Dy()+bb.Dy()))
		draw.Draw(out, image.Rect(0, 0, ab.Dx(), ab.Dy()), a, ab.Min, draw.Src)
		draw.Draw(out, image.Rect(0, ab.Dy(), bb.Dx(), ab.Dy()+bb.Dy()), b, bb.Min, draw.Src)
	} else {
		h := max(ab.Dy(), bb.Dy())
		out = image.NewNRGBA(image.Rect(0, 0, ab.Dx()+bb.Dx(), h))
		draw.Draw(out, image.Rect(0, 0, ab.Dx(), ab.Dy()), a, ab.Min, draw.Src)
		draw.Draw(out, image.Rect(ab.Dx(), 0, ab.Dx()+bb.Dx(), bb.Dy()), b, bb.Min, draw.Src)
	}
	return out
}

// Stroke is one freehand element on a sketch or annotation canvas:
// a polyline in percentage coordinates with a brush color and size.
type Stroke struct {
	Points []Point `json:"points"`
	Color  string  `json:"color,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// strokesFromData reads the "elements" data key, accepting either the
// native []Stroke or the generic []any shape produced by JSON reload.
func strokesFromData(v any) ([]Stroke, error) {
	if v == nil {
		return nil, nil
	}
	if strokes, ok := v.([]Stroke); ok {
		return strokes, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	var strokes []Stroke
	if err := json.Unmarshal(raw, &strokes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return strokes, nil
}

// jointsFromData reads the "joints" data key with the same tolerance.
func jointsFromData(v any) (map[string]Point, error) {
	if v == nil {
		return nil, nil
	}
	if joints, ok := v.(map[string]Point); ok {
		return joints, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	var joints map[string]Point
	if err := json.Unmarshal(raw, &joints); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return joints, nil
}

// poseLimbs pairs the joints into the skeleton's limb segments.
var poseLimbs = [][2]string{
	{"head", "neck"},
	{"neck", "leftShoulder"}, {"neck", "rightShoulder"},
	{"leftShoulder", "leftElbow"}, {"leftElbow", "leftWrist"},
	{"rightShoulder", "rightElbow"}, {"rightElbow", "rightWrist"},
	{"neck", "torso"},
	{"torso", "leftHip"}, {"torso", "rightHip"},
	{"leftHip", "leftKnee"}, {"leftKnee", "leftAnkle"},
	{"rightHip", "rightKnee"}, {"rightKnee", "rightAnkle"},
}

// renderPose rasterizes a joint map into a skeleton guide image: white
// limbs and joint markers on black, the usual control-image convention.
// Joint coordinates are percentages of the canvas.
func renderPose(joints map[string]Point) image.Image {
	const w, h = renderBase, renderBase * 3 / 2
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	at := func(p Point) (float64, float64) {
		return p.X / 100 * w, p.Y / 100 * h
	}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for _, limb := range poseLimbs {
		a, aok := joints[limb[0]]
		b, bok := joints[limb[1]]
		if !aok || !bok {
			continue
		}
		ax, ay := at(a)
		bx, by := at(b)
		drawThickLine(img, ax, ay, bx, by, 4, white)
	}
	for _, p := range joints {
		x, y := at(p)
		fillCircle(img, x, y, 6, white)
	}
	return img
}

// renderStrokes rasterizes freehand strokes over an optional background
// image. With no background the canvas is white (the sketch surface);
// annotation passes its loaded backdrop.
func renderStrokes(strokes []Stroke, bg image.Image) image.Image {
	var img *image.NRGBA
	if bg != nil {
		b := bg.Bounds()
		img = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(img, img.Bounds(), bg, b.Min, draw.Src)
	} else {
		img = image.NewNRGBA(image.Rect(0, 0, renderBase, renderBase))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}

	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	for _, s := range strokes {
		col := color.NRGBA{A: 0xff} // default black
		if s.Color != "" {
			if parsed, err := parseHexColor(s.Color); err == nil {
				col = parsed
			}
		}
		size := s.Size
		if size <= 0 {
			size = 3
		}
		for i := 1; i < len(s.Points); i++ {
			a, b := s.Points[i-1], s.Points[i]
			drawThickLine(img, a.X/100*w, a.Y/100*h, b.X/100*w, b.Y/100*h, size, col)
		}
		if len(s.Points) == 1 {
			p := s.Points[0]
			fillCircle(img, p.X/100*w, p.Y/100*h, size/2, col)
		}
	}
	return img
}

// drawThickLine stamps circles along the segment. Crude but dependency
// free, and plenty for guide images the model only looks at.
func drawThickLine(img *image.NRGBA, x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	steps := int(length) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		fillCircle(img, x0+dx*t, y0+dy*t, width/2, col)
	}
}

func fillCircle(img *image.NRGBA, cx, cy, r float64, col color.Color) {
	if r < 1 {
		r = 1
	}
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				if image.Pt(x, y).In(img.Bounds()) {
					img.Set(x, y, col)
				}
			}
		}
	}
}
