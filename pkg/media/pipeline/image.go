package pipeline

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 85

// decodableFormats are the raster formats the transform step understands.
// Anything else in the image group (ico) passes through untouched.
var decodableFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
}

// transformImage applies the configured image processing to the spooled
// file in place and returns the extension the stored file should carry.
// Re-encoding inherently drops EXIF and other metadata blocks.
func (p *Pipeline) transformImage(tempPath, ext string) (string, error) {
	if ext == "ico" {
		return ext, nil
	}

	f, err := os.Open(tempPath)
	if err != nil {
		return "", err
	}
	cfg, format, err := image.DecodeConfig(f)
	_ = f.Close()
	if err != nil || !decodableFormats[format] {
		p.logger.Warn().Str("ext", ext).Str("format", format).Msg("Claimed image failed to decode")
		return "", InvalidContentError{Name: tempPath}
	}

	needResize := (p.settings.MaxWidth > 0 && cfg.Width > p.settings.MaxWidth) ||
		(p.settings.MaxHeight > 0 && cfg.Height > p.settings.MaxHeight)
	toWebp := p.settings.AutoWebp && (format == "jpeg" || format == "png")
	// EXIF lives in JPEG; other formats are only re-encoded when resized
	// or converted.
	reencode := needResize || toWebp || (p.settings.StripExif && format == "jpeg")

	if !reencode {
		return ext, nil
	}

	f, err = os.Open(tempPath)
	if err != nil {
		return "", err
	}
	img, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return "", InvalidContentError{Name: tempPath}
	}

	if needResize {
		img = downscale(img, p.settings.MaxWidth, p.settings.MaxHeight)
	}

	outFormat := format
	outExt := ext
	if toWebp {
		outFormat = "webp"
		outExt = "webp"
	}

	if err := p.reencode(tempPath, img, outFormat); err != nil {
		return "", err
	}
	return outExt, nil
}

// reencode writes img in the given format next to the spooled file, then
// renames it over the original so the pipeline keeps a single temp artifact.
func (p *Pipeline) reencode(tempPath string, img image.Image, format string) error {
	encPath := tempPath + ".enc"
	out, err := os.OpenFile(encPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}

	switch format {
	case "jpeg":
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(out, img)
	case "gif":
		err = gif.Encode(out, img, nil)
	case "bmp":
		err = bmp.Encode(out, img)
	case "webp":
		err = nativewebp.Encode(out, img, nil)
	default:
		err = InvalidContentError{Name: tempPath}
	}

	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		p.discard(encPath)
		p.logger.Error().Err(err).Str("format", format).Msg("Image re-encode failed")
		return err
	}

	return os.Rename(encPath, tempPath)
}

// downscale fits img into maxW x maxH preserving aspect ratio. Images
// already inside the bounds are returned unchanged.
func downscale(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1.0 {
		return img
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
