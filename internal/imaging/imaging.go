// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging resizes uploaded catalog images with libvips. Every
// upload gets a square-ish card thumbnail for the product grid and a
// larger detail rendition for the product page, both as WebP.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"

	"reposteria/internal/handlers"
)

// Variant describes one rendition.
type Variant struct {
	Name    string
	Width   int
	Quality int
}

// CatalogVariants are the renditions the storefront templates use.
var CatalogVariants = []Variant{
	{Name: "card", Width: 480, Quality: 78},
	{Name: "detail", Width: 1200, Quality: 82},
}

// Startup initialises libvips. Call once before the first Resizer call.
func Startup(concurrency int) {
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(&vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     50,
		MaxCacheMem:      32 * 1024 * 1024,
	})
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources.
func Shutdown() {
	vips.Shutdown()
}

// Resizer implements handlers.ImageResizer.
type Resizer struct {
	variants []Variant
}

// NewResizer returns a Resizer for the given renditions, or for
// CatalogVariants when none are given.
func NewResizer(variants ...Variant) *Resizer {
	if len(variants) == 0 {
		variants = CatalogVariants
	}
	return &Resizer{variants: variants}
}

// Variants renders every configured rendition. Images narrower than a
// rendition are not upscaled; that rendition keeps the original width.
func (r *Resizer) Variants(original []byte) ([]handlers.ImageVariant, error) {
	probe, err := vips.NewImageFromBuffer(original)
	if err != nil {
		return nil, fmt.Errorf("imaging: probe: %w", err)
	}
	origWidth := probe.Width()
	probe.Close()

	out := make([]handlers.ImageVariant, 0, len(r.variants))
	for _, v := range r.variants {
		width := min(v.Width, origWidth)

		img, err := vips.NewThumbnailFromBuffer(original, width, 0, vips.InterestingNone)
		if err != nil {
			return nil, fmt.Errorf("imaging: thumbnail %s: %w", v.Name, err)
		}
		if err := img.AutoRotate(); err != nil {
			img.Close()
			return nil, fmt.Errorf("imaging: autorotate %s: %w", v.Name, err)
		}

		params := vips.NewWebpExportParams()
		params.Quality = v.Quality
		params.StripMetadata = true

		buf, meta, err := img.ExportWebp(params)
		img.Close()
		if err != nil {
			return nil, fmt.Errorf("imaging: export %s: %w", v.Name, err)
		}

		out = append(out, handlers.ImageVariant{
			Name:        v.Name,
			Width:       meta.Width,
			Height:      meta.Height,
			Data:        buf,
			ContentType: "image/webp",
		})
	}
	return out, nil
}
