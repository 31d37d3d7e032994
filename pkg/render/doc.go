// Package render converts rendered graph images between formats.
//
// The node-link renderer in [nodelink] produces SVG in-process. [ToPDF] and
// [ToPNG] convert that SVG with the external rsvg-convert tool (librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
package render
