package service

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"hardware-mapper/catalog"
	"hardware-mapper/engine"
	"hardware-mapper/geometry"
	"hardware-mapper/models"
)

//go:embed templates/wiring_sheet.html
var sheetTemplates embed.FS

var sheetTemplate = template.Must(template.ParseFS(sheetTemplates, "templates/wiring_sheet.html"))

// ThumbnailSource produces resized board photos
type ThumbnailSource interface {
	Thumbnail(ctx context.Context, board models.BoardDefinition, size string) ([]byte, error)
}

// SheetService renders printable wiring sheets: the board photo with a pin
// overlay and a table of the board's mappings
type SheetService struct {
	catalog    *catalog.Catalog
	resolver   *geometry.Resolver
	images     ThumbnailSource
	chromePath string
}

// NewSheetService creates a SheetService. images may be nil to render without photos.
func NewSheetService(cat *catalog.Catalog, resolver *geometry.Resolver, images ThumbnailSource, chromePath string) *SheetService {
	if resolver == nil {
		resolver = geometry.NewResolver(geometry.DefaultWidth)
	}
	return &SheetService{catalog: cat, resolver: resolver, images: images, chromePath: chromePath}
}

type sheetPin struct {
	Number int
	X, Y   float64
	Class  string
	Title  string
}

type sheetRow struct {
	Part      string
	Role      string
	Pins      string
	Positions string
	Label     string
}

// RenderHTML renders the wiring sheet for one board. Mappings of other boards are ignored.
func (s *SheetService) RenderHTML(ctx context.Context, boardID string, mappings []models.Mapping) (string, error) {
	board, err := s.catalog.Board(boardID)
	if err != nil {
		return "", err
	}

	var onBoard []models.Mapping
	for _, m := range mappings {
		if m.BoardID == board.ID {
			onBoard = append(onBoard, m)
		}
	}

	layout := s.resolver.Layout(board)
	used := engine.UsedPins(onBoard)

	pins := make([]sheetPin, 0, len(layout.Pins))
	for _, p := range layout.Pins {
		pin := sheetPin{Number: p.Number, X: p.X, Y: p.Y, Class: "free", Title: p.Label}
		switch {
		case p.Kind.Reserved():
			pin.Class = "reserved"
		default:
			if _, ok := used[p.Actual]; ok {
				pin.Class = "mapped"
			}
		}
		pins = append(pins, pin)
	}

	rows := make([]sheetRow, 0, len(onBoard))
	for _, m := range onBoard {
		partName := m.PartID
		if part, ok := s.catalog.FindPart(m.PartID); ok {
			partName = part.Name
		}
		var actual, positions []string
		for _, pin := range m.Pins {
			actual = append(actual, pin.String())
			for _, n := range geometry.BoardPositionsFor(board, pin) {
				positions = append(positions, fmt.Sprint(n))
			}
		}
		rows = append(rows, sheetRow{
			Part:      partName,
			Role:      m.Role,
			Pins:      strings.Join(actual, ", "),
			Positions: strings.Join(positions, ", "),
			Label:     m.Label,
		})
	}

	imageURI := ""
	if s.images != nil && board.Image != "" {
		data, err := s.images.Thumbnail(ctx, board, "medium")
		if err != nil {
			log.Printf("⚠️  Warning: rendering sheet for %s without photo: %v", board.ID, err)
		} else {
			imageURI = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
		}
	}

	templateData := struct {
		Board    models.BoardDefinition
		ImageURI template.URL
		Width    float64
		Height   float64
		Radius   float64
		Pins     []sheetPin
		Rows     []sheetRow
		Reserved int
	}{
		Board:    board,
		ImageURI: template.URL(imageURI),
		Width:    layout.Width,
		Height:   layout.Height,
		Radius:   layout.PinRadius(),
		Pins:     pins,
		Rows:     rows,
		Reserved: len(board.Reserved()),
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// detectChromePath returns the configured Chrome path when it exists, then
// the first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GeneratePDF renders the wiring sheet and prints it to an A4 PDF with headless Chrome
func (s *SheetService) GeneratePDF(ctx context.Context, boardID string, mappings []models.Mapping) ([]byte, error) {
	html, err := s.RenderHTML(ctx, boardID, mappings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 = 8.27" x 11.69"; margins come from the CSS @page rule
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Wiring sheet PDF for %s generated (%d bytes)", boardID, len(pdfBuf))
	return pdfBuf, nil
}
