package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/rs/zerolog/log"
	"github.com/slidedeckhq/slidedeck-be/internal/datastore"
	"github.com/slidedeckhq/slidedeck-be/internal/models"
)

// Deck geometry, 10 x 7.5 inch (4:3) slides.
const (
	emuPerInch = 914400

	deckSlideWidth  = int64(10.0 * emuPerInch)
	deckSlideHeight = int64(7.5 * emuPerInch)

	deckTitleX = int64(0.5 * emuPerInch)
	deckTitleY = int64(0.5 * emuPerInch)
	deckTitleW = int64(9.0 * emuPerInch)
	deckTitleH = int64(1.5 * emuPerInch)

	deckContentX = int64(0.5 * emuPerInch)
	deckContentY = int64(2.2 * emuPerInch)
	deckContentW = int64(9.0 * emuPerInch)
	deckContentH = int64(4.0 * emuPerInch)

	deckImageX = int64(5.5 * emuPerInch)
	deckImageY = int64(2.2 * emuPerInch)
	deckImageW = int64(4.0 * emuPerInch)
	deckImageH = int64(3.0 * emuPerInch)
)

type rgb struct {
	r, g, b uint8
}

var (
	white = rgb{255, 255, 255}
	black = rgb{0, 0, 0}
)

// argb renders a color the way GoPPT expects it, as AARRGGBB hex.
func (c rgb) argb() string {
	return fmt.Sprintf("FF%02X%02X%02X", c.r, c.g, c.b)
}

// parseHexColor parses a #RRGGBB string. Absent or malformed input yields
// the given fallback. Backgrounds fall back to white and fonts to black;
// the asymmetry is long-standing behavior that clients rely on.
func parseHexColor(s string, fallback rgb) rgb {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return fallback
	}
	r, err1 := strconv.ParseUint(s[1:3], 16, 8)
	g, err2 := strconv.ParseUint(s[3:5], 16, 8)
	b, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}
	return rgb{uint8(r), uint8(g), uint8(b)}
}

// ExportServiceProvider defines the interface for deck export.
type ExportServiceProvider interface {
	Export(owner, presID string) (path, downloadName string, err error)
}

// ExportService renders presentations to .pptx files under the upload root.
type ExportService struct {
	store     *datastore.Store
	uploadDir string
}

// NewExportService creates a new ExportService.
func NewExportService(store *datastore.Store, uploadDir string) *ExportService {
	return &ExportService{store: store, uploadDir: uploadDir}
}

// Export renders the presentation and writes the artifact to
// {uploadDir}/{presID}_export.pptx. Concurrent exports of the same
// presentation overwrite the same artifact; only the id makes it unique.
func (s *ExportService) Export(owner, presID string) (string, string, error) {
	st := s.store.Load()
	pres, err := findOwned(&st, owner, presID)
	if err != nil {
		return "", "", err
	}

	deck, err := s.render(pres)
	if err != nil {
		return "", "", err
	}

	outPath := filepath.Join(s.uploadDir, presID+"_export.pptx")
	if err := os.WriteFile(outPath, deck, 0644); err != nil {
		return "", "", err
	}
	return outPath, pres.Title + ".pptx", nil
}

// render builds the deck bytes for a presentation.
func (s *ExportService) render(pres *models.Presentation) ([]byte, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = pres.Title

	for i, slideData := range pres.Slides {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		s.renderSlide(slide, slideData)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write deck: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) renderSlide(slide *ppt.Slide, data models.Slide) {
	bg := parseHexColor(data.Style.BackgroundColor, white)
	font := parseHexColor(data.Style.FontColor, black)

	// Full-slide rectangle as the background fill.
	bgShape := slide.CreateRichTextShape()
	bgShape.SetOffsetX(0).SetOffsetY(0)
	bgShape.SetWidth(deckSlideWidth).SetHeight(deckSlideHeight)
	bgShape.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(bg.argb())))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(deckTitleX).SetOffsetY(deckTitleY)
	titleShape.SetWidth(deckTitleW).SetHeight(deckTitleH)
	titleRun := titleShape.CreateTextRun(data.Title)
	titleRun.GetFont().SetSize(data.Style.TitleFontSize).SetBold(true).SetColor(ppt.NewColor(font.argb()))

	contentShape := slide.CreateRichTextShape()
	contentShape.SetOffsetX(deckContentX).SetOffsetY(deckContentY)
	contentShape.SetWidth(deckContentW).SetHeight(deckContentH)
	for i, line := range strings.Split(data.Content, "\n") {
		if i > 0 {
			contentShape.CreateParagraph()
		}
		run := contentShape.CreateTextRun(line)
		run.GetFont().SetSize(data.Style.ContentFontSize).SetColor(ppt.NewColor(font.argb()))
	}

	if data.Image != nil {
		s.renderImage(slide, *data.Image)
	}
}

// renderImage adds an image box when the reference resolves to a file under
// the upload root. A missing or unreadable file is skipped, not an error.
func (s *ExportService) renderImage(slide *ppt.Slide, ref string) {
	path := ref
	if strings.HasPrefix(ref, "/uploads/") {
		path = filepath.Join(s.uploadDir, filepath.Base(ref))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("image", ref).Msg("skipping slide image")
		return
	}

	mimeType := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".gif":
		mimeType = "image/gif"
	}

	imgShape := slide.CreateDrawingShape()
	imgShape.SetImageData(raw, mimeType)
	imgShape.SetOffsetX(deckImageX).SetOffsetY(deckImageY)
	imgShape.SetWidth(deckImageW).SetHeight(deckImageH)
}
