package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

const pngDataURL = "data:image/png;base64,iVBORw0KGgo="

func deckDocument() lesson.Document {
	return lesson.Document{
		Title:              "Photosynthesis & Light",
		LearningObjectives: []string{"Students will be able to explain the light reactions"},
		Slides: []lesson.Slide{
			{Number: 1, Title: "What is Photosynthesis?", Content: []string{"Plants make food", "Uses sunlight"}, SpeakerNotes: "Start with the leaf demo"},
			{Number: 2, Title: "Light Reactions", Content: []string{"Thylakoid membranes"}},
			{Number: 3, Title: "Calvin Cycle", Content: []string{"Carbon fixation"}},
		},
	}
}

// unpack reads every part of the archive into a map keyed by part name.
func unpack(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening part %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading part %s: %v", f.Name, err)
		}
		parts[f.Name] = string(content)
	}
	return parts
}

func TestEncodePPTX_TitleOnly(t *testing.T) {
	doc := lesson.Document{Title: "Bare Lesson"}

	data, err := EncodePPTX(doc, nil)
	if err != nil {
		t.Fatalf("EncodePPTX() error = %v", err)
	}

	parts := unpack(t, data)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/notesMasters/notesMaster1.xml",
		"ppt/theme/theme1.xml",
		"ppt/theme/theme2.xml",
		"ppt/slides/slide1.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	if _, ok := parts["ppt/slides/slide2.xml"]; ok {
		t.Error("deck without slides should only contain the title slide")
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "Bare Lesson") {
		t.Error("title slide missing document title")
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "0 of 0 slides include AI-generated images") {
		t.Error("title slide missing coverage line")
	}
}

func TestEncodePPTX_WithImages(t *testing.T) {
	doc := deckDocument()
	images := []lesson.SlideImageResult{
		{SlideIndex: 0, Image: pngDataURL},
		{SlideIndex: 1, Error: "HTTP 429"},
		{SlideIndex: 2, Image: pngDataURL},
	}

	data, err := EncodePPTX(doc, images)
	if err != nil {
		t.Fatalf("EncodePPTX() error = %v", err)
	}

	parts := unpack(t, data)

	// Slide parts are offset by one: slide1 is the title slide.
	for _, name := range []string{
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/slide4.xml",
		"ppt/media/image2.png",
		"ppt/media/image4.png",
		"ppt/notesSlides/notesSlide2.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	if _, ok := parts["ppt/media/image3.png"]; ok {
		t.Error("failed slide should not have a media part")
	}

	if !strings.Contains(parts["ppt/slides/_rels/slide2.xml.rels"], "media/image2.png") {
		t.Error("slide2 rels missing image relationship")
	}
	if strings.Contains(parts["ppt/slides/_rels/slide3.xml.rels"], "media/") {
		t.Error("slide3 rels should not reference media")
	}
	if !strings.Contains(parts["ppt/slides/slide2.xml"], "<p:pic>") {
		t.Error("slide2 should embed its picture")
	}
	if strings.Contains(parts["ppt/slides/slide3.xml"], "<p:pic>") {
		t.Error("slide3 should fall back to the text layout")
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "2 of 3 slides include AI-generated images") {
		t.Errorf("coverage line wrong: %s", parts["ppt/slides/slide1.xml"])
	}
	if !strings.Contains(parts["ppt/notesSlides/notesSlide2.xml"], "Start with the leaf demo") {
		t.Error("speaker notes missing")
	}
}

func TestEncodePPTX_SkipsUnusableImages(t *testing.T) {
	doc := deckDocument()
	images := []lesson.SlideImageResult{
		{SlideIndex: -1, Image: pngDataURL},
		{SlideIndex: 5, Image: pngDataURL},
		{SlideIndex: 0, Image: "data:image/gif;base64,AAAA"},
		{SlideIndex: 1, Image: "not a data url"},
		{SlideIndex: 2, Image: "data:image/png;base64,!!!not-base64!!!"},
	}

	data, err := EncodePPTX(doc, images)
	if err != nil {
		t.Fatalf("EncodePPTX() error = %v", err)
	}

	parts := unpack(t, data)
	for name := range parts {
		if strings.HasPrefix(name, "ppt/media/") {
			t.Errorf("unexpected media part %s", name)
		}
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "0 of 3 slides") {
		t.Error("coverage should count zero usable images")
	}
}

func TestEncodePPTX_DuplicateIndexKeepsFirst(t *testing.T) {
	doc := deckDocument()
	images := []lesson.SlideImageResult{
		{SlideIndex: 0, Image: pngDataURL},
		{SlideIndex: 0, Image: "data:image/jpeg;base64,AAAA"},
	}

	data, err := EncodePPTX(doc, images)
	if err != nil {
		t.Fatalf("EncodePPTX() error = %v", err)
	}

	parts := unpack(t, data)
	if _, ok := parts["ppt/media/image2.png"]; !ok {
		t.Error("first image for the index should win")
	}
	if _, ok := parts["ppt/media/image2.jpeg"]; ok {
		t.Error("duplicate image for the index should be dropped")
	}
}

func TestEncodePPTX_EscapesXML(t *testing.T) {
	doc := deckDocument()

	data, err := EncodePPTX(doc, nil)
	if err != nil {
		t.Fatalf("EncodePPTX() error = %v", err)
	}

	parts := unpack(t, data)
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "Photosynthesis &amp; Light") {
		t.Error("title ampersand should be escaped")
	}
	if !strings.Contains(parts["docProps/core.xml"], "Photosynthesis &amp; Light") {
		t.Error("core properties title should be escaped")
	}
}

func TestCoverageLabel(t *testing.T) {
	images := []lesson.SlideImageResult{
		{SlideIndex: 0, Image: pngDataURL},
		{SlideIndex: 1, Error: "HTTP 429"},
		{SlideIndex: 2, Image: pngDataURL},
	}

	got := CoverageLabel(images, 3)
	want := "2 of 3 slides include AI-generated images"
	if got != want {
		t.Errorf("CoverageLabel() = %q, want %q", got, want)
	}
}
