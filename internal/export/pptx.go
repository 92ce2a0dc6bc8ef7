// Package export serializes lesson documents into downloadable artifacts:
// a PPTX slide deck and an XLSX worksheet.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// Slide geometry in EMU for a 16:9 deck (12192000 x 6858000).
const (
	slideW = 12192000
	slideH = 6858000

	marginX = 457200
	titleY  = 274638
	titleH  = 1143000
	bodyY   = 1600200
	bodyH   = 4800600

	fullBodyW  = slideW - 2*marginX
	splitBodyW = 5486400
	imageX     = 6172200
	imageW     = 5562600
	imageH     = 3129338

	badgeX = 11430000
	badgeD = 457200
)

type slideImage struct {
	data []byte
	ext  string // "png" or "jpeg"
}

// EncodePPTX produces a slide-deck binary for the document: one title slide
// plus one slide per presentation-slide entry. Slides with a matching
// non-empty image result embed it; the rest fall back to a full-width text
// layout. A document with zero slides yields a deck with only the title
// slide.
func EncodePPTX(doc lesson.Document, images []lesson.SlideImageResult) ([]byte, error) {
	imgs := decodeImages(images, len(doc.Slides))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML(doc.Slides, imgs)},
		{"_rels/.rels", rootRelsXML},
		{"docProps/core.xml", corePropsXML(doc.Title)},
		{"ppt/presentation.xml", presentationXML(len(doc.Slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(len(doc.Slides))},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/notesMasters/notesMaster1.xml", notesMasterXML},
		{"ppt/notesMasters/_rels/notesMaster1.xml.rels", notesMasterRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
		{"ppt/theme/theme2.xml", themeXML},
		{"ppt/slides/slide1.xml", titleSlideXML(doc, len(imgs))},
		{"ppt/slides/_rels/slide1.xml.rels", slideRelsXML(1, "", false)},
	}

	for i, slide := range doc.Slides {
		n := i + 2 // part numbering: slide1 is the title slide
		img, hasImg := imgs[i]
		hasNotes := slide.SpeakerNotes != ""
		imgExt := ""
		if hasImg {
			imgExt = img.ext
		}

		parts = append(parts,
			struct {
				name string
				data string
			}{fmt.Sprintf("ppt/slides/slide%d.xml", n), contentSlideXML(slide, i, hasImg)},
			struct {
				name string
				data string
			}{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML(n, imgExt, hasNotes)},
		)
		if hasNotes {
			parts = append(parts,
				struct {
					name string
					data string
				}{fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), notesSlideXML(slide.SpeakerNotes)},
				struct {
					name string
					data string
				}{fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), notesSlideRelsXML(n)},
			)
		}
		if hasImg {
			if err := addBinaryPart(zw, fmt.Sprintf("ppt/media/image%d.%s", n, img.ext), img.data); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range parts {
		if err := addBinaryPart(zw, p.name, []byte(p.data)); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize pptx archive: %w", err)
	}

	return buf.Bytes(), nil
}

// CoverageLabel reports how many of the document's slides have a usable
// generated image attached.
func CoverageLabel(images []lesson.SlideImageResult, slideCount int) string {
	covered := len(decodeImages(images, slideCount))
	return fmt.Sprintf("%d of %d slides include AI-generated images", covered, slideCount)
}

// decodeImages keeps the first valid, decodable image per in-range slide
// index. Out-of-range or duplicate indices and undecodable payloads are
// dropped so the affected slides degrade to the text layout.
func decodeImages(images []lesson.SlideImageResult, slideCount int) map[int]slideImage {
	out := make(map[int]slideImage)
	for _, res := range images {
		if res.Image == "" || res.SlideIndex < 0 || res.SlideIndex >= slideCount {
			continue
		}
		if _, seen := out[res.SlideIndex]; seen {
			continue
		}
		img, ok := decodeDataURL(res.Image)
		if !ok {
			continue
		}
		out[res.SlideIndex] = img
	}
	return out
}

func decodeDataURL(url string) (slideImage, bool) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return slideImage{}, false
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return slideImage{}, false
	}

	var ext string
	switch mime {
	case "image/png":
		ext = "png"
	case "image/jpeg", "image/jpg":
		ext = "jpeg"
	default:
		return slideImage{}, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return slideImage{}, false
	}
	return slideImage{data: data, ext: ext}, true
}

func addBinaryPart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create pptx part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write pptx part %s: %w", name, err)
	}
	return nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func esc(s string) string {
	return xmlEscaper.Replace(s)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func contentTypesXML(slides []lesson.Slide, imgs map[int]slideImage) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/notesMasters/notesMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme2.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slides/slide1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`)
	for i, slide := range slides {
		n := i + 2
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, n)
		if slide.SpeakerNotes != "" {
			fmt.Fprintf(&b, `<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"/>`, n)
		}
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

func corePropsXML(title string) string {
	now := time.Now().UTC().Format(time.RFC3339)
	return xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(title) + `</dc:title>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + now + `</dcterms:created>` +
		`</cp:coreProperties>`
}

func presentationXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:notesMasterIdLst><p:notesMasterId r:id="rId2"/></p:notesMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 0; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 3+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="6858000" cy="9144000"/>`, slideW, slideH)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	b.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster" Target="notesMasters/notesMaster1.xml"/>`)
	for i := 0; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 3+i, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const emptySpTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree>`

const clrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

const slideMasterXML = xmlHeader + `<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld>` + emptySpTree + `</p:cSld>` + clrMap +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xmlHeader + `<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank">` +
	`<p:cSld>` + emptySpTree + `</p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

const slideLayoutRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const notesMasterXML = xmlHeader + `<p:notesMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld>` + emptySpTree + `</p:cSld>` + clrMap +
	`</p:notesMaster>`

const notesMasterRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme2.xml"/>` +
	`</Relationships>`

// themeXML is the smallest theme PowerPoint accepts: a full color scheme,
// font scheme, and the mandatory three-entry format scheme lists.
const themeXML = xmlHeader + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Lesson">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Lesson">` +
	`<a:dk1><a:srgbClr val="1A1A2E"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="16213E"/></a:dk2><a:lt2><a:srgbClr val="F4F4F9"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="0F7B8A"/></a:accent1><a:accent2><a:srgbClr val="E94560"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="533483"/></a:accent3><a:accent4><a:srgbClr val="F5A623"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="4A90D9"/></a:accent5><a:accent6><a:srgbClr val="50B83C"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0F7B8A"/></a:hlink><a:folHlink><a:srgbClr val="533483"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Lesson">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Lesson">` +
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`

// slideRelsXML lists the slide's relationships; imgExt is empty when the
// slide has no embedded image.
func slideRelsXML(n int, imgExt string, hasNotes bool) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if imgExt != "" {
		fmt.Fprintf(&b, `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d.%s"/>`, n, imgExt)
	}
	if hasNotes {
		fmt.Fprintf(&b, `<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, n)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func notesSlideRelsXML(n int) string {
	return xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster" Target="../notesMasters/notesMaster1.xml"/>` +
		fmt.Sprintf(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="../slides/slide%d.xml"/>`, n) +
		`</Relationships>`
}

// textBox renders a plain text box shape with one paragraph per line.
func textBox(id int, name string, x, y, w, h int, lines []string, size int, bold bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, esc(name))
	fmt.Fprintf(&b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, x, y, w, h)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>`)
	boldAttr := "0"
	if bold {
		boldAttr = "1"
	}
	for _, line := range lines {
		fmt.Fprintf(&b, `<a:p><a:r><a:rPr lang="en-US" sz="%d" b="%s"/><a:t>%s</a:t></a:r></a:p>`, size, boldAttr, esc(line))
	}
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String()
}

// badge renders the numbered index circle in the slide's top-right corner.
func badge(id, number int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Badge"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id)
	fmt.Fprintf(&b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="ellipse"><a:avLst/></a:prstGeom><a:solidFill><a:schemeClr val="accent1"/></a:solidFill></p:spPr>`, badgeX, titleY, badgeD, badgeD)
	fmt.Fprintf(&b, `<p:txBody><a:bodyPr anchor="ctr"/><a:lstStyle/><a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="en-US" sz="1400" b="1"><a:solidFill><a:schemeClr val="lt1"/></a:solidFill></a:rPr><a:t>%d</a:t></a:r></a:p></p:txBody></p:sp>`, number)
	return b.String()
}

func picture(id int) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Slide Image"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, imageX, bodyY, imageW, imageH)
}

func slideXML(shapes ...string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for _, s := range shapes {
		b.WriteString(s)
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func titleSlideXML(doc lesson.Document, coveredCount int) string {
	coverage := fmt.Sprintf("%d of %d slides include AI-generated images", coveredCount, len(doc.Slides))
	return slideXML(
		textBox(2, "Title", marginX, 2057400, fullBodyW, 1371600, []string{doc.Title}, 4400, true),
		textBox(3, "Coverage", marginX, 3657600, fullBodyW, 457200, []string{coverage}, 1600, false),
	)
}

func contentSlideXML(slide lesson.Slide, index int, hasImage bool) string {
	bodyW := fullBodyW
	if hasImage {
		bodyW = splitBodyW
	}

	number := slide.Number
	if number == 0 {
		number = index + 1
	}

	shapes := []string{
		textBox(2, "Title", marginX, titleY, fullBodyW-badgeD-marginX, titleH, []string{slide.Title}, 3200, true),
		badge(3, number),
		textBox(4, "Body", marginX, bodyY, bodyW, bodyH, slide.Content, 1800, false),
	}
	if hasImage {
		shapes = append(shapes, picture(5))
	}
	return slideXML(shapes...)
}

func notesSlideXML(notes string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:notes xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	b.WriteString(textBox(2, "Notes", 457200, 457200, 5943600, 8229600, []string{notes}, 1400, false))
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`)
	return b.String()
}
