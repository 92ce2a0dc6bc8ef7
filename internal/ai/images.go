package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

const (
	defaultImageSpacing = time.Second
	imageCallTimeout    = 60 * time.Second
)

// ImageGenerator produces one illustration per presentation slide. Requests
// are issued strictly sequentially with a fixed spacing between them to
// respect upstream throttling; a single slide's failure never aborts the
// batch.
type ImageGenerator struct {
	completer Completer
	model     string
	limiter   *rate.Limiter
}

// NewImageGenerator creates an image generator that spaces requests by the
// given interval (1s when zero).
func NewImageGenerator(completer Completer, model string, spacing time.Duration) *ImageGenerator {
	if spacing <= 0 {
		spacing = defaultImageSpacing
	}
	return &ImageGenerator{
		completer: completer,
		model:     model,
		limiter:   rate.NewLimiter(rate.Every(spacing), 1),
	}
}

// GenerateSlideImages attempts one image per slide and always returns exactly
// len(slides) results, successes and failures intermixed. Each result is
// tagged with its source slide index.
func (g *ImageGenerator) GenerateSlideImages(ctx context.Context, slides []lesson.Slide, topic string) []lesson.SlideImageResult {
	results := make([]lesson.SlideImageResult, 0, len(slides))

	for i, slide := range slides {
		if err := g.limiter.Wait(ctx); err != nil {
			// Context gone; the remaining slides are reported as failed so
			// the batch still covers every index.
			for ; i < len(slides); i++ {
				results = append(results, lesson.SlideImageResult{SlideIndex: i, Error: err.Error()})
			}
			break
		}

		slog.Info("generating slide image", "slide", i+1, "title", slide.Title)

		callCtx, cancel := context.WithTimeout(ctx, imageCallTimeout)
		resp, err := g.completer.Complete(callCtx, CompletionRequest{
			Messages:   []Message{{Role: "user", Content: buildImagePrompt(slide, topic)}},
			Model:      g.model,
			Modalities: []string{"image", "text"},
		})
		cancel()
		if err != nil {
			slog.Error("slide image generation failed", "slide", i+1, "error", err)
			results = append(results, lesson.SlideImageResult{SlideIndex: i, Error: err.Error()})
			continue
		}

		if len(resp.Images) == 0 {
			slog.Error("no image in gateway response", "slide", i+1)
			results = append(results, lesson.SlideImageResult{SlideIndex: i, Error: "no image in response"})
			continue
		}

		results = append(results, lesson.SlideImageResult{SlideIndex: i, Image: resp.Images[0]})
	}

	return results
}

// buildImagePrompt composes the illustration prompt from the slide title,
// its first two content bullets, and the lesson topic.
func buildImagePrompt(slide lesson.Slide, topic string) string {
	bullets := slide.Content
	if len(bullets) > 2 {
		bullets = bullets[:2]
	}

	return fmt.Sprintf(`Create a professional, educational illustration for a presentation slide about %q.
The image should be clean, modern, and suitable for classroom use.
Context: %s
Style: Professional educational graphic with clear visuals, high quality, suitable for teaching %s.
16:9 aspect ratio.`, slide.Title, strings.Join(bullets, ". "), topic)
}
