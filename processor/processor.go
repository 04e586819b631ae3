package processor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"prodreel/assets"
	"prodreel/config"
	"prodreel/layout"
	"prodreel/render"
	"prodreel/speech"
	"prodreel/storage"
	"prodreel/transcript"
	"prodreel/types"
	"prodreel/video"
)

// Pipeline runs the full generation for one product: transcript (when the
// job carries none), slide segmentation, per-slide synthesis and rendering,
// and clip assembly. All fields are read-only after construction; one
// Pipeline serves concurrent product runs.
type Pipeline struct {
	BodyMetrics layout.Metrics
	Renderer    *render.Renderer
	Synth       speech.Synthesizer
	Transcripts transcript.Provider // optional
	NewEncoder  func(workDir string) video.Encoder

	OutputDir       string
	AllowSkipImages bool

	MaxTextWidth     float64
	MaxLinesPerSlide int
}

// New wires a production pipeline from run configuration: fonts and brand
// mark loaded once, shared read-only across the batch. Asset paths may be
// "s3://bucket/key" references; those are fetched to local files first.
func New(ctx context.Context, cfg config.Config) (*Pipeline, error) {
	bodyFontPath, err := storage.ResolveLocal(ctx, cfg.BodyFontPath, os.TempDir())
	if err != nil {
		return nil, fmt.Errorf("body font: %w", err)
	}
	titleFontPath, err := storage.ResolveLocal(ctx, cfg.TitleFontPath, os.TempDir())
	if err != nil {
		return nil, fmt.Errorf("title font: %w", err)
	}

	bodyMetrics, err := layout.LoadFaceMetrics(bodyFontPath, config.BodyFontSize)
	if err != nil {
		return nil, err
	}
	titleMetrics, err := layout.LoadFaceMetrics(titleFontPath, config.TitleFontSize)
	if err != nil {
		return nil, err
	}

	renderer := &render.Renderer{
		Width:             config.CanvasWidth,
		Height:            config.CanvasHeight,
		TitleFace:         titleMetrics.Face(),
		BodyFace:          bodyMetrics.Face(),
		LineGap:           config.LineGap,
		AllowMissingImage: cfg.AllowSkipImages,
	}
	if cfg.BrandMarkPath != "" {
		// The brand mark is cosmetic; generation continues without it.
		markPath, err := storage.ResolveLocal(ctx, cfg.BrandMarkPath, os.TempDir())
		if err != nil {
			log.Printf("unable to fetch brand mark %s: %v", cfg.BrandMarkPath, err)
		} else if mark, err := assets.LoadLocal(markPath); err != nil {
			log.Printf("unable to load brand mark at %s: %v", markPath, err)
		} else {
			renderer.BrandMark = mark
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &Pipeline{
		BodyMetrics:      bodyMetrics,
		Renderer:         renderer,
		Synth:            speech.NewGoogleTTS(cfg.SpeechLang, video.ProbeDuration),
		Transcripts:      transcript.NewDefaultProvider(cfg.CohereAPIKey, ""),
		NewEncoder:       func(workDir string) video.Encoder { return &video.Assembler{WorkDir: workDir} },
		OutputDir:        cfg.OutputDir,
		AllowSkipImages:  cfg.AllowSkipImages,
		MaxTextWidth:     config.MaxTextWidth,
		MaxLinesPerSlide: config.MaxLinesPerSlide,
	}, nil
}

// GenerateProduct runs the pipeline for one job. On any fatal stage error
// downstream stages do not run and no partial video is left in OutputDir.
func (p *Pipeline) GenerateProduct(ctx context.Context, job types.ProductJob) (*types.GenerationResult, error) {
	base := job.BaseName()
	if base == "" {
		return nil, fmt.Errorf("job has no listing/product IDs and no title")
	}
	log.Printf("[%s] starting generation", base)

	narration := job.Narration
	if narration == "" {
		if p.Transcripts == nil {
			return nil, ErrNoNarrationSource
		}
		script, err := p.Transcripts.Generate(ctx, job.Title, job.Description)
		if err != nil {
			return nil, fmt.Errorf("transcript generation: %w", err)
		}
		narration = script
	}

	slides := layout.Segment(narration, p.BodyMetrics, p.MaxTextWidth, p.MaxLinesPerSlide)
	if len(slides) == 0 {
		return nil, ErrEmptyNarration
	}
	log.Printf("[%s] %d slides", base, len(slides))

	images, err := assets.Resolve(ctx, job.Images, config.ImageMaxWidth, config.ImageMaxHeight, p.AllowSkipImages)
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "prodreel-"+base+"-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	clips, err := p.buildClips(ctx, workDir, base, job.Title, slides, images)
	if err != nil {
		return nil, err
	}

	outPath := filepath.Join(p.OutputDir, base+".mp4")
	if err := p.NewEncoder(workDir).Assemble(clips, outPath); err != nil {
		os.Remove(outPath)
		return nil, err
	}

	titleFile, blogFile, err := p.writeTextOutputs(base, job.Title, narration)
	if err != nil {
		return nil, err
	}

	total := video.TotalDuration(clips)
	log.Printf("[%s] done: %s (%.2fs)", base, outPath, total)
	return &types.GenerationResult{
		VideoPath: outPath,
		TitleFile: titleFile,
		BlogFile:  blogFile,
		Slides:    len(slides),
		Duration:  total,
	}, nil
}

// buildClips synthesizes and renders every slide. Slides are independent,
// so they run concurrently; the indexed slice keeps results in slide order,
// which assembly requires.
func (p *Pipeline) buildClips(ctx context.Context, workDir, base, title string, slides []layout.Slide, images []assets.ImageAsset) ([]video.Clip, error) {
	clips := make([]video.Clip, len(slides))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.MaxConcurrentSlides)
	for _, slide := range slides {
		g.Go(func() error {
			img, err := assets.Allocate(images, slide.Index)
			if err != nil {
				return err
			}

			audioPath := filepath.Join(workDir, fmt.Sprintf("%s_slide_%d.mp3", base, slide.Index+1))
			audio, err := p.Synth.Synthesize(gctx, slide.Text(), audioPath)
			if err != nil {
				return err
			}

			frame, err := p.Renderer.Frame(slide, title, &img)
			if err != nil {
				return err
			}
			framePath := filepath.Join(workDir, fmt.Sprintf("%s_frame_%d.png", base, slide.Index+1))
			if err := render.SaveFrame(framePath, frame); err != nil {
				return fmt.Errorf("save frame %d: %w", slide.Index, err)
			}

			clips[slide.Index] = video.Clip{
				FramePath: framePath,
				AudioPath: audioPath,
				Duration:  audio.Duration,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}

func (p *Pipeline) writeTextOutputs(base, title, narration string) (string, string, error) {
	titleFile := filepath.Join(p.OutputDir, base+"_title.txt")
	blogFile := filepath.Join(p.OutputDir, base+"_blog.txt")
	if err := os.WriteFile(titleFile, []byte(title), 0o644); err != nil {
		return "", "", fmt.Errorf("write title file: %w", err)
	}
	if err := os.WriteFile(blogFile, []byte(narration), 0o644); err != nil {
		return "", "", fmt.Errorf("write blog file: %w", err)
	}
	return titleFile, blogFile, nil
}

// BatchResult is one product's outcome within a batch.
type BatchResult struct {
	Job    types.ProductJob
	Result *types.GenerationResult
	Err    error
}

// GenerateBatch runs independent per-product pipelines with bounded
// concurrency. One product's failure is recorded and isolated; siblings
// keep running.
func (p *Pipeline) GenerateBatch(ctx context.Context, jobs []types.ProductJob) []BatchResult {
	results := make([]BatchResult, len(jobs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, config.MaxConcurrentProducts)
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job types.ProductJob) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			res, err := p.GenerateProduct(ctx, job)
			if err != nil {
				log.Printf("[%s] generation failed: %v", job.BaseName(), err)
			}
			results[idx] = BatchResult{Job: job, Result: res, Err: err}
		}(i, job)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	log.Printf("batch complete: %d/%d products succeeded", succeeded, len(jobs))
	return results
}
