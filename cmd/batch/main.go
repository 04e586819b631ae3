package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"prodreel/batchinput"
	"prodreel/config"
	"prodreel/dedupe"
	"prodreel/processor"
	"prodreel/storage"
	"prodreel/types"
	"prodreel/uploader"
)

func main() {
	_ = godotenv.Load()

	csvPath := flag.String("csv", "", "product CSV file (required)")
	imagesPath := flag.String("images", "", "images JSON manifest (optional)")
	upload := flag.Bool("upload", false, "publish finished videos to YouTube")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("usage: batch -csv products.csv [-images images.json] [-upload]")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	imageMap := map[batchinput.ProductKey][]types.ImageRef{}
	if *imagesPath != "" {
		imageMap, err = batchinput.LoadImagesJSON(*imagesPath)
		if err != nil {
			log.Fatalf("images manifest: %v", err)
		}
	}

	jobs, err := batchinput.ReadJobs(*csvPath, imageMap)
	if err != nil {
		log.Fatalf("batch input: %v", err)
	}
	if len(jobs) == 0 {
		log.Fatal("no processable rows in CSV")
	}
	log.Printf("loaded %d products from %s", len(jobs), *csvPath)

	ctx := context.Background()

	pipeline, err := processor.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build pipeline: %v", err)
	}

	// The run ledger skips products that already have videos from an
	// earlier run; failures to reach it degrade to generating everything.
	var ledger *dedupe.Ledger
	if cfg.RedisAddr != "" {
		ledger, err = dedupe.New(dedupe.Config{Addr: cfg.RedisAddr})
		if err != nil {
			log.Printf("run ledger unavailable, generating everything: %v", err)
			ledger = nil
		} else {
			defer ledger.Close()
			jobs = filterSeen(ctx, ledger, jobs)
			if len(jobs) == 0 {
				log.Println("all products already generated")
				return
			}
		}
	}

	results := pipeline.GenerateBatch(ctx, jobs)

	for _, r := range results {
		if r.Err == nil && ledger != nil {
			if err := ledger.Mark(ctx, r.Job.BaseName()); err != nil {
				log.Printf("[%s] ledger mark failed: %v", r.Job.BaseName(), err)
			}
		}
	}

	publishResults(ctx, cfg, *upload, results)
}

func filterSeen(ctx context.Context, ledger *dedupe.Ledger, jobs []types.ProductJob) []types.ProductJob {
	var fresh []types.ProductJob
	for _, job := range jobs {
		if ledger.Seen(ctx, job.BaseName()) {
			log.Printf("[%s] already generated, skipping", job.BaseName())
			continue
		}
		fresh = append(fresh, job)
	}
	return fresh
}

func publishResults(ctx context.Context, cfg config.Config, upload bool, results []processor.BatchResult) {
	var store *storage.Store
	if cfg.S3Bucket != "" {
		var err error
		store, err = storage.New(ctx, storage.Config{
			Bucket: cfg.S3Bucket,
			Region: cfg.S3Region,
			Prefix: cfg.S3Prefix,
		})
		if err != nil {
			log.Printf("S3 unavailable, keeping outputs local: %v", err)
			store = nil
		}
	}

	var yt *uploader.YouTube
	if upload && cfg.YouTubeCredentials != "" {
		var err error
		yt, err = uploader.New(ctx, cfg.YouTubeCredentials)
		if err != nil {
			log.Printf("YouTube uploader not initialized, running video-only: %v", err)
			yt = nil
		}
	}

	for _, r := range results {
		base := r.Job.BaseName()
		if r.Err != nil {
			log.Printf("[%s] FAILED: %v", base, r.Err)
			continue
		}
		log.Printf("[%s] OK: %s (%.2fs, %d slides)", base, r.Result.VideoPath, r.Result.Duration, r.Result.Slides)

		if store != nil {
			uploads := []struct{ name, localPath, contentType string }{
				{base + ".mp4", r.Result.VideoPath, "video/mp4"},
				{base + "_title.txt", r.Result.TitleFile, "text/plain"},
				{base + "_blog.txt", r.Result.BlogFile, "text/plain"},
			}
			for _, u := range uploads {
				if ok, err := store.Exists(ctx, u.name); err == nil && ok {
					log.Printf("[%s] %s already uploaded, skipping", base, u.name)
					continue
				}
				if err := store.PutFile(ctx, u.name, u.localPath, u.contentType); err != nil {
					log.Printf("[%s] S3 upload of %s failed: %v", base, u.name, err)
				}
			}
		}
		if yt != nil {
			if id, err := yt.Upload(r.Result.VideoPath, uploader.ProductMetadata(r.Job)); err != nil {
				log.Printf("[%s] YouTube upload failed: %v", base, err)
			} else {
				log.Printf("[%s] published as %s", base, id)
			}
		}
	}
}
