package uploader

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"prodreel/types"
)

// Metadata describes one uploaded product video.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
}

// YouTube publishes finished videos with service-account credentials.
type YouTube struct {
	service *youtube.Service
}

// New builds an uploader from a service-account JSON file. Callers treat a
// construction error as "run in video-only mode" rather than fatal.
func New(ctx context.Context, serviceAccountFile string) (*YouTube, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTube{service: service}, nil
}

// Upload publishes the video and returns its YouTube ID.
func (u *YouTube) Upload(videoPath string, meta Metadata) (string, error) {
	f, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat video file: %w", err)
	}
	log.Printf("uploading %s (%.2f MB)", videoPath, float64(info.Size())/(1024*1024))

	v := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           "public",
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, v).Media(f)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}

	log.Printf("uploaded: https://youtu.be/%s", resp.Id)
	return resp.Id, nil
}

// ProductMetadata assembles upload metadata for one product job.
func ProductMetadata(job types.ProductJob) Metadata {
	title := job.Title
	if len(title) > 100 {
		title = title[:97] + "..."
	}

	description := fmt.Sprintf("%s\n\n%s\n\nAvailable on our website.", job.Title, job.Description)

	return Metadata{
		Title:       title,
		Description: description,
		Tags:        []string{"product video", job.Title},
		CategoryID:  "22",
	}
}
