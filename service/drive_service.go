package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveImage is a board photo stored in Google Drive
type DriveImage struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	// Ref is the catalog image reference for this file
	Ref string `json:"ref"`
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// ListBoardImages lists the image files in a Google Drive folder
func (ds *DriveService) ListBoardImages(ctx context.Context, folderID string) ([]DriveImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	var images []DriveImage
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		images = append(images, DriveImage{
			FileID:   file.Id,
			Name:     file.Name,
			MimeType: file.MimeType,
			Ref:      driveRefPrefix + file.Id,
		})
	}

	log.Printf("📦 Found %d board images in Drive folder %s", len(images), folderID)
	return images, nil
}

// Open downloads a file's content
func (ds *DriveService) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("drive returned status %d for file %s", resp.StatusCode, fileID)
	}
	return resp.Body, nil
}
