package service

import (
	"context"
	"io"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListBoardImages(ctx context.Context, folderID string) ([]DriveImage, error)
	Open(ctx context.Context, fileID string) (io.ReadCloser, error)
}
