package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

type DriveService interface {
	Fetch(ctx context.Context, folderName, fileName string) (string, error)
}

type driveService struct {
	drive *drive.Service
}

// NewDriveService builds a read-only Drive client from a service-account
// credential JSON blob. The blob is parsed strictly; anything that is not
// a valid service-account key is rejected here, before any network call.
func NewDriveService(ctx context.Context, credentialJSON string) (DriveService, error) {
	jwtConfig, err := google.JWTConfigFromJSON([]byte(credentialJSON), drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("error parsing service account credential: %w", err)
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("error creating drive service: %w", err)
	}
	return &driveService{drive: svc}, nil
}

// Fetch resolves folderName/fileName to a Drive file and downloads it to a
// local file named fileName, overwriting any existing one. The returned
// path is fileName.
func (s *driveService) Fetch(ctx context.Context, folderName, fileName string) (string, error) {
	folder, err := s.findFolder(ctx, folderName)
	if err != nil {
		return "", err
	}

	file, err := s.findFile(ctx, folder.Id, fileName)
	if err != nil {
		return "", err
	}

	if err := s.download(ctx, file, fileName); err != nil {
		return "", err
	}
	return fileName, nil
}

func (s *driveService) findFolder(ctx context.Context, name string) (*drive.File, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryValue(name), folderMimeType)

	list, err := s.drive.Files.List().Context(ctx).Q(query).Fields("files(id, name)").Do()
	if err != nil {
		return nil, fmt.Errorf("error listing folders: %w", err)
	}
	if len(list.Files) == 0 {
		return nil, &NotFoundError{Kind: "folder", Name: name}
	}
	if len(list.Files) > 1 {
		// Duplicate names are legal in Drive; the API order is not stable.
		slog.Warn("multiple folders match, using the first",
			"name", name, "matches", len(list.Files))
	}
	return list.Files[0], nil
}

func (s *driveService) findFile(ctx context.Context, folderID, name string) (*drive.File, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQueryValue(name), escapeQueryValue(folderID))

	list, err := s.drive.Files.List().Context(ctx).Q(query).
		Fields("files(id, name, size, md5Checksum)").Do()
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	if len(list.Files) == 0 {
		return nil, &NotFoundError{Kind: "file", Name: name}
	}
	if len(list.Files) > 1 {
		slog.Warn("multiple files match, using the first",
			"name", name, "matches", len(list.Files))
	}
	return list.Files[0], nil
}

// download streams the file to localPath, hashing and counting as it goes.
// A size or MD5 mismatch against the Drive metadata removes the partial
// file and fails the run.
func (s *driveService) download(ctx context.Context, file *drive.File, localPath string) error {
	resp, err := s.drive.Files.Get(file.Id).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("error downloading %s: %w", file.Name, err)
	}
	defer resp.Body.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", localPath, err)
	}

	digest := md5.New()
	written, err := copyWithProgress(out, resp.Body, digest, file.Name, file.Size)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", localPath, err)
	}

	if file.Size > 0 && written != file.Size {
		os.Remove(localPath)
		return &IntegrityError{
			Path:   localPath,
			Reason: fmt.Sprintf("got %d bytes, drive reports %d", written, file.Size),
		}
	}
	if file.Md5Checksum != "" {
		if sum := hex.EncodeToString(digest.Sum(nil)); sum != file.Md5Checksum {
			os.Remove(localPath)
			return &IntegrityError{
				Path:   localPath,
				Reason: fmt.Sprintf("md5 %s does not match drive checksum %s", sum, file.Md5Checksum),
			}
		}
	}

	slog.Info("download complete", "file", file.Name, "bytes", written)
	return nil
}

// copyWithProgress copies src to dst, feeding digest along the way and
// logging progress in 10% steps when the total size is known.
func copyWithProgress(dst io.Writer, src io.Reader, digest hash.Hash, name string, total int64) (int64, error) {
	var written int64
	lastDecile := int64(-1)

	buf := make([]byte, 256*1024)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, err
			}
			digest.Write(buf[:n])
			written += int64(n)

			if total > 0 {
				if decile := written * 10 / total; decile > lastDecile {
					lastDecile = decile
					slog.Info("downloading", "file", name, "percent", decile*10)
				}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

// escapeQueryValue makes a value safe inside single quotes in a Drive
// search query.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
