package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"cloud.google.com/go/storage"
)

// FirebasePhotoStore uploads photos to a Firebase Storage bucket and returns
// tokenized download URLs, so stored photoUrl values work without signed-URL
// refreshing.
type FirebasePhotoStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func NewFirebasePhotoStore(ctx context.Context, bucketName, credentialsJSON string) (*FirebasePhotoStore, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase storage: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("storage bucket: %w", err)
	}

	return &FirebasePhotoStore{bucket: bucket, bucketName: bucketName}, nil
}

func (s *FirebasePhotoStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := photoObjectKey(filename, time.Now())
	token := uuid.New().String()

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ObjectAttrs.ContentType = contentType
	w.ObjectAttrs.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload photo: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return firebaseDownloadURL(s.bucketName, key, token), nil
}

func firebaseDownloadURL(bucket string, objectName string, token string) string {
	// https://firebasestorage.googleapis.com/v0/b/{bucket}/o/{path}?alt=media&token={token}
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket,
		url.PathEscape(objectName),
		url.QueryEscape(token),
	)
}
