package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bucketName = "journal_audio"

// GridFSAudioStore keeps raw recordings in a GridFS bucket next to the
// journal collections, keyed by the audio path stored on the entry.
type GridFSAudioStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSAudioStore(db *mongo.Database) (*GridFSAudioStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, err
	}
	return &GridFSAudioStore{bucket: bucket}, nil
}

// Save writes the payload under key. An existing key is never overwritten;
// attempting to reuse one is an error.
func (s *GridFSAudioStore) Save(ctx context.Context, key, contentType string, data []byte) error {
	exists, err := s.exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("audio object %q already exists", key)
	}

	s.applyDeadline(ctx)
	_, err = s.bucket.UploadFromStream(
		key,
		bytes.NewReader(data),
		options.GridFSUpload().SetMetadata(bson.M{"content_type": contentType}),
	)
	return err
}

// Download streams the object identified by key into w.
func (s *GridFSAudioStore) Download(ctx context.Context, key string, w io.Writer) (int64, error) {
	s.applyDeadline(ctx)
	return s.bucket.DownloadToStreamByName(key, w)
}

// Delete removes every revision stored under key.
func (s *GridFSAudioStore) Delete(ctx context.Context, key string) error {
	cur, err := s.bucket.Find(bson.M{"filename": key})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var file struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&file); err != nil {
			return err
		}
		if err := s.bucket.Delete(file.ID); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (s *GridFSAudioStore) exists(ctx context.Context, key string) (bool, error) {
	cur, err := s.bucket.Find(bson.M{"filename": key}, options.GridFSFind().SetLimit(1))
	if err != nil {
		return false, err
	}
	defer cur.Close(ctx)
	return cur.Next(ctx), cur.Err()
}

// applyDeadline forwards a context deadline to the bucket, which predates
// context support in its stream API.
func (s *GridFSAudioStore) applyDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
		_ = s.bucket.SetReadDeadline(deadline)
	} else {
		_ = s.bucket.SetWriteDeadline(time.Now().Add(2 * time.Minute))
		_ = s.bucket.SetReadDeadline(time.Now().Add(2 * time.Minute))
	}
}
