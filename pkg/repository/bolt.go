package repository

import (
	"context"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/m-mizutani/goerr/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

var (
	bucketProfile = []byte("profile")
	keyProfile    = []byte("current")
)

// boltRepo implements Repository on a local bbolt database.
type boltRepo struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path. Parent directories are
// created automatically.
func Open(path string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, goerr.Wrap(err, "failed to create db directory", goerr.V("path", path))
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open db", goerr.V("path", path))
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketProfile)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to create bucket")
	}

	return &boltRepo{db: db}, nil
}

func (r *boltRepo) PutProfile(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal profile")
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProfile).Put(keyProfile, data)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put profile")
	}
	return nil
}

func (r *boltRepo) GetProfile(ctx context.Context) (*model.Profile, error) {
	var profile *model.Profile
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketProfile).Get(keyProfile)
		if data == nil {
			return nil
		}
		var p model.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return goerr.Wrap(err, "failed to unmarshal profile")
		}
		profile = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *boltRepo) DeleteProfile(ctx context.Context) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProfile).Delete(keyProfile)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete profile")
	}
	return nil
}

func (r *boltRepo) Close() error {
	return r.db.Close()
}
