// Package checkpoint provides saving and restoring of partial
// inference state, so long enumerations can be resumed after an
// interruption.
package checkpoint

import (
	"encoding/json"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("checkpoint")

// MAIN is the key name for all checkpoints.
var MAIN = []byte("main")

// Data stores a partial inference state: the per-person unnormalized
// sums together with the number of completed trait subsets.
type Data struct {
	// TraitSubsetsDone is the number of fully processed trait
	// subsets.
	TraitSubsetsDone int
	// GeneSums are unnormalized per-person gene-count sums.
	GeneSums [][]float64
	// TraitSums are unnormalized per-person trait sums.
	TraitSums [][]float64
	// EvidenceSum is the running sum of joint probabilities.
	EvidenceSum float64
	// Final marks a finished run.
	Final bool
}

// IO saves and loads checkpoints for a single run identified by a
// key.
type IO struct {
	db      *bolt.DB
	key     []byte
	last    time.Time
	seconds float64
}

// NewIO creates a new checkpoint IO. The key should identify the
// input data and the model parameters, so a checkpoint is never
// reused for a different run.
func NewIO(db *bolt.DB, key []byte, seconds float64) *IO {
	return &IO{
		db:      db,
		key:     key,
		seconds: seconds,
	}
}

// Save saves a checkpoint to the database.
func (s *IO) Save(data *Data) error {
	// Even if saving fails, we do not want to run this code too
	// often.
	s.SetNow()
	dataB, err := json.Marshal(data)
	if err != nil {
		log.Error("Error serializing checkpoint", err)
		return err
	}
	err = SaveData(s.db, s.key, dataB)
	if err != nil {
		log.Error("Error saving checkpoint", err)
	}
	return err
}

// Load returns the stored checkpoint, nil if there is none.
func (s *IO) Load() (*Data, error) {
	b, err := LoadData(s.db, s.key)

	if err != nil || b == nil {
		return nil, err
	}

	var data *Data
	err = json.Unmarshal(b, &data)
	if err != nil {
		return nil, err
	}

	if data == nil || len(data.GeneSums) == 0 {
		return nil, nil
	}

	if data.Final {
		log.Noticef("Found finished inference checkpoint (%d trait subsets)", data.TraitSubsetsDone)
	} else {
		log.Noticef("Found unfinished inference checkpoint (%d trait subsets done)", data.TraitSubsetsDone)
	}

	return data, nil
}

// Old returns true if the last checkpoint save was too long ago.
func (s *IO) Old() bool {
	return time.Since(s.last).Seconds() > s.seconds
}

// SetNow sets the last checkpoint time to now.
func (s *IO) SetNow() {
	s.last = time.Now()
}

// SaveData saves a value in the bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MAIN)
		if err != nil {
			return err
		}

		return b.Put(key, data)
	})
	return err
}

// LoadData loads a value from the bolt database.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MAIN)
		if b == nil {
			return nil
		}

		v := b.Get(key)
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
