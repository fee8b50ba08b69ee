package checkpoint

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/op/go-logging"
	bolt "go.etcd.io/bbolt"
)

func init() {
	// disable logging for tests
	logging.SetLevel(logging.WARNING, "checkpoint")
}

// openTestDB opens a bolt database in a temporary directory.
func openTestDB(tst *testing.T) *bolt.DB {
	fn := filepath.Join(tst.TempDir(), "checkpoint.db")
	db, err := bolt.Open(fn, 0644, nil)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	return db
}

func TestSaveLoad(tst *testing.T) {
	db := openTestDB(tst)
	defer db.Close()

	ckp := NewCheckpointIO(db, []byte("test"), 30)
	data := &CheckpointData{
		Parameters:   map[string]float64{"f": 0.2, "p": 0.5},
		LogPosterior: -57.321819491778994,
		Sweep:        10,
		Final:        false,
	}
	if err := ckp.Save(data); err != nil {
		tst.Fatal("Error: ", err)
	}

	loaded, err := ckp.Load()
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if loaded == nil {
		tst.Fatal("No data after save")
	}
	if !reflect.DeepEqual(data, loaded) {
		tst.Errorf("Expected %+v, got %+v", data, loaded)
	}
}

func TestLoadEmpty(tst *testing.T) {
	db := openTestDB(tst)
	defer db.Close()

	ckp := NewCheckpointIO(db, []byte("test"), 30)
	loaded, err := ckp.Load()
	if err != nil {
		tst.Error("Error: ", err)
	}
	if loaded != nil {
		tst.Errorf("Expected no data, got %+v", loaded)
	}
}

func TestOverwrite(tst *testing.T) {
	db := openTestDB(tst)
	defer db.Close()

	ckp := NewCheckpointIO(db, []byte("test"), 30)
	first := &CheckpointData{
		Parameters: map[string]float64{"f": 0.2, "p": 0.5},
		Sweep:      10,
	}
	if err := ckp.Save(first); err != nil {
		tst.Fatal("Error: ", err)
	}
	second := &CheckpointData{
		Parameters:   map[string]float64{"f": 0.4, "p": 0.6},
		LogPosterior: -50,
		Sweep:        20,
		Final:        true,
	}
	if err := ckp.Save(second); err != nil {
		tst.Fatal("Error: ", err)
	}

	loaded, err := ckp.Load()
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if !reflect.DeepEqual(second, loaded) {
		tst.Errorf("Expected %+v, got %+v", second, loaded)
	}
}

func TestSeparateKeys(tst *testing.T) {
	db := openTestDB(tst)
	defer db.Close()

	a := NewCheckpointIO(db, []byte("a"), 30)
	b := NewCheckpointIO(db, []byte("b"), 30)
	if err := a.Save(&CheckpointData{Parameters: map[string]float64{"x": 1}, Sweep: 1}); err != nil {
		tst.Fatal("Error: ", err)
	}

	loaded, err := b.Load()
	if err != nil {
		tst.Error("Error: ", err)
	}
	if loaded != nil {
		tst.Error("Data saved under one key is visible under another")
	}
}

func TestOld(tst *testing.T) {
	db := openTestDB(tst)
	defer db.Close()

	ckp := NewCheckpointIO(db, []byte("test"), -1)
	if !ckp.Old() {
		tst.Error("A checkpoint with a negative period is always old")
	}

	ckp = NewCheckpointIO(db, []byte("test"), 3600)
	ckp.SetNow()
	if ckp.Old() {
		tst.Error("A checkpoint is not old right after SetNow")
	}
}

func TestNilDB(tst *testing.T) {
	// a nil database disables checkpointing without errors
	if err := SaveData(nil, []byte("test"), []byte("data")); err != nil {
		tst.Error("Error: ", err)
	}
	b, err := LoadData(nil, []byte("test"))
	if err != nil {
		tst.Error("Error: ", err)
	}
	if b != nil {
		tst.Errorf("Expected no data, got %v", b)
	}
}
