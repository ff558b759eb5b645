package store

import (
	"encoding/json"
	"github.com/pkg/errors"
)

// Collection is a view over a single silo of a SiloStringStorer holding json-encoded records
// keyed by their slack identifier
type Collection struct {
	silo   string
	storer SiloStringStorer
}

// NewCollection returns a new Collection for the given silo
func NewCollection(silo string, storer SiloStringStorer) (c *Collection) {
	return &Collection{silo: silo, storer: storer}
}

// Name returns the name of the silo backing the collection
func (c *Collection) Name() string {
	return c.silo
}

// Get loads the record stored for id into v. A record that was never saved is reported
// with found set to false and a nil error
func (c *Collection) Get(id string, v interface{}) (found bool, err error) {
	raw, err := c.storer.GetSiloString(c.silo, id)
	if IsNotFound(err) {
		return false, nil
	}

	if err != nil {
		return false, errors.Wrapf(err, "failed to get [%s] from [%s]", id, c.silo)
	}

	if err = json.Unmarshal([]byte(raw), v); err != nil {
		return false, errors.Wrapf(err, "failed to decode [%s] from [%s]", id, c.silo)
	}

	return true, nil
}

// Save stores the json encoding of v as the record for id
func (c *Collection) Save(id string, v interface{}) (err error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode [%s] for [%s]", id, c.silo)
	}

	if err = c.storer.PutSiloString(c.silo, id, string(raw)); err != nil {
		return errors.Wrapf(err, "failed to save [%s] to [%s]", id, c.silo)
	}

	return nil
}

// All returns the raw json records of the collection keyed by id
func (c *Collection) All() (records map[string]json.RawMessage, err error) {
	entries, err := c.storer.ScanSilo(c.silo)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan [%s]", c.silo)
	}

	records = make(map[string]json.RawMessage, len(entries))
	for id, raw := range entries {
		records[id] = json.RawMessage(raw)
	}

	return records, nil
}
