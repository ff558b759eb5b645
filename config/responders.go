package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io/ioutil"
)

// Responder is a canned reply to messages matching any of its patterns
type Responder struct {
	// Regular expressions matched case-insensitively against the message text
	Patterns []string `yaml:"patterns"`

	// Event types the responder listens to (i.e. ambient, mention, direct_mention, direct_message)
	Events []string `yaml:"events"`

	// Reply sent back on the channel of the message
	Reply string `yaml:"reply"`
}

// respondersFile is the layout of a responders yaml file
type respondersFile struct {
	Responders []Responder `yaml:"responders"`
}

// LoadResponders loads canned responders from a yaml file
func LoadResponders(path string) (responders []Responder, err error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rf respondersFile
	if err = yaml.Unmarshal(content, &rf); err != nil {
		return nil, errors.Wrapf(err, "failed to parse responders file [%s]", path)
	}

	for i, r := range rf.Responders {
		if len(r.Patterns) == 0 || len(r.Events) == 0 || r.Reply == "" {
			return nil, errors.Errorf("responder [%d] of [%s] must have patterns, events and a reply", i, path)
		}
	}

	return rf.Responders, nil
}
