package selection

import (
	"errors"

	"github.com/warpdl/cookiegetter/pkg/cookies"
	"github.com/zalando/go-keyring"
)

// KeyringStore keeps the selection in the OS keyring under
// (Service, User).
type KeyringStore struct {
	Service string
	User    string
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
)

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{
		Service: "cookiegetter",
		User:    "selection",
	}
}

func (k *KeyringStore) Save(config cookies.BrowserConfig) error {
	data, err := encode(config)
	if err != nil {
		return err
	}
	return keyringSet(k.Service, k.User, data)
}

func (k *KeyringStore) Load() (cookies.BrowserConfig, error) {
	data, err := keyringGet(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return cookies.BrowserConfig{}, ErrNoSelection
	}
	if err != nil {
		return cookies.BrowserConfig{}, err
	}
	return decode(data)
}

func (k *KeyringStore) Clear() error {
	err := keyringDelete(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
