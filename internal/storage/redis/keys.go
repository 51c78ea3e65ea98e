package redis

import (
	"fmt"

	"github.com/Fras28/NextLvlPadel-sub000/internal/storage"
)

// Key prefix for all session data
const keyPrefix = "padel"

// credentialKey returns the Redis key for the stored credential
func credentialKey(namespace string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, namespace, storage.CredentialKey)
}

// profileKey returns the Redis key for the stored profile
func profileKey(namespace string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, namespace, storage.ProfileKey)
}
