package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// GenerateKeyWithParams creates a cache key from a prefix and parameters.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}

// HashKey generates MD5 hash of a key. Used to bound key length when the
// parameter list is long, e.g. a full module list.
func HashKey(key string) string {
	hasher := md5.New()
	hasher.Write([]byte(key))
	return hex.EncodeToString(hasher.Sum(nil))
}
