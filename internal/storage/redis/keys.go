package redis

import "fmt"

// Key prefix for all site data
const keyPrefix = "sitecms"

// sessionKey returns the Redis key for a login session
func sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
