package redisrepo

import "fmt"

const (
	USER = "user:%d" // <userID>
)

func UserKey(userID int64) string {
	return fmt.Sprintf(USER, userID)
}
