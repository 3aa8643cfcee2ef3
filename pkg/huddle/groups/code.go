package groups

import (
	"errors"
	"math/rand"
	"time"

	"github.com/huddleup/huddle/pkg/huddle/models"
)

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = "0123456789"
)

// generateRandomString creates a random string of given length
func generateRandomString(length int, charset string) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[r.Intn(len(charset))]
	}
	return string(b)
}

// generateCode creates a share code in the LLL-NNNN format users pass
// around, retrying until the code is not already taken
func (h *Handler) generateCode() (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		code := generateRandomString(3, codeLetters) + "-" + generateRandomString(4, codeDigits)

		var existing models.Group
		if err := h.db.Where("code = ?", code).First(&existing).Error; err != nil {
			return code, nil
		}
	}

	return "", errors.New("no free share code after 10 attempts")
}
