package trust

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
)

// Fingerprint returns the git blob id of the file at path.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint %s: %w", path, err)
	}
	return FingerprintBytes(data), nil
}

// FingerprintBytes returns the git blob id of data.
func FingerprintBytes(data []byte) string {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(data)) + "\x00"))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func isFingerprint(s string) bool {
	if len(s) != 2*sha1.Size {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
